// Package authn defines the credentials answering HTTP authentication
// challenges, the challenge parser and the header encoding.
package authn
