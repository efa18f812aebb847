package authn

import "errors"

var (
	// ErrUnsupportedScheme is returned if the challenge scheme is none of
	// Basic, NTLM or Negotiate.
	ErrUnsupportedScheme = errors.New("unsupported authentication scheme")
	// ErrMalformedChallenge is returned when a Basic challenge does not carry a
	// quoted realm parameter.
	ErrMalformedChallenge = errors.New("malformed challenge")
	// ErrIndexOutOfRange is returned by the indexed accessors of a credential
	// store when the position does not exist.
	ErrIndexOutOfRange = errors.New("index out of range")
)
