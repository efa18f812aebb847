package resolver

import "context"

//go:generate mockgen -destination=./mock_collaborators_test.go -package=resolver_test github.com/wuxler/ruacred/pkg/authn/resolver Prompter,Preferences

// Prompter asks the user for credentials answering the challenges of a host.
//
// RequestCredentials blocks until the user submitted or cancelled. Submitted
// credentials are expected to be added to the credential store before it
// returns; the resolver re-reads the store and ignores anything else. A
// returned error is treated as the user declining.
type Prompter interface {
	RequestCredentials(ctx context.Context, host string, challenges []string) error
}

// PromptFunc is a function that implements Prompter.
type PromptFunc func(ctx context.Context, host string, challenges []string) error

// RequestCredentials implements Prompter.
func (fn PromptFunc) RequestCredentials(ctx context.Context, host string, challenges []string) error {
	return fn(ctx, host, challenges)
}

// Preferences supplies the user settings consulted on every resolution.
type Preferences interface {
	// PromptForCredentialsEnabled reports whether the user may be prompted
	// when no stored credential answers a challenge.
	PromptForCredentialsEnabled() bool
}

// StaticPreferences is a fixed Preferences value.
type StaticPreferences bool

// PromptForCredentialsEnabled implements Preferences.
func (p StaticPreferences) PromptForCredentialsEnabled() bool {
	return bool(p)
}
