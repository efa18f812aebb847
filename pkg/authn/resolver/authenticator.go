package resolver

import "context"

// NewAuthenticator returns an Authenticator. A nil prefs never prompts.
func NewAuthenticator(r *Resolver, prefs Preferences) *Authenticator {
	if prefs == nil {
		prefs = StaticPreferences(false)
	}
	return &Authenticator{resolver: r, prefs: prefs}
}

// Authenticator is the entry point of the network layer. It reads the prompt
// preference once per call and delegates to the Resolver.
type Authenticator struct {
	resolver *Resolver
	prefs    Preferences
}

// Credentials answers the challenges of an origin server.
func (a *Authenticator) Credentials(ctx context.Context, host string, challenges []string) (string, bool) {
	return a.resolver.Resolve(ctx, host, challenges, a.prefs.PromptForCredentialsEnabled())
}

// ProxyCredentials answers the challenges of a proxy.
func (a *Authenticator) ProxyCredentials(ctx context.Context, hostname string, challenges []string) (string, bool) {
	return a.resolver.ResolveProxy(ctx, hostname, challenges, a.prefs.PromptForCredentialsEnabled())
}
