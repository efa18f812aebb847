// Package resolver answers authentication challenges with stored credentials,
// prompting the user once when none are stored.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/wuxler/ruacred/pkg/authn"
	"github.com/wuxler/ruacred/pkg/authn/credentials"
	"github.com/wuxler/ruacred/pkg/xlog"
)

// Option configures a Resolver.
type Option func(*Resolver)

// WithPrompter sets the collaborator asked for credentials on a miss. A nil
// Prompter disables prompting.
func WithPrompter(p Prompter) Option {
	return func(r *Resolver) {
		r.prompter = p
	}
}

// WithLockScope selects a built-in Locker.
func WithLockScope(scope LockScope) Option {
	return func(r *Resolver) {
		r.locker = NewLocker(scope)
	}
}

// WithLocker replaces the Locker serializing resolutions.
func WithLocker(l Locker) Option {
	return func(r *Resolver) {
		if l != nil {
			r.locker = l
		}
	}
}

// WithPromptTimeout bounds how long a resolution waits for the prompter. Zero,
// the default, waits until the prompter returns or the caller's context ends.
func WithPromptTimeout(d time.Duration) Option {
	return func(r *Resolver) {
		r.promptTimeout = d
	}
}

// WithClock sets the clock used for the prompt timeout.
func WithClock(c clock.Clock) Option {
	return func(r *Resolver) {
		if c != nil {
			r.clock = c
		}
	}
}

// New returns a Resolver reading credentials from store.
func New(store credentials.Reader, opts ...Option) *Resolver {
	r := &Resolver{
		store:  store,
		locker: NewLocker(LockScopeGlobal),
		clock:  clock.New(),
	}
	for _, apply := range opts {
		apply(r)
	}
	return r
}

// Resolver picks the stored credential answering a set of challenges.
//
// Schemes are preferred in the order Basic, NTLM, Negotiate. On a miss, and
// only when prompting is enabled and a challenge names a supported scheme,
// the Prompter is called once and the store is read again.
type Resolver struct {
	store         credentials.Reader
	prompter      Prompter
	locker        Locker
	clock         clock.Clock
	promptTimeout time.Duration
}

// Resolve returns the "Authorization" value answering the challenges of an
// origin server. The boolean is false when no credential is available, which
// is a normal outcome.
//
// Resolve blocks while another resolution holds the lock or while the prompter
// is waiting for the user. Cancelling ctx counts as the user declining.
func (r *Resolver) Resolve(ctx context.Context, host string, challenges []string, promptEnabled bool) (string, bool) {
	return r.resolve(ctx, host, challenges, promptEnabled, "server")
}

// ResolveProxy is Resolve for challenges sent by a proxy; the returned value
// belongs in "Proxy-Authorization".
func (r *Resolver) ResolveProxy(ctx context.Context, hostname string, challenges []string, promptEnabled bool) (string, bool) {
	return r.resolve(ctx, hostname, challenges, promptEnabled, "proxy")
}

func (r *Resolver) resolve(ctx context.Context, host string, challenges []string, promptEnabled bool, origin string) (string, bool) {
	// no pre-emptive authentication
	if len(challenges) == 0 {
		return "", false
	}
	ctx = xlog.WithContext(ctx, "host", host, "origin", origin)
	logger := xlog.C(ctx)

	unlock := r.locker.Lock(host)
	if value, ok := r.lookup(ctx, host, challenges); ok {
		unlock()
		return value, true
	}
	if !promptEnabled || r.prompter == nil || !authn.HasSupportedScheme(challenges) {
		unlock()
		logger.DebugContext(ctx, "no stored credential answers the challenges")
		return "", false
	}

	if pending := r.requestCredentials(ctx, host, challenges); pending != nil {
		// the sequence stays locked until the abandoned prompter returns
		go func() {
			<-pending
			unlock()
		}()
		return "", false
	}
	defer unlock()

	value, ok := r.lookup(ctx, host, challenges)
	if !ok {
		logger.DebugContext(ctx, "no credential after prompting")
	}
	return value, ok
}

// lookup applies the scheme preference to the stored credentials.
func (r *Resolver) lookup(ctx context.Context, host string, challenges []string) (string, bool) {
	for _, header := range challenges {
		if authn.ClassifyScheme(header) != authn.SchemeBasic {
			continue
		}
		challenge, err := authn.ParseChallenge(header)
		if err != nil {
			xlog.C(ctx).DebugContext(ctx, "skip challenge", "error", err)
			continue
		}
		if cred, ok := r.store.LookupBasic(host, challenge.Realm); ok {
			return authn.HeaderValue(authn.SchemeBasic, authn.EncodeBasic(cred)), true
		}
	}
	for _, scheme := range []authn.Scheme{authn.SchemeNTLM, authn.SchemeNegotiate} {
		if !slices.ContainsFunc(challenges, func(header string) bool {
			return authn.ClassifyScheme(header) == scheme
		}) {
			continue
		}
		if cred, ok := r.store.LookupDomain(host); ok {
			return authn.HeaderValue(scheme, authn.EncodeDomain(cred)), true
		}
	}
	return "", false
}

// requestCredentials runs the prompter and waits for it or for ctx. It returns
// nil once the prompter returned, or a channel closed when the abandoned
// prompter eventually returns.
func (r *Resolver) requestCredentials(ctx context.Context, host string, challenges []string) <-chan struct{} {
	if r.promptTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = r.clock.WithTimeout(ctx, r.promptTimeout)
		defer cancel()
	}

	var err error
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer func() {
			if p := recover(); p != nil {
				err = fmt.Errorf("prompter panicked: %v", p)
			}
		}()
		err = r.prompter.RequestCredentials(ctx, host, slices.Clone(challenges))
	}()

	select {
	case <-done:
		if err != nil {
			xlog.C(ctx).WarnContext(ctx, "credential prompt declined", "error", err)
		}
		return nil
	case <-ctx.Done():
		msg := "credential prompt canceled"
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			msg = "credential prompt timed out"
		}
		xlog.C(ctx).WarnContext(ctx, msg, "error", ctx.Err())
		return done
	}
}
