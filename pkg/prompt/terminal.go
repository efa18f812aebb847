// Package prompt implements the collaborators asking users for credentials.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/manifoldco/promptui"

	"github.com/wuxler/ruacred/pkg/authn"
	"github.com/wuxler/ruacred/pkg/authn/credentials"
	"github.com/wuxler/ruacred/pkg/authn/resolver"
	"github.com/wuxler/ruacred/pkg/xlog"
)

var _ resolver.Prompter = (*Terminal)(nil)

// Inputs reads one line of user input for a label.
type Inputs interface {
	Read(label string, secret bool) (string, error)
}

// NewPromptInputs returns Inputs backed by interactive promptui prompts. Nil
// stdin or stdout use the process terminal.
func NewPromptInputs(stdin io.ReadCloser, stdout io.WriteCloser) Inputs {
	return &promptInputs{stdin: stdin, stdout: stdout}
}

type promptInputs struct {
	stdin  io.ReadCloser
	stdout io.WriteCloser
}

func (p *promptInputs) Read(label string, secret bool) (string, error) {
	prompt := promptui.Prompt{
		Label:  label,
		Stdin:  p.stdin,
		Stdout: p.stdout,
	}
	if secret {
		prompt.Mask = '*'
	}
	return prompt.Run()
}

// NewTerminal returns a Terminal prompter writing answers to store. Nil inputs
// use NewPromptInputs(nil, nil).
func NewTerminal(store credentials.Writer, inputs Inputs) *Terminal {
	if inputs == nil {
		inputs = NewPromptInputs(nil, nil)
	}
	return &Terminal{store: store, inputs: inputs}
}

// Terminal asks for credentials on the terminal. Each Basic realm is asked for
// once, and a single domain account is asked for when the challenges contain
// NTLM or Negotiate.
type Terminal struct {
	store  credentials.Writer
	inputs Inputs

	// one conversation on the terminal at a time
	mu sync.Mutex
}

// RequestCredentials implements resolver.Prompter.
func (t *Terminal) RequestCredentials(ctx context.Context, host string, challenges []string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	askedRealms := map[string]bool{}
	askedDomain := false
	for _, header := range challenges {
		if err := ctx.Err(); err != nil {
			return err
		}
		challenge, err := authn.ParseChallenge(header)
		if err != nil {
			continue
		}
		switch {
		case challenge.Scheme == authn.SchemeBasic && !askedRealms[challenge.Realm]:
			askedRealms[challenge.Realm] = true
			cred, err := t.askBasic(host, challenge.Realm)
			if err != nil {
				return err
			}
			t.store.AddBasic(cred)
		case challenge.Scheme.IsDomain() && !askedDomain:
			askedDomain = true
			cred, err := t.askDomain(host, challenge.Scheme)
			if err != nil {
				return err
			}
			t.store.AddDomain(cred)
		}
	}
	xlog.C(ctx).DebugContext(ctx, "terminal prompt finished", "realms", len(askedRealms), "domain", askedDomain)
	return nil
}

func (t *Terminal) askBasic(host, realm string) (authn.BasicCredential, error) {
	cred := authn.BasicCredential{Host: host, Realm: realm}
	prefix := fmt.Sprintf("%s (%s)", host, realm)
	var err error
	if cred.Username, err = t.read(prefix+" Username", false); err != nil {
		return cred, err
	}
	if cred.Password, err = t.read(prefix+" Password", true); err != nil {
		return cred, err
	}
	return cred, nil
}

func (t *Terminal) askDomain(host string, scheme authn.Scheme) (authn.DomainCredential, error) {
	cred := authn.DomainCredential{Host: host}
	prefix := fmt.Sprintf("%s [%s]", host, scheme)
	var err error
	if cred.Domain, err = t.read(prefix+" Domain", false); err != nil {
		return cred, err
	}
	if cred.Username, err = t.read(prefix+" Username", false); err != nil {
		return cred, err
	}
	if cred.Password, err = t.read(prefix+" Password", true); err != nil {
		return cred, err
	}
	return cred, nil
}

func (t *Terminal) read(label string, secret bool) (string, error) {
	value, err := t.inputs.Read(label, secret)
	if err != nil {
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			return "", fmt.Errorf("prompt cancelled: %w", err)
		}
		return "", fmt.Errorf("read %s: %w", label, err)
	}
	return value, nil
}
