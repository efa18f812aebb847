package prompt

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/wuxler/ruacred/pkg/authn"
	"github.com/wuxler/ruacred/pkg/authn/credentials"
	"github.com/wuxler/ruacred/pkg/authn/resolver"
	"github.com/wuxler/ruacred/pkg/errdefs"
	"github.com/wuxler/ruacred/pkg/xlog"
)

var _ resolver.Prompter = (*Queue)(nil)

// Kind selects which credential an Answer stores.
type Kind string

const (
	// KindBasic stores a BasicCredential for the answered realm.
	KindBasic Kind = "basic"
	// KindDomain stores a DomainCredential for the host.
	KindDomain Kind = "domain"
)

// Request is a pending prompt waiting for an answer.
type Request struct {
	ID         uint64    `json:"id" yaml:"id"`
	Host       string    `json:"host" yaml:"host"`
	Challenges []string  `json:"challenges" yaml:"challenges"`
	CreatedAt  time.Time `json:"created_at" yaml:"created_at"`
}

// Answer is what a user submitted for a Request.
type Answer struct {
	Kind     Kind   `json:"kind" yaml:"kind"`
	Realm    string `json:"realm,omitempty" yaml:"realm,omitempty"`
	Domain   string `json:"domain,omitempty" yaml:"domain,omitempty"`
	Username string `json:"username,omitempty" yaml:"username,omitempty"`
	Password string `json:"password,omitempty" yaml:"password,omitempty"`
}

// NewQueue returns an empty Queue writing answers to store.
func NewQueue(store credentials.Writer) *Queue {
	return &Queue{
		store:   store,
		pending: make(map[uint64]*pendingRequest),
	}
}

// Queue is a prompter answered out of band: RequestCredentials publishes a
// Request and blocks until Answer, Cancel or the context ends.
type Queue struct {
	store credentials.Writer

	mu      sync.Mutex
	nextID  uint64
	pending map[uint64]*pendingRequest
}

type pendingRequest struct {
	Request
	answers   chan []Answer
	cancelled chan struct{}
}

// RequestCredentials implements resolver.Prompter.
func (q *Queue) RequestCredentials(ctx context.Context, host string, challenges []string) error {
	p := q.publish(host, challenges)
	defer q.remove(p.ID)
	xlog.C(ctx).InfoContext(ctx, "credential prompt pending", "id", p.ID)

	select {
	case answers := <-p.answers:
		for _, answer := range answers {
			q.apply(host, answer)
		}
		return nil
	case <-p.cancelled:
		return errdefs.Newf(errdefs.ErrCanceled, "prompt %d cancelled", p.ID)
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Pending returns the outstanding requests ordered by id.
func (q *Queue) Pending() []Request {
	q.mu.Lock()
	defer q.mu.Unlock()

	requests := lo.Map(lo.Values(q.pending), func(p *pendingRequest, _ int) Request {
		r := p.Request
		r.Challenges = slices.Clone(r.Challenges)
		return r
	})
	slices.SortFunc(requests, func(a, b Request) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return requests
}

// Answer completes the request with id. Every answer is validated before any
// is applied.
func (q *Queue) Answer(id uint64, answers ...Answer) error {
	if len(answers) == 0 {
		return errdefs.Newf(errdefs.ErrInvalidParameter, "no answer for prompt %d", id)
	}
	if err := errors.Join(lo.Map(answers, func(a Answer, _ int) error { return a.Validate() })...); err != nil {
		return err
	}
	p, err := q.take(id)
	if err != nil {
		return err
	}
	p.answers <- answers
	return nil
}

// Cancel declines the request with id.
func (q *Queue) Cancel(id uint64) error {
	p, err := q.take(id)
	if err != nil {
		return err
	}
	close(p.cancelled)
	return nil
}

// Validate checks the answer carries a kind and a username or password.
func (a Answer) Validate() error {
	if a.Kind != KindBasic && a.Kind != KindDomain {
		return errdefs.Newf(errdefs.ErrInvalidParameter, "unknown answer kind %q, oneof [%q, %q]", a.Kind, KindBasic, KindDomain)
	}
	if a.Username == "" && a.Password == "" {
		return errdefs.Newf(errdefs.ErrInvalidParameter, "username or password is required")
	}
	return nil
}

func (q *Queue) apply(host string, a Answer) {
	switch a.Kind {
	case KindBasic:
		q.store.AddBasic(authn.BasicCredential{Host: host, Realm: a.Realm, Username: a.Username, Password: a.Password})
	case KindDomain:
		q.store.AddDomain(authn.DomainCredential{Host: host, Domain: a.Domain, Username: a.Username, Password: a.Password})
	}
}

func (q *Queue) publish(host string, challenges []string) *pendingRequest {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.nextID++
	p := &pendingRequest{
		Request: Request{
			ID:         q.nextID,
			Host:       host,
			Challenges: slices.Clone(challenges),
			CreatedAt:  time.Now(),
		},
		answers:   make(chan []Answer, 1),
		cancelled: make(chan struct{}),
	}
	q.pending[p.ID] = p
	return p
}

// take removes the request so it is answered or cancelled at most once.
func (q *Queue) take(id uint64) (*pendingRequest, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	p, ok := q.pending[id]
	if !ok {
		return nil, errdefs.Newf(errdefs.ErrNotFound, "prompt %d", id)
	}
	delete(q.pending, id)
	return p, nil
}

func (q *Queue) remove(id uint64) {
	q.mu.Lock()
	defer q.mu.Unlock()

	delete(q.pending, id)
}
