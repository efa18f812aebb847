package prompt_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wuxler/ruacred/pkg/authn/credentials"
	"github.com/wuxler/ruacred/pkg/errdefs"
	"github.com/wuxler/ruacred/pkg/prompt"
)

func waitPending(t *testing.T, q *prompt.Queue, n int) []prompt.Request {
	t.Helper()
	var pending []prompt.Request
	require.Eventually(t, func() bool {
		pending = q.Pending()
		return len(pending) == n
	}, time.Second, time.Millisecond)
	return pending
}

func TestQueue_Answer(t *testing.T) {
	store := credentials.NewStore()
	q := prompt.NewQueue(store)

	errc := make(chan error, 1)
	go func() {
		errc <- q.RequestCredentials(context.Background(), "proxy", []string{`Basic realm="corp"`, "NTLM"})
	}()

	pending := waitPending(t, q, 1)
	assert.Equal(t, "proxy", pending[0].Host)
	assert.Equal(t, []string{`Basic realm="corp"`, "NTLM"}, pending[0].Challenges)

	require.NoError(t, q.Answer(pending[0].ID,
		prompt.Answer{Kind: prompt.KindBasic, Realm: "corp", Username: "alice", Password: "pw"},
		prompt.Answer{Kind: prompt.KindDomain, Domain: "CORP", Username: "bob", Password: "pw2"},
	))
	require.NoError(t, <-errc)

	basic, ok := store.LookupBasic("proxy", "corp")
	require.True(t, ok)
	assert.Equal(t, "alice", basic.Username)
	domain, ok := store.LookupDomain("proxy")
	require.True(t, ok)
	assert.Equal(t, "CORP", domain.Domain)
	assert.Empty(t, q.Pending())

	err := q.Answer(pending[0].ID, prompt.Answer{Kind: prompt.KindBasic, Username: "x"})
	assert.ErrorIs(t, err, errdefs.ErrNotFound)
}

func TestQueue_InvalidAnswerKeepsRequest(t *testing.T) {
	q := prompt.NewQueue(credentials.NewStore())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = q.RequestCredentials(ctx, "h", []string{"Negotiate"}) }()

	pending := waitPending(t, q, 1)
	assert.ErrorIs(t, q.Answer(pending[0].ID), errdefs.ErrInvalidParameter)
	assert.ErrorIs(t, q.Answer(pending[0].ID, prompt.Answer{Kind: "digest", Username: "u"}), errdefs.ErrInvalidParameter)
	assert.ErrorIs(t, q.Answer(pending[0].ID, prompt.Answer{Kind: prompt.KindDomain}), errdefs.ErrInvalidParameter)
	assert.Len(t, q.Pending(), 1)
}

func TestQueue_Cancel(t *testing.T) {
	store := credentials.NewStore()
	q := prompt.NewQueue(store)

	errc := make(chan error, 1)
	go func() { errc <- q.RequestCredentials(context.Background(), "h", []string{`Basic realm="r"`}) }()

	pending := waitPending(t, q, 1)
	require.NoError(t, q.Cancel(pending[0].ID))
	assert.ErrorIs(t, <-errc, errdefs.ErrCanceled)
	assert.Equal(t, 0, store.CountBasic())
	assert.ErrorIs(t, q.Cancel(pending[0].ID), errdefs.ErrNotFound)
}

func TestQueue_ContextDone(t *testing.T) {
	q := prompt.NewQueue(credentials.NewStore())
	ctx, cancel := context.WithCancel(context.Background())

	errc := make(chan error, 1)
	go func() { errc <- q.RequestCredentials(ctx, "h", []string{`Basic realm="r"`}) }()

	waitPending(t, q, 1)
	cancel()
	assert.ErrorIs(t, <-errc, context.Canceled)
	waitPending(t, q, 0)
}

func TestQueue_PendingOrdered(t *testing.T) {
	q := prompt.NewQueue(credentials.NewStore())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	for i, host := range []string{"a", "b", "c"} {
		host := host
		go func() { _ = q.RequestCredentials(ctx, host, []string{"NTLM"}) }()
		waitPending(t, q, i+1)
	}
	pending := waitPending(t, q, 3)
	for i := 1; i < len(pending); i++ {
		assert.Less(t, pending[i-1].ID, pending[i].ID)
	}
}
