package fetch

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wuxler/ruacred/pkg/commands/internal/options"
	"github.com/wuxler/ruacred/pkg/errdefs"
)

type scriptedInputs struct {
	answers []string
}

func (s *scriptedInputs) Read(string, bool) (string, error) {
	answer := s.answers[0]
	s.answers = s.answers[1:]
	return answer, nil
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "alice" || pass != "pw" {
			w.Header().Set("WWW-Authenticate", `Basic realm="reports"`)
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte("quarterly report"))
	}))
	t.Cleanup(server.Close)
	return server
}

func runFetch(t *testing.T, inputs *scriptedInputs, args ...string) (string, error) {
	t.Helper()
	c := New(options.NewCommon())
	c.inputs = inputs
	cmd := c.ToCLI()
	out := &bytes.Buffer{}
	cmd.Writer = out
	cmd.ErrWriter = &bytes.Buffer{}
	err := cmd.Run(context.Background(), append([]string{"fetch"}, args...))
	return out.String(), err
}

func TestFetch_PromptsOnChallenge(t *testing.T) {
	server := newServer(t)
	out, err := runFetch(t, &scriptedInputs{answers: []string{"alice", "pw"}}, "--prompt", "--include", server.URL)
	require.NoError(t, err)
	assert.Equal(t, "HTTP/1.1 200 OK\nquarterly report", out)
}

func TestFetch_Unauthorized(t *testing.T) {
	server := newServer(t)
	_, err := runFetch(t, &scriptedInputs{},
		"--preferences", filepath.Join(t.TempDir(), "none.yaml"), server.URL)
	assert.ErrorIs(t, err, errdefs.ErrUnauthorized)
}

func TestFetch_WrongCredentials(t *testing.T) {
	server := newServer(t)
	_, err := runFetch(t, &scriptedInputs{answers: []string{"alice", "wrong"}}, "--prompt", server.URL)
	assert.ErrorIs(t, err, errdefs.ErrUnauthorized)
}

func TestFetch_MaxSize(t *testing.T) {
	server := newServer(t)
	_, err := runFetch(t, &scriptedInputs{answers: []string{"alice", "pw"}}, "--prompt", "--max-size", "4", server.URL)
	assert.ErrorContains(t, err, "limit")
}

func TestFetch_RequiresURL(t *testing.T) {
	_, err := runFetch(t, &scriptedInputs{})
	assert.Error(t, err)
}
