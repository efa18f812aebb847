package xhttp_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wuxler/ruacred/pkg/util/xhttp"
)

func TestCheckRequestBodyRewindable(t *testing.T) {
	req, err := http.NewRequest(http.MethodPost, "http://example.com/", bytes.NewBufferString("body"))
	require.NoError(t, err)
	assert.NoError(t, xhttp.CheckRequestBodyRewindable(req))

	req, err = http.NewRequest(http.MethodPost, "http://example.com/", io.NopCloser(bytes.NewBufferString("body")))
	require.NoError(t, err)
	assert.ErrorContains(t, xhttp.CheckRequestBodyRewindable(req), "not rewindable")

	req, err = http.NewRequest(http.MethodGet, "http://example.com/", nil)
	require.NoError(t, err)
	assert.NoError(t, xhttp.CheckRequestBodyRewindable(req))
}

func TestRewindRequestBody(t *testing.T) {
	req, err := http.NewRequest(http.MethodPost, "http://example.com/", bytes.NewBufferString("body"))
	require.NoError(t, err)
	_, err = io.ReadAll(req.Body)
	require.NoError(t, err)

	require.NoError(t, xhttp.RewindRequestBody(req))
	b, err := io.ReadAll(req.Body)
	require.NoError(t, err)
	assert.Equal(t, "body", string(b))
}

func TestDirectRequest(t *testing.T) {
	ctx := context.Background()
	assert.False(t, xhttp.IsDirectRequest(ctx))
	assert.True(t, xhttp.IsDirectRequest(xhttp.WithDirectRequest(ctx)))
}

func TestParseURL(t *testing.T) {
	u, err := xhttp.ParseURL("example.com:8443/path", "https")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com:8443/path", u.String())

	u, err = xhttp.ParseURL("http://example.com", "https")
	require.NoError(t, err)
	assert.Equal(t, "http", u.Scheme)

	_, err = xhttp.ParseURL("http://", "https")
	assert.Error(t, err)
}
