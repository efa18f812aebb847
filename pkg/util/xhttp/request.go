package xhttp

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

type directRequestKey struct{}

// IsDirectRequest checks whether the request should be sent without answering
// authentication challenges.
func IsDirectRequest(ctx context.Context) bool {
	if ctx == nil {
		ctx = context.Background()
	}
	value := ctx.Value(directRequestKey{})
	return value != nil
}

// WithDirectRequest injects direct signal to tell the http client do request
// without authorization.
func WithDirectRequest(ctx context.Context) context.Context {
	return context.WithValue(ctx, directRequestKey{}, true)
}

// CheckRequestBodyRewindable returns an error when the request has a body
// that could not be sent a second time.
func CheckRequestBodyRewindable(req *http.Request) error {
	if req.Body == nil || req.Body == http.NoBody {
		return nil
	}
	if req.GetBody == nil {
		return fmt.Errorf("%s %s: request body is not rewindable", req.Method, req.URL.Redacted())
	}
	return nil
}

// RewindRequestBody resets req.Body to a fresh copy for resending.
func RewindRequestBody(req *http.Request) error {
	if req.Body == nil || req.Body == http.NoBody {
		return nil
	}
	if req.GetBody == nil {
		return CheckRequestBodyRewindable(req)
	}
	body, err := req.GetBody()
	if err != nil {
		return fmt.Errorf("%s %s: rewind request body: %w", req.Method, req.URL.Redacted(), err)
	}
	req.Body = io.NopCloser(body)
	return nil
}
