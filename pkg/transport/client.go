// Package transport provides an HTTP client answering authentication
// challenges with resolved credentials.
package transport

import (
	"context"
	"net/http"

	"github.com/wuxler/ruacred/pkg/authn"
	"github.com/wuxler/ruacred/pkg/util/xhttp"
	"github.com/wuxler/ruacred/pkg/util/xio"
	"github.com/wuxler/ruacred/pkg/xlog"
)

var _ xhttp.Client = (*Client)(nil)

// Authenticator resolves the header value answering a set of challenges.
type Authenticator interface {
	Credentials(ctx context.Context, host string, challenges []string) (string, bool)
	ProxyCredentials(ctx context.Context, hostname string, challenges []string) (string, bool)
}

// Client sends requests and retries once per challenge kind with the
// credentials resolved for it.
type Client struct {
	// Client is the underlying HTTP client. If nil, http.DefaultClient is used.
	Client *http.Client

	// Header contains the custom headers to be added to each request.
	Header http.Header

	// Authenticator answers challenges. If nil, responses are returned as-is.
	Authenticator Authenticator

	// ProxyHost is the host name proxy credentials are stored under. If empty,
	// the request host is used.
	ProxyHost string
}

// Do performs an HTTP request, answering a 401 or 407 response with resolved
// credentials.
func (c *Client) Do(request *http.Request) (*http.Response, error) {
	resp, err := c.send(request)
	if err != nil {
		return nil, xhttp.MakeRequestError(request, err)
	}
	return resp, nil
}

func (c *Client) send(request *http.Request) (*http.Response, error) {
	ctx := request.Context()
	request.Header = c.expandHeader(request.Header)

	if c.Authenticator == nil || xhttp.IsDirectRequest(ctx) {
		return xhttp.Default(c.Client).Do(request)
	}
	if err := xhttp.CheckRequestBodyRewindable(request); err != nil {
		return nil, err
	}

	resp, err := xhttp.Default(c.Client).Do(request)
	if err != nil {
		return nil, err
	}

	answered := map[int]bool{}
	for !answered[resp.StatusCode] {
		proxy := false
		switch resp.StatusCode {
		case http.StatusUnauthorized:
		case http.StatusProxyAuthRequired:
			proxy = true
		default:
			return resp, nil
		}
		answered[resp.StatusCode] = true

		value, ok := c.resolve(ctx, request, resp, proxy)
		if !ok {
			return resp, nil
		}
		if err := xhttp.RewindRequestBody(request); err != nil {
			xio.CloseAndSkipError(resp.Body)
			return nil, err
		}
		xio.CloseAndLogError(resp.Body, "challenge response")

		authn.SetAuthorization(request, value, proxy)
		// retry request with authorization
		if resp, err = xhttp.Default(c.Client).Do(request); err != nil {
			return nil, err
		}
	}
	return resp, nil
}

func (c *Client) resolve(ctx context.Context, request *http.Request, resp *http.Response, proxy bool) (string, bool) {
	if proxy {
		challenges := resp.Header.Values(authn.HeaderProxyAuthenticate)
		host := c.ProxyHost
		if host == "" {
			host = request.URL.Hostname()
		}
		xlog.C(ctx).DebugContext(ctx, "proxy authentication required", "host", host, "challenges", len(challenges))
		return c.Authenticator.ProxyCredentials(ctx, host, challenges)
	}
	challenges := resp.Header.Values(authn.HeaderWWWAuthenticate)
	xlog.C(ctx).DebugContext(ctx, "authentication required", "host", request.URL.Hostname(), "challenges", len(challenges))
	return c.Authenticator.Credentials(ctx, request.URL.Hostname(), challenges)
}

func (c *Client) expandHeader(h http.Header) http.Header {
	if h == nil {
		h = make(http.Header)
	}
	for key, values := range c.Header {
		for _, value := range values {
			h.Add(key, value)
		}
	}
	return h
}
