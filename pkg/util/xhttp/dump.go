package xhttp

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"os"
	"strings"
	"time"

	"github.com/wuxler/ruacred/pkg/xlog"
)

// DumpMode is a bitmask selecting what DumpTransport writes out.
type DumpMode uint8

const (
	DumpRequest DumpMode = 1 << iota
	DumpRequestBody
	DumpResponse
	DumpResponseBody
)

const (
	// DumpHeaders dumps request and response lines and headers.
	DumpHeaders = DumpRequest | DumpResponse
	// DumpAll dumps everything including bodies.
	DumpAll = DumpHeaders | DumpRequestBody | DumpResponseBody
)

// redactedHeaders are replaced with "<redacted>" in dumps.
var redactedHeaders = []string{"Authorization", "Proxy-Authorization"}

type dumpModeKey struct{}

// WithDumpMode limits the dump mode of requests sent with ctx.
func WithDumpMode(ctx context.Context, mode DumpMode) context.Context {
	return context.WithValue(ctx, dumpModeKey{}, mode)
}

// GetDumpMode returns the dump mode set by WithDumpMode.
func GetDumpMode(ctx context.Context) (DumpMode, bool) {
	mode, ok := ctx.Value(dumpModeKey{}).(DumpMode)
	return mode, ok
}

func (m DumpMode) String() string {
	names := []string{}
	for _, item := range []struct {
		mode DumpMode
		name string
	}{
		{DumpRequest, "DumpRequest"},
		{DumpRequestBody, "DumpRequestBody"},
		{DumpResponse, "DumpResponse"},
		{DumpResponseBody, "DumpResponseBody"},
	} {
		if m&item.mode != 0 {
			names = append(names, item.name)
		}
	}
	if len(names) == 0 {
		return "DumpNone"
	}
	return strings.Join(names, "|")
}

// Has reports whether every bit of mode is set.
func (m DumpMode) Has(mode DumpMode) bool {
	return m&mode == mode
}

var _ http.RoundTripper = (*DumpTransport)(nil)

// NewDumpTransport returns a [DumpTransport] dumping headers to os.Stderr. A
// nil inner uses http.DefaultTransport.
func NewDumpTransport(inner http.RoundTripper) *DumpTransport {
	if inner == nil {
		inner = http.DefaultTransport
	}
	return &DumpTransport{
		Out:         os.Stderr,
		DefaultMode: DumpHeaders,
		inner:       inner,
	}
}

// DumpTransport is a [http.RoundTripper] writing every exchange to Out with
// the authorization headers redacted.
type DumpTransport struct {
	Out         io.Writer
	DefaultMode DumpMode

	inner http.RoundTripper
}

// RoundTrip implements http.RoundTripper.
func (t *DumpTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	mode := t.DefaultMode
	if value, ok := GetDumpMode(req.Context()); ok {
		mode &= value
	}
	if mode == 0 {
		return t.inner.RoundTrip(req)
	}

	buf := &bytes.Buffer{}
	defer func() {
		if _, err := io.Copy(t.Out, buf); err != nil {
			xlog.C(req.Context()).Warnf("failed to dump request/response: %v", err)
		}
	}()

	if mode.Has(DumpRequest) {
		dumpRequest(buf, req, mode.Has(DumpRequestBody))
	}
	start := time.Now()
	resp, err := t.inner.RoundTrip(req)
	if err != nil {
		fmt.Fprintf(buf, "<-- %s %s error: %v\n\n", req.Method, req.URL.Redacted(), err)
		return resp, err
	}
	if mode.Has(DumpResponse) {
		dumpResponse(buf, resp, time.Since(start), mode.Has(DumpResponseBody))
	}
	return resp, nil
}

func dumpRequest(w io.Writer, req *http.Request, body bool) {
	title := fmt.Sprintf("--> %s %s", req.Method, req.URL.Redacted())
	if !body {
		title += " [body redacted]"
	}
	fmt.Fprintln(w, title)

	// dump a shallow copy so the outgoing headers stay untouched
	clone := req.Clone(req.Context())
	for _, key := range redactedHeaders {
		if clone.Header.Get(key) != "" {
			clone.Header.Set(key, "<redacted>")
		}
	}
	clone.Body = req.Body
	b, err := httputil.DumpRequestOut(clone, body)
	if body {
		req.Body = clone.Body
	}
	writeDump(w, "request", b, err)
}

func dumpResponse(w io.Writer, resp *http.Response, elapsed time.Duration, body bool) {
	req := resp.Request
	title := fmt.Sprintf("<-- %s %s %d %s (%s)", req.Method, req.URL.Redacted(), resp.StatusCode, http.StatusText(resp.StatusCode), elapsed)
	if !body {
		title += " [body redacted]"
	}
	fmt.Fprintln(w, title)

	b, err := httputil.DumpResponse(resp, body)
	writeDump(w, "response", b, err)
}

func writeDump(w io.Writer, what string, b []byte, err error) {
	if err != nil {
		fmt.Fprintf(w, "failed to dump %s: %v\n\n", what, err)
		return
	}
	fmt.Fprintf(w, "%s\n\n", bytes.TrimSuffix(b, []byte("\r\n\r\n")))
}
