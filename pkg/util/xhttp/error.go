package xhttp

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/samber/lo"

	"github.com/wuxler/ruacred/pkg/errdefs"
)

// maxErrorBytes limits how much of an error response body is kept in the
// returned error.
const maxErrorBytes int64 = 8 * 1024 // 8 KiB

// Success returns nil if the response status code is 200 or one of
// allowedCodes, or an error carrying the head of the response body.
//
// NOTE: resp.Body is read but not closed.
func Success(resp *http.Response, allowedCodes ...int) error {
	if resp == nil {
		return errors.New("response is nil")
	}
	if lo.Contains(append(allowedCodes, http.StatusOK), resp.StatusCode) {
		return nil
	}
	msg := fmt.Sprintf("unexpected status code %d", resp.StatusCode)

	body := resp.Body
	if body == nil {
		body = http.NoBody
	}
	content, err := io.ReadAll(io.LimitReader(body, maxErrorBytes))
	switch {
	case err != nil:
		return MakeResponseError(resp, fmt.Errorf("%s: unable to read response body: %w", msg, err))
	case len(content) > 0:
		return MakeResponseError(resp, fmt.Errorf("%s: %s", msg, content))
	}
	return MakeResponseError(resp, errors.New(msg))
}

// MakeResponseError wraps err with the request line of resp, and with the
// matching errdefs kind for 401, 407 and 404.
func MakeResponseError(resp *http.Response, err error) error {
	if resp == nil || err == nil {
		return err
	}
	ret := MakeRequestError(resp.Request, err)
	switch resp.StatusCode {
	case http.StatusNotFound:
		ret = errdefs.NewE(errdefs.ErrNotFound, ret)
	case http.StatusUnauthorized, http.StatusProxyAuthRequired:
		ret = errdefs.NewE(errdefs.ErrUnauthorized, ret)
	}
	return ret
}

// MakeRequestError wraps err with the method and redacted URL of req.
func MakeRequestError(req *http.Request, err error) error {
	if err == nil || req == nil {
		return err
	}
	return fmt.Errorf("%s %s: %w", req.Method, req.URL.Redacted(), err)
}
