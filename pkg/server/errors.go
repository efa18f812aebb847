package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wuxler/ruacred/pkg/authn"
	"github.com/wuxler/ruacred/pkg/errdefs"
	"github.com/wuxler/ruacred/pkg/xlog"
)

type errorResponse struct {
	Error string `json:"error"`
}

// statusOf maps an error to the HTTP status reported to clients.
func statusOf(err error) int {
	switch {
	case errors.Is(err, authn.ErrIndexOutOfRange), errors.Is(err, errdefs.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errdefs.ErrInvalidParameter):
		return http.StatusBadRequest
	case errors.Is(err, errdefs.ErrCanceled):
		return http.StatusConflict
	case errors.Is(err, errdefs.ErrUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func abortWithError(c *gin.Context, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		ctx := c.Request.Context()
		// internal details stay in the log
		xlog.C(ctx).ErrorContext(ctx, "request failed", "path", c.FullPath(), "error", err)
		c.AbortWithStatusJSON(status, errorResponse{Error: http.StatusText(status)})
		return
	}
	c.AbortWithStatusJSON(status, errorResponse{Error: err.Error()})
}
