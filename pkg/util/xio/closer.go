package xio

import (
	"io"
	"strings"

	"github.com/wuxler/ruacred/pkg/xlog"
)

// CloseAndSkipError closes c, if not nil, and ignores the error.
func CloseAndSkipError(c io.Closer) {
	if c != nil {
		_ = c.Close()
	}
}

// CloseAndLogError closes c and logs a warning when it fails, messages are
// joined as context. Prefer "defer CloseAndLogError(rc)" over "defer
// rc.Close()".
func CloseAndLogError(c io.Closer, messages ...string) {
	if c == nil {
		return
	}
	err := c.Close()
	if err == nil {
		return
	}
	if len(messages) == 0 {
		xlog.Warnf("unable to close: %v", err)
		return
	}
	xlog.Warnf("unable to close %s: %v", strings.Join(messages, ": "), err)
}
