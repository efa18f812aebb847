// Package xio provides small io helpers.
package xio

import (
	"fmt"
	"io"
)

const (
	_   = iota
	KiB = 1 << (10 * iota)
	MiB
	GiB
)

// LimitCopy copies at most limit bytes from r to w, and fails when r holds
// more than that.
func LimitCopy(w io.Writer, r io.Reader, limit int64) (int64, error) {
	written, err := io.Copy(w, io.LimitReader(r, limit))
	if err != nil {
		return written, err
	}
	if written == limit {
		// probe for one more byte
		if n, _ := r.Read(make([]byte, 1)); n > 0 {
			return written, fmt.Errorf("size to read limit hit: %d", limit)
		}
	}
	return written, nil
}
