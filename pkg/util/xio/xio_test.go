package xio_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wuxler/ruacred/pkg/util/xio"
)

func TestLimitCopy(t *testing.T) {
	limit := int64(100)

	t.Run("limit exceeded", func(t *testing.T) {
		w := &bytes.Buffer{}
		_, err := xio.LimitCopy(w, strings.NewReader(strings.Repeat("a", 101)), limit)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "size to read limit hit")
	})

	t.Run("exactly the limit", func(t *testing.T) {
		w := &bytes.Buffer{}
		n, err := xio.LimitCopy(w, strings.NewReader(strings.Repeat("a", 100)), limit)
		require.NoError(t, err)
		assert.Equal(t, int64(100), n)
	})

	t.Run("limit not exceeded", func(t *testing.T) {
		w := &bytes.Buffer{}
		n, err := xio.LimitCopy(w, strings.NewReader("abc"), limit)
		require.NoError(t, err)
		assert.Equal(t, int64(3), n)
		assert.Equal(t, "abc", w.String())
	})
}

type failingCloser struct{ closed bool }

func (c *failingCloser) Close() error {
	c.closed = true
	return errors.New("boom")
}

func TestClosers(t *testing.T) {
	c := &failingCloser{}
	xio.CloseAndLogError(c, "test")
	assert.True(t, c.closed)
	xio.CloseAndSkipError(nil)
}

func TestNopWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	w := xio.NopWriter(buf)
	_, err := w.Write([]byte("x"))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	assert.Equal(t, "x", buf.String())
}
