package xlog_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wuxler/ruacred/pkg/xlog"
)

func newTestConfig(out *bytes.Buffer) xlog.Config {
	c := xlog.NewConfig()
	c.AttrReplacer = xlog.ChainReplacer(
		xlog.SuppressTimeAttrReplacer(),
		xlog.RedactAttrReplacer(xlog.DefaultRedactedKeys...),
	)
	c.StdWriter = out
	return c
}

func TestLogger_SetLevel(t *testing.T) {
	stdout := &bytes.Buffer{}
	logger := xlog.New(newTestConfig(stdout))

	logger.Debug("hidden", "attr1", "val1")
	logger.SetLevel(xlog.LevelDebug)
	logger.Debug("shown", "attr1", "val1")
	logger.Debugf("format: %s", "hello")

	want := strings.TrimLeft(`
level=DEBUG msg=shown attr1=val1
level=DEBUG msg="format: hello"
`, "\n")
	assert.Equal(t, want, stdout.String())
}

func TestLogger_DerivedLoggersShareLevel(t *testing.T) {
	stdout := &bytes.Buffer{}
	logger := xlog.New(newTestConfig(stdout))
	child := logger.With("host", "proxy.corp")

	child.Debug("hidden")
	logger.SetLevel(xlog.LevelDebug)
	child.Debug("lookup")

	assert.Equal(t, "level=DEBUG msg=lookup host=proxy.corp\n", stdout.String())
}

func TestLogger_Redact(t *testing.T) {
	stdout := &bytes.Buffer{}
	logger := xlog.New(newTestConfig(stdout))

	logger.Info("answer", "username", "alice", "Password", "s3cret")
	assert.Equal(t, "level=INFO msg=answer username=alice Password=<redacted>\n", stdout.String())
}

func TestLogger_Context(t *testing.T) {
	stdout := &bytes.Buffer{}
	xlog.SetDefault(xlog.New(newTestConfig(stdout)))
	t.Cleanup(func() { xlog.SetDefault(xlog.New(xlog.NewConfig())) })

	ctx := xlog.WithContext(context.Background(), "origin", "proxy")
	xlog.C(ctx).InfoContext(ctx, "resolved")
	xlog.C(context.Background()).Warnf("plain %d", 1)

	want := strings.TrimLeft(`
level=INFO msg=resolved origin=proxy
level=WARN msg="plain 1"
`, "\n")
	assert.Equal(t, want, stdout.String())
}

func TestLogger_FileHandler(t *testing.T) {
	stdout := &bytes.Buffer{}
	c := newTestConfig(stdout)
	c.Path = filepath.Join(t.TempDir(), "ruacred.log")
	logger := xlog.New(c)

	logger.Info("first", "attr1", "val1")
	logger.Debug("hidden")
	logger.SetLevel(xlog.LevelDebug)
	logger.Debugf("second %s", "line")

	assert.Equal(t, "level=INFO msg=first attr1=val1\nlevel=DEBUG msg=\"second line\"\n", stdout.String())

	content, err := os.ReadFile(c.Path)
	require.NoError(t, err)
	want := strings.TrimLeft(`
{"level":"INFO","msg":"first","attr1":"val1"}
{"level":"DEBUG","msg":"second line"}
`, "\n")
	assert.Equal(t, want, string(content))
}

func TestParseLevel(t *testing.T) {
	lvl, err := xlog.ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, xlog.LevelDebug, lvl)

	lvl, err = xlog.ParseLevel(" WARN ")
	require.NoError(t, err)
	assert.Equal(t, xlog.LevelWarn, lvl)

	_, err = xlog.ParseLevel("loud")
	assert.Error(t, err)
}
