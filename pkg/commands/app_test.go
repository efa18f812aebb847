package commands_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wuxler/ruacred/pkg/appinfo"
	"github.com/wuxler/ruacred/pkg/commands"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	app := commands.NewApp()
	app.Writer = stdout
	app.ErrWriter = stderr
	err := app.Run(context.Background(), append([]string{"ruacred"}, args...))
	return stdout.String(), stderr.String(), err
}

func TestVersion(t *testing.T) {
	stdout, _, err := run(t, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, appinfo.GetVersion().Line()+"\n", stdout)

	stdout, _, err = run(t, "version", "--format", "json")
	require.NoError(t, err)
	var v appinfo.Version
	require.NoError(t, json.Unmarshal([]byte(stdout), &v))
	assert.Equal(t, appinfo.GetVersion(), v)

	_, _, err = run(t, "version", "extra")
	assert.Error(t, err)
}

func TestInvalidLogLevel(t *testing.T) {
	_, _, err := run(t, "--log-level", "loud", "version")
	assert.Error(t, err)
}

func TestResolveRequiresFlags(t *testing.T) {
	_, _, err := run(t, "resolve", "--host", "h")
	assert.Error(t, err)
}

func TestResolveNotFound(t *testing.T) {
	_, _, err := run(t, "resolve", "--host", "h", "--challenge", `Basic realm="r"`,
		"--preferences", t.TempDir()+"/missing.yaml")
	assert.ErrorContains(t, err, "no credentials")
}
