package homedir_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wuxler/ruacred/pkg/util/homedir"
)

func TestExpand(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	got, err := homedir.Expand("~/prefs.yaml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/tester", "prefs.yaml"), got)

	got, err = homedir.Expand("/etc/prefs.yaml")
	require.NoError(t, err)
	assert.Equal(t, "/etc/prefs.yaml", got)

	_, err = homedir.Expand("~other/prefs.yaml")
	assert.Error(t, err)
}

func TestConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	got, err := homedir.ConfigDir("ruacred")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/xdg", "ruacred"), got)
}
