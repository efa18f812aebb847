// Package homedir locates the user's home and configuration directories.
package homedir

import (
	"errors"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
)

// Get returns the home directory of the current user, from the environment
// first and from the user database otherwise.
func Get() (string, error) {
	var errs []error
	home, err := os.UserHomeDir()
	if err == nil && home != "" {
		return home, nil
	}
	errs = append(errs, err)
	u, err := user.Current()
	if err == nil && u != nil && u.HomeDir != "" {
		return u.HomeDir, nil
	}
	errs = append(errs, err)
	return "", fmt.Errorf("unable to determine home directory: %w", errors.Join(errs...))
}

// ConfigDir returns the configuration directory of app, honoring
// $XDG_CONFIG_HOME, and falling back to "~/.config/<app>".
func ConfigDir(app string) (string, error) {
	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		return filepath.Join(dir, app), nil
	}
	home, err := Get()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", app), nil
}

// Expand expands a leading "~" of path to the home directory. Other paths
// are returned as-is.
func Expand(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	if len(path) > 1 && path[1] != '/' && path[1] != '\\' {
		return "", errors.New("cannot expand user-specific home dir")
	}
	home, err := Get()
	if err != nil {
		return "", fmt.Errorf("cannot get user-specific home dir: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
