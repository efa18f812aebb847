// Package preferences provides the user settings file consulted by the
// credential resolver.
package preferences

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	"github.com/wuxler/ruacred/pkg/authn/resolver"
)

const (
	// KeyPromptForCredentials enables prompting when no stored credential
	// answers a challenge. Defaults to false.
	KeyPromptForCredentials = "promptForCredentials"
)

var _ resolver.Preferences = (*File)(nil)

// NewFile returns preferences stored at filename on the given file system. A
// nil fsys uses the operating system.
func NewFile(fsys afero.Fs, filename string) *File {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &File{
		fs:       fsys,
		filename: filename,
		values:   make(map[string]any),
	}
}

// File is a flat YAML document of preference keys. Every method is safe for
// concurrent use.
type File struct {
	fs       afero.Fs
	filename string

	mu     sync.RWMutex
	values map[string]any
}

// Load reads the file. A missing file leaves every preference at its default.
func (f *File) Load() error {
	data, err := afero.ReadFile(f.fs, f.filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read preferences %q: %w", f.filename, err)
	}
	values := make(map[string]any)
	if err := yaml.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("parse preferences %q: %w", f.filename, err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = values
	return nil
}

// Save writes all preferences back to the file.
func (f *File) Save() error {
	f.mu.RLock()
	data, err := yaml.Marshal(f.values)
	f.mu.RUnlock()
	if err != nil {
		return err
	}
	if err := f.fs.MkdirAll(filepath.Dir(f.filename), 0o700); err != nil {
		return err
	}
	return afero.WriteFile(f.fs, f.filename, data, 0o600)
}

// Get returns the preference as a string, or def when unset.
func (f *File) Get(key, def string) string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	v, ok := f.values[key]
	if !ok {
		return def
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return def
	}
	return s
}

// Bool returns the preference as a boolean, or def when unset or not a
// boolean.
func (f *File) Bool(key string, def bool) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()

	v, ok := f.values[key]
	if !ok {
		return def
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return def
	}
	return b
}

// Set changes a preference in memory; call Save to persist it.
func (f *File) Set(key string, value any) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.values[key] = value
}

// PromptForCredentialsEnabled implements resolver.Preferences.
func (f *File) PromptForCredentialsEnabled() bool {
	return f.Bool(KeyPromptForCredentials, false)
}
