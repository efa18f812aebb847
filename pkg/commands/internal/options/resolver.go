package options

import (
	"path/filepath"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/wuxler/ruacred/pkg/appinfo"
	"github.com/wuxler/ruacred/pkg/authn/credentials"
	"github.com/wuxler/ruacred/pkg/authn/resolver"
	"github.com/wuxler/ruacred/pkg/cmdhelper"
	"github.com/wuxler/ruacred/pkg/preferences"
	"github.com/wuxler/ruacred/pkg/util/homedir"
)

const (
	// ResolverFlagCategory is the category of the credential resolution flags.
	ResolverFlagCategory = "[Resolver]"

	// PreferencesFileName is the base name of the default preferences file.
	PreferencesFileName = "preferences.yaml"
)

// NewResolverOptions returns a *ResolverOptions with default values.
func NewResolverOptions() *ResolverOptions {
	o := &ResolverOptions{LockScope: string(resolver.LockScopeGlobal)}
	if dir, err := homedir.ConfigDir(appinfo.Name); err == nil {
		o.Preferences = filepath.Join(dir, PreferencesFileName)
	}
	return o
}

// ResolverOptions configures how challenges are answered.
type ResolverOptions struct {
	Preferences   string        `json:"preferences,omitempty" yaml:"preferences,omitempty"`
	LockScope     string        `json:"lock_scope,omitempty" yaml:"lock_scope,omitempty"`
	PromptTimeout time.Duration `json:"prompt_timeout,omitempty" yaml:"prompt_timeout,omitempty"`
}

// Flags returns the []cli.Flag related to current options.
func (o *ResolverOptions) Flags() []cli.Flag {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "preferences",
			Usage:       "preferences file, the \"promptForCredentials\" key enables prompting",
			Sources:     cli.EnvVars("RUACRED_PREFERENCES"),
			Value:       o.Preferences,
			Destination: &o.Preferences,
			TakesFile:   true,
		},
		&cli.StringFlag{
			Name:        "lock-scope",
			Usage:       `scope of the lookup and prompt sequence, oneof ["global", "host"]`,
			Sources:     cli.EnvVars("RUACRED_LOCK_SCOPE"),
			Value:       o.LockScope,
			Destination: &o.LockScope,
			Validator: func(s string) error {
				_, err := resolver.ParseLockScope(s)
				return err
			},
		},
		&cli.DurationFlag{
			Name:        "prompt-timeout",
			Usage:       "give up waiting for a prompt after the duration, 0 waits forever",
			Sources:     cli.EnvVars("RUACRED_PROMPT_TIMEOUT"),
			Value:       o.PromptTimeout,
			Destination: &o.PromptTimeout,
		},
	}
	cmdhelper.SetFlagsCategory(ResolverFlagCategory, flags...)
	return flags
}

// LoadPreferences loads the preferences file from the OS file system. A
// missing file leaves every preference at its default.
func (o *ResolverOptions) LoadPreferences() (*preferences.File, error) {
	path, err := homedir.Expand(o.Preferences)
	if err != nil {
		return nil, err
	}
	prefs := preferences.NewFile(nil, path)
	if err := prefs.Load(); err != nil {
		return nil, err
	}
	return prefs, nil
}

// NewResolver returns a Resolver over store asking prompter on a miss.
func (o *ResolverOptions) NewResolver(store credentials.Reader, prompter resolver.Prompter) (*resolver.Resolver, error) {
	scope, err := resolver.ParseLockScope(o.LockScope)
	if err != nil {
		return nil, err
	}
	return resolver.New(store,
		resolver.WithPrompter(prompter),
		resolver.WithLockScope(scope),
		resolver.WithPromptTimeout(o.PromptTimeout),
	), nil
}
