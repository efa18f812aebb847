package options

import (
	"context"
	"net/http"

	"github.com/urfave/cli/v3"

	"github.com/wuxler/ruacred/pkg/util/xhttp"
	"github.com/wuxler/ruacred/pkg/xlog"
)

const (
	// CommonFlagCategory is the category of the flags shared by all commands.
	CommonFlagCategory = "[Common]"
)

// NewCommon returns a *Common with default values.
func NewCommon() *Common {
	return &Common{LogLevel: "info"}
}

// Common are options that are common to all commands.
type Common struct {
	Debug    bool   `json:"debug,omitempty" yaml:"debug,omitempty"`
	LogLevel string `json:"log_level,omitempty" yaml:"log_level,omitempty"`
	LogFile  string `json:"log_file,omitempty" yaml:"log_file,omitempty"`
}

// Flags returns the []cli.Flag related to current options.
func (o *Common) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "debug",
			Aliases:     []string{"d"},
			Sources:     cli.EnvVars("RUACRED_DEBUG"),
			Usage:       "enable debug logs and dump HTTP exchanges",
			Destination: &o.Debug,
			Category:    CommonFlagCategory,
		},
		&cli.StringFlag{
			Name:        "log-level",
			Sources:     cli.EnvVars("RUACRED_LOG_LEVEL"),
			Usage:       `log level, oneof ["debug", "info", "warn", "error"]`,
			Value:       o.LogLevel,
			Destination: &o.LogLevel,
			Validator: func(s string) error {
				_, err := xlog.ParseLevel(s)
				return err
			},
			Category: CommonFlagCategory,
		},
		&cli.StringFlag{
			Name:        "log-file",
			Sources:     cli.EnvVars("RUACRED_LOG_FILE"),
			Usage:       "also write JSON logs to the file, rotated by size",
			Destination: &o.LogFile,
			TakesFile:   true,
			Category:    CommonFlagCategory,
		},
	}
}

// Setup installs the default logger described by the options. It fits
// cli.Command.Before.
func (o *Common) Setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	c := xlog.NewConfig()
	c.StdWriter = cmd.Root().ErrWriter
	c.Path = o.LogFile
	lvl, err := xlog.ParseLevel(o.LogLevel)
	if err != nil {
		return ctx, err
	}
	c.Level = lvl
	if o.Debug {
		c.Level = xlog.LevelDebug
		c.AddSource = true
	}
	logger := xlog.New(c)
	xlog.SetDefault(logger)
	return xlog.NewContext(ctx, logger), nil
}

// WrapTransport dumps HTTP exchanges to the error writer in debug mode.
func (o *Common) WrapTransport(cmd *cli.Command, tr http.RoundTripper) http.RoundTripper {
	if !o.Debug {
		return tr
	}
	dump := xhttp.NewDumpTransport(tr)
	dump.Out = cmd.Root().ErrWriter
	return dump
}
