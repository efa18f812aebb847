// Package fetch implements the command sending a GET request that answers
// authentication challenges.
package fetch

import (
	"context"
	"net/http"

	"github.com/urfave/cli/v3"

	"github.com/wuxler/ruacred/pkg/appinfo"
	"github.com/wuxler/ruacred/pkg/authn/credentials"
	"github.com/wuxler/ruacred/pkg/authn/resolver"
	"github.com/wuxler/ruacred/pkg/cmdhelper"
	"github.com/wuxler/ruacred/pkg/commands/internal/options"
	"github.com/wuxler/ruacred/pkg/prompt"
	"github.com/wuxler/ruacred/pkg/transport"
	"github.com/wuxler/ruacred/pkg/util/xhttp"
	"github.com/wuxler/ruacred/pkg/util/xio"
	"github.com/wuxler/ruacred/pkg/xlog"
)

// New returns a fetch command with default values.
func New(common *options.Common) *Command {
	return &Command{
		Common:   common,
		HTTP:     options.NewHTTPOptions(),
		Resolver: options.NewResolverOptions(),
		MaxSize:  64 * xio.MiB,
	}
}

// Command fetches a URL and writes the response body.
type Command struct {
	Common   *options.Common
	HTTP     *options.HTTPOptions
	Resolver *options.ResolverOptions

	Prompt  bool
	Include bool
	MaxSize int64

	// inputs overrides the terminal, for tests.
	inputs prompt.Inputs
}

// ToCLI transforms to a *cli.Command.
func (c *Command) ToCLI() *cli.Command {
	return &cli.Command{
		Name:  "fetch",
		Usage: "Fetch a URL, answering authentication challenges",
		UsageText: `ruacred fetch [OPTIONS] URL

# Fetch through an authenticating proxy, asking for its credential
$ ruacred fetch --proxy http://proxy.corp:3128 --prompt https://example.com/

# Dump the exchanges on stderr
$ ruacred --debug fetch --prompt https://intranet.corp/report
`,
		ArgsUsage: "URL",
		Flags:     c.Flags(),
		Before:    cmdhelper.ExactArgs(1),
		Action:    c.Run,
	}
}

// Flags defines the flags related to the current command.
func (c *Command) Flags() []cli.Flag {
	flags := []cli.Flag{
		&cli.BoolFlag{
			Name:        "prompt",
			Usage:       "ask for credentials even when the preferences disable prompting",
			Destination: &c.Prompt,
		},
		&cli.BoolFlag{
			Name:        "include",
			Aliases:     []string{"i"},
			Usage:       "print the status line before the body",
			Destination: &c.Include,
		},
		&cli.IntFlag{
			Name:        "max-size",
			Usage:       "maximum response body size in bytes",
			Value:       c.MaxSize,
			Destination: &c.MaxSize,
		},
	}
	flags = append(flags, c.HTTP.Flags()...)
	flags = append(flags, c.Resolver.Flags()...)
	return flags
}

// Run is the main function for the current command.
func (c *Command) Run(ctx context.Context, cmd *cli.Command) error {
	target, err := xhttp.ParseURL(cmd.Args().First(), "https")
	if err != nil {
		return err
	}
	client, err := c.newClient(cmd)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer xio.CloseAndLogError(resp.Body, "response body")

	xlog.C(ctx).DebugContext(ctx, "fetched", "url", target.Redacted(), "status", resp.StatusCode)
	if err := xhttp.Success(resp, http.StatusCreated, http.StatusAccepted, http.StatusNoContent, http.StatusPartialContent); err != nil {
		return err
	}
	if c.Include {
		cmdhelper.Fprintf(cmd.Writer, "%s %s", resp.Proto, resp.Status)
	}
	_, err = xio.LimitCopy(cmd.Writer, resp.Body, c.MaxSize)
	return err
}

func (c *Command) newClient(cmd *cli.Command) (*transport.Client, error) {
	tr, err := c.HTTP.NewTransport()
	if err != nil {
		return nil, err
	}

	var prefs resolver.Preferences = resolver.StaticPreferences(true)
	if !c.Prompt {
		if prefs, err = c.Resolver.LoadPreferences(); err != nil {
			return nil, err
		}
	}
	inputs := c.inputs
	if inputs == nil {
		inputs = prompt.NewPromptInputs(xio.NopReader(cmd.Root().Reader), xio.NopWriter(cmd.Root().ErrWriter))
	}
	store := credentials.NewStore()
	r, err := c.Resolver.NewResolver(store, prompt.NewTerminal(store, inputs))
	if err != nil {
		return nil, err
	}

	return &transport.Client{
		Client:        &http.Client{Transport: c.Common.WrapTransport(cmd, tr)},
		Header:        http.Header{"User-Agent": []string{appinfo.UserAgent()}},
		Authenticator: resolver.NewAuthenticator(r, prefs),
		ProxyHost:     c.HTTP.ProxyHostname(),
	}, nil
}
