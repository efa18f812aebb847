// Package resolve implements the one-shot challenge resolution command.
package resolve

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/wuxler/ruacred/pkg/authn"
	"github.com/wuxler/ruacred/pkg/authn/credentials"
	"github.com/wuxler/ruacred/pkg/authn/resolver"
	"github.com/wuxler/ruacred/pkg/cmdhelper"
	"github.com/wuxler/ruacred/pkg/commands/internal/options"
	"github.com/wuxler/ruacred/pkg/prompt"
	"github.com/wuxler/ruacred/pkg/util/xio"
)

// ErrNoCredentials is returned when no credential answers the challenges.
var ErrNoCredentials = errors.New("no credentials answer the challenges")

// New returns a resolve command with default values.
func New() *Command {
	return &Command{
		Resolver: options.NewResolverOptions(),
		Format:   "text",
	}
}

// Command resolves the header answering challenges for a host, asking on the
// terminal when prompting is enabled.
type Command struct {
	Resolver *options.ResolverOptions

	Host       string
	Challenges []string
	Proxy      bool
	Prompt     bool
	Format     string

	// inputs overrides the terminal, for tests.
	inputs prompt.Inputs
}

// ToCLI transforms to a *cli.Command.
func (c *Command) ToCLI() *cli.Command {
	return &cli.Command{
		Name:  "resolve",
		Usage: "Resolve the authorization header answering challenges",
		UsageText: `ruacred resolve [OPTIONS]

# Ask for the credential of a proxy realm and print the header value
$ ruacred resolve --host proxy.example.com --proxy --prompt --challenge 'Basic realm="corp"'

# Print the header line as JSON
$ ruacred resolve --host intranet --prompt --challenge NTLM --challenge Negotiate --format json
`,
		Flags:  c.Flags(),
		Before: cmdhelper.NoArgs(),
		Action: c.Run,
	}
}

// Flags defines the flags related to the current command.
func (c *Command) Flags() []cli.Flag {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "host",
			Usage:       "host that sent the challenges",
			Required:    true,
			Destination: &c.Host,
		},
		&cli.StringSliceFlag{
			Name:        "challenge",
			Aliases:     []string{"c"},
			Usage:       "challenge header value, repeat in the order received",
			Required:    true,
			Destination: &c.Challenges,
		},
		&cli.BoolFlag{
			Name:        "proxy",
			Usage:       "the challenges come from a proxy",
			Destination: &c.Proxy,
		},
		&cli.BoolFlag{
			Name:        "prompt",
			Usage:       "ask for credentials even when the preferences disable prompting",
			Destination: &c.Prompt,
		},
		&cli.StringFlag{
			Name:        "format",
			Aliases:     []string{"f"},
			Usage:       `output format, oneof ["text", "header", "json"]`,
			Value:       c.Format,
			Destination: &c.Format,
		},
	}
	flags = append(flags, c.Resolver.Flags()...)
	return flags
}

// Run is the main function for the current command.
func (c *Command) Run(ctx context.Context, cmd *cli.Command) error {
	prefs, err := c.preferences()
	if err != nil {
		return err
	}
	inputs := c.inputs
	if inputs == nil {
		inputs = prompt.NewPromptInputs(xio.NopReader(cmd.Root().Reader), xio.NopWriter(cmd.Root().ErrWriter))
	}
	store := credentials.NewStore()
	r, err := c.Resolver.NewResolver(store, prompt.NewTerminal(store, inputs))
	if err != nil {
		return err
	}
	auth := resolver.NewAuthenticator(r, prefs)

	var (
		value string
		found bool
	)
	if c.Proxy {
		value, found = auth.ProxyCredentials(ctx, c.Host, c.Challenges)
	} else {
		value, found = auth.Credentials(ctx, c.Host, c.Challenges)
	}
	if !found {
		return fmt.Errorf("%w of %s", ErrNoCredentials, c.Host)
	}
	return c.print(cmd, value)
}

func (c *Command) preferences() (resolver.Preferences, error) {
	if c.Prompt {
		return resolver.StaticPreferences(true), nil
	}
	return c.Resolver.LoadPreferences()
}

func (c *Command) print(cmd *cli.Command, value string) error {
	name := authn.HeaderAuthorization
	if c.Proxy {
		name = authn.HeaderProxyAuthorization
	}
	switch strings.ToLower(c.Format) {
	case "", "text":
		cmdhelper.Fprintf(cmd.Writer, "%s", value)
	case "header":
		cmdhelper.Fprintf(cmd.Writer, "%s: %s", name, value)
	case "json":
		b, err := cmdhelper.PrettifyJSON(map[string]string{"header": name, "value": value})
		if err != nil {
			return err
		}
		cmdhelper.Fprintf(cmd.Writer, "%s", b)
	default:
		return fmt.Errorf("unsupported format %q", c.Format)
	}
	return nil
}
