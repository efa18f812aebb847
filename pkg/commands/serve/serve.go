// Package serve implements the command running the management server.
package serve

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/wuxler/ruacred/pkg/authn/credentials"
	"github.com/wuxler/ruacred/pkg/cmdhelper"
	"github.com/wuxler/ruacred/pkg/commands/internal/options"
	"github.com/wuxler/ruacred/pkg/prompt"
	"github.com/wuxler/ruacred/pkg/server"
	"github.com/wuxler/ruacred/pkg/xlog"
)

const shutdownTimeout = 5 * time.Second

// New creates a new serve command with default values.
func New() *Command {
	return &Command{
		Server:   options.NewServerOptions(),
		Resolver: options.NewResolverOptions(),
	}
}

// Command starts the management server backed by an in-memory store. Prompts
// are queued and answered through the API.
type Command struct {
	Server   *options.ServerOptions
	Resolver *options.ResolverOptions

	// listener overrides Server.Address, for tests.
	listener net.Listener
}

// ToCLI transforms to a *cli.Command.
func (c *Command) ToCLI() *cli.Command {
	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"server"},
		Usage:   "Start the credential management server",
		UsageText: `ruacred serve [OPTIONS]

# Start the server with default address 127.0.0.1:8080
$ ruacred serve

# Let resolutions of different hosts prompt concurrently
$ ruacred serve --lock-scope host --prompt-timeout 2m
`,
		Flags:  c.Flags(),
		Before: cmdhelper.NoArgs(),
		Action: c.Run,
	}
}

// Flags defines the flags related to the current command.
func (c *Command) Flags() []cli.Flag {
	flags := []cli.Flag{}
	flags = append(flags, c.Server.Flags()...)
	flags = append(flags, c.Resolver.Flags()...)
	return flags
}

// Run is the main function for the current command. It blocks until ctx is
// done.
func (c *Command) Run(ctx context.Context, cmd *cli.Command) error {
	prefs, err := c.Resolver.LoadPreferences()
	if err != nil {
		return err
	}
	store := credentials.NewStore()
	queue := prompt.NewQueue(store)
	r, err := c.Resolver.NewResolver(store, queue)
	if err != nil {
		return err
	}

	gin.SetMode(gin.ReleaseMode)
	handler := server.New(server.Options{
		Store:       store,
		Resolver:    r,
		Queue:       queue,
		Preferences: prefs,
	}).Handler()

	ln := c.listener
	if ln == nil {
		if ln, err = net.Listen("tcp", c.Server.Address()); err != nil {
			return err
		}
	}
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	xlog.C(ctx).InfoContext(ctx, "starting server", "address", ln.Addr().String(), "lock_scope", c.Resolver.LockScope)
	cmdhelper.Fprintf(cmd.Writer, "Server started at http://%s", ln.Addr())
	cmdhelper.Fprintf(cmd.Writer, "Press Ctrl+C to stop the server")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			xlog.C(ctx).ErrorContext(ctx, "server shutdown failed", "error", err)
			return err
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}
	xlog.C(ctx).InfoContext(ctx, "server stopped")
	return nil
}
