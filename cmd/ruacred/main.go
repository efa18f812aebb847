// Package main is the entry of the application.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/wuxler/ruacred/pkg/cmdhelper"
	"github.com/wuxler/ruacred/pkg/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := commands.NewApp()
	app.ExitErrHandler = func(ctx context.Context, c *cli.Command, err error) {
		cli.HandleExitCoder(err)
		cmdhelper.Fprintf(c.ErrWriter, "Error: %+v\n", err)
		stop()
		os.Exit(1)
	}
	//nolint:errcheck // already checked in root command ExitErrHandler
	_ = app.Run(ctx, os.Args)
}
