// Package commands assembles the ruacred command line.
package commands

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/wuxler/ruacred/pkg/appinfo"
	"github.com/wuxler/ruacred/pkg/commands/fetch"
	"github.com/wuxler/ruacred/pkg/commands/internal/options"
	"github.com/wuxler/ruacred/pkg/commands/resolve"
	"github.com/wuxler/ruacred/pkg/commands/serve"
)

// NewApp returns the root command.
func NewApp() *cli.Command {
	common := options.NewCommon()
	return &cli.Command{
		Name:                  appinfo.Name,
		Usage:                 "ruacred answers HTTP authentication challenges with stored or prompted credentials",
		Suggest:               true,
		EnableShellCompletion: true,
		HideVersion:           true,
		HideHelpCommand:       true,
		Flags:                 common.Flags(),
		Before:                common.Setup,
		Commands: []*cli.Command{
			NewVersionCommand().ToCLI(),
			serve.New().ToCLI(),
			resolve.New().ToCLI(),
			fetch.New(common).ToCLI(),
		},
	}
}

// Run runs the root command with args.
func Run(ctx context.Context, args []string) error {
	return NewApp().Run(ctx, args)
}
