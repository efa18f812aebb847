package cmdhelper

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// ArgsValidator checks the positional arguments of a command before its
// action runs.
type ArgsValidator = cli.BeforeFunc

// ExactArgs returns an error if there are not exactly n args.
func ExactArgs(n int) ArgsValidator {
	return func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
		if got := cmd.Args().Len(); got != n {
			return ctx, fmt.Errorf("%q accepts %d arg(s), received %d", cmd.FullName(), n, got)
		}
		return ctx, nil
	}
}

// NoArgs returns an error if any args are included.
func NoArgs() ArgsValidator {
	return func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
		if cmd.Args().Len() > 0 {
			return ctx, fmt.Errorf("no args required for %q, received %q", cmd.FullName(), cmd.Args().First())
		}
		return ctx, nil
	}
}

// Chain runs the validators in order and stops at the first error.
func Chain(validators ...ArgsValidator) ArgsValidator {
	return func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
		var err error
		for _, v := range validators {
			if ctx, err = v(ctx, cmd); err != nil {
				return ctx, err
			}
		}
		return ctx, nil
	}
}
