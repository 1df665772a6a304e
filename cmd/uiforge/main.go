package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/uiforge/internal/cli"
	uferrors "github.com/matzehuels/uiforge/pkg/errors"
	"github.com/matzehuels/uiforge/pkg/observability"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130) // Standard shell convention for SIGINT
		}
		if code := uferrors.GetCode(err); code != "" {
			fmt.Fprintln(os.Stderr, "Error:", uferrors.UserMessage(err))
			os.Exit(code.ExitCode())
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(uferrors.ExitFailure)
	}
}

func run(ctx context.Context) error {
	var verbose bool
	var hooks *observability.LogHooks

	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	// Cobra runs PersistentPreRunE instead of PersistentPreRun when both are
	// set, so the level hook has to chain the root's own hook.
	originalPreRun := root.PersistentPreRun
	root.PersistentPreRun = nil
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if verbose {
			c.SetLogLevel(cli.LogDebug)
			hooks = observability.NewLogHooks(c.Logger)
			observability.SetCommandHooks(hooks)
			observability.SetLayoutHooks(hooks)
		}

		if originalPreRun != nil {
			originalPreRun(cmd, args)
		}
		return nil
	}

	err := root.ExecuteContext(ctx)
	if hooks != nil {
		hooks.Report()
	}
	return err
}
