package main

import (
	"context"
	stderrors "errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/codeshot/internal/cli"
	"github.com/matzehuels/codeshot/pkg/errors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}

// run executes the command line and returns the process exit code.
func run(ctx context.Context, args []string) int {
	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SilenceErrors = true

	var verbose bool
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentPreRun = func(*cobra.Command, []string) {
		if verbose {
			c.SetLogLevel(cli.LogDebug)
		}
	}

	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	if stderrors.Is(err, context.Canceled) {
		return 130
	}
	if code := errors.GetCode(err); code != "" {
		c.Logger.Error(errors.UserMessage(err), "code", code)
	} else {
		c.Logger.Error(err.Error())
	}
	return exitCode(err)
}

// exitCode is 2 for bad input or configuration and 1 otherwise.
func exitCode(err error) int {
	if errors.GetCode(err).Validation() {
		return 2
	}
	return 1
}
