package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"smallgit.dev/smallgit/internal/cli"
	sgerrors "smallgit.dev/smallgit/internal/errors"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	rootCmd := cli.NewRootCmd(version, commit, date)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(int(sgerrors.ExitCodeFor(err)))
	}
}
