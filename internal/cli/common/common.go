// Package common provides shared helper functions for CLI commands.
package common

import (
	"context"

	"github.com/spf13/cobra"

	"smallgit.dev/smallgit/internal/engine"
	"smallgit.dev/smallgit/internal/runtime"
)

// Persistent flag names shared by every command.
const (
	FlagYes    = "yes"
	FlagDebug  = "debug"
	FlagConfig = "config"
	FlagDir    = "dir"
)

// NewSession builds a session from the persistent flags of cmd.
func NewSession(cmd *cobra.Command) (*runtime.Session, error) {
	flags := cmd.Flags()
	yes, _ := flags.GetBool(FlagYes)
	debug, _ := flags.GetBool(FlagDebug)
	configPath, _ := flags.GetString(FlagConfig)
	dir, _ := flags.GetString(FlagDir)

	return runtime.NewSession(runtime.Options{
		Dir:        dir,
		ConfigPath: configPath,
		Yes:        yes,
		Debug:      debug,
		In:         cmd.InOrStdin(),
		Out:        cmd.OutOrStdout(),
	})
}

// Run is a helper that provides a session to a command's execution function
func Run(cmd *cobra.Command, fn func(ctx context.Context, s *runtime.Session) error) error {
	s, err := NewSession(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return fn(ctx, s)
}

// RunEngine is like Run but also checks the repository and provides the
// engine for the current branch.
func RunEngine(cmd *cobra.Command, fn func(ctx context.Context, eng *engine.Engine) error) error {
	return Run(cmd, func(ctx context.Context, s *runtime.Session) error {
		eng, err := s.Engine(ctx)
		if err != nil {
			return err
		}
		return fn(ctx, eng)
	})
}
