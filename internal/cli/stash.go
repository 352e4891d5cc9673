package cli

import (
	"context"

	"github.com/spf13/cobra"

	"smallgit.dev/smallgit/internal/action"
	"smallgit.dev/smallgit/internal/cli/common"
	"smallgit.dev/smallgit/internal/engine"
)

// newStashCmd creates the stash command
func newStashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stash",
		Short: action.Stash{}.Label() + " your changes, or pop them back",
		Long: `Keeps at most one stash entry: with none it offers to stash the working
tree, with one it offers to pop it. More than one entry is left alone.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return common.RunEngine(cmd, func(ctx context.Context, eng *engine.Engine) error {
				return eng.Ops().Stash(ctx)
			})
		},
	}
}
