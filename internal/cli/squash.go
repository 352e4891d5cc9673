package cli

import (
	"context"

	"github.com/spf13/cobra"

	"smallgit.dev/smallgit/internal/action"
	"smallgit.dev/smallgit/internal/cli/common"
	"smallgit.dev/smallgit/internal/engine"
)

// newSquashCmd creates the squash command
func newSquashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "squash",
		Short: action.Squash{}.Label() + " your branch into a single commit",
		Long: `Squashes every commit since your branch left master into a single commit
and force-pushes the result.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return common.RunEngine(cmd, func(ctx context.Context, eng *engine.Engine) error {
				return eng.Squash(ctx)
			})
		},
	}
}
