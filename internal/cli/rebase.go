package cli

import (
	"context"

	"github.com/spf13/cobra"

	"smallgit.dev/smallgit/internal/action"
	"smallgit.dev/smallgit/internal/cli/common"
	"smallgit.dev/smallgit/internal/engine"
)

// newRebaseCmd creates the rebase command
func newRebaseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rebase",
		Short: action.Rebase{}.Label() + " your branch onto the latest master",
		Long: `Syncs your branch, replays it onto the tip of master and force-pushes.

On a conflict the rebase is aborted and you are offered to squash your
commits and try once more.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return common.RunEngine(cmd, func(ctx context.Context, eng *engine.Engine) error {
				_, err := eng.Rebase(ctx)
				return err
			})
		},
	}
}
