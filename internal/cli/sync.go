package cli

import (
	"context"

	"github.com/spf13/cobra"

	"smallgit.dev/smallgit/internal/action"
	"smallgit.dev/smallgit/internal/cli/common"
	"smallgit.dev/smallgit/internal/engine"
)

// newSyncCmd creates the sync command
func newSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: action.Sync{}.Label() + " your branch with your-origin branch",
		Long: `Brings your branch and your-origin branch back to the same commit.

Publishes a branch that was never pushed, pushes when you are ahead, pulls
when you are behind and asks what to do when both sides have new commits.
A branch whose base is newer than your-origin's base is force-pushed
without asking.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return common.RunEngine(cmd, func(ctx context.Context, eng *engine.Engine) error {
				_, err := eng.Sync(ctx)
				return err
			})
		},
	}
}
