package cli

import (
	"context"

	"github.com/spf13/cobra"

	"smallgit.dev/smallgit/internal/action"
	"smallgit.dev/smallgit/internal/cli/common"
	"smallgit.dev/smallgit/internal/engine"
)

// newResetCmd creates the reset command
func newResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: action.Reset{}.Label() + " your branch to where it left master",
		Long: `Moves your branch back to its merge base with master.

The working tree is kept, so all your changes show up as uncommitted.
Commit and force-push afterwards.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return common.RunEngine(cmd, func(ctx context.Context, eng *engine.Engine) error {
				return eng.Reset(ctx)
			})
		},
	}
}
