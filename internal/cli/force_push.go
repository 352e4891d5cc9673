package cli

import (
	"context"

	"github.com/spf13/cobra"

	"smallgit.dev/smallgit/internal/action"
	"smallgit.dev/smallgit/internal/cli/common"
	"smallgit.dev/smallgit/internal/engine"
)

// newForcePushCmd creates the force-push command
func newForcePushCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "force-push",
		Short: action.ForcePush{}.Label() + " your branch with --force-with-lease",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return common.RunEngine(cmd, func(ctx context.Context, eng *engine.Engine) error {
				_, err := eng.Ops().ForcePush(ctx)
				return err
			})
		},
	}
}
