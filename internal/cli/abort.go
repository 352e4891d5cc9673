package cli

import (
	"context"

	"github.com/spf13/cobra"

	"smallgit.dev/smallgit/internal/action"
	"smallgit.dev/smallgit/internal/cli/common"
	"smallgit.dev/smallgit/internal/engine"
)

// newAbortCmd creates the abort command
func newAbortCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "abort",
		Short: action.Abort{}.Label() + " a rebase left in progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return common.RunEngine(cmd, func(ctx context.Context, eng *engine.Engine) error {
				return eng.Ops().Abort(ctx)
			})
		},
	}
}
