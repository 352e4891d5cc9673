package cli

import (
	"context"

	"github.com/spf13/cobra"

	"smallgit.dev/smallgit/internal/action"
	"smallgit.dev/smallgit/internal/cli/common"
	"smallgit.dev/smallgit/internal/engine"
)

// newSubmodCmd creates the submod command
func newSubmodCmd() *cobra.Command {
	var remote bool

	cmd := &cobra.Command{
		Use:   "submod",
		Short: action.Submodule{}.Label() + " update after syncing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return common.RunEngine(cmd, func(ctx context.Context, eng *engine.Engine) error {
				return eng.Submodule(ctx, remote)
			})
		},
	}

	cmd.Flags().BoolVar(&remote, "remote", false, "Move every submodule to its remote HEAD instead of the recorded commit")

	return cmd
}
