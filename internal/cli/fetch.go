package cli

import (
	"context"

	"github.com/spf13/cobra"

	"smallgit.dev/smallgit/internal/action"
	"smallgit.dev/smallgit/internal/cli/common"
	"smallgit.dev/smallgit/internal/engine"
)

// newFetchCmd creates the fetch command. Every other command fetches first,
// so it is hidden.
func newFetchCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "fetch",
		Short:  action.Fetch{}.Label() + " origin, pruning deleted branches and tags",
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return common.RunEngine(cmd, func(ctx context.Context, eng *engine.Engine) error {
				return eng.Ops().Fetch(ctx)
			})
		},
	}
}
