package cli

import (
	"context"

	"github.com/spf13/cobra"

	"smallgit.dev/smallgit/internal/action"
	"smallgit.dev/smallgit/internal/cli/common"
	"smallgit.dev/smallgit/internal/engine"
	"smallgit.dev/smallgit/internal/tui"
)

const defaultCommitMessage = "update"

// newCommitCmd creates the commit command
func newCommitCmd() *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "commit [message]",
		Short: action.Commit{}.Label() + " every change in the working tree",
		Long: `Commits every change in the working tree, including untracked files.

If something is already staged only the staged changes are committed.
A clean working tree is left alone.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			message := defaultCommitMessage
			if len(args) == 1 {
				message = args[0]
			}
			return common.RunEngine(cmd, func(ctx context.Context, eng *engine.Engine) error {
				if interactive {
					var err error
					message, err = tui.PromptText("Commit message", message)
					if err != nil {
						return err
					}
				}
				return eng.Ops().Commit(ctx, message)
			})
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Type the commit message at a prompt")

	return cmd
}
