package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"smallgit.dev/smallgit/internal/cli/common"
	"smallgit.dev/smallgit/internal/tui"
)

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "small-git",
		Short: "small-git keeps your branch, your-origin branch and master in line",
		Long: `small-git keeps your branch, your-origin branch and master in line.

Every command fetches, looks at how the three branches relate and takes the
one safe step that brings them back together. When there is no safe step it
asks, and answering no never changes anything.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			tui.ConfigureColor(tui.IsInteractive())
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolP(common.FlagYes, "y", false, "Answer yes to every confirmation")
	flags.Bool(common.FlagDebug, false, "Print every git command")
	flags.String(common.FlagConfig, "", "Config file (default .small-git.yaml at the repository root)")
	flags.StringP(common.FlagDir, "C", ".", "Run as if started in this directory")

	rootCmd.AddCommand(
		newCommitCmd(),
		newResetCmd(),
		newForcePushCmd(),
		newSquashCmd(),
		newAbortCmd(),
		newRebaseCmd(),
		newFetchCmd(),
		newSyncCmd(),
		newStashCmd(),
		newSubmodCmd(),
		newEnvCmd(),
		newDeleteCmd(),
		newCheckCmd(),
		newScoopCmd(),
		newShowCmd(),
		newZenCmd(),
	)

	return rootCmd
}
