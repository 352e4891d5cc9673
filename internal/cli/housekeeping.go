package cli

import (
	"context"

	"github.com/spf13/cobra"

	"smallgit.dev/smallgit/internal/action"
	"smallgit.dev/smallgit/internal/cli/common"
	"smallgit.dev/smallgit/internal/housekeeping"
	"smallgit.dev/smallgit/internal/runtime"
)

func runTasks(cmd *cobra.Command, fn func(ctx context.Context, tasks *housekeeping.Tasks) error) error {
	return common.Run(cmd, func(ctx context.Context, s *runtime.Session) error {
		return fn(ctx, housekeeping.New(s.RepoRoot, s.Config, s.Reporter))
	})
}

// newEnvCmd creates the env command
func newEnvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: action.Env{}.Label() + " setup (uv sync by default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTasks(cmd, func(ctx context.Context, tasks *housekeeping.Tasks) error {
				return tasks.Env(ctx)
			})
		},
	}
}

// newScoopCmd creates the scoop command
func newScoopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scoop",
		Short: action.Scoop{}.Label() + " install of the project tooling",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTasks(cmd, func(ctx context.Context, tasks *housekeeping.Tasks) error {
				return tasks.Scoop(ctx)
			})
		},
	}
}

// newCheckCmd creates the check command
func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [dirs]",
		Short: action.Check{}.Label() + " the code with the configured linters",
		Long: `Runs the configured linters (ruff and pyright by default) over dirs.
dirs is a single space-separated argument and defaults to "src tests".`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dirs := ""
			if len(args) == 1 {
				dirs = args[0]
			}
			return runTasks(cmd, func(ctx context.Context, tasks *housekeeping.Tasks) error {
				return tasks.Check(ctx, dirs)
			})
		},
	}
}

// newDeleteCmd creates the delete command
func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete",
		Short: action.Delete{}.Label() + " scratch directories",
		Long: `Empties the scratch directories (logs and output by default), leaving a
.gitkeep in each, and removes the force directories entirely.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTasks(cmd, func(_ context.Context, tasks *housekeeping.Tasks) error {
				return tasks.Delete()
			})
		},
	}
}

// newShowCmd creates the show command
func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show every action label",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return common.Run(cmd, func(_ context.Context, s *runtime.Session) error {
				housekeeping.Show(s.Reporter)
				return nil
			})
		},
	}
}

// newZenCmd creates the zen command
func newZenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "zen",
		Short: "Print the small-git workflow",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return common.Run(cmd, func(_ context.Context, s *runtime.Session) error {
				housekeeping.Zen(s.Splog)
				return nil
			})
		},
	}
}
