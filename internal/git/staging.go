package git

import (
	"context"
	"fmt"
	"strings"
)

// IsDirty reports whether the working tree differs from HEAD
func (g *CLIGateway) IsDirty(ctx context.Context, includeUntracked bool) (bool, error) {
	untracked := "--untracked-files=no"
	if includeUntracked {
		untracked = "--untracked-files=normal"
	}
	output, err := g.runner.Run(ctx, "status", "--porcelain", untracked)
	if err != nil {
		return false, fmt.Errorf("failed to read status: %w", err)
	}
	return output != "", nil
}

// HasStagedChanges checks if there are staged changes
func (g *CLIGateway) HasStagedChanges(ctx context.Context) (bool, error) {
	output, err := g.runner.Run(ctx, "diff", "--cached", "--shortstat")
	if err != nil {
		return false, fmt.Errorf("failed to check staged changes: %w", err)
	}
	return strings.TrimSpace(output) != "", nil
}

// UnmergedFiles returns the paths that still carry merge conflicts
func (g *CLIGateway) UnmergedFiles(ctx context.Context) ([]string, error) {
	files, err := g.runner.RunLines(ctx, "diff", "--name-only", "--diff-filter=U")
	if err != nil {
		return nil, fmt.Errorf("failed to list unmerged files: %w", err)
	}
	return files, nil
}

// StageAll stages all changes including untracked files
func (g *CLIGateway) StageAll(ctx context.Context) error {
	if _, err := g.runner.Run(ctx, "add", "-A"); err != nil {
		return fmt.Errorf("failed to stage all changes: %w", err)
	}
	return nil
}
