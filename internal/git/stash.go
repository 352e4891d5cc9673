package git

import (
	"context"
	"fmt"
)

// StashList returns one line per stash entry
func (g *CLIGateway) StashList(ctx context.Context) ([]string, error) {
	entries, err := g.runner.RunLines(ctx, "stash", "list")
	if err != nil {
		return nil, fmt.Errorf("failed to list stashes: %w", err)
	}
	return entries, nil
}

// StashPush stashes the working tree
func (g *CLIGateway) StashPush(ctx context.Context) error {
	if _, err := g.runner.Run(ctx, "stash", "push"); err != nil {
		return fmt.Errorf("failed to stash changes: %w", err)
	}
	return nil
}

// StashPop applies and drops the latest stash entry
func (g *CLIGateway) StashPop(ctx context.Context) error {
	if _, err := g.runner.Run(ctx, "stash", "pop"); err != nil {
		return fmt.Errorf("failed to pop stash: %w", err)
	}
	return nil
}
