package git

import (
	"context"
	"fmt"
)

// SubmoduleUpdate checks out every submodule recursively, optionally moving
// each one to its remote HEAD
func (g *CLIGateway) SubmoduleUpdate(ctx context.Context, remote bool) error {
	args := []string{"submodule", "update", "--init", "--recursive", "--force"}
	if remote {
		args = append(args, "--remote")
	}
	if _, err := g.runner.Run(ctx, args...); err != nil {
		return fmt.Errorf("failed to update submodules: %w", err)
	}
	return nil
}
