package git

import (
	"context"
	"fmt"
)

// FetchOptions controls a fetch from the remote
type FetchOptions struct {
	Remote string
	Prune  bool
	Tags   bool
}

// Fetch updates remote-tracking refs
func (g *CLIGateway) Fetch(ctx context.Context, opts FetchOptions) error {
	args := []string{"fetch"}
	if opts.Prune {
		args = append(args, "--prune")
	}
	if opts.Tags {
		args = append(args, "--tags")
		if opts.Prune {
			args = append(args, "--prune-tags")
		}
	}
	args = append(args, opts.Remote)

	if _, err := g.runner.Run(ctx, args...); err != nil {
		return fmt.Errorf("failed to fetch %s: %w", opts.Remote, err)
	}
	return nil
}
