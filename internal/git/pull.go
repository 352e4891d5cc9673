package git

import (
	"context"
	"fmt"
)

// PullOptions controls a pull of the current branch
type PullOptions struct {
	Remote    string
	Branch    string
	Rebase    bool
	Autostash bool
}

// Pull integrates the remote branch into the current branch
func (g *CLIGateway) Pull(ctx context.Context, opts PullOptions) error {
	args := []string{"pull"}
	if opts.Rebase {
		args = append(args, "--rebase")
	} else {
		args = append(args, "--ff-only")
	}
	if opts.Autostash {
		args = append(args, "--autostash")
	}
	args = append(args, opts.Remote)
	if opts.Branch != "" {
		args = append(args, opts.Branch)
	}

	if _, err := g.runner.Run(ctx, args...); err != nil {
		return fmt.Errorf("failed to pull %s/%s: %w", opts.Remote, opts.Branch, err)
	}
	return nil
}
