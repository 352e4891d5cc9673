package git

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sgerrors "smallgit.dev/smallgit/internal/errors"
)

// ErrPushRejected indicates that the remote refused the push, usually because
// the remote branch moved since it was last fetched
var ErrPushRejected = errors.New("push rejected")

// PushMode selects how a push treats a diverged remote branch
type PushMode int

const (
	// PushFastForward only succeeds when the remote is an ancestor
	PushFastForward PushMode = iota
	// PushForceWithLease overwrites the remote only if it still matches the last fetch
	PushForceWithLease
)

// PushOptions controls a push of a local branch
type PushOptions struct {
	Remote string
	Branch string
	Mode   PushMode
}

// Push pushes a branch to the remote branch of the same name
func (g *CLIGateway) Push(ctx context.Context, opts PushOptions) error {
	args := []string{"push", "-u", opts.Remote}

	if opts.Mode == PushForceWithLease {
		args = append(args, "--force-with-lease")
	}

	args = append(args, opts.Branch)

	_, err := g.runner.Run(ctx, args...)
	if err == nil {
		return nil
	}

	var cmdErr *sgerrors.GitCommandError
	if errors.As(err, &cmdErr) && isRejection(cmdErr.Stderr) {
		return fmt.Errorf("push of %s to %s: %w: %w", opts.Branch, opts.Remote, ErrPushRejected, err)
	}
	return fmt.Errorf("failed to push branch %s: %w", opts.Branch, err)
}

func isRejection(stderr string) bool {
	for _, marker := range []string{"stale info", "[rejected]", "non-fast-forward", "fetch first"} {
		if strings.Contains(stderr, marker) {
			return true
		}
	}
	return false
}
