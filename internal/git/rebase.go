package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// RebaseResult represents the result of a rebase operation
type RebaseResult int

const (
	// RebaseDone indicates the rebase was successful
	RebaseDone RebaseResult = iota
	// RebaseConflict indicates a conflict occurred during rebase
	RebaseConflict
)

func (r RebaseResult) String() string {
	if r == RebaseDone {
		return "done"
	}
	return "conflict"
}

// Rebase replays the current branch onto the given revision.
// A conflict is reported through the result, not the error.
func (g *CLIGateway) Rebase(ctx context.Context, onto string, autostash bool) (RebaseResult, error) {
	args := []string{"rebase"}
	if autostash {
		args = append(args, "--autostash")
	}
	args = append(args, onto)

	_, err := g.runner.Run(ctx, args...)
	if err == nil {
		return RebaseDone, nil
	}

	inProgress, checkErr := g.IsRebaseInProgress(ctx)
	if checkErr != nil {
		return RebaseConflict, fmt.Errorf("rebase onto %s failed: %w", onto, checkErr)
	}
	if inProgress {
		return RebaseConflict, nil
	}
	return RebaseConflict, fmt.Errorf("rebase onto %s failed: %w", onto, err)
}

// RebaseAbort aborts an in-progress rebase
func (g *CLIGateway) RebaseAbort(ctx context.Context) error {
	if _, err := g.runner.Run(ctx, "rebase", "--abort"); err != nil {
		return fmt.Errorf("rebase abort failed: %w", err)
	}
	return nil
}

// IsRebaseInProgress checks for .git/rebase-merge or .git/rebase-apply.
// This is more reliable than checking REBASE_HEAD which can persist after rebase
func (g *CLIGateway) IsRebaseInProgress(ctx context.Context) (bool, error) {
	gitDir, err := g.GitDir(ctx)
	if err != nil {
		return false, err
	}
	for _, marker := range []string{"rebase-merge", "rebase-apply"} {
		if _, err := os.Stat(filepath.Join(gitDir, marker)); err == nil {
			return true, nil
		}
	}
	return false, nil
}
