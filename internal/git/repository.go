package git

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	sgerrors "smallgit.dev/smallgit/internal/errors"
)

// open opens the repository on every call. git itself mutates refs and packs
// between calls, so a long-lived go-git handle would serve stale pack indexes.
func (g *CLIGateway) open() (*gogit.Repository, error) {
	repo, err := gogit.PlainOpenWithOptions(g.runner.WorkingDir(), &gogit.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		return nil, fmt.Errorf("not a git repository: %w", err)
	}
	return repo, nil
}

// RepoRoot returns the root directory of the worktree containing dir.
func RepoRoot(dir string) (string, error) {
	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return "", fmt.Errorf("not a git repository: %w", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("failed to get worktree: %w", err)
	}

	return worktree.Filesystem.Root(), nil
}

// GitDir returns the absolute path of the git directory
func (g *CLIGateway) GitDir(ctx context.Context) (string, error) {
	return g.runner.Run(ctx, "rev-parse", "--absolute-git-dir")
}

// CurrentBranch returns the current branch name
func (g *CLIGateway) CurrentBranch(_ context.Context) (string, error) {
	repo, err := g.open()
	if err != nil {
		return "", err
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to get HEAD: %w", err)
	}

	if !head.Name().IsBranch() {
		return "", sgerrors.ErrNotOnBranch
	}

	return head.Name().Short(), nil
}

// Remotes returns the configured remote names, sorted
func (g *CLIGateway) Remotes(_ context.Context) ([]string, error) {
	repo, err := g.open()
	if err != nil {
		return nil, err
	}

	remotes, err := repo.Remotes()
	if err != nil {
		return nil, fmt.Errorf("failed to list remotes: %w", err)
	}

	names := make([]string, 0, len(remotes))
	for _, remote := range remotes {
		names = append(names, remote.Config().Name)
	}
	sort.Strings(names)
	return names, nil
}

// ResolveRef resolves a revision to a commit SHA
func (g *CLIGateway) ResolveRef(_ context.Context, rev string) (string, error) {
	repo, err := g.open()
	if err != nil {
		return "", err
	}
	hash, err := resolveHash(repo, rev)
	if err != nil {
		return "", err
	}
	return hash.String(), nil
}

// RefExists reports whether a full ref name exists
func (g *CLIGateway) RefExists(_ context.Context, ref string) (bool, error) {
	repo, err := g.open()
	if err != nil {
		return false, err
	}
	_, err = repo.Reference(plumbing.ReferenceName(ref), true)
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read ref %s: %w", ref, err)
	}
	return true, nil
}

// MergeBases returns every best common ancestor of two revisions.
// Callers decide what to do when there is not exactly one.
func (g *CLIGateway) MergeBases(_ context.Context, rev1, rev2 string) ([]string, error) {
	repo, err := g.open()
	if err != nil {
		return nil, err
	}

	commit1, err := commitObject(repo, rev1)
	if err != nil {
		return nil, err
	}
	commit2, err := commitObject(repo, rev2)
	if err != nil {
		return nil, err
	}

	bases, err := commit1.MergeBase(commit2)
	if err != nil {
		return nil, fmt.Errorf("failed to find merge base of %s and %s: %w", rev1, rev2, err)
	}

	shas := make([]string, 0, len(bases))
	for _, base := range bases {
		shas = append(shas, base.Hash.String())
	}
	return shas, nil
}

// CountCommits returns the number of commits reachable from to but not from from
func (g *CLIGateway) CountCommits(ctx context.Context, from, to string) (int, error) {
	output, err := g.runner.Run(ctx, "rev-list", "--count", from+".."+to)
	if err != nil {
		return 0, fmt.Errorf("failed to count commits %s..%s: %w", from, to, err)
	}
	count, err := strconv.Atoi(output)
	if err != nil {
		return 0, fmt.Errorf("failed to parse commit count %q: %w", output, err)
	}
	return count, nil
}

// CommitTime returns the committer timestamp of a revision
func (g *CLIGateway) CommitTime(_ context.Context, rev string) (time.Time, error) {
	repo, err := g.open()
	if err != nil {
		return time.Time{}, err
	}
	commit, err := commitObject(repo, rev)
	if err != nil {
		return time.Time{}, err
	}
	return commit.Committer.When, nil
}

func resolveHash(repo *gogit.Repository, rev string) (plumbing.Hash, error) {
	hash, err := repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to resolve %s: %w", rev, err)
	}
	return *hash, nil
}

func commitObject(repo *gogit.Repository, rev string) (*object.Commit, error) {
	hash, err := resolveHash(repo, rev)
	if err != nil {
		return nil, err
	}
	commit, err := repo.CommitObject(hash)
	if err != nil {
		return nil, fmt.Errorf("failed to read commit %s: %w", rev, err)
	}
	return commit, nil
}
