package git

import (
	"context"
	"time"
)

// Gateway is the capability interface small-git needs from version control.
// Revisions are full ref names (refs/heads/x, refs/remotes/origin/x) or SHAs.
type Gateway interface {
	// Repository
	GitDir(ctx context.Context) (string, error)
	CurrentBranch(ctx context.Context) (string, error)
	Remotes(ctx context.Context) ([]string, error)

	// History reads
	ResolveRef(ctx context.Context, rev string) (string, error)
	RefExists(ctx context.Context, ref string) (bool, error)
	MergeBases(ctx context.Context, rev1, rev2 string) ([]string, error)
	CountCommits(ctx context.Context, from, to string) (int, error)
	CommitTime(ctx context.Context, rev string) (time.Time, error)

	// Working tree
	IsDirty(ctx context.Context, includeUntracked bool) (bool, error)
	HasStagedChanges(ctx context.Context) (bool, error)
	UnmergedFiles(ctx context.Context) ([]string, error)
	StageAll(ctx context.Context) error
	Commit(ctx context.Context, message string) error
	Reset(ctx context.Context, rev string, mode ResetMode) error

	// Remote
	Fetch(ctx context.Context, opts FetchOptions) error
	Pull(ctx context.Context, opts PullOptions) error
	Push(ctx context.Context, opts PushOptions) error

	// Rebase
	Rebase(ctx context.Context, onto string, autostash bool) (RebaseResult, error)
	RebaseAbort(ctx context.Context) error
	IsRebaseInProgress(ctx context.Context) (bool, error)

	// Stash and submodules
	StashList(ctx context.Context) ([]string, error)
	StashPush(ctx context.Context) error
	StashPop(ctx context.Context) error
	SubmoduleUpdate(ctx context.Context, remote bool) error
}

// CLIGateway implements Gateway. History reads go through go-git, every
// mutation goes through the git binary.
type CLIGateway struct {
	runner *CommandRunner
}

var _ Gateway = (*CLIGateway)(nil)

// NewGateway creates a gateway rooted at dir.
func NewGateway(dir string, logger Logger) *CLIGateway {
	return &CLIGateway{runner: NewCommandRunner(dir, logger)}
}

// LocalRef returns the full ref name of a local branch.
func LocalRef(branch string) string {
	return "refs/heads/" + branch
}

// RemoteRef returns the full ref name of a remote-tracking branch.
func RemoteRef(remote, branch string) string {
	return "refs/remotes/" + remote + "/" + branch
}

// ShortSHA abbreviates a commit hash for display.
func ShortSHA(sha string) string {
	if len(sha) > 8 {
		return sha[:8]
	}
	return sha
}
