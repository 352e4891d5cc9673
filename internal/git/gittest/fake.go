// Package gittest provides an in-memory git.Gateway for tests. Histories are
// described up front (refs, merge bases, counts, commit times) and every
// mutation is recorded in call order.
package gittest

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"smallgit.dev/smallgit/internal/git"
)

// Gateway is a scripted git.Gateway.
type Gateway struct {
	mu sync.Mutex

	Branch      string
	RemoteNames []string
	Unmerged    []string

	// Refs maps ref names to SHAs. A SHA that appears as a value resolves to itself.
	Refs map[string]string
	// Bases maps "rev1 rev2" (as passed) to merge bases; either order matches.
	Bases map[string][]string
	// Counts maps "from..to" (SHAs) to commit counts.
	Counts map[string]int
	Times  map[string]time.Time

	Dirty  bool
	Staged bool
	Stash  []string

	// RebaseResults are consumed one per rebase; when empty rebases succeed.
	RebaseResults []git.RebaseResult
	// RebasedTip is where the local branch points after a successful
	// rebase. Empty means "rebased-<onto>".
	RebasedTip string
	// PushErrors are consumed one per push; nil entries succeed.
	PushErrors []error
	// PullConflict makes pulls fail and leave their rebase in progress.
	PullConflict bool

	// Errors fails the named method, e.g. "Pull" or "RebaseAbort".
	Errors map[string]error

	rebasing bool
	commits  int
	calls    []string
}

var _ git.Gateway = (*Gateway)(nil)

// New creates a fake on branch with an origin remote.
func New(branch string) *Gateway {
	return &Gateway{
		Branch:      branch,
		RemoteNames: []string{"origin"},
		Refs:        map[string]string{},
		Bases:       map[string][]string{},
		Counts:      map[string]int{},
		Times:       map[string]time.Time{},
		Errors:      map[string]error{},
	}
}

// Calls returns the recorded mutations.
func (g *Gateway) Calls() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.calls...)
}

// Trace returns the recorded mutations, one per line.
func (g *Gateway) Trace() string {
	var b strings.Builder
	for _, call := range g.Calls() {
		b.WriteString(call)
		b.WriteByte('\n')
	}
	return b.String()
}

// SetRebasing marks a rebase as in progress.
func (g *Gateway) SetRebasing(rebasing bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rebasing = rebasing
}

func (g *Gateway) record(format string, args ...interface{}) {
	g.calls = append(g.calls, fmt.Sprintf(format, args...))
}

func (g *Gateway) localRef() string {
	return git.LocalRef(g.Branch)
}

func (g *Gateway) resolve(rev string) (string, error) {
	if sha, ok := g.Refs[rev]; ok {
		return sha, nil
	}
	for _, sha := range g.Refs {
		if sha == rev {
			return sha, nil
		}
	}
	for _, bases := range g.Bases {
		if slices.Contains(bases, rev) {
			return rev, nil
		}
	}
	return "", fmt.Errorf("unknown revision %s", rev)
}

// GitDir returns a fixed path.
func (g *Gateway) GitDir(context.Context) (string, error) {
	return "/fake/.git", nil
}

// CurrentBranch returns Branch.
func (g *Gateway) CurrentBranch(context.Context) (string, error) {
	return g.Branch, g.Errors["CurrentBranch"]
}

// Remotes returns RemoteNames.
func (g *Gateway) Remotes(context.Context) ([]string, error) {
	return g.RemoteNames, nil
}

// ResolveRef resolves through Refs.
func (g *Gateway) ResolveRef(_ context.Context, rev string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.resolve(rev)
}

// RefExists reports whether ref is in Refs.
func (g *Gateway) RefExists(_ context.Context, ref string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.Refs[ref]
	return ok, nil
}

// MergeBases looks up Bases in either order.
func (g *Gateway) MergeBases(_ context.Context, rev1, rev2 string) ([]string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if bases, ok := g.Bases[rev1+" "+rev2]; ok {
		return bases, nil
	}
	if bases, ok := g.Bases[rev2+" "+rev1]; ok {
		return bases, nil
	}
	return nil, nil
}

// CountCommits looks up Counts.
func (g *Gateway) CountCommits(_ context.Context, from, to string) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	count, ok := g.Counts[from+".."+to]
	if !ok {
		return 0, fmt.Errorf("no count for %s..%s", from, to)
	}
	return count, nil
}

// CommitTime looks up Times.
func (g *Gateway) CommitTime(_ context.Context, rev string) (time.Time, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	when, ok := g.Times[rev]
	if !ok {
		return time.Time{}, fmt.Errorf("no time for %s", rev)
	}
	return when, nil
}

// IsDirty returns Dirty.
func (g *Gateway) IsDirty(context.Context, bool) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.Dirty, nil
}

// HasStagedChanges returns Staged.
func (g *Gateway) HasStagedChanges(context.Context) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.Staged, nil
}

// UnmergedFiles returns Unmerged.
func (g *Gateway) UnmergedFiles(context.Context) ([]string, error) {
	return g.Unmerged, nil
}

// StageAll stages everything.
func (g *Gateway) StageAll(context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.record("add -A")
	g.Staged = true
	return nil
}

// Commit moves the local branch to a new commit and cleans the tree.
func (g *Gateway) Commit(_ context.Context, message string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.record("commit %q", message)
	if err := g.Errors["Commit"]; err != nil {
		return err
	}
	g.commits++
	g.Refs[g.localRef()] = fmt.Sprintf("commit%d", g.commits)
	g.Dirty = false
	g.Staged = false
	return nil
}

// Reset moves the local branch to rev; anything but a hard reset leaves
// the difference in the working tree.
func (g *Gateway) Reset(_ context.Context, rev string, mode git.ResetMode) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.record("reset --%s %s", mode, rev)
	if err := g.Errors["Reset"]; err != nil {
		return err
	}
	if g.Refs[g.localRef()] != rev {
		g.Dirty = mode != git.ResetHard
	}
	g.Refs[g.localRef()] = rev
	g.Staged = mode == git.ResetSoft && g.Dirty
	return nil
}

// Fetch records the fetch.
func (g *Gateway) Fetch(_ context.Context, opts git.FetchOptions) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.record("fetch %s", opts.Remote)
	return g.Errors["Fetch"]
}

// Pull moves the local branch to its remote-tracking branch.
func (g *Gateway) Pull(_ context.Context, opts git.PullOptions) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.record("pull %s %s", opts.Remote, opts.Branch)
	if g.PullConflict {
		g.rebasing = true
		return fmt.Errorf("could not apply local commit onto %s/%s", opts.Remote, opts.Branch)
	}
	if err := g.Errors["Pull"]; err != nil {
		return err
	}
	g.Refs[g.localRef()] = g.Refs[git.RemoteRef(opts.Remote, opts.Branch)]
	return nil
}

// Push moves the remote-tracking branch to the local branch unless a
// queued error says otherwise.
func (g *Gateway) Push(_ context.Context, opts git.PushOptions) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	switch opts.Mode {
	case git.PushForceWithLease:
		g.record("push %s %s --force-with-lease", opts.Remote, opts.Branch)
	default:
		g.record("push %s %s", opts.Remote, opts.Branch)
	}

	if len(g.PushErrors) > 0 {
		err := g.PushErrors[0]
		g.PushErrors = g.PushErrors[1:]
		if err != nil {
			return err
		}
	}
	g.Refs[git.RemoteRef(opts.Remote, opts.Branch)] = g.Refs[g.localRef()]
	return nil
}

// Rebase consumes RebaseResults. A conflict leaves a rebase in progress.
func (g *Gateway) Rebase(_ context.Context, onto string, _ bool) (git.RebaseResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.record("rebase %s", onto)
	if err := g.Errors["Rebase"]; err != nil {
		return git.RebaseConflict, err
	}

	result := git.RebaseDone
	if len(g.RebaseResults) > 0 {
		result = g.RebaseResults[0]
		g.RebaseResults = g.RebaseResults[1:]
	}
	if result == git.RebaseConflict {
		g.rebasing = true
		return result, nil
	}

	tip := g.RebasedTip
	if tip == "" {
		tip = "rebased-" + onto
	}
	g.Refs[g.localRef()] = tip
	return result, nil
}

// RebaseAbort clears the rebase in progress.
func (g *Gateway) RebaseAbort(context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.record("rebase --abort")
	if err := g.Errors["RebaseAbort"]; err != nil {
		return err
	}
	g.rebasing = false
	return nil
}

// IsRebaseInProgress reports whether a conflict is pending.
func (g *Gateway) IsRebaseInProgress(context.Context) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rebasing, nil
}

// StashList returns Stash.
func (g *Gateway) StashList(context.Context) ([]string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.Stash...), nil
}

// StashPush stashes the working tree.
func (g *Gateway) StashPush(context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.record("stash push")
	g.Stash = append([]string{"stash@{0}: WIP"}, g.Stash...)
	g.Dirty = false
	return nil
}

// StashPop restores the latest stash entry.
func (g *Gateway) StashPop(context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.record("stash pop")
	if len(g.Stash) == 0 {
		return fmt.Errorf("no stash entries found")
	}
	g.Stash = g.Stash[1:]
	g.Dirty = true
	return nil
}

// SubmoduleUpdate records the update.
func (g *Gateway) SubmoduleUpdate(_ context.Context, remote bool) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if remote {
		g.record("submodule update --remote")
	} else {
		g.record("submodule update")
	}
	return g.Errors["SubmoduleUpdate"]
}
