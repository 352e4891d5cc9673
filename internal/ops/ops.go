// Package ops implements the action primitives: small steps that each wrap
// one repository mutation and announce start, end or failure.
package ops

import (
	"context"
	"errors"
	"fmt"

	"smallgit.dev/smallgit/internal/action"
	sgerrors "smallgit.dev/smallgit/internal/errors"
	"smallgit.dev/smallgit/internal/git"
	"smallgit.dev/smallgit/internal/history"
	"smallgit.dev/smallgit/internal/tui"
)

// Confirmer is the human confirmation channel. "No" must always be safe.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// Primitives runs the primitives for one branch of one remote.
type Primitives struct {
	gw      git.Gateway
	history *history.Query
	report  *tui.Reporter
	confirm Confirmer
	remote  string
	branch  string
}

// New creates the primitives for branch on remote.
func New(gw git.Gateway, report *tui.Reporter, confirm Confirmer, remote, branch string) *Primitives {
	return &Primitives{
		gw:      gw,
		history: history.New(gw),
		report:  report,
		confirm: confirm,
		remote:  remote,
		branch:  branch,
	}
}

// Ask styles question and asks the human.
func (p *Primitives) Ask(ctx context.Context, question string) (bool, error) {
	return p.confirm.Confirm(ctx, p.report.ConfirmPrompt(question))
}

// Commit records every change in the working tree. A clean tree is a no-op.
func (p *Primitives) Commit(ctx context.Context, message string) error {
	dirty, err := p.history.IsDirty(ctx)
	if err != nil {
		return err
	}
	if !dirty {
		return nil
	}

	a := action.Commit{}
	p.report.Start(a)
	p.report.Info(a, "Message: %s", message)

	staged, err := p.gw.HasStagedChanges(ctx)
	if err != nil {
		p.report.Fail(a, err)
		return err
	}
	if !staged {
		if err := p.gw.StageAll(ctx); err != nil {
			p.report.Fail(a, err)
			return err
		}
	}
	if err := p.gw.Commit(ctx, message); err != nil {
		p.report.Fail(a, err)
		return err
	}

	p.report.End(a)
	return nil
}

// Fetch updates remote refs, pruning deleted branches and tags.
func (p *Primitives) Fetch(ctx context.Context) error {
	a := action.Fetch{}
	p.report.Start(a)
	if err := p.gw.Fetch(ctx, git.FetchOptions{Remote: p.remote, Prune: true, Tags: true}); err != nil {
		p.report.Fail(a, err)
		return err
	}
	p.report.End(a)
	return nil
}

// Pull rebases the local branch onto its remote-tracking counterpart.
func (p *Primitives) Pull(ctx context.Context) error {
	a := action.Pull{}
	p.report.Start(a)
	err := p.gw.Pull(ctx, git.PullOptions{Remote: p.remote, Branch: p.branch, Rebase: true, Autostash: true})
	if err != nil {
		p.report.Fail(a, err)
		return err
	}
	p.report.End(a)
	return nil
}

// Push fast-forwards the remote-tracking branch to the local branch.
func (p *Primitives) Push(ctx context.Context) error {
	a := action.Push{}
	p.report.Start(a)
	if err := p.gw.Push(ctx, git.PushOptions{Remote: p.remote, Branch: p.branch}); err != nil {
		p.report.Fail(a, err)
		return err
	}
	p.report.End(a)
	return nil
}

// ForcePush overwrites the remote branch with force-with-lease. When the
// remote moved since the last fetch it asks three times before giving up;
// even then it only tells the operator how to overwrite by hand.
// It returns false when the push did not happen.
func (p *Primitives) ForcePush(ctx context.Context) (bool, error) {
	a := action.ForcePush{}
	p.report.Start(a)

	err := p.gw.Push(ctx, git.PushOptions{Remote: p.remote, Branch: p.branch, Mode: git.PushForceWithLease})
	if err == nil {
		p.report.End(a)
		return true, nil
	}

	p.report.Fail(a, err)
	if !errors.Is(err, git.ErrPushRejected) {
		return false, err
	}

	for _, question := range []string{
		"Someone committed to your-origin, OVERWRITE their code?",
		"Their code may be useful, continue?",
		"Are you sure?",
	} {
		yes, askErr := p.Ask(ctx, question)
		if askErr != nil {
			return false, askErr
		}
		if !yes {
			p.report.Cancel(a)
			return false, nil
		}
	}
	return false, p.report.Fatal("Input: git push --force", err)
}

// ResetTo moves the local branch to rev, keeping the working tree, and
// optionally commits what was left behind as a single commit.
// It does nothing when the branch already points at rev.
func (p *Primitives) ResetTo(ctx context.Context, rev string, commit bool) error {
	tip, err := p.gw.ResolveRef(ctx, git.LocalRef(p.branch))
	if err != nil {
		return err
	}
	target, err := p.gw.ResolveRef(ctx, rev)
	if err != nil {
		return err
	}
	if tip == target {
		return nil
	}

	a := action.Reset{}
	p.report.Start(a)
	if err := p.gw.Reset(ctx, target, git.ResetMixed); err != nil {
		p.report.Fail(a, err)
		return err
	}
	p.report.End(a)

	if commit {
		return p.Commit(ctx, "reset to "+git.ShortSHA(target))
	}
	return nil
}

// RebaseTo replays local commits onto rev with autostash. A conflict is
// reported as false, not as an error, and leaves the rebase in progress.
func (p *Primitives) RebaseTo(ctx context.Context, rev string) (bool, error) {
	a := action.Rebase{}
	p.report.Start(a)

	result, err := p.gw.Rebase(ctx, rev, true)
	if err != nil {
		p.report.Fail(a, err)
		return false, err
	}
	if result == git.RebaseConflict {
		p.report.Fail(a, fmt.Errorf("%w onto %s", sgerrors.ErrRebaseConflict, git.ShortSHA(rev)))
		return false, nil
	}

	p.report.End(a)
	return true, nil
}

// Abort aborts an interrupted rebase. Without one it does nothing.
// A failing abort is fatal.
func (p *Primitives) Abort(ctx context.Context) error {
	inProgress, err := p.gw.IsRebaseInProgress(ctx)
	if err != nil {
		return err
	}
	if !inProgress {
		return nil
	}

	a := action.Abort{}
	p.report.Start(a)
	if err := p.gw.RebaseAbort(ctx); err != nil {
		p.report.Fail(a, err)
		return p.report.Fatal("You need to find help", err)
	}
	p.report.End(a)
	return nil
}

// Stash pops the only stash entry or stashes the working tree when there
// is none, after asking. Anything else is cancelled.
func (p *Primitives) Stash(ctx context.Context) error {
	entries, err := p.gw.StashList(ctx)
	if err != nil {
		return err
	}

	a := action.Stash{}
	p.report.Start(a)

	switch len(entries) {
	case 1:
		yes, err := p.Ask(ctx, "Do you want to Pop?")
		if err != nil {
			p.report.Fail(a, err)
			return err
		}
		if yes {
			if err := p.gw.StashPop(ctx); err != nil {
				p.report.Fail(a, err)
				return err
			}
			p.report.End(a)
			return nil
		}
	case 0:
		yes, err := p.Ask(ctx, "Do you want to Stash?")
		if err != nil {
			p.report.Fail(a, err)
			return err
		}
		if yes {
			if err := p.gw.StashPush(ctx); err != nil {
				p.report.Fail(a, err)
				return err
			}
			p.report.End(a)
			return nil
		}
	}

	p.report.Cancel(a)
	return nil
}

// SubmoduleUpdate checks out all submodules. A failure is fatal.
func (p *Primitives) SubmoduleUpdate(ctx context.Context, remote bool) error {
	a := action.Submodule{}
	p.report.Start(a)
	if remote {
		p.report.Warn("Update all submodules to remote HEAD")
	}
	if err := p.gw.SubmoduleUpdate(ctx, remote); err != nil {
		p.report.Fail(a, err)
		return p.report.Fatal("You need to find help", err)
	}
	p.report.End(a)
	return nil
}
