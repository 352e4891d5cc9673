package engine

import (
	"context"
	"fmt"

	"smallgit.dev/smallgit/internal/action"
	sgerrors "smallgit.dev/smallgit/internal/errors"
	"smallgit.dev/smallgit/internal/git"
	"smallgit.dev/smallgit/internal/history"
	"smallgit.dev/smallgit/internal/ops"
	"smallgit.dev/smallgit/internal/tui"
)

// maxRebaseAttempts bounds the conflict-retry protocol: the first attempt
// plus one retry after a reset.
const maxRebaseAttempts = 2

// Options names the three branches the engine works on.
type Options struct {
	Remote string
	Branch string
	Trunk  string
}

// Engine synchronizes one local branch with its remote counterpart and trunk.
type Engine struct {
	gw      git.Gateway
	history *history.Query
	ops     *ops.Primitives
	report  *tui.Reporter
	opts    Options
}

// New creates an engine.
func New(gw git.Gateway, report *tui.Reporter, confirm ops.Confirmer, opts Options) *Engine {
	return &Engine{
		gw:      gw,
		history: history.New(gw),
		ops:     ops.New(gw, report, confirm, opts.Remote, opts.Branch),
		report:  report,
		opts:    opts,
	}
}

// Ops returns the primitives the engine drives.
func (e *Engine) Ops() *ops.Primitives {
	return e.ops
}

func (e *Engine) localRef() string {
	return git.LocalRef(e.opts.Branch)
}

func (e *Engine) remoteRef() string {
	return git.RemoteRef(e.opts.Remote, e.opts.Branch)
}

func (e *Engine) trunkRef() string {
	return git.RemoteRef(e.opts.Remote, e.opts.Trunk)
}

// TryRebase rebases the local branch onto target. On conflict the rebase is
// aborted and the human may choose to collapse local commits onto base and
// try once more. A second conflict is fatal. Declining returns false.
// The repository is never left with a rebase in progress.
func (e *Engine) TryRebase(ctx context.Context, target, base string) (bool, error) {
	for attempt := 1; attempt <= maxRebaseAttempts; attempt++ {
		ok, err := e.ops.RebaseTo(ctx, target)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
		if err := e.ops.Abort(ctx); err != nil {
			return false, err
		}

		if attempt == maxRebaseAttempts {
			return false, e.report.Fatal(
				fmt.Sprintf("You need to resolve conflict manually, then %s", action.Sync{}.Label()),
				sgerrors.ErrRebaseConflict,
			)
		}

		e.report.Warn("Found 💣 Conflict")
		retry, err := e.ops.Ask(ctx, fmt.Sprintf("%s and %s again?", action.Reset{}.Label(), action.Rebase{}.Label()))
		if err != nil {
			return false, err
		}
		if !retry {
			e.report.Cancel(action.Rebase{})
			return false, nil
		}
		if err := e.ops.ResetTo(ctx, base, true); err != nil {
			return false, err
		}
	}
	return false, nil
}

// Rebase synchronizes, then replays the local branch onto the trunk tip and
// force-pushes the result.
func (e *Engine) Rebase(ctx context.Context) (bool, error) {
	synced, err := e.Sync(ctx)
	if err != nil || !synced {
		return false, err
	}

	base, err := e.history.FindBase(ctx, e.localRef(), e.trunkRef())
	if err != nil {
		return false, err
	}
	trunkTip, err := e.gw.ResolveRef(ctx, e.trunkRef())
	if err != nil {
		return false, err
	}
	if base == trunkTip {
		return true, nil
	}

	rebased, err := e.TryRebase(ctx, trunkTip, base)
	if err != nil || !rebased {
		return false, err
	}
	return e.ops.ForcePush(ctx)
}

// Squash collapses all local commits since the trunk merge base into one
// commit and force-pushes it.
func (e *Engine) Squash(ctx context.Context) error {
	a := action.Squash{}
	e.report.Start(a)

	base, err := e.history.FindBase(ctx, e.localRef(), e.trunkRef())
	if err != nil {
		return err
	}
	if err := e.ops.ResetTo(ctx, base, true); err != nil {
		return err
	}
	pushed, err := e.ops.ForcePush(ctx)
	if err != nil {
		return err
	}
	if !pushed {
		e.report.Cancel(a)
		return nil
	}

	e.report.End(a)
	return nil
}

// Reset moves the local branch back to its trunk merge base and leaves the
// changes uncommitted.
func (e *Engine) Reset(ctx context.Context) error {
	base, err := e.history.FindBase(ctx, e.localRef(), e.trunkRef())
	if err != nil {
		return err
	}
	if err := e.ops.ResetTo(ctx, base, false); err != nil {
		return err
	}
	e.report.Warn("You need to %s and %s later", action.Commit{}.Label(), action.ForcePush{}.Label())
	return nil
}

// Submodule synchronizes, then updates all submodules.
func (e *Engine) Submodule(ctx context.Context, remote bool) error {
	synced, err := e.Sync(ctx)
	if err != nil || !synced {
		return err
	}
	return e.ops.SubmoduleUpdate(ctx, remote)
}
