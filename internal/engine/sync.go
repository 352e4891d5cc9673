package engine

import (
	"context"

	"smallgit.dev/smallgit/internal/action"
	sgerrors "smallgit.dev/smallgit/internal/errors"
)

// Sync reconciles the local branch with its remote-tracking branch.
// It returns true when both point at the same history afterwards and false
// when a human has to decide, in which case nothing further was changed.
func (e *Engine) Sync(ctx context.Context) (bool, error) {
	a := action.Sync{}
	e.report.Start(a)

	synced, err := e.sync(ctx)
	if err != nil {
		// A failed pull can leave its rebase behind. Fatal paths have
		// already aborted or could not.
		if !sgerrors.IsFatal(err) {
			if abortErr := e.ops.Abort(ctx); abortErr != nil {
				return false, abortErr
			}
		}
		e.report.Fail(a, nil)
		return false, err
	}
	if !synced {
		e.report.Cancel(a)
		return false, nil
	}

	e.report.End(a)
	return true, nil
}

func (e *Engine) sync(ctx context.Context) (bool, error) {
	a := action.Sync{}

	if err := e.ops.Fetch(ctx); err != nil {
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

	published, err := e.gw.RefExists(ctx, e.remoteRef())
	if err != nil {
		return false, err
	}
	if !published {
		return e.publish(ctx, base, trunkTip)
	}

	if base != trunkTip {
		e.report.Warn("Your branch is out-of-date, need to %s later", action.Rebase{}.Label())
	}

	localTip, err := e.gw.ResolveRef(ctx, e.localRef())
	if err != nil {
		return false, err
	}
	remoteTip, err := e.gw.ResolveRef(ctx, e.remoteRef())
	if err != nil {
		return false, err
	}

	ahead, behind, err := e.history.Divergence(ctx, localTip, remoteTip)
	if err != nil {
		return false, err
	}

	switch {
	case ahead > 0 && behind == 0:
		e.report.Info(a, "%s your branch", action.Push{}.Label())
		return true, e.ops.Push(ctx)
	case ahead == 0 && behind > 0:
		e.report.Info(a, "%s your-origin branch", action.Pull{}.Label())
		return true, e.ops.Pull(ctx)
	case ahead > 0 && behind > 0:
		return e.resolveFork(ctx, base, remoteTip)
	default:
		e.report.Info(a, "Your-origin branch is already up-to-date")
		return true, nil
	}
}

// publish pushes a branch that has no remote-tracking counterpart yet,
// rebasing it onto trunk first when it does not descend from the trunk tip.
func (e *Engine) publish(ctx context.Context, base, trunkTip string) (bool, error) {
	if base != trunkTip {
		rebased, err := e.TryRebase(ctx, trunkTip, base)
		if err != nil {
			return false, err
		}
		if !rebased {
			e.report.Warn("You need to choose %s and %s", action.Reset{}.Label(), action.Rebase{}.Label())
			return false, nil
		}
	}
	return true, e.ops.Push(ctx)
}

// resolveFork handles local and remote-tracking branches that both have
// commits the other lacks. The branch belongs to its owner, so a local base
// strictly newer than the remote's base wins outright; everything else
// needs a human.
func (e *Engine) resolveFork(ctx context.Context, base, remoteTip string) (bool, error) {
	e.report.Warn("Found 🍴 Fork")

	theirBase, err := e.history.FindBase(ctx, e.remoteRef(), e.trunkRef())
	if err != nil {
		return false, err
	}
	force, err := e.history.Newer(ctx, base, theirBase)
	if err != nil {
		return false, err
	}
	if !force {
		force, err = e.ops.Ask(ctx, action.ForcePush{}.Label()+" your branch?")
		if err != nil {
			return false, err
		}
	}
	if force {
		return e.ops.ForcePush(ctx)
	}

	pull, err := e.ops.Ask(ctx, action.Pull{}.Label()+" your-origin branch?")
	if err != nil {
		return false, err
	}
	if pull {
		ourBase, err := e.history.FindBase(ctx, e.localRef(), e.remoteRef())
		if err != nil {
			return false, err
		}
		rebased, err := e.TryRebase(ctx, remoteTip, ourBase)
		if err != nil {
			return false, err
		}
		if rebased {
			localTip, err := e.gw.ResolveRef(ctx, e.localRef())
			if err != nil {
				return false, err
			}
			if localTip != remoteTip {
				return true, e.ops.Push(ctx)
			}
			return true, nil
		}
	}

	e.report.Warn("You need to choose %s or %s", action.ForcePush{}.Label(), action.Pull{}.Label())
	return false, nil
}
