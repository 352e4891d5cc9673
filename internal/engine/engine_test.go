package engine_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"smallgit.dev/smallgit/internal/engine"
	sgerrors "smallgit.dev/smallgit/internal/errors"
	"smallgit.dev/smallgit/internal/git"
	"smallgit.dev/smallgit/internal/git/gittest"
	"smallgit.dev/smallgit/internal/tui"
	"smallgit.dev/smallgit/testhelpers"
)

const (
	localRef  = "refs/heads/feature"
	remoteRef = "refs/remotes/origin/feature"
	trunkRef  = "refs/remotes/origin/main"
)

var (
	older = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	newer = time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC)
)

type fixture struct {
	gw      *gittest.Gateway
	answers *testhelpers.ScriptedConfirmer
	out     *bytes.Buffer
	eng     *engine.Engine
}

func newFixture(t *testing.T, setup func(gw *gittest.Gateway)) *fixture {
	t.Helper()
	tui.ConfigureColor(false)

	gw := gittest.New("feature")
	if setup != nil {
		setup(gw)
	}

	out := &bytes.Buffer{}
	answers := testhelpers.NewScriptedConfirmer()
	report := tui.NewReporter(tui.NewSplogWithWriter(out, false))
	eng := engine.New(gw, report, answers, engine.Options{Remote: "origin", Branch: "feature", Trunk: "main"})

	return &fixture{gw: gw, answers: answers, out: out, eng: eng}
}

// trace renders mutations, prompts and the outcome for golden comparison.
func (f *fixture) trace(outcome string) []byte {
	var b strings.Builder
	b.WriteString("calls:\n")
	b.WriteString(f.gw.Trace())
	b.WriteString("prompts:\n")
	for _, prompt := range f.answers.Prompts() {
		b.WriteString(prompt)
		b.WriteByte('\n')
	}
	b.WriteString("outcome: " + outcome + "\n")
	return []byte(b.String())
}

func assertGolden(t *testing.T, name string, actual []byte) {
	t.Helper()
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, actual)
}

func outcome(synced bool, err error) string {
	if err != nil {
		if sgerrors.IsFatal(err) {
			return "fatal"
		}
		return "error"
	}
	return fmt.Sprintf("synced=%t", synced)
}

// published: trunk at T0, feature and origin/feature both at L1 on top of it.
func published(gw *gittest.Gateway) {
	gw.Refs[trunkRef] = "T0"
	gw.Refs[localRef] = "L1"
	gw.Refs[remoteRef] = "L1"
	gw.Bases[localRef+" "+trunkRef] = []string{"T0"}
}

// unpublished: feature at L2 on top of T0, never pushed.
func unpublished(gw *gittest.Gateway) {
	gw.Refs[trunkRef] = "T0"
	gw.Refs[localRef] = "L2"
	gw.Bases[localRef+" "+trunkRef] = []string{"T0"}
}

// trunkAdvanced: like unpublished, but origin/main moved on to T1.
func trunkAdvanced(gw *gittest.Gateway) {
	unpublished(gw)
	gw.Refs[trunkRef] = "T1"
}

// forked: two local and three remote commits since they split at B0.
func forked(localBase, remoteBase time.Time) func(gw *gittest.Gateway) {
	return func(gw *gittest.Gateway) {
		gw.Refs[trunkRef] = "T1"
		gw.Refs[localRef] = "L3"
		gw.Refs[remoteRef] = "R3"
		gw.Bases[localRef+" "+trunkRef] = []string{"T1"}
		gw.Bases[remoteRef+" "+trunkRef] = []string{"T0"}
		gw.Bases[localRef+" "+remoteRef] = []string{"B0"}
		gw.Counts["R3..L3"] = 2
		gw.Counts["L3..R3"] = 3
		gw.Times["T1"] = localBase
		gw.Times["T0"] = remoteBase
	}
}

func TestSync(t *testing.T) {
	ctx := context.Background()

	t.Run("up to date touches nothing", func(t *testing.T) {
		f := newFixture(t, published)

		synced, err := f.eng.Sync(ctx)
		require.NoError(t, err)
		require.True(t, synced)
		require.Equal(t, []string{"fetch origin"}, f.gw.Calls())
		require.Contains(t, f.out.String(), "Your-origin branch is already up-to-date")
		assertGolden(t, "sync_up_to_date", f.trace(outcome(synced, err)))
	})

	t.Run("second sync after publishing changes nothing", func(t *testing.T) {
		f := newFixture(t, unpublished)

		synced, err := f.eng.Sync(ctx)
		require.NoError(t, err)
		require.True(t, synced)
		first := f.gw.Calls()
		require.Equal(t, []string{"fetch origin", "push origin feature"}, first)
		require.NotContains(t, f.out.String(), "already up-to-date")

		synced, err = f.eng.Sync(ctx)
		require.NoError(t, err)
		require.True(t, synced)
		require.Equal(t, append(first, "fetch origin"), f.gw.Calls())
		require.Equal(t, "L2", f.gw.Refs[localRef])
		require.Equal(t, "L2", f.gw.Refs[remoteRef])
		require.Contains(t, f.out.String(), "Your-origin branch is already up-to-date")
		require.Empty(t, f.answers.Prompts())
	})

	t.Run("ahead pushes once", func(t *testing.T) {
		f := newFixture(t, func(gw *gittest.Gateway) {
			published(gw)
			gw.Refs[localRef] = "L2"
			gw.Counts["L1..L2"] = 1
			gw.Counts["L2..L1"] = 0
		})

		synced, err := f.eng.Sync(ctx)
		require.NoError(t, err)
		require.True(t, synced)
		require.Equal(t, "L2", f.gw.Refs[remoteRef])
		assertGolden(t, "sync_ahead", f.trace(outcome(synced, err)))
	})

	t.Run("behind pulls", func(t *testing.T) {
		f := newFixture(t, func(gw *gittest.Gateway) {
			published(gw)
			gw.Refs[remoteRef] = "R2"
			gw.Counts["R2..L1"] = 0
			gw.Counts["L1..R2"] = 2
		})

		synced, err := f.eng.Sync(ctx)
		require.NoError(t, err)
		require.True(t, synced)
		require.Equal(t, "R2", f.gw.Refs[localRef])
		assertGolden(t, "sync_behind", f.trace(outcome(synced, err)))
	})

	t.Run("failed pull is aborted and reported", func(t *testing.T) {
		f := newFixture(t, func(gw *gittest.Gateway) {
			published(gw)
			gw.Refs[remoteRef] = "R2"
			gw.Counts["R2..L1"] = 0
			gw.Counts["L1..R2"] = 2
			gw.PullConflict = true
		})

		synced, err := f.eng.Sync(ctx)
		require.Error(t, err)
		require.False(t, sgerrors.IsFatal(err))
		require.False(t, synced)
		require.Equal(t, []string{"fetch origin", "pull origin feature", "rebase --abort"}, f.gw.Calls())
		inProgress, _ := f.gw.IsRebaseInProgress(ctx)
		require.False(t, inProgress)
		require.Contains(t, f.out.String(), "🔄️ Sync FAILED")
	})

	t.Run("unpublished branch on trunk tip is pushed", func(t *testing.T) {
		f := newFixture(t, unpublished)

		synced, err := f.eng.Sync(ctx)
		require.NoError(t, err)
		require.True(t, synced)
		require.Equal(t, "L2", f.gw.Refs[remoteRef])
		assertGolden(t, "sync_publish", f.trace(outcome(synced, err)))
	})

	t.Run("unpublished branch behind trunk is rebased then pushed", func(t *testing.T) {
		f := newFixture(t, trunkAdvanced)

		synced, err := f.eng.Sync(ctx)
		require.NoError(t, err)
		require.True(t, synced)
		require.Equal(t, "rebased-T1", f.gw.Refs[remoteRef])
		assertGolden(t, "sync_publish_rebased", f.trace(outcome(synced, err)))
	})

	t.Run("unpublished conflict declined publishes nothing", func(t *testing.T) {
		f := newFixture(t, func(gw *gittest.Gateway) {
			trunkAdvanced(gw)
			gw.RebaseResults = []git.RebaseResult{git.RebaseConflict}
		})

		synced, err := f.eng.Sync(ctx)
		require.NoError(t, err)
		require.False(t, synced)
		require.NotContains(t, f.gw.Refs, remoteRef)
		require.Contains(t, f.out.String(), "🌳 Rebase CANCELLED")
		require.Contains(t, f.out.String(), "🔄️ Sync CANCELLED")
		assertGolden(t, "sync_publish_conflict_declined", f.trace(outcome(synced, err)))
	})

	t.Run("second conflict after reset is fatal and leaves no rebase", func(t *testing.T) {
		f := newFixture(t, func(gw *gittest.Gateway) {
			trunkAdvanced(gw)
			gw.RebaseResults = []git.RebaseResult{git.RebaseConflict, git.RebaseConflict}
		})
		f.answers.Queue(true)

		synced, err := f.eng.Sync(ctx)
		require.Error(t, err)
		require.True(t, sgerrors.IsFatal(err))
		require.ErrorIs(t, err, sgerrors.ErrRebaseConflict)
		require.False(t, synced)
		inProgress, _ := f.gw.IsRebaseInProgress(ctx)
		require.False(t, inProgress)
		assertGolden(t, "sync_publish_conflict_fatal", f.trace(outcome(synced, err)))
	})

	t.Run("fork with newer local base force-pushes without asking", func(t *testing.T) {
		f := newFixture(t, forked(newer, older))

		synced, err := f.eng.Sync(ctx)
		require.NoError(t, err)
		require.True(t, synced)
		require.Empty(t, f.answers.Prompts())
		require.Equal(t, "L3", f.gw.Refs[remoteRef])
		assertGolden(t, "sync_fork_newer_base", f.trace(outcome(synced, err)))
	})

	t.Run("fork declined twice changes nothing", func(t *testing.T) {
		f := newFixture(t, forked(older, older))

		synced, err := f.eng.Sync(ctx)
		require.NoError(t, err)
		require.False(t, synced)
		require.Equal(t, "L3", f.gw.Refs[localRef])
		require.Equal(t, "R3", f.gw.Refs[remoteRef])
		require.Contains(t, f.out.String(), "You need to choose ⏫ Force-Push or ⬇️  Pull")
		assertGolden(t, "sync_fork_declined", f.trace(outcome(synced, err)))
	})

	t.Run("fork resolved by pulling rebases onto the remote tip", func(t *testing.T) {
		f := newFixture(t, forked(older, older))
		f.answers.Queue(false, true)

		synced, err := f.eng.Sync(ctx)
		require.NoError(t, err)
		require.True(t, synced)
		require.Equal(t, "rebased-R3", f.gw.Refs[remoteRef])
		assertGolden(t, "sync_fork_pull", f.trace(outcome(synced, err)))
	})

	t.Run("fork pull landing on the remote tip does not push", func(t *testing.T) {
		f := newFixture(t, func(gw *gittest.Gateway) {
			forked(older, older)(gw)
			gw.RebasedTip = "R3"
		})
		f.answers.Queue(false, true)

		synced, err := f.eng.Sync(ctx)
		require.NoError(t, err)
		require.True(t, synced)
		require.Equal(t, []string{"fetch origin", "rebase R3"}, f.gw.Calls())
	})

	t.Run("fork force-push rejected and overwrite declined", func(t *testing.T) {
		f := newFixture(t, func(gw *gittest.Gateway) {
			forked(older, older)(gw)
			gw.PushErrors = []error{fmt.Errorf("push of feature to origin: %w", git.ErrPushRejected)}
		})
		f.answers.Queue(true)

		synced, err := f.eng.Sync(ctx)
		require.NoError(t, err)
		require.False(t, synced)
		require.Equal(t, "R3", f.gw.Refs[remoteRef])
		assertGolden(t, "sync_fork_lease_rejected", f.trace(outcome(synced, err)))
	})

	t.Run("ambiguous merge base is fatal", func(t *testing.T) {
		for name, bases := range map[string][]string{
			"none":    nil,
			"several": {"T0", "X0"},
		} {
			t.Run(name, func(t *testing.T) {
				f := newFixture(t, func(gw *gittest.Gateway) {
					published(gw)
					if bases == nil {
						delete(gw.Bases, localRef+" "+trunkRef)
					} else {
						gw.Bases[localRef+" "+trunkRef] = bases
					}
				})

				synced, err := f.eng.Sync(ctx)
				require.False(t, synced)
				require.True(t, sgerrors.IsFatal(err))
				require.ErrorIs(t, err, sgerrors.ErrAmbiguousMergeBase)
				require.Equal(t, []string{"fetch origin"}, f.gw.Calls())
			})
		}
	})

	t.Run("fetch failure stops before any decision", func(t *testing.T) {
		f := newFixture(t, func(gw *gittest.Gateway) {
			published(gw)
			gw.Errors["Fetch"] = errors.New("could not read from remote repository")
		})

		synced, err := f.eng.Sync(ctx)
		require.Error(t, err)
		require.False(t, synced)
		require.Equal(t, []string{"fetch origin"}, f.gw.Calls())
		require.Contains(t, f.out.String(), "🔃 Fetch FAILED")
	})
}

func TestTryRebase(t *testing.T) {
	ctx := context.Background()

	t.Run("clean rebase succeeds first time", func(t *testing.T) {
		f := newFixture(t, trunkAdvanced)

		ok, err := f.eng.TryRebase(ctx, "T1", "T0")
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, []string{"rebase T1"}, f.gw.Calls())
	})

	t.Run("retry after reset succeeds", func(t *testing.T) {
		f := newFixture(t, func(gw *gittest.Gateway) {
			trunkAdvanced(gw)
			gw.RebaseResults = []git.RebaseResult{git.RebaseConflict}
		})
		f.answers.Queue(true)

		ok, err := f.eng.TryRebase(ctx, "T1", "T0")
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, []string{
			"rebase T1",
			"rebase --abort",
			"reset --mixed T0",
			"add -A",
			`commit "reset to T0"`,
			"rebase T1",
		}, f.gw.Calls())
		require.Equal(t, []string{"✅ 🪓 Reset and 🌳 Rebase again?"}, f.answers.Prompts())
	})

	t.Run("failed abort is fatal", func(t *testing.T) {
		f := newFixture(t, func(gw *gittest.Gateway) {
			trunkAdvanced(gw)
			gw.RebaseResults = []git.RebaseResult{git.RebaseConflict}
			gw.Errors["RebaseAbort"] = errors.New("could not remove .git/rebase-merge")
		})

		ok, err := f.eng.TryRebase(ctx, "T1", "T0")
		require.False(t, ok)
		require.True(t, sgerrors.IsFatal(err))
		require.Contains(t, err.Error(), "You need to find help")
		require.Empty(t, f.answers.Prompts())
	})
}

func TestRebase(t *testing.T) {
	ctx := context.Background()

	t.Run("branch on trunk tip needs nothing", func(t *testing.T) {
		f := newFixture(t, published)

		ok, err := f.eng.Rebase(ctx)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, []string{"fetch origin"}, f.gw.Calls())
	})

	t.Run("rebases onto the new trunk and force-pushes", func(t *testing.T) {
		f := newFixture(t, func(gw *gittest.Gateway) {
			published(gw)
			gw.Refs[trunkRef] = "T1"
		})

		ok, err := f.eng.Rebase(ctx)
		require.NoError(t, err)
		require.True(t, ok)
		require.Contains(t, f.out.String(), "Your branch is out-of-date, need to 🌳 Rebase later")
		assertGolden(t, "rebase_trunk_advanced", f.trace(outcome(ok, err)))
	})

	t.Run("stops when sync does not finish", func(t *testing.T) {
		f := newFixture(t, forked(older, older))

		ok, err := f.eng.Rebase(ctx)
		require.NoError(t, err)
		require.False(t, ok)
		require.Equal(t, []string{"fetch origin"}, f.gw.Calls())
	})
}

func TestSquash(t *testing.T) {
	ctx := context.Background()

	t.Run("collapses the branch into one commit", func(t *testing.T) {
		f := newFixture(t, func(gw *gittest.Gateway) {
			published(gw)
			gw.Refs[localRef] = "L3"
			gw.Refs[remoteRef] = "L3"
		})

		require.NoError(t, f.eng.Squash(ctx))
		require.Equal(t, []string{
			"reset --mixed T0",
			"add -A",
			`commit "reset to T0"`,
			"push origin feature --force-with-lease",
		}, f.gw.Calls())
		require.Equal(t, "commit1", f.gw.Refs[localRef])
		require.Equal(t, "commit1", f.gw.Refs[remoteRef])
		require.Contains(t, f.out.String(), "🔨 Squash END")
	})

	t.Run("branch already at its base only force-pushes", func(t *testing.T) {
		f := newFixture(t, func(gw *gittest.Gateway) {
			published(gw)
			gw.Refs[localRef] = "T0"
		})

		require.NoError(t, f.eng.Squash(ctx))
		require.Equal(t, []string{"push origin feature --force-with-lease"}, f.gw.Calls())
	})

	t.Run("declined overwrite cancels", func(t *testing.T) {
		f := newFixture(t, func(gw *gittest.Gateway) {
			published(gw)
			gw.Refs[localRef] = "T0"
			gw.PushErrors = []error{fmt.Errorf("push: %w", git.ErrPushRejected)}
		})

		require.NoError(t, f.eng.Squash(ctx))
		require.Len(t, f.answers.Prompts(), 1)
		require.Contains(t, f.out.String(), "🔨 Squash CANCELLED")
		require.NotContains(t, f.out.String(), "🔨 Squash END")
	})
}

func TestReset(t *testing.T) {
	f := newFixture(t, func(gw *gittest.Gateway) {
		published(gw)
		gw.Refs[localRef] = "L3"
	})

	require.NoError(t, f.eng.Reset(context.Background()))
	require.Equal(t, []string{"reset --mixed T0"}, f.gw.Calls())
	require.Equal(t, "T0", f.gw.Refs[localRef])
	require.True(t, f.gw.Dirty)
	require.Contains(t, f.out.String(), "You need to 💾 Commit and ⏫ Force-Push later")
}

func TestSubmodule(t *testing.T) {
	ctx := context.Background()

	t.Run("updates after a successful sync", func(t *testing.T) {
		f := newFixture(t, published)

		require.NoError(t, f.eng.Submodule(ctx, true))
		require.Equal(t, []string{"fetch origin", "submodule update --remote"}, f.gw.Calls())
		require.Contains(t, f.out.String(), "Update all submodules to remote HEAD")
	})

	t.Run("skipped when sync does not finish", func(t *testing.T) {
		f := newFixture(t, forked(older, older))

		require.NoError(t, f.eng.Submodule(ctx, false))
		require.Equal(t, []string{"fetch origin"}, f.gw.Calls())
	})

	t.Run("failure is fatal", func(t *testing.T) {
		f := newFixture(t, func(gw *gittest.Gateway) {
			published(gw)
			gw.Errors["SubmoduleUpdate"] = errors.New("fatal: not a git repository")
		})

		err := f.eng.Submodule(ctx, false)
		require.True(t, sgerrors.IsFatal(err))
	})
}
