// Package scenario provides a high-level test scenario that combines a
// remote Scene, a runtime Session and scripted confirmations to provide a
// terse API for integration tests.
package scenario

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"smallgit.dev/smallgit/internal/engine"
	"smallgit.dev/smallgit/internal/runtime"
	"smallgit.dev/smallgit/testhelpers"
)

// Scenario is a repository with a bare origin, HEAD on Branch, and a
// scripted human behind the prompts.
type Scenario struct {
	T       *testing.T
	Scene   *testhelpers.Scene
	Branch  string
	Answers *testhelpers.ScriptedConfirmer
	Output  *bytes.Buffer
}

// NewScenario creates a scenario on an unpublished branch with an optional
// setup function.
// NOTE: This function is NOT safe for parallel tests as it uses t.Setenv.
func NewScenario(t *testing.T, branch string, setup testhelpers.SceneSetup) *Scenario {
	t.Helper()

	t.Setenv("SMALL_GIT_NO_INTERACTIVE", "true")
	t.Setenv("SMALL_GIT_CONFIG", "")
	t.Setenv("SMALL_GIT_LOG_FILE", filepath.Join(t.TempDir(), "small-git.log"))

	return &Scenario{
		T:       t,
		Scene:   testhelpers.NewRemoteScene(t, branch, setup),
		Branch:  branch,
		Answers: testhelpers.NewScriptedConfirmer(),
		Output:  &bytes.Buffer{},
	}
}

// Repo returns the working copy under test.
func (s *Scenario) Repo() *testhelpers.GitRepo {
	return s.Scene.Repo
}

// Session builds a fresh session, as a new small-git process would.
func (s *Scenario) Session() *runtime.Session {
	s.T.Helper()
	session, err := runtime.NewSession(runtime.Options{
		Dir:       s.Scene.Dir,
		Out:       s.Output,
		Confirmer: s.Answers,
	})
	require.NoError(s.T, err)
	s.T.Cleanup(func() { _ = session.Close() })
	return session
}

// Engine builds a fresh session and returns its engine.
func (s *Scenario) Engine() *engine.Engine {
	s.T.Helper()
	eng, err := s.Session().Engine(context.Background())
	require.NoError(s.T, err)
	return eng
}

// Answer queues answers for the next prompts.
func (s *Scenario) Answer(answers ...bool) *Scenario {
	s.Answers.Queue(answers...)
	return s
}

// CommitChange writes message into <name>_test.txt and commits it with
// message as the subject.
func (s *Scenario) CommitChange(name, message string) *Scenario {
	s.T.Helper()
	require.NoError(s.T, s.Scene.Repo.CreateChangeAndCommit(message, name))
	return s
}

// Publish pushes the branch to origin.
func (s *Scenario) Publish() *Scenario {
	s.T.Helper()
	require.NoError(s.T, s.Scene.Repo.PushBranch("origin", s.Branch))
	return s
}

// Teammate clones origin with the branch checked out.
func (s *Scenario) Teammate(name string) *testhelpers.GitRepo {
	s.T.Helper()
	return s.Scene.Teammate(s.T, name, s.Branch)
}

// AdvanceTrunk commits to main through a teammate clone and pushes it.
func (s *Scenario) AdvanceTrunk(name, message string) *Scenario {
	s.T.Helper()
	mate, err := testhelpers.CloneGitRepo(s.Scene.Origin, s.Scene.Dir+"-trunk-"+name)
	require.NoError(s.T, err)
	require.NoError(s.T, mate.CreateChangeAndCommit(message, name))
	require.NoError(s.T, mate.PushBranch("origin", "main"))
	return s
}

// ExpectSynced asserts that the branch and its remote-tracking branch
// point at the same commit and no rebase is left behind.
func (s *Scenario) ExpectSynced() *Scenario {
	s.T.Helper()
	require.NoError(s.T, s.Scene.Repo.Fetch("origin"))
	testhelpers.ExpectSameCommit(s.T, s.Scene.Repo, s.Branch, "origin/"+s.Branch)
	testhelpers.ExpectNoRebase(s.T, s.Scene.Repo)
	return s
}

// ExpectOutput asserts that the console output contains text.
func (s *Scenario) ExpectOutput(text string) *Scenario {
	s.T.Helper()
	require.Contains(s.T, s.Output.String(), text)
	return s
}

// ExpectBranch asserts that the current branch is as expected.
func (s *Scenario) ExpectBranch(expected string) *Scenario {
	s.T.Helper()
	actual, err := s.Scene.Repo.CurrentBranchName()
	require.NoError(s.T, err)
	require.Equal(s.T, expected, actual)
	return s
}
