package testhelpers

import (
	"path/filepath"
	"testing"
)

// Scene is a temporary working copy for a test. Remote scenes also carry a
// bare origin and can hand out clones acting as teammates.
type Scene struct {
	Dir    string
	Repo   *GitRepo
	Origin string
}

// SceneSetup is a function type for setting up a scene.
type SceneSetup func(*Scene) error

// NewScene creates a scene with a fresh repository on main. Everything is
// removed when the test ends.
func NewScene(t *testing.T, setup SceneSetup) *Scene {
	t.Helper()

	dir := filepath.Join(t.TempDir(), "repo")
	repo, err := NewGitRepo(dir)
	if err != nil {
		t.Fatalf("Failed to create Git repo: %v", err)
	}

	scene := &Scene{Dir: dir, Repo: repo}
	if setup != nil {
		if err := setup(scene); err != nil {
			t.Fatalf("Setup failed: %v", err)
		}
	}
	return scene
}

// NewRemoteScene creates a scene whose main is published to a bare origin
// and whose HEAD is on a new, unpublished branch. setup runs afterwards.
func NewRemoteScene(t *testing.T, branch string, setup SceneSetup) *Scene {
	t.Helper()

	return NewScene(t, func(s *Scene) error {
		if err := BasicSceneSetup(s); err != nil {
			return err
		}
		origin, err := s.Repo.CreateBareRemote("origin")
		if err != nil {
			return err
		}
		s.Origin = origin
		if err := s.Repo.PushBranch("origin", "main"); err != nil {
			return err
		}
		if err := s.Repo.CreateAndCheckoutBranch(branch); err != nil {
			return err
		}
		if setup != nil {
			return setup(s)
		}
		return nil
	})
}

// Teammate clones origin into a sibling directory and checks out branch,
// which must already be published.
func (s *Scene) Teammate(t *testing.T, name, branch string) *GitRepo {
	t.Helper()

	repo, err := CloneGitRepo(s.Origin, s.Dir+"-"+name)
	if err != nil {
		t.Fatalf("Failed to clone origin: %v", err)
	}
	if err := repo.CheckoutBranch(branch); err != nil {
		t.Fatalf("Failed to check out %s: %v", branch, err)
	}
	return repo
}

// BasicSceneSetup is a setup function that creates a basic scene with a single commit.
func BasicSceneSetup(scene *Scene) error {
	return scene.Repo.CreateChangeAndCommit("1", "1")
}
