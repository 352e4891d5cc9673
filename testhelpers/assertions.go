// Package testhelpers provides testing utilities for small-git,
// including a scene system, Git repository helpers, and custom assertions.
package testhelpers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Must is a generic helper function that panics if err is not nil,
// otherwise returns the value. This is useful for test setup code
// where errors are not expected and should halt execution immediately.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// ExpectCommits asserts the subjects of the commits in from..to, newest first.
func ExpectCommits(t *testing.T, repo *GitRepo, from, to string, expected []string) {
	t.Helper()

	messages, err := repo.ListCommitMessages(from, to)
	require.NoError(t, err, "Failed to list commits")
	require.Equal(t, expected, messages, "Commits do not match")
}

// ExpectSameCommit asserts that two revisions resolve to the same commit.
func ExpectSameCommit(t *testing.T, repo *GitRepo, rev1, rev2 string) {
	t.Helper()

	sha1, err := repo.GetRevision(rev1)
	require.NoError(t, err)
	sha2, err := repo.GetRevision(rev2)
	require.NoError(t, err)
	require.Equal(t, sha1, sha2, "%s and %s differ", rev1, rev2)
}

// ExpectNoRebase asserts that no rebase is left in progress.
func ExpectNoRebase(t *testing.T, repo *GitRepo) {
	t.Helper()
	require.False(t, repo.RebaseInProgress(), "rebase left in progress")
}
