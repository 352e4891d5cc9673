// Package git provides low-level Git operations.
//
// It exposes the Gateway interface small-git drives and its implementation:
//   - History reads (refs, merge bases, commit times) through go-git
//   - Commit counting and every mutation through the git binary
//   - Remote operations (fetch, pull, push)
//   - Rebase, reset, stash and submodule commands
//
// This package should be the only place where direct git commands are executed.
package git
