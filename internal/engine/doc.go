// Package engine keeps three branches in line: the local branch, its
// remote-tracking counterpart on origin and the trunk.
//
// It handles:
//   - Sync: publish, push, pull or resolve a fork, whichever applies
//   - Rebase onto the trunk tip with a single reset-and-retry on conflict
//   - Squash and Reset back to the trunk merge base
//   - Submodule updates after a successful sync
//
// The engine only decides. Every repository change goes through the ops
// primitives, and every question goes to the injected confirmer.
package engine
