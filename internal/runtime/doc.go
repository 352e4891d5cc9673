// Package runtime provides the session for small-git commands.
//
// A session holds the repository root, configuration, logger, reporter,
// confirmer and git gateway. The engine is built lazily, after the startup
// checks pass, so housekeeping commands work outside a repository.
package runtime
