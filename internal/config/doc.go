// Package config loads small-git settings.
//
// It handles:
//   - The .small-git.yaml file at the repository root (or --config / SMALL_GIT_CONFIG)
//   - Defaults matching a uv-managed Python project
//   - Environment overrides (SMALL_GIT_PROXY, SMALL_GIT_LOG_FILE)
package config
