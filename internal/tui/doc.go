// Package tui provides the terminal user interface for small-git.
//
// It handles:
//   - Announcing every step of a command (Reporter)
//   - Structured logging to the console and a rotating log file (Splog)
//   - Yes/no confirmations and text input (using bubbletea and survey)
//   - Terminal styling and colors (using lipgloss)
package tui
