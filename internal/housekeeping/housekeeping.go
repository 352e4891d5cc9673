// Package housekeeping implements the project chores small-git carries next
// to branch synchronization: environment setup, linting, tool installation,
// scratch directory cleanup and the zen text.
package housekeeping

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"smallgit.dev/smallgit/internal/action"
	"smallgit.dev/smallgit/internal/config"
	"smallgit.dev/smallgit/internal/tui"
)

// Tasks runs housekeeping chores for one project.
type Tasks struct {
	root   string
	cfg    *config.Config
	report *tui.Reporter
	shell  *Shell
}

// New creates the chores for the project at root.
func New(root string, cfg *config.Config, report *tui.Reporter) *Tasks {
	return &Tasks{
		root:   root,
		cfg:    cfg,
		report: report,
		shell:  NewShell(root, cfg.Proxy, report),
	}
}

// Env sets up the development environment.
func (t *Tasks) Env(ctx context.Context) error {
	return t.runSet(ctx, action.Env{}, t.cfg.Env)
}

// Scoop installs tooling.
func (t *Tasks) Scoop(ctx context.Context) error {
	return t.runSet(ctx, action.Scoop{}, t.cfg.Scoop)
}

func (t *Tasks) runSet(ctx context.Context, a action.Action, set config.CommandSet) error {
	t.report.Start(a)
	if err := t.shell.Run(ctx, a, set.UseProxy, set.Commands...); err != nil {
		t.report.Fail(a, err)
		return err
	}
	t.report.End(a)
	return nil
}

// Check runs the linters over dirs, or the configured dirs when empty.
// A failing linter is reported, not returned.
func (t *Tasks) Check(ctx context.Context, dirs string) error {
	a := action.Check{}
	t.report.Start(a)

	if dirs == "" {
		dirs = t.cfg.Check.Dirs
	}
	commands := make([]string, 0, len(t.cfg.Check.Commands))
	for _, tmpl := range t.cfg.Check.Commands {
		commands = append(commands, strings.ReplaceAll(tmpl, "{dirs}", dirs))
	}

	if err := t.shell.Run(ctx, a, false, commands...); err != nil {
		t.report.Fail(a, err)
		return nil
	}
	t.report.End(a)
	return nil
}

// Delete empties the scratch directories, leaving a .gitkeep in each, and
// removes the force directories entirely.
func (t *Tasks) Delete() error {
	a := action.Delete{}
	t.report.Start(a)

	if err := t.cfg.Validate(); err != nil {
		t.report.Fail(a, err)
		return err
	}

	for _, dir := range t.cfg.Clean.Dirs {
		path := filepath.Join(t.root, dir)
		if err := os.RemoveAll(path); err != nil {
			t.report.Fail(a, err)
			return fmt.Errorf("failed to remove %s: %w", dir, err)
		}
		if err := os.MkdirAll(path, 0750); err != nil {
			t.report.Fail(a, err)
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
		if err := os.WriteFile(filepath.Join(path, ".gitkeep"), nil, 0600); err != nil {
			t.report.Fail(a, err)
			return fmt.Errorf("failed to create %s/.gitkeep: %w", dir, err)
		}
	}

	for _, dir := range t.cfg.Clean.ForceDirs {
		if err := os.RemoveAll(filepath.Join(t.root, dir)); err != nil {
			t.report.Fail(a, err)
			return fmt.Errorf("failed to remove %s: %w", dir, err)
		}
	}

	t.report.End(a)
	return nil
}
