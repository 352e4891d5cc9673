package housekeeping

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	goruntime "runtime"

	"smallgit.dev/smallgit/internal/action"
	"smallgit.dev/smallgit/internal/tui"
)

// Shell runs configured commands through the platform shell in the
// repository root, streaming their output to the console.
type Shell struct {
	dir    string
	proxy  string
	report *tui.Reporter
	out    io.Writer
}

// NewShell creates a shell running in dir. proxy is exported to commands
// that ask for it.
func NewShell(dir, proxy string, report *tui.Reporter) *Shell {
	return &Shell{
		dir:    dir,
		proxy:  proxy,
		report: report,
		out:    report.Splog().Writer(),
	}
}

// Run announces and runs each command in order, stopping at the first
// failure.
func (s *Shell) Run(ctx context.Context, a action.Action, useProxy bool, commands ...string) error {
	env := os.Environ()
	if useProxy && s.proxy != "" {
		env = append(env, "HTTP_PROXY="+s.proxy, "HTTPS_PROXY="+s.proxy)
	}

	for _, command := range commands {
		s.report.Info(a, "%s", command)

		cmd := shellCommand(ctx, command)
		cmd.Dir = s.dir
		cmd.Env = env
		cmd.Stdout = s.out
		cmd.Stderr = s.out
		cmd.Stdin = os.Stdin

		if err := cmd.Run(); err != nil {
			return fmt.Errorf("command %q failed: %w", command, err)
		}
	}
	return nil
}

func shellCommand(ctx context.Context, command string) *exec.Cmd {
	if goruntime.GOOS == "windows" {
		return exec.CommandContext(ctx, "cmd", "/C", command)
	}
	return exec.CommandContext(ctx, "/bin/sh", "-c", command)
}
