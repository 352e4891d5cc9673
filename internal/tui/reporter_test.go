package tui

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"smallgit.dev/smallgit/internal/action"
	sgerrors "smallgit.dev/smallgit/internal/errors"
)

func newTestReporter(t *testing.T) (*Reporter, *bytes.Buffer) {
	t.Helper()
	ConfigureColor(false)
	out := &bytes.Buffer{}
	return NewReporter(NewSplogWithWriter(out, false)), out
}

func TestReporter(t *testing.T) {
	t.Run("announces every transition", func(t *testing.T) {
		report, out := newTestReporter(t)

		report.Start(action.Push{})
		report.Info(action.Push{}, "to %s", "origin")
		report.End(action.Push{})
		report.Start(action.Stash{})
		report.Cancel(action.Stash{})
		report.Fail(action.Fetch{}, errors.New("network down"))
		report.Warn("Found 🍴 Fork")

		require.Equal(t, ""+
			"⬆️  Push START\n"+
			"⬆️  Push: to origin\n"+
			"⬆️  Push END\n"+
			"🗄️  Stash START\n"+
			"🗄️  Stash CANCELLED\n"+
			"network down\n"+
			"🔃 Fetch FAILED\n"+
			"🚨 Found 🍴 Fork\n", out.String())
	})

	t.Run("fatal wraps the cause", func(t *testing.T) {
		report, _ := newTestReporter(t)

		err := report.Fatal("You need to find help", sgerrors.ErrRebaseConflict)
		require.True(t, sgerrors.IsFatal(err))
		require.ErrorIs(t, err, sgerrors.ErrRebaseConflict)
	})

	t.Run("confirm prompt", func(t *testing.T) {
		report, _ := newTestReporter(t)
		require.Equal(t, "✅ Are you sure?", report.ConfirmPrompt("Are you sure?"))
	})
}

func TestConfirmers(t *testing.T) {
	ctx := context.Background()

	t.Run("decline says no and logs it", func(t *testing.T) {
		out := &bytes.Buffer{}
		yes, err := NewDecline(NewSplogWithWriter(out, false)).Confirm(ctx, "✅ Are you sure?")
		require.NoError(t, err)
		require.False(t, yes)
		require.Equal(t, "✅ Are you sure? n (non-interactive)\n", out.String())
	})

	t.Run("accept says yes and logs it", func(t *testing.T) {
		out := &bytes.Buffer{}
		yes, err := NewAccept(NewSplogWithWriter(out, false)).Confirm(ctx, "✅ Are you sure?")
		require.NoError(t, err)
		require.True(t, yes)
		require.Equal(t, "✅ Are you sure? y (--yes)\n", out.String())
	})
}

func TestConfirmModel(t *testing.T) {
	press := func(msg tea.KeyMsg) confirmModel {
		m := confirmModel{prompt: "go?", keys: defaultConfirmKeys}
		next, _ := m.Update(msg)
		return next.(confirmModel)
	}

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		choice bool
		err    error
	}{
		{"y", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}}, true, nil},
		{"Y", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'Y'}}, true, nil},
		{"n", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}}, false, nil},
		{"enter defaults to no", tea.KeyMsg{Type: tea.KeyEnter}, false, nil},
		{"esc cancels", tea.KeyMsg{Type: tea.KeyEsc}, false, ErrPromptCancelled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := press(tt.msg)
			require.True(t, m.done)
			require.Equal(t, tt.choice, m.choice)
			require.Equal(t, tt.err, m.err)
		})
	}

	t.Run("other keys are ignored", func(t *testing.T) {
		m := press(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
		require.False(t, m.done)
	})
}

func TestSplogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "small-git.log")
	out := &bytes.Buffer{}

	splog, err := NewSplogWithConfig(out, LogOptions{FilePath: path, MaxSize: 1})
	require.NoError(t, err)
	splog.Info("\x1b[32m💾 Commit END\x1b[0m")
	splog.Debug("hidden on console")
	require.NoError(t, splog.Close())

	require.Equal(t, "\x1b[32m💾 Commit END\x1b[0m\n", out.String())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "💾 Commit END")
	require.NotContains(t, string(data), "\x1b[")
	require.Contains(t, string(data), "hidden on console")
}

func TestLogEnv(t *testing.T) {
	t.Setenv("SMALL_GIT_LOG_FILE", "/tmp/custom.log")
	t.Setenv("SMALL_GIT_LOG_MAX_SIZE", "5")
	t.Setenv("SMALL_GIT_LOG_MAX_BACKUPS", "0")
	t.Setenv("SMALL_GIT_LOG_MAX_AGE", "not a number")

	require.Equal(t, "/tmp/custom.log", GetLogFilePath())

	opts := ApplyLogEnv(LogOptions{MaxSize: 1, MaxBackups: 2, MaxAge: 30})
	require.Equal(t, 5, opts.MaxSize)
	require.Equal(t, 0, opts.MaxBackups)
	require.Equal(t, 30, opts.MaxAge)
}
