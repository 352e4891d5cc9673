package housekeeping

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	goruntime "runtime"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"smallgit.dev/smallgit/internal/config"
	"smallgit.dev/smallgit/internal/tui"
)

func newTasks(t *testing.T, cfg *config.Config) (*Tasks, *bytes.Buffer, string) {
	t.Helper()
	tui.ConfigureColor(false)
	var buf bytes.Buffer
	root := t.TempDir()
	report := tui.NewReporter(tui.NewSplogWithWriter(&buf, false))
	return New(root, cfg, report), &buf, root
}

func skipOnWindows(t *testing.T) {
	t.Helper()
	if goruntime.GOOS == "windows" {
		t.Skip("shell commands below are POSIX")
	}
}

func TestEnv(t *testing.T) {
	skipOnWindows(t)

	t.Run("runs every command in order", func(t *testing.T) {
		cfg := config.Default()
		cfg.Env.Commands = []string{"echo first > order.txt", "echo second >> order.txt"}
		tasks, buf, root := newTasks(t, cfg)

		require.NoError(t, tasks.Env(context.Background()))

		data, err := os.ReadFile(filepath.Join(root, "order.txt"))
		require.NoError(t, err)
		require.Equal(t, "first\nsecond\n", string(data))
		require.Contains(t, buf.String(), "🌏 Env START")
		require.Contains(t, buf.String(), "🌏 Env: echo first > order.txt")
		require.Contains(t, buf.String(), "🌏 Env END")
	})

	t.Run("stops at the first failure", func(t *testing.T) {
		cfg := config.Default()
		cfg.Env.Commands = []string{"exit 4", "touch never"}
		tasks, buf, root := newTasks(t, cfg)

		require.Error(t, tasks.Env(context.Background()))
		require.NoFileExists(t, filepath.Join(root, "never"))
		require.Contains(t, buf.String(), "🌏 Env FAILED")
	})

	t.Run("exports the proxy only when asked", func(t *testing.T) {
		t.Setenv("HTTP_PROXY", "")
		cfg := config.Default()
		cfg.Proxy = "http://proxy.test:3128"
		cfg.Env.Commands = []string{`printf "%s" "$HTTP_PROXY" > proxy.txt`}
		cfg.Scoop.Commands = cfg.Env.Commands
		cfg.Scoop.UseProxy = true
		tasks, _, root := newTasks(t, cfg)

		require.NoError(t, tasks.Env(context.Background()))
		data, err := os.ReadFile(filepath.Join(root, "proxy.txt"))
		require.NoError(t, err)
		require.Empty(t, string(data))

		require.NoError(t, tasks.Scoop(context.Background()))
		data, err = os.ReadFile(filepath.Join(root, "proxy.txt"))
		require.NoError(t, err)
		require.Equal(t, "http://proxy.test:3128", string(data))
	})
}

func TestCheck(t *testing.T) {
	skipOnWindows(t)

	t.Run("substitutes dirs", func(t *testing.T) {
		cfg := config.Default()
		cfg.Check.Commands = []string{"echo lint {dirs} > lint.txt"}
		tasks, buf, root := newTasks(t, cfg)

		require.NoError(t, tasks.Check(context.Background(), ""))
		data, err := os.ReadFile(filepath.Join(root, "lint.txt"))
		require.NoError(t, err)
		require.Equal(t, "lint src tests\n", string(data))
		require.Contains(t, buf.String(), "🚓 Check END")

		require.NoError(t, tasks.Check(context.Background(), "app"))
		data, err = os.ReadFile(filepath.Join(root, "lint.txt"))
		require.NoError(t, err)
		require.Equal(t, "lint app\n", string(data))
	})

	t.Run("failure is reported not returned", func(t *testing.T) {
		cfg := config.Default()
		cfg.Check.Commands = []string{"false", "touch never"}
		tasks, buf, root := newTasks(t, cfg)

		require.NoError(t, tasks.Check(context.Background(), ""))
		require.NoFileExists(t, filepath.Join(root, "never"))
		require.Contains(t, buf.String(), "🚓 Check FAILED")
		require.NotContains(t, buf.String(), "🚓 Check END")
	})
}

func TestDelete(t *testing.T) {
	cfg := config.Default()
	tasks, buf, root := newTasks(t, cfg)

	require.NoError(t, os.MkdirAll(filepath.Join(root, "logs", "old"), 0750))
	require.NoError(t, os.WriteFile(filepath.Join(root, "logs", "old", "run.log"), []byte("x"), 0600))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "MsCamRegLog"), 0750))
	require.NoError(t, os.WriteFile(filepath.Join(root, "MsCamRegLog", "cam.log"), []byte("x"), 0600))

	require.NoError(t, tasks.Delete())

	for _, dir := range []string{"logs", "output"} {
		entries, err := os.ReadDir(filepath.Join(root, dir))
		require.NoError(t, err)
		require.Len(t, entries, 1)
		require.Equal(t, ".gitkeep", entries[0].Name())
	}
	require.NoDirExists(t, filepath.Join(root, "MsCamRegLog"))
	require.Contains(t, buf.String(), "🗑️  Delete END")

	// A second run over a clean tree is fine.
	require.NoError(t, tasks.Delete())
}

func TestDeleteStaysInsideRoot(t *testing.T) {
	for _, dir := range []string{"../victim", "logs/../../victim"} {
		t.Run(dir, func(t *testing.T) {
			cfg := config.Default()
			cfg.Clean.ForceDirs = []string{dir}
			tasks, buf, root := newTasks(t, cfg)

			victim := filepath.Join(filepath.Dir(root), "victim")
			require.NoError(t, os.MkdirAll(victim, 0750))
			t.Cleanup(func() { _ = os.RemoveAll(victim) })

			require.Error(t, tasks.Delete())
			require.DirExists(t, victim)
			require.Contains(t, buf.String(), "🗑️  Delete FAILED")
		})
	}
}

func TestZen(t *testing.T) {
	tui.ConfigureColor(false)
	var buf bytes.Buffer
	Zen(tui.NewSplogWithWriter(&buf, false))

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "zen", buf.Bytes())
}

func TestShow(t *testing.T) {
	tui.ConfigureColor(false)
	var buf bytes.Buffer
	Show(tui.NewReporter(tui.NewSplogWithWriter(&buf, false)))

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "show", buf.Bytes())
}
