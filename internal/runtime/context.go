package runtime

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"smallgit.dev/smallgit/internal/config"
	"smallgit.dev/smallgit/internal/engine"
	sgerrors "smallgit.dev/smallgit/internal/errors"
	"smallgit.dev/smallgit/internal/git"
	"smallgit.dev/smallgit/internal/ops"
	"smallgit.dev/smallgit/internal/tui"
)

// DefaultRemote is the only remote small-git works with.
const DefaultRemote = "origin"

// trunkCandidates are tried in order on the remote.
var trunkCandidates = []string{"master", "main"}

// Options controls how a session is built.
type Options struct {
	// Dir is where the command runs; the repository root is discovered from it
	Dir string
	// ConfigPath overrides the config file location
	ConfigPath string
	// Yes answers yes to every confirmation
	Yes   bool
	Debug bool

	In  io.Reader
	Out io.Writer

	// Confirmer replaces the confirmer picked from Yes and the terminal
	Confirmer ops.Confirmer
}

// Session holds everything a command needs. It is built once per process.
type Session struct {
	RepoRoot string
	Config   *config.Config
	Splog    *tui.Splog
	Reporter *tui.Reporter
	Confirm  ops.Confirmer
	Gateway  git.Gateway

	// Set by Engine once the preconditions pass
	Remote string
	Trunk  string
	Branch string

	repoErr error
	engine  *engine.Engine
}

// NewSession loads the configuration and sets up logging. It does not
// require a git repository; Engine does.
func NewSession(opts Options) (*Session, error) {
	if opts.Dir == "" {
		opts.Dir = "."
	}
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	dir, err := filepath.Abs(opts.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", opts.Dir, err)
	}

	s := &Session{RepoRoot: dir}
	if root, err := git.RepoRoot(dir); err == nil {
		s.RepoRoot = root
	} else {
		s.repoErr = err
	}

	cfg, err := config.Load(config.Path(opts.ConfigPath, s.RepoRoot))
	if err != nil {
		return nil, err
	}
	s.Config = cfg

	logOpts := tui.LogOptions{
		FilePath:   cfg.Log.File,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Debug:      opts.Debug || os.Getenv("DEBUG") != "",
	}
	if logOpts.FilePath == "" {
		logOpts.FilePath = tui.GetLogFilePath()
	}
	splog, err := tui.NewSplogWithConfig(opts.Out, tui.ApplyLogEnv(logOpts))
	if err != nil {
		return nil, err
	}
	s.Splog = splog
	s.Reporter = tui.NewReporter(splog)

	switch {
	case opts.Confirmer != nil:
		s.Confirm = opts.Confirmer
	case opts.Yes:
		s.Confirm = tui.NewAccept(splog)
	case tui.IsInteractive():
		s.Confirm = tui.NewPromptConfirmer(opts.In, opts.Out, splog)
	default:
		s.Confirm = tui.NewDecline(splog)
	}

	s.Gateway = git.NewGateway(s.RepoRoot, splog)
	return s, nil
}

// Engine checks that the repository can be synchronized and returns the
// engine for the current branch. Checks run once; later calls reuse the
// result.
func (s *Session) Engine(ctx context.Context) (*engine.Engine, error) {
	if s.engine != nil {
		return s.engine, nil
	}
	if err := s.checkPreconditions(ctx); err != nil {
		return nil, err
	}

	s.engine = engine.New(s.Gateway, s.Reporter, s.Confirm, engine.Options{
		Remote: s.Remote,
		Branch: s.Branch,
		Trunk:  s.Trunk,
	})
	s.Splog.Debug("branch %s, trunk %s/%s", s.Branch, s.Remote, s.Trunk)
	return s.engine, nil
}

func (s *Session) checkPreconditions(ctx context.Context) error {
	if s.repoErr != nil {
		return sgerrors.NewPreconditionError("not a git repository", s.RepoRoot)
	}

	unmerged, err := s.Gateway.UnmergedFiles(ctx)
	if err != nil {
		return err
	}
	if len(unmerged) > 0 {
		return sgerrors.NewPreconditionError("unmerged files", fmt.Sprint(unmerged))
	}

	remotes, err := s.Gateway.Remotes(ctx)
	if err != nil {
		return err
	}
	if !slices.Contains(remotes, DefaultRemote) {
		return sgerrors.NewPreconditionError("no remote", DefaultRemote)
	}
	s.Remote = DefaultRemote

	for _, candidate := range trunkCandidates {
		exists, err := s.Gateway.RefExists(ctx, git.RemoteRef(s.Remote, candidate))
		if err != nil {
			return err
		}
		if exists {
			s.Trunk = candidate
			break
		}
	}
	if s.Trunk == "" {
		return sgerrors.NewPreconditionError("no trunk", "origin/master or origin/main must exist")
	}

	branch, err := s.Gateway.CurrentBranch(ctx)
	if errors.Is(err, sgerrors.ErrNotOnBranch) {
		return sgerrors.NewPreconditionError("HEAD is not on a branch", "")
	}
	if err != nil {
		return err
	}
	if slices.Contains(trunkCandidates, branch) {
		return sgerrors.NewPreconditionError("on trunk", "switch to your own branch first, not "+branch)
	}
	s.Branch = branch
	return nil
}

// Close flushes the log file.
func (s *Session) Close() error {
	return s.Splog.Close()
}
