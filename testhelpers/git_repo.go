package testhelpers

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

const textFileName = "test.txt"

// GitRepo is a working copy driven with the git CLI for test setup.
type GitRepo struct {
	Dir string
}

// NewGitRepo initializes a new Git repository in the specified directory using 'git init'.
func NewGitRepo(dir string) (*GitRepo, error) {
	cmd := exec.Command("git", "-c", "init.defaultBranch=main", "-c", "core.autocrlf=false", "-c", "core.fileMode=false", "init", dir, "-b", "main")
	cmd.Env = gitEnv()
	if output, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("failed to init repo: %w, output: %s", err, string(output))
	}
	return configure(&GitRepo{Dir: dir})
}

// CloneGitRepo clones url into dir, the way a teammate would.
func CloneGitRepo(url, dir string) (*GitRepo, error) {
	cmd := exec.Command("git", "clone", url, dir)
	cmd.Env = gitEnv()
	if output, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("failed to clone repo: %w, output: %s", err, string(output))
	}
	return configure(&GitRepo{Dir: dir})
}

// configure sets the identity commits need and turns off anything that
// could prompt.
func configure(repo *GitRepo) (*GitRepo, error) {
	for _, kv := range [][2]string{
		{"user.name", "Test User"},
		{"user.email", "test@example.com"},
		{"commit.gpgsign", "false"},
		{"core.editor", "true"},
	} {
		if err := repo.runGitCommand("config", kv[0], kv[1]); err != nil {
			return nil, err
		}
	}
	return repo, nil
}

// gitEnv keeps the developer's global config out of test repositories.
func gitEnv(extra ...string) []string {
	return append(append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null"), extra...)
}

func (r *GitRepo) runGitCommandWithEnv(env []string, args ...string) error {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	cmd.Env = env
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("git %s failed: %w, output: %s", strings.Join(args, " "), err, string(output))
	}
	return nil
}

func (r *GitRepo) runGitCommand(args ...string) error {
	return r.runGitCommandWithEnv(gitEnv(), args...)
}

// RunGitCommand executes a git command and returns an error if it fails.
func (r *GitRepo) RunGitCommand(args ...string) error {
	return r.runGitCommand(args...)
}

// RunGitCommandAndGetOutput executes a git command and returns its trimmed output.
func (r *GitRepo) RunGitCommandAndGetOutput(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	cmd.Env = gitEnv()
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git %s failed: %w", strings.Join(args, " "), err)
	}
	return strings.TrimSpace(string(output)), nil
}

// CreateChange writes textValue to a file named after prefix and stages it
// unless unstaged is set.
func (r *GitRepo) CreateChange(textValue string, prefix string, unstaged bool) error {
	fileName := textFileName
	if prefix != "" {
		fileName = prefix + "_" + fileName
	}
	filePath := filepath.Join(r.Dir, fileName)

	if err := os.WriteFile(filePath, []byte(textValue), 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	if !unstaged {
		return r.runGitCommand("add", filePath)
	}
	return nil
}

// CreateChangeAndCommit creates a file change and commits it.
func (r *GitRepo) CreateChangeAndCommit(textValue string, prefix string) error {
	if err := r.CreateChange(textValue, prefix, false); err != nil {
		return err
	}
	return r.runGitCommand("commit", "-m", textValue)
}

// CreateChangeAndCommitAt is CreateChangeAndCommit with fixed author and
// committer dates, for histories whose commit order matters.
func (r *GitRepo) CreateChangeAndCommitAt(textValue string, prefix string, when time.Time) error {
	if err := r.CreateChange(textValue, prefix, false); err != nil {
		return err
	}
	date := when.Format(time.RFC3339)
	return r.runGitCommandWithEnv(gitEnv("GIT_AUTHOR_DATE="+date, "GIT_COMMITTER_DATE="+date), "commit", "-m", textValue)
}

// CreateAndCheckoutBranch creates and checks out a new branch.
func (r *GitRepo) CreateAndCheckoutBranch(name string) error {
	return r.runGitCommand("checkout", "-b", name)
}

// CheckoutBranch checks out a branch.
func (r *GitRepo) CheckoutBranch(name string) error {
	return r.runGitCommand("checkout", name)
}

// CheckoutDetached checks out a revision in detached HEAD state.
func (r *GitRepo) CheckoutDetached(rev string) error {
	return r.runGitCommand("checkout", "--detach", rev)
}

// RebaseInProgress checks if a rebase is in progress.
func (r *GitRepo) RebaseInProgress() bool {
	for _, dir := range []string{"rebase-merge", "rebase-apply"} {
		if _, err := os.Stat(filepath.Join(r.Dir, ".git", dir)); err == nil {
			return true
		}
	}
	return false
}

// CurrentBranchName returns the name of the current branch.
func (r *GitRepo) CurrentBranchName() (string, error) {
	return r.RunGitCommandAndGetOutput("branch", "--show-current")
}

// ListCommitMessages returns the subjects of the commits in from..to, newest first.
func (r *GitRepo) ListCommitMessages(from, to string) ([]string, error) {
	output, err := r.RunGitCommandAndGetOutput("log", "--format=%s", from+".."+to)
	if err != nil {
		return nil, err
	}
	return splitLines(output), nil
}

// splitLines splits a string by newlines and returns non-empty lines.
func splitLines(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return []string{}
	}
	return strings.Split(s, "\n")
}

// CreateBareRemote creates a bare git repository to act as a remote.
// Returns the path to the bare repository.
func (r *GitRepo) CreateBareRemote(name string) (string, error) {
	// Sibling of the working copy so each test gets its own remote
	bareDir := r.Dir + "-" + name + ".git"

	cmd := exec.Command("git", "init", "--bare", "-b", "main", bareDir)
	cmd.Env = gitEnv()
	if output, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("failed to create bare repo: %w, output: %s", err, string(output))
	}

	if err := r.runGitCommand("remote", "add", name, bareDir); err != nil {
		return "", fmt.Errorf("failed to add remote: %w", err)
	}

	return bareDir, nil
}

// PushBranch pushes a branch to a remote and sets it as upstream.
func (r *GitRepo) PushBranch(remote, branch string) error {
	return r.runGitCommand("push", "-u", remote, branch)
}

// ForcePushBranch force pushes a branch to a remote.
func (r *GitRepo) ForcePushBranch(remote, branch string) error {
	return r.runGitCommand("push", "-f", remote, branch)
}

// Fetch updates the remote-tracking branches of remote.
func (r *GitRepo) Fetch(remote string) error {
	return r.runGitCommand("fetch", "--prune", remote)
}

// GetRevision returns the SHA of a revision (branch, tag, or commit reference).
func (r *GitRepo) GetRevision(rev string) (string, error) {
	return r.RunGitCommandAndGetOutput("rev-parse", rev)
}

// GetCommitCount returns the number of commits between two refs.
func (r *GitRepo) GetCommitCount(from, to string) (int, error) {
	output, err := r.RunGitCommandAndGetOutput("rev-list", "--count", from+".."+to)
	if err != nil {
		return 0, err
	}
	var count int
	if _, err := fmt.Sscanf(output, "%d", &count); err != nil {
		return 0, fmt.Errorf("failed to parse commit count: %w", err)
	}
	return count, nil
}

// IsClean reports whether the working tree has no changes, untracked files included.
func (r *GitRepo) IsClean() (bool, error) {
	output, err := r.RunGitCommandAndGetOutput("status", "--porcelain")
	if err != nil {
		return false, err
	}
	return output == "", nil
}

// IsAncestor checks if the first ref is an ancestor of the second ref.
func (r *GitRepo) IsAncestor(ancestor, descendant string) bool {
	return r.runGitCommand("merge-base", "--is-ancestor", ancestor, descendant) == nil
}
