// Package errors provides sentinel errors and custom error types for small-git.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common conditions
var (
	// ErrFatal marks a condition the tool has no policy for. The operator
	// has to intervene manually.
	ErrFatal = errors.New("fatal")

	// ErrAmbiguousMergeBase indicates that two refs do not have exactly one merge base
	ErrAmbiguousMergeBase = errors.New("ambiguous merge base")

	// ErrRebaseConflict indicates that a rebase operation encountered a conflict
	ErrRebaseConflict = errors.New("rebase conflict")

	// ErrPrecondition indicates that the repository is not in a state small-git can work with
	ErrPrecondition = errors.New("precondition failed")

	// ErrNotOnBranch indicates that HEAD is not on a branch
	ErrNotOnBranch = errors.New("not on a branch")
)

// FatalError is returned when the engine stops and hands control back to a human.
type FatalError struct {
	Message string
	Err     error
}

func (e *FatalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("💥 %s: %v", e.Message, e.Err)
	}
	return "💥 " + e.Message
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

// Is returns true if the target error is ErrFatal
func (e *FatalError) Is(target error) bool {
	return target == ErrFatal
}

// NewFatalError creates a new FatalError
func NewFatalError(message string, err error) *FatalError {
	return &FatalError{Message: message, Err: err}
}

// IsFatal reports whether err requires operator intervention.
func IsFatal(err error) bool {
	return errors.Is(err, ErrFatal)
}

// PreconditionError describes a failed startup check.
type PreconditionError struct {
	Check  string
	Detail string
}

func (e *PreconditionError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Check, e.Detail)
	}
	return e.Check
}

// Is returns true if the target error is ErrPrecondition
func (e *PreconditionError) Is(target error) bool {
	return target == ErrPrecondition
}

// NewPreconditionError creates a new PreconditionError
func NewPreconditionError(check, detail string) *PreconditionError {
	return &PreconditionError{Check: check, Detail: detail}
}

// GitCommandError represents an error from a git command execution
type GitCommandError struct {
	Command string
	Args    []string
	Stdout  string
	Stderr  string
	Err     error
}

func (e *GitCommandError) Error() string {
	msg := fmt.Sprintf("git command failed: %s", e.Command)
	if len(e.Args) > 0 {
		msg += " " + strings.Join(e.Args, " ")
	}
	if e.Stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", strings.TrimSpace(e.Stderr))
	}
	if e.Stdout != "" {
		msg += fmt.Sprintf("\nstdout: %s", strings.TrimSpace(e.Stdout))
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *GitCommandError) Unwrap() error {
	return e.Err
}

// NewGitCommandError creates a new GitCommandError
func NewGitCommandError(command string, args []string, stdout, stderr string, err error) *GitCommandError {
	return &GitCommandError{
		Command: command,
		Args:    args,
		Stdout:  stdout,
		Stderr:  stderr,
		Err:     err,
	}
}

// ExitCode is the process exit status for a failed command.
type ExitCode int

const (
	ExitSuccess ExitCode = 0
	// general error
	ExitGeneral ExitCode = 1
	// repository is not usable by small-git
	ExitPrecondition ExitCode = 2
	// operator has to step in
	ExitFatal ExitCode = 3
)

// ExitCodeFor maps an error returned by a command to a process exit code.
func ExitCodeFor(err error) ExitCode {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrFatal):
		return ExitFatal
	case errors.Is(err, ErrPrecondition), errors.Is(err, ErrNotOnBranch):
		return ExitPrecondition
	default:
		return ExitGeneral
	}
}
