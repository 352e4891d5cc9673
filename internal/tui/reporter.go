package tui

import (
	"fmt"

	"smallgit.dev/smallgit/internal/action"
	sgerrors "smallgit.dev/smallgit/internal/errors"
)

// Reporter announces every state transition of an action so the operator
// can see which remedial step was taken or skipped.
type Reporter struct {
	splog *Splog
}

// NewReporter creates a reporter that writes through splog.
func NewReporter(splog *Splog) *Reporter {
	return &Reporter{splog: splog}
}

// Splog returns the underlying logger.
func (r *Reporter) Splog() *Splog {
	return r.splog
}

// Start announces that an action begins.
func (r *Reporter) Start(a action.Action) {
	r.splog.Info("%s START", a.Label())
}

// End announces that an action completed.
func (r *Reporter) End(a action.Action) {
	r.splog.Info(endStyle.Render(a.Label() + " END"))
}

// Cancel announces that an action was declined and nothing else happens.
func (r *Reporter) Cancel(a action.Action) {
	r.splog.Warn(cancelStyle.Render(a.Label() + " CANCELLED"))
}

// Fail prints the cause and announces that an action failed.
func (r *Reporter) Fail(a action.Action, err error) {
	if err != nil {
		r.splog.Error("%v", err)
	}
	r.splog.Error(failStyle.Render(a.Label() + " FAILED"))
}

// Info prints a message attributed to an action.
// nolint // format string validation is handled internally via fmt.Sprintf
func (r *Reporter) Info(a action.Action, format string, args ...interface{}) {
	r.splog.Info("%s: %s", a.Label(), fmt.Sprintf(format, args...))
}

// Warn prints a highlighted warning.
// nolint // format string validation is handled internally via fmt.Sprintf
func (r *Reporter) Warn(format string, args ...interface{}) {
	r.splog.Warn(warnStyle.Render("🚨 " + fmt.Sprintf(format, args...)))
}

// Fatal builds the error that stops the command and hands over to a human.
func (r *Reporter) Fatal(message string, cause error) error {
	return sgerrors.NewFatalError(message, cause)
}

// ConfirmPrompt styles a yes/no question.
func (r *Reporter) ConfirmPrompt(question string) string {
	return confirmStyle.Render("✅ " + question)
}
