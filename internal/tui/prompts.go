package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// ErrPromptCancelled is returned when the user interrupts a prompt with Ctrl+C or Esc.
var ErrPromptCancelled = errors.New("prompt cancelled")

// IsInteractive returns true when prompts can be shown: stdin and stdout are
// terminals and SMALL_GIT_NO_INTERACTIVE is not set.
func IsInteractive() bool {
	if os.Getenv("SMALL_GIT_NO_INTERACTIVE") != "" {
		return false
	}
	return (isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())) &&
		(isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()))
}

type confirmKeys struct {
	yes    key.Binding
	no     key.Binding
	accept key.Binding
	quit   key.Binding
}

var defaultConfirmKeys = confirmKeys{
	yes:    key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "yes")),
	no:     key.NewBinding(key.WithKeys("n", "N"), key.WithHelp("n", "no")),
	accept: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "no")),
	quit:   key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("ctrl+c", "cancel")),
}

// confirmModel is a simple yes/no confirmation prompt model
type confirmModel struct {
	prompt string
	choice bool
	done   bool
	err    error
	keys   confirmKeys
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.yes):
		m.choice = true
	case key.Matches(keyMsg, m.keys.no):
		m.choice = false
	case key.Matches(keyMsg, m.keys.accept):
	case key.Matches(keyMsg, m.keys.quit):
		m.err = ErrPromptCancelled
	default:
		return m, nil
	}
	m.done = true
	return m, tea.Quit
}

func (m confirmModel) View() string {
	if m.done {
		return ""
	}
	yesNo := "[y/N]"
	if m.choice {
		yesNo = "[Y/n]"
	}
	return lipgloss.NewStyle().Margin(1, 0).Render(fmt.Sprintf("%s %s", m.prompt, yesNo))
}

// PromptConfirmer asks yes/no questions on a terminal. Enter answers no.
type PromptConfirmer struct {
	in    io.Reader
	out   io.Writer
	splog *Splog
}

// NewPromptConfirmer creates a confirmer reading from in and drawing on out.
// The answer is echoed to splog so the log shows every decision.
func NewPromptConfirmer(in io.Reader, out io.Writer, splog *Splog) *PromptConfirmer {
	return &PromptConfirmer{in: in, out: out, splog: splog}
}

// Confirm shows the prompt and waits for an answer.
func (c *PromptConfirmer) Confirm(ctx context.Context, prompt string) (bool, error) {
	m := confirmModel{prompt: prompt, keys: defaultConfirmKeys}

	p := tea.NewProgram(m, tea.WithInput(c.in), tea.WithOutput(c.out), tea.WithContext(ctx))
	model, err := p.Run()
	if err != nil {
		return false, err
	}

	final, ok := model.(confirmModel)
	if !ok {
		return false, fmt.Errorf("unexpected model type")
	}
	if final.err != nil {
		return false, final.err
	}
	if c.splog != nil {
		c.splog.Info("%s %s", prompt, answer(final.choice))
	}
	return final.choice, nil
}

// Decline answers no to every question. Used when nobody is there to ask.
type Decline struct {
	splog *Splog
}

// NewDecline creates a Decline confirmer that logs what it declined.
func NewDecline(splog *Splog) *Decline {
	return &Decline{splog: splog}
}

// Confirm always returns false.
func (d *Decline) Confirm(_ context.Context, prompt string) (bool, error) {
	if d.splog != nil {
		d.splog.Info("%s %s (non-interactive)", prompt, answer(false))
	}
	return false, nil
}

// Accept answers yes to every question (--yes).
type Accept struct {
	splog *Splog
}

// NewAccept creates an Accept confirmer that logs what it accepted.
func NewAccept(splog *Splog) *Accept {
	return &Accept{splog: splog}
}

// Confirm always returns true.
func (a *Accept) Confirm(_ context.Context, prompt string) (bool, error) {
	if a.splog != nil {
		a.splog.Info("%s %s (--yes)", prompt, answer(true))
	}
	return true, nil
}

func answer(yes bool) string {
	if yes {
		return "y"
	}
	return "n"
}

// PromptText asks for a line of text with a default value
func PromptText(message, defaultValue string) (string, error) {
	var value string
	prompt := &survey.Input{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &value); err != nil {
		return "", ErrPromptCancelled
	}
	return value, nil
}
