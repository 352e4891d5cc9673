package testhelpers

import (
	"context"
	"sync"
)

// ScriptedConfirmer answers confirmations from a queue and records every
// prompt it saw. An empty queue answers no.
type ScriptedConfirmer struct {
	mu      sync.Mutex
	answers []bool
	prompts []string
}

// NewScriptedConfirmer creates a confirmer that gives answers in order.
func NewScriptedConfirmer(answers ...bool) *ScriptedConfirmer {
	return &ScriptedConfirmer{answers: answers}
}

// Queue appends answers.
func (c *ScriptedConfirmer) Queue(answers ...bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.answers = append(c.answers, answers...)
}

// Confirm pops the next answer.
func (c *ScriptedConfirmer) Confirm(_ context.Context, prompt string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prompts = append(c.prompts, prompt)
	if len(c.answers) == 0 {
		return false, nil
	}
	answer := c.answers[0]
	c.answers = c.answers[1:]
	return answer, nil
}

// Prompts returns every prompt asked so far.
func (c *ScriptedConfirmer) Prompts() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.prompts...)
}

// Remaining returns how many queued answers were not used.
func (c *ScriptedConfirmer) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.answers)
}
