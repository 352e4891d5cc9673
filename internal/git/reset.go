package git

import (
	"context"
	"fmt"
)

// ResetMode selects what git reset does with the index and working tree
type ResetMode int

const (
	// ResetMixed moves the branch and index, keeping the working tree
	ResetMixed ResetMode = iota
	// ResetSoft moves only the branch
	ResetSoft
	// ResetHard discards the index and working tree too
	ResetHard
)

func (m ResetMode) String() string {
	switch m {
	case ResetSoft:
		return "soft"
	case ResetHard:
		return "hard"
	default:
		return "mixed"
	}
}

func (m ResetMode) flag() string {
	switch m {
	case ResetSoft:
		return "--soft"
	case ResetHard:
		return "--hard"
	default:
		return "--mixed"
	}
}

// Reset moves the current branch to rev
func (g *CLIGateway) Reset(ctx context.Context, rev string, mode ResetMode) error {
	if _, err := g.runner.Run(ctx, "reset", "-q", mode.flag(), rev); err != nil {
		return fmt.Errorf("failed to reset to %s: %w", rev, err)
	}
	return nil
}
