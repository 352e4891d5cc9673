// Package history provides read-only queries over branch history: merge
// bases, divergence counts and working tree state.
package history

import (
	"context"
	"fmt"
	"time"

	sgerrors "smallgit.dev/smallgit/internal/errors"
	"smallgit.dev/smallgit/internal/git"
)

// Reader is the part of the gateway history queries need.
type Reader interface {
	MergeBases(ctx context.Context, rev1, rev2 string) ([]string, error)
	CountCommits(ctx context.Context, from, to string) (int, error)
	CommitTime(ctx context.Context, rev string) (time.Time, error)
	IsDirty(ctx context.Context, includeUntracked bool) (bool, error)
}

var _ Reader = git.Gateway(nil)

// Query answers divergence questions about two revisions.
type Query struct {
	reader Reader
}

// New creates a Query backed by reader.
func New(reader Reader) *Query {
	return &Query{reader: reader}
}

// FindBase returns the unique merge base of two revisions. Zero or several
// bases mean a history shape there is no policy for, so it fails fast.
func (q *Query) FindBase(ctx context.Context, rev1, rev2 string) (string, error) {
	bases, err := q.reader.MergeBases(ctx, rev1, rev2)
	if err != nil {
		return "", err
	}
	if len(bases) != 1 {
		return "", sgerrors.NewFatalError(
			fmt.Sprintf("expected exactly one merge base of %s and %s, found %d", rev1, rev2, len(bases)),
			sgerrors.ErrAmbiguousMergeBase,
		)
	}
	return bases[0], nil
}

// CountCommits returns the number of commits reachable from to but not from from.
func (q *Query) CountCommits(ctx context.Context, from, to string) (int, error) {
	if from == to {
		return 0, nil
	}
	return q.reader.CountCommits(ctx, from, to)
}

// Divergence returns how many commits each side has that the other lacks.
func (q *Query) Divergence(ctx context.Context, local, remote string) (ahead, behind int, err error) {
	ahead, err = q.CountCommits(ctx, remote, local)
	if err != nil {
		return 0, 0, err
	}
	behind, err = q.CountCommits(ctx, local, remote)
	if err != nil {
		return 0, 0, err
	}
	return ahead, behind, nil
}

// IsDirty reports uncommitted or untracked changes.
func (q *Query) IsDirty(ctx context.Context) (bool, error) {
	return q.reader.IsDirty(ctx, true)
}

// Newer reports whether rev1 was committed strictly after rev2.
func (q *Query) Newer(ctx context.Context, rev1, rev2 string) (bool, error) {
	t1, err := q.reader.CommitTime(ctx, rev1)
	if err != nil {
		return false, err
	}
	t2, err := q.reader.CommitTime(ctx, rev2)
	if err != nil {
		return false, err
	}
	return t1.After(t2), nil
}
