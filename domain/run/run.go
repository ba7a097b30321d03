// Package run models the history of lift operations.
package run

import (
	"context"
	"time"

	"github.com/Townsend-Lab-Yale/lift-coords/domain/genome"
	"github.com/Townsend-Lab-Yale/lift-coords/domain/store"
)

// Status is the outcome of a run.
type Status string

// Status values.
const (
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Run records one lift operation.
type Run struct {
	id         string
	source     genome.Build
	target     genome.Build
	chains     []string
	inputRows  int
	lifted     int
	unlifted   int
	status     Status
	errText    string
	startedAt  time.Time
	finishedAt time.Time
}

// New starts a run record.
func New(id string, source, target genome.Build, chains []string, inputRows int, startedAt time.Time) Run {
	return Run{
		id:        id,
		source:    source,
		target:    target,
		chains:    append([]string(nil), chains...),
		inputRows: inputRows,
		startedAt: startedAt,
	}
}

// Reconstruct rebuilds a Run from persisted values.
func Reconstruct(
	id string,
	source, target genome.Build,
	chains []string,
	inputRows, lifted, unlifted int,
	status Status,
	errText string,
	startedAt, finishedAt time.Time,
) Run {
	return Run{
		id:         id,
		source:     source,
		target:     target,
		chains:     chains,
		inputRows:  inputRows,
		lifted:     lifted,
		unlifted:   unlifted,
		status:     status,
		errText:    errText,
		startedAt:  startedAt,
		finishedAt: finishedAt,
	}
}

// Succeed returns the run marked successful with its row counts.
func (r Run) Succeed(lifted, unlifted int, at time.Time) Run {
	r.lifted = lifted
	r.unlifted = unlifted
	r.status = StatusSucceeded
	r.finishedAt = at
	return r
}

// Fail returns the run marked failed.
func (r Run) Fail(err error, at time.Time) Run {
	r.status = StatusFailed
	if err != nil {
		r.errText = err.Error()
	}
	r.finishedAt = at
	return r
}

// ID returns the run identifier.
func (r Run) ID() string { return r.id }

// Source returns the source build.
func (r Run) Source() genome.Build { return r.source }

// Target returns the target build.
func (r Run) Target() genome.Build { return r.target }

// Chains returns the chain files applied, in order.
func (r Run) Chains() []string { return append([]string(nil), r.chains...) }

// InputRows returns the number of rows submitted.
func (r Run) InputRows() int { return r.inputRows }

// Lifted returns the number of rows that mapped through every hop.
func (r Run) Lifted() int { return r.lifted }

// Unlifted returns the number of rows that failed to map.
func (r Run) Unlifted() int { return r.unlifted }

// Status returns the run outcome.
func (r Run) Status() Status { return r.status }

// ErrorText returns the failure message, if any.
func (r Run) ErrorText() string { return r.errText }

// StartedAt returns when the run began.
func (r Run) StartedAt() time.Time { return r.startedAt }

// FinishedAt returns when the run ended.
func (r Run) FinishedAt() time.Time { return r.finishedAt }

// Duration returns the elapsed run time.
func (r Run) Duration() time.Duration {
	if r.finishedAt.IsZero() {
		return 0
	}
	return r.finishedAt.Sub(r.startedAt)
}

// Store persists runs.
type Store interface {
	Save(ctx context.Context, r Run) (Run, error)
	Find(ctx context.Context, options ...store.Option) ([]Run, error)
	FindOne(ctx context.Context, options ...store.Option) (Run, error)
}

// WithID filters by run id.
func WithID(id string) store.Option {
	return store.WithCondition("id", id)
}

// WithStatus filters by outcome.
func WithStatus(s Status) store.Option {
	return store.WithCondition("status", string(s))
}

// Newest orders runs newest first.
func Newest() store.Option {
	return store.WithOrderDesc("started_at")
}
