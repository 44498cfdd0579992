package model

import (
	"context"
	"errors"

	"classscheduler/internal/mip"
)

// ErrNoFeasibleTimetable is returned when the solver proves the encoded
// model infeasible. It is an explicit result, never a silent nil timetable.
var ErrNoFeasibleTimetable = errors.New("no feasible timetable exists")

// A Logger receives the encoder's progress reporting. It is satisfied by
// *log.Logger; the default is a no-op so Build stays a function of its
// inputs.
type Logger interface {
	Printf(format string, v ...any)
}

type noopLogger struct{}

func (noopLogger) Printf(string, ...any) {}

type Scheduler interface {
	// Build encodes the input as a mixed-integer program, solves it and
	// returns the active assignments (the variables solved to 1). The solve
	// is synchronous and potentially long-running; ctx bounds it.
	Build(ctx context.Context, input ModelInput) ([]ClassStartVariable, error)

	// Verify replays every scheduling rule against a proposed timetable.
	Verify(timetable []ClassStartVariable, input ModelInput) bool
}

type Option func(*mipScheduler)

func WithLogger(logger Logger) Option {
	return func(scheduler *mipScheduler) {
		scheduler.logger = logger
	}
}

func NewScheduler(solver mip.Solver, options ...Option) Scheduler {
	scheduler := &mipScheduler{
		solver: solver,
		logger: noopLogger{},
	}
	for _, option := range options {
		option(scheduler)
	}
	return scheduler
}
