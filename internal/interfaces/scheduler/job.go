package scheduler

import "context"

// Job represents a unit of work processed by the worker pool.
type Job interface {
	// Execute runs the job. The context carries the job timeout.
	Execute(ctx context.Context) error

	// UserID identifies the user the job runs on behalf of (for logging).
	UserID() string

	// Description returns a human-readable description of the job.
	Description() string
}
