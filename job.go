package qhack

import "time"

// Job represents work to be done
type Job struct {
	ID          string
	Fn          func() (any, error)
	TTL         time.Duration
	StartTime   time.Time
	RetryPolicy *RetryPolicy
}

// JobOption is a function type for configuring jobs
type JobOption func(*Job)

// WithTTL bounds how long an unclaimed result is kept.
func WithTTL(ttl time.Duration) JobOption {
	return func(j *Job) {
		j.TTL = ttl
	}
}
