package task

import "math"

// Job is one released instance of a Task during a simulation run. Jobs
// are transient: they are generated per run, mutated by the simulator
// as they execute, and discarded afterwards. The Task field is a plain
// handle into the caller's task collection; a Job never outlives it.
type Job struct {
	Task             *Task
	Instance         int
	ReleaseTime      float64
	AbsoluteDeadline float64
	Remaining        float64
	StartedAt        *float64
	CompletedAt      *float64
}

// DeadlineMissed reports whether the job completed later than its
// absolute deadline. Incomplete jobs never count as missed.
func (j *Job) DeadlineMissed() bool {
	if j.CompletedAt == nil {
		return false
	}
	return *j.CompletedAt-j.AbsoluteDeadline > Epsilon
}

// Jobs generates the ordered job instances of t released within horizon.
// Instance k is released at offset+(k−1)·period. Generation stops once a
// release exceeds the inclusion limit (the horizon itself, or horizon+ε
// when includeAtHorizon is set), with the comparison tolerant to ε. The
// sequence is finite and possibly empty; t is never mutated.
func (t *Task) Jobs(horizon float64, includeAtHorizon bool) ([]*Job, error) {
	if math.IsNaN(horizon) || math.IsInf(horizon, 0) {
		return nil, NewValidationError("horizon must be a finite number")
	}
	if horizon < 0 {
		return nil, NewValidationError("horizon must be non negative")
	}

	limit := horizon
	if includeAtHorizon {
		limit += Epsilon
	}

	var jobs []*Job
	for instance := 1; ; instance++ {
		release := t.offset + float64(instance-1)*t.period
		if release > limit+Epsilon {
			break
		}
		jobs = append(jobs, &Job{
			Task:             t,
			Instance:         instance,
			ReleaseTime:      release,
			AbsoluteDeadline: release + t.deadline,
			Remaining:        t.computation,
		})
	}
	return jobs, nil
}
