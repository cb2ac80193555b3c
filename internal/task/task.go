// Package task defines the periodic task and job model shared by the
// EDF simulator and the fixed-priority response-time analyzer.
package task

import (
	"math"
	"strings"
)

// Epsilon is the fixed tolerance applied to every floating-point
// comparison in the model: equality, ordering near a boundary, and
// fixed-point convergence.
const Epsilon = 1e-9

// Params describes a periodic task before validation. Deadline may be
// nil, in which case it defaults to the period.
type Params struct {
	Name        string
	Computation float64
	Period      float64
	Deadline    *float64
	Offset      float64
}

// Task is an immutable periodic task: a computation time C, a period T,
// a relative deadline D and a first-release offset. Tasks are built
// through New, which validates every field; once constructed they are
// never mutated.
type Task struct {
	name        string
	computation float64
	period      float64
	deadline    float64
	offset      float64
}

// New validates p and returns the task it describes. It is the single
// construction boundary for the model: a non-finite value, a bound
// violation or an empty name yields a *ValidationError and no task is
// created.
func New(p Params) (*Task, error) {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return nil, NewValidationError("task name must be a non-empty string")
	}

	deadline := p.Period
	if p.Deadline != nil {
		deadline = *p.Deadline
	}
	for _, v := range []float64{p.Computation, p.Period, deadline, p.Offset} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, NewValidationError("numeric values are required for task %q", name)
		}
	}
	if p.Computation <= 0 {
		return nil, NewValidationError("computation time must be positive for task %q", name)
	}
	if p.Period <= 0 {
		return nil, NewValidationError("period must be positive for task %q", name)
	}
	if deadline <= 0 {
		return nil, NewValidationError("deadline must be positive for task %q", name)
	}
	if p.Offset < 0 {
		return nil, NewValidationError("offset cannot be negative for task %q", name)
	}

	return &Task{
		name:        name,
		computation: p.Computation,
		period:      p.Period,
		deadline:    deadline,
		offset:      p.Offset,
	}, nil
}

// Name returns the task name, unique within a task set.
func (t *Task) Name() string { return t.name }

// Computation returns the execution demand C of one job.
func (t *Task) Computation() float64 { return t.computation }

// Period returns the release period T.
func (t *Task) Period() float64 { return t.period }

// Deadline returns the relative deadline D.
func (t *Task) Deadline() float64 { return t.deadline }

// Offset returns the release time of the first job.
func (t *Task) Offset() float64 { return t.offset }

// Utilization returns the C/T ratio of the task.
func (t *Task) Utilization() float64 { return t.computation / t.period }

// StaticTask is a Task extended with the optional explicit priority used
// by the HPF policy. Larger priority values are more urgent.
type StaticTask struct {
	Task
	priority    int
	hasPriority bool
}

// NewStatic validates p exactly like New and attaches the optional
// explicit priority. priority may be nil for RM/DM analysis, where the
// policy derives the order itself.
func NewStatic(p Params, priority *int) (*StaticTask, error) {
	t, err := New(p)
	if err != nil {
		return nil, err
	}
	st := &StaticTask{Task: *t}
	if priority != nil {
		st.priority = *priority
		st.hasPriority = true
	}
	return st, nil
}

// Priority returns the explicit priority and whether one was assigned.
func (t *StaticTask) Priority() (int, bool) { return t.priority, t.hasPriority }
