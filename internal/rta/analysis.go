// Package rta implements worst-case response-time analysis for
// fixed-priority scheduling of periodic task sets.
//
// Tasks are first ranked by a Policy (rate monotonic, deadline
// monotonic, or explicit priorities), then each task's worst-case
// response time is computed with the standard fixed-point recurrence:
// the response of a task is its own computation time, plus the longest
// blocking by a less urgent task when preemption is disabled, plus the
// interference of every more urgent task released while it runs. A task
// set is feasible when every response time stays within its deadline.
package rta

import (
	"math"

	"github.com/Maeell04/TP1-Real-time-system/internal/task"
)

// maxIterations caps the response-time recurrence. Utilization at or
// above 1 can make the sequence grow forever without overshooting a
// distant deadline; hitting the cap is reported as a ConvergenceError.
const maxIterations = 1000

// Result is the response-time analysis of a single task.
type Result struct {
	Task *task.StaticTask
	// Rank is the position in the priority order, 1 being most urgent.
	Rank int
	// ResponseTime is the fixed point of the recurrence, or the first
	// value that overshot the deadline when DeadlineMet is false.
	ResponseTime float64
	DeadlineMet  bool
	// Iterations counts the recurrence evaluations performed; zero when
	// no more urgent task interferes.
	Iterations int
	// Blocking is the longest time a less urgent task can hold the
	// processor; zero under preemptive scheduling.
	Blocking float64
}

// Report is the feasibility verdict for a whole task set.
type Report struct {
	Policy     Policy
	Preemptive bool
	// Feasible is true when every task meets its deadline.
	Feasible bool
	// Results holds one entry per task, most urgent first.
	Results []Result
}

// CheckFeasibility ranks tasks under policy and runs the response-time
// analysis on each of them. It fails with a validation error when the
// ordering is ill-defined and with a ConvergenceError when a recurrence
// exceeds the iteration cap.
func CheckFeasibility(tasks []*task.StaticTask, policy Policy, preemptive bool) (*Report, error) {
	ordered, err := Order(tasks, policy)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Policy:     policy,
		Preemptive: preemptive,
		Feasible:   true,
		Results:    make([]Result, 0, len(ordered)),
	}
	for pos := range ordered {
		res, err := analyzeTask(ordered, pos, preemptive)
		if err != nil {
			return nil, err
		}
		if !res.DeadlineMet {
			report.Feasible = false
		}
		report.Results = append(report.Results, res)
	}
	return report, nil
}

// blockingTime returns the worst-case blocking suffered by the task at
// pos in the priority order: with preemption disabled, a less urgent
// task that just started cannot be evicted, so the longest lower
// computation time bounds the wait.
func blockingTime(ordered []*task.StaticTask, pos int, preemptive bool) float64 {
	if preemptive {
		return 0
	}
	blocking := 0.0
	for _, lower := range ordered[pos+1:] {
		if c := lower.Computation(); c > blocking {
			blocking = c
		}
	}
	return blocking
}

// analyzeTask iterates the response-time recurrence for the task at pos
// in the priority order until it converges, overshoots the deadline, or
// hits the iteration cap.
func analyzeTask(ordered []*task.StaticTask, pos int, preemptive bool) (Result, error) {
	st := ordered[pos]
	wcet := st.Computation()
	deadline := st.Deadline()
	blocking := blockingTime(ordered, pos, preemptive)
	higher := ordered[:pos]

	response := wcet + blocking
	if len(higher) == 0 {
		return Result{
			Task:         st,
			Rank:         pos + 1,
			ResponseTime: response,
			DeadlineMet:  response-deadline <= task.Epsilon,
			Iterations:   0,
			Blocking:     blocking,
		}, nil
	}

	iterations := 0
	for iterations < maxIterations {
		interference := 0.0
		for _, h := range higher {
			interference += math.Ceil(response/h.Period()-task.Epsilon) * h.Computation()
		}
		next := wcet + blocking + interference
		iterations++

		if next-deadline > task.Epsilon {
			return Result{
				Task:         st,
				Rank:         pos + 1,
				ResponseTime: next,
				DeadlineMet:  false,
				Iterations:   iterations,
				Blocking:     blocking,
			}, nil
		}
		if math.Abs(next-response) <= task.Epsilon {
			return Result{
				Task:         st,
				Rank:         pos + 1,
				ResponseTime: next,
				DeadlineMet:  true,
				Iterations:   iterations,
				Blocking:     blocking,
			}, nil
		}
		response = next
	}
	return Result{}, &ConvergenceError{TaskName: st.Name(), Iterations: iterations}
}
