package rta

import "fmt"

// ConvergenceError reports that the response-time recurrence for a task
// kept growing without either converging or overshooting its deadline
// within the iteration cap.
type ConvergenceError struct {
	TaskName   string
	Iterations int
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("response time of task %q did not converge after %d iterations", e.TaskName, e.Iterations)
}
