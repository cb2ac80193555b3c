package rta

import (
	"sort"
	"strings"

	"github.com/Maeell04/TP1-Real-time-system/internal/task"
)

// Policy selects how static priorities are assigned before the
// response-time analysis runs.
type Policy int

const (
	// RateMonotonic ranks tasks by period, shortest first.
	RateMonotonic Policy = iota
	// DeadlineMonotonic ranks tasks by relative deadline, shortest first.
	DeadlineMonotonic
	// HighestPriorityFirst ranks tasks by their explicit priority,
	// larger values first.
	HighestPriorityFirst
)

func (p Policy) String() string {
	switch p {
	case RateMonotonic:
		return "rm"
	case DeadlineMonotonic:
		return "dm"
	case HighestPriorityFirst:
		return "hpf"
	default:
		return "unknown"
	}
}

// ParsePolicy maps a policy name to its Policy value. Names are matched
// case-insensitively.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rm", "rate-monotonic":
		return RateMonotonic, nil
	case "dm", "deadline-monotonic":
		return DeadlineMonotonic, nil
	case "hpf", "fixed-priority":
		return HighestPriorityFirst, nil
	}
	return 0, task.NewValidationError("unknown scheduling policy %q (want rm, dm or hpf)", s)
}

// Order returns the tasks sorted most urgent first under policy. The
// input slice is left untouched. Ties break on the task name so equal
// inputs always order the same way. HighestPriorityFirst requires every
// task to carry a distinct explicit priority and compares the values
// exactly as given, larger meaning more urgent.
func Order(tasks []*task.StaticTask, policy Policy) ([]*task.StaticTask, error) {
	ordered := make([]*task.StaticTask, len(tasks))
	copy(ordered, tasks)

	switch policy {
	case RateMonotonic:
		sort.SliceStable(ordered, func(i, j int) bool {
			a, b := ordered[i], ordered[j]
			if a.Period() != b.Period() {
				return a.Period() < b.Period()
			}
			if a.Deadline() != b.Deadline() {
				return a.Deadline() < b.Deadline()
			}
			return a.Name() < b.Name()
		})
	case DeadlineMonotonic:
		sort.SliceStable(ordered, func(i, j int) bool {
			a, b := ordered[i], ordered[j]
			if a.Deadline() != b.Deadline() {
				return a.Deadline() < b.Deadline()
			}
			if a.Period() != b.Period() {
				return a.Period() < b.Period()
			}
			return a.Name() < b.Name()
		})
	case HighestPriorityFirst:
		var missing []string
		for _, st := range tasks {
			if _, ok := st.Priority(); !ok {
				missing = append(missing, st.Name())
			}
		}
		if len(missing) > 0 {
			return nil, task.NewValidationError(
				"hpf ordering requires a priority for every task (missing: %s)",
				strings.Join(missing, ", "))
		}
		seen := make(map[int]string, len(tasks))
		for _, st := range tasks {
			p, _ := st.Priority()
			if prev, ok := seen[p]; ok {
				return nil, task.NewValidationError(
					"duplicate priority %d for tasks %q and %q", p, prev, st.Name())
			}
			seen[p] = st.Name()
		}
		sort.SliceStable(ordered, func(i, j int) bool {
			a, b := ordered[i], ordered[j]
			pa, _ := a.Priority()
			pb, _ := b.Priority()
			if pa != pb {
				return pa > pb
			}
			return a.Name() < b.Name()
		})
	default:
		return nil, task.NewValidationError("unknown scheduling policy")
	}
	return ordered, nil
}
