package sim

import (
	"math"

	"github.com/Maeell04/TP1-Real-time-system/internal/task"
)

// TimelineEntry is one half-open slice [Start, End) of processor time,
// attributed either to a (task, instance) pair or to idle time. For
// execution slices Deadline carries the job's absolute deadline and
// Completed reports whether the job finished at End; idle slices leave
// all job fields zeroed.
type TimelineEntry struct {
	Task      string  `json:"task,omitempty"`
	Instance  int     `json:"instance,omitempty"`
	Start     float64 `json:"start"`
	End       float64 `json:"end"`
	Deadline  float64 `json:"deadline,omitempty"`
	Completed bool    `json:"completed"`
	Idle      bool    `json:"idle,omitempty"`
}

// Duration returns the length of the slice.
func (e TimelineEntry) Duration() float64 {
	return e.End - e.Start
}

func idleEntry(start, end float64) TimelineEntry {
	return TimelineEntry{Start: start, End: end, Idle: true}
}

// mergeTimeline drops slices of zero (within ε) duration and coalesces
// consecutive slices of the same job, or consecutive idle slices, whose
// boundaries touch within ε. Simultaneous release and completion events
// split an execution span into back-to-back fragments; merging restores
// one entry per contiguous run, keeping the completion flag of the last
// fragment.
func mergeTimeline(entries []TimelineEntry) []TimelineEntry {
	merged := make([]TimelineEntry, 0, len(entries))
	for _, e := range entries {
		if e.Duration() <= task.Epsilon {
			continue
		}
		if n := len(merged); n > 0 {
			last := &merged[n-1]
			if e.Idle == last.Idle && e.Task == last.Task && e.Instance == last.Instance &&
				e.Deadline == last.Deadline && math.Abs(e.Start-last.End) <= task.Epsilon {
				last.End = e.End
				last.Completed = e.Completed
				continue
			}
		}
		merged = append(merged, e)
	}
	return merged
}
