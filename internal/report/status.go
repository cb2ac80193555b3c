package report

import (
	"github.com/Maeell04/TP1-Real-time-system/internal/sim"
	"github.com/Maeell04/TP1-Real-time-system/internal/task"
)

// SegmentStatus classifies what a timeline slice meant for its job.
type SegmentStatus int

const (
	StatusIdle SegmentStatus = iota
	StatusCompleted
	StatusLate
	StatusPreempted
	StatusUnfinished
)

func (st SegmentStatus) String() string {
	switch st {
	case StatusIdle:
		return "Idle"
	case StatusCompleted:
		return "Completed"
	case StatusLate:
		return "Late"
	case StatusPreempted:
		return "Preempted"
	case StatusUnfinished:
		return "Unfinished"
	default:
		return "Unknown"
	}
}

// classify pairs every entry with its status. A completion past the
// deadline is late. A slice that neither completes nor idles either ran
// into the simulation end, leaving its job unfinished, or was cut short
// by a more urgent one.
func classify(entries []sim.TimelineEntry, simEnd float64) []SegmentStatus {
	out := make([]SegmentStatus, len(entries))
	for i, e := range entries {
		switch {
		case e.Idle:
			out[i] = StatusIdle
		case e.Completed && e.End-e.Deadline > task.Epsilon:
			out[i] = StatusLate
		case e.Completed:
			out[i] = StatusCompleted
		case e.End >= simEnd-task.Epsilon:
			out[i] = StatusUnfinished
		default:
			out[i] = StatusPreempted
		}
	}
	return out
}
