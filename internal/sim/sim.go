package sim

import (
	"math"

	"github.com/emirpasic/gods/trees/binaryheap"

	"github.com/Maeell04/TP1-Real-time-system/internal/task"
)

// Result collects the outcome of one simulation run.
type Result struct {
	// Timeline is the merged sequence of execution and idle slices,
	// contiguous from 0 to SimulationEnd.
	Timeline []TimelineEntry
	// MissedDeadlines lists every job that completed after its absolute
	// deadline, in completion order.
	MissedDeadlines []*task.Job
	// UnfinishedJobs lists every job released but not completed when the
	// horizon was reached, most urgent first.
	UnfinishedJobs []*task.Job
	// SimulationEnd is the instant the run stopped, never past the horizon.
	SimulationEnd float64
}

// futureItem keys a not-yet-released job by release time, then by
// admission order.
type futureItem struct {
	release float64
	seq     uint64
	job     *task.Job
}

// readyItem keys a released job by absolute deadline, then release time,
// then admission order. Popping the minimum yields the EDF dispatch
// choice with deterministic tie-breaks.
type readyItem struct {
	deadline float64
	release  float64
	seq      uint64
	job      *task.Job
}

func futureCmp(a, b any) int {
	ka, kb := a.(*futureItem), b.(*futureItem)
	switch {
	case ka.release < kb.release:
		return -1
	case ka.release > kb.release:
		return 1
	case ka.seq < kb.seq:
		return -1
	case ka.seq > kb.seq:
		return 1
	default:
		return 0
	}
}

func readyCmp(a, b any) int {
	ka, kb := a.(*readyItem), b.(*readyItem)
	switch {
	case ka.deadline < kb.deadline:
		return -1
	case ka.deadline > kb.deadline:
		return 1
	case ka.release < kb.release:
		return -1
	case ka.release > kb.release:
		return 1
	case ka.seq < kb.seq:
		return -1
	case ka.seq > kb.seq:
		return 1
	default:
		return 0
	}
}

// Simulate runs a preemptive earliest-deadline-first schedule of tasks
// over [0, horizon) and reports the resulting timeline, deadline misses
// and jobs cut off by the horizon. A negative or non-finite horizon is a
// validation error.
func Simulate(tasks []*task.Task, horizon float64) (*Result, error) {
	if math.IsNaN(horizon) || math.IsInf(horizon, 0) {
		return nil, task.NewValidationError("horizon must be a finite number")
	}
	if horizon < 0 {
		return nil, task.NewValidationError("horizon must be non negative")
	}

	future := binaryheap.NewWith(futureCmp)
	ready := binaryheap.NewWith(readyCmp)
	var futureSeq, readySeq uint64

	for _, t := range tasks {
		jobs, err := t.Jobs(horizon, false)
		if err != nil {
			return nil, err
		}
		for _, j := range jobs {
			future.Push(&futureItem{release: j.ReleaseTime, seq: futureSeq, job: j})
			futureSeq++
		}
	}

	now := 0.0
	var entries []TimelineEntry
	var missed []*task.Job
	var unfinished []*task.Job

	for (!future.Empty() || !ready.Empty()) && now < horizon {
		// Admit every job whose release time has arrived.
		for {
			v, ok := future.Peek()
			if !ok || v.(*futureItem).release > now {
				break
			}
			future.Pop()
			j := v.(*futureItem).job
			ready.Push(&readyItem{deadline: j.AbsoluteDeadline, release: j.ReleaseTime, seq: readySeq, job: j})
			readySeq++
		}

		v, ok := ready.Pop()
		if !ok {
			// Nothing is ready, so the processor idles until the next
			// release or the horizon, whichever comes first.
			nv, ok := future.Peek()
			if !ok {
				if now < horizon {
					entries = append(entries, idleEntry(now, horizon))
					now = horizon
				}
				break
			}
			next := math.Min(nv.(*futureItem).release, horizon)
			if next > now+task.Epsilon {
				entries = append(entries, idleEntry(now, next))
			}
			now = next
			continue
		}
		job := v.(*readyItem).job
		if job.Remaining <= task.Epsilon {
			continue
		}

		if job.StartedAt == nil {
			at := now
			job.StartedAt = &at
		}

		// The job runs until it finishes, the next release arrives, or
		// the horizon cuts it off. Only a new release can change the
		// deadline ordering, so no preemption point lies in between.
		nextRelease := math.Inf(1)
		if nv, ok := future.Peek(); ok {
			nextRelease = nv.(*futureItem).release
		}
		span := math.Min(now+job.Remaining, math.Min(nextRelease, horizon)) - now
		if span <= task.Epsilon {
			span = math.Min(job.Remaining, horizon-now)
			if span <= task.Epsilon {
				break
			}
		}

		entry := TimelineEntry{
			Task:     job.Task.Name(),
			Instance: job.Instance,
			Start:    now,
			End:      math.Min(now+span, horizon),
			Deadline: job.AbsoluteDeadline,
		}
		job.Remaining -= span
		now = entry.End

		if job.Remaining <= task.Epsilon {
			at := now
			job.CompletedAt = &at
			entry.Completed = true
			if job.DeadlineMissed() {
				missed = append(missed, job)
			}
		} else if now < horizon {
			ready.Push(&readyItem{deadline: job.AbsoluteDeadline, release: job.ReleaseTime, seq: readySeq, job: job})
			readySeq++
		} else {
			unfinished = append(unfinished, job)
		}
		entries = append(entries, entry)
	}

	// Jobs still queued when the loop stopped never got to finish. Drain
	// them in key order so the report is deterministic.
	recorded := make(map[*task.Job]bool, len(unfinished))
	for _, j := range unfinished {
		recorded[j] = true
	}
	for !ready.Empty() {
		v, _ := ready.Pop()
		j := v.(*readyItem).job
		if j.Remaining > task.Epsilon && !recorded[j] {
			unfinished = append(unfinished, j)
			recorded[j] = true
		}
	}

	return &Result{
		Timeline:        mergeTimeline(entries),
		MissedDeadlines: missed,
		UnfinishedJobs:  unfinished,
		SimulationEnd:   math.Min(now, horizon),
	}, nil
}
