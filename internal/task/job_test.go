package task

import (
	"errors"
	"math"
	"testing"
)

func mustTask(t *testing.T, p Params) *Task {
	t.Helper()
	tk, err := New(p)
	if err != nil {
		t.Fatalf("New(%+v): %v", p, err)
	}
	return tk
}

func TestJobsReleasePattern(t *testing.T) {
	tk := mustTask(t, Params{Name: "a", Computation: 1, Period: 3, Deadline: fptr(2), Offset: 1})

	jobs, err := tk.Jobs(10, false)
	if err != nil {
		t.Fatalf("Jobs: %v", err)
	}
	wantReleases := []float64{1, 4, 7, 10}
	if len(jobs) != len(wantReleases) {
		t.Fatalf("got %d jobs, want %d", len(jobs), len(wantReleases))
	}
	for i, j := range jobs {
		if j.Instance != i+1 {
			t.Errorf("job %d: Instance = %d, want %d", i, j.Instance, i+1)
		}
		if j.ReleaseTime != wantReleases[i] {
			t.Errorf("job %d: ReleaseTime = %v, want %v", i, j.ReleaseTime, wantReleases[i])
		}
		if want := wantReleases[i] + 2; j.AbsoluteDeadline != want {
			t.Errorf("job %d: AbsoluteDeadline = %v, want %v", i, j.AbsoluteDeadline, want)
		}
		if j.Remaining != 1 {
			t.Errorf("job %d: Remaining = %v, want 1", i, j.Remaining)
		}
		if j.StartedAt != nil || j.CompletedAt != nil {
			t.Errorf("job %d: fresh job already carries start/completion stamps", i)
		}
	}
}

func TestJobsHorizonEdge(t *testing.T) {
	tk := mustTask(t, Params{Name: "a", Computation: 2, Period: 5})

	// A release landing exactly on the horizon stays within the
	// inclusion limit in both modes; only releases strictly beyond
	// it are cut off.
	jobs, err := tk.Jobs(10, false)
	if err != nil {
		t.Fatalf("Jobs: %v", err)
	}
	if len(jobs) != 3 {
		t.Fatalf("Jobs(10, false): got %d jobs, want 3", len(jobs))
	}
	if last := jobs[len(jobs)-1]; last.ReleaseTime != 10 {
		t.Errorf("last release = %v, want 10", last.ReleaseTime)
	}

	jobs, err = tk.Jobs(9.5, false)
	if err != nil {
		t.Fatalf("Jobs: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("Jobs(9.5, false): got %d jobs, want 2", len(jobs))
	}
}

func TestJobsZeroHorizon(t *testing.T) {
	tk := mustTask(t, Params{Name: "a", Computation: 1, Period: 4})
	jobs, err := tk.Jobs(0, false)
	if err != nil {
		t.Fatalf("Jobs: %v", err)
	}
	if len(jobs) != 1 || jobs[0].ReleaseTime != 0 {
		t.Fatalf("Jobs(0, false) = %d jobs, want the single release at 0", len(jobs))
	}
}

func TestJobsOffsetBeyondHorizon(t *testing.T) {
	tk := mustTask(t, Params{Name: "late", Computation: 1, Period: 4, Offset: 12})
	jobs, err := tk.Jobs(10, true)
	if err != nil {
		t.Fatalf("Jobs: %v", err)
	}
	if len(jobs) != 0 {
		t.Fatalf("got %d jobs, want none before the first offset", len(jobs))
	}
}

func TestJobsRejectsBadHorizon(t *testing.T) {
	tk := mustTask(t, Params{Name: "a", Computation: 1, Period: 4})
	for _, h := range []float64{-1, math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := tk.Jobs(h, false)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("Jobs(%v) error = %v, want *ValidationError", h, err)
		}
	}
}

func TestDeadlineMissed(t *testing.T) {
	tk := mustTask(t, Params{Name: "a", Computation: 1, Period: 4})
	job := &Job{Task: tk, Instance: 1, ReleaseTime: 0, AbsoluteDeadline: 4, Remaining: 1}

	if job.DeadlineMissed() {
		t.Error("incomplete job reported as missed")
	}
	job.CompletedAt = fptr(4)
	if job.DeadlineMissed() {
		t.Error("completion exactly at the deadline reported as missed")
	}
	job.CompletedAt = fptr(4 + Epsilon/2)
	if job.DeadlineMissed() {
		t.Error("completion within epsilon of the deadline reported as missed")
	}
	job.CompletedAt = fptr(4.001)
	if !job.DeadlineMissed() {
		t.Error("late completion not reported as missed")
	}
}
