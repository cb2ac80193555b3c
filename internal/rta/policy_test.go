package rta

import (
	"errors"
	"strings"
	"testing"

	"github.com/Maeell04/TP1-Real-time-system/internal/task"
)

func fptr(v float64) *float64 { return &v }

func iptr(v int) *int { return &v }

func mustStatic(t *testing.T, p task.Params, priority *int) *task.StaticTask {
	t.Helper()
	st, err := task.NewStatic(p, priority)
	if err != nil {
		t.Fatalf("task %q: %v", p.Name, err)
	}
	return st
}

func names(tasks []*task.StaticTask) []string {
	out := make([]string, len(tasks))
	for i, st := range tasks {
		out[i] = st.Name()
	}
	return out
}

func TestParsePolicy(t *testing.T) {
	cases := []struct {
		in   string
		want Policy
	}{
		{"rm", RateMonotonic},
		{"RM", RateMonotonic},
		{"rate-monotonic", RateMonotonic},
		{" dm ", DeadlineMonotonic},
		{"deadline-monotonic", DeadlineMonotonic},
		{"hpf", HighestPriorityFirst},
		{"fixed-priority", HighestPriorityFirst},
	}
	for _, tc := range cases {
		got, err := ParsePolicy(tc.in)
		if err != nil {
			t.Errorf("ParsePolicy(%q) error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParsePolicy(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}

	for _, in := range []string{"", "edf", "static"} {
		_, err := ParsePolicy(in)
		var verr *task.ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("ParsePolicy(%q) error = %v, want validation error", in, err)
		}
	}
}

func TestPolicyString(t *testing.T) {
	cases := map[Policy]string{
		RateMonotonic:        "rm",
		DeadlineMonotonic:    "dm",
		HighestPriorityFirst: "hpf",
		Policy(42):           "unknown",
	}
	for p, want := range cases {
		if got := p.String(); got != want {
			t.Errorf("Policy(%d).String() = %q, want %q", int(p), got, want)
		}
	}
}

func TestOrderRateMonotonic(t *testing.T) {
	tasks := []*task.StaticTask{
		mustStatic(t, task.Params{Name: "slow", Computation: 1, Period: 12}, nil),
		mustStatic(t, task.Params{Name: "beta", Computation: 1, Period: 6, Deadline: fptr(5)}, nil),
		mustStatic(t, task.Params{Name: "alpha", Computation: 1, Period: 6, Deadline: fptr(5)}, nil),
		mustStatic(t, task.Params{Name: "tight", Computation: 1, Period: 6, Deadline: fptr(3)}, nil),
		mustStatic(t, task.Params{Name: "fast", Computation: 1, Period: 2}, nil),
	}
	ordered, err := Order(tasks, RateMonotonic)
	if err != nil {
		t.Fatalf("Order: %v", err)
	}
	want := []string{"fast", "tight", "alpha", "beta", "slow"}
	if got := names(ordered); !equalStrings(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
	if got := names(tasks); !equalStrings(got, []string{"slow", "beta", "alpha", "tight", "fast"}) {
		t.Errorf("input slice reordered: %v", got)
	}
}

func TestOrderDeadlineMonotonic(t *testing.T) {
	tasks := []*task.StaticTask{
		mustStatic(t, task.Params{Name: "loose", Computation: 1, Period: 4}, nil),
		mustStatic(t, task.Params{Name: "late", Computation: 1, Period: 9, Deadline: fptr(3)}, nil),
		mustStatic(t, task.Params{Name: "early", Computation: 1, Period: 7, Deadline: fptr(3)}, nil),
	}
	ordered, err := Order(tasks, DeadlineMonotonic)
	if err != nil {
		t.Fatalf("Order: %v", err)
	}
	want := []string{"early", "late", "loose"}
	if got := names(ordered); !equalStrings(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestOrderHighestPriorityFirst(t *testing.T) {
	tasks := []*task.StaticTask{
		mustStatic(t, task.Params{Name: "low", Computation: 1, Period: 2}, iptr(-5)),
		mustStatic(t, task.Params{Name: "high", Computation: 1, Period: 30}, iptr(7)),
		mustStatic(t, task.Params{Name: "mid", Computation: 1, Period: 10}, iptr(-1)),
	}
	ordered, err := Order(tasks, HighestPriorityFirst)
	if err != nil {
		t.Fatalf("Order: %v", err)
	}
	// Explicit priorities win over periods, larger value first, negative
	// values compared as given.
	want := []string{"high", "mid", "low"}
	if got := names(ordered); !equalStrings(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestOrderHighestPriorityFirstMissing(t *testing.T) {
	tasks := []*task.StaticTask{
		mustStatic(t, task.Params{Name: "a", Computation: 1, Period: 2}, iptr(1)),
		mustStatic(t, task.Params{Name: "b", Computation: 1, Period: 3}, nil),
		mustStatic(t, task.Params{Name: "c", Computation: 1, Period: 4}, nil),
	}
	_, err := Order(tasks, HighestPriorityFirst)
	var verr *task.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %v, want validation error", err)
	}
	for _, name := range []string{"b", "c"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("error %q does not name task %q", err, name)
		}
	}
}

func TestOrderHighestPriorityFirstDuplicate(t *testing.T) {
	tasks := []*task.StaticTask{
		mustStatic(t, task.Params{Name: "a", Computation: 1, Period: 2}, iptr(3)),
		mustStatic(t, task.Params{Name: "b", Computation: 1, Period: 3}, iptr(3)),
	}
	_, err := Order(tasks, HighestPriorityFirst)
	var verr *task.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %v, want validation error", err)
	}
	if !strings.Contains(err.Error(), "duplicate priority 3") {
		t.Errorf("error %q does not report the duplicate value", err)
	}
}

func TestOrderUnknownPolicy(t *testing.T) {
	_, err := Order(nil, Policy(42))
	var verr *task.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %v, want validation error", err)
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
