// Package report renders simulation timelines and feasibility analyses
// as colored terminal output or CSV.
package report

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/gookit/color"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/Maeell04/TP1-Real-time-system/internal/rta"
	"github.com/Maeell04/TP1-Real-time-system/internal/sim"
	"github.com/Maeell04/TP1-Real-time-system/internal/task"
)

// Printer writes human-readable reports to Out.
type Printer struct {
	Out io.Writer
	// Colorize enables ANSI colors for task names and verdicts.
	Colorize bool
	// Unit is appended to every time value, e.g. "ms".
	Unit string
}

// New returns a Printer with colors enabled.
func New(out io.Writer) *Printer {
	return &Printer{Out: out, Colorize: true}
}

// TaskTable lists every task with its parameters and utilization, plus
// the total utilization of the set.
func (p *Printer) TaskTable(tasks []*task.Task) {
	names := make([]string, len(tasks))
	for i, t := range tasks {
		names[i] = t.Name()
	}
	colors := taskColors(names)
	width := nameWidth(names)

	fmt.Fprintf(p.Out, "Task set (%d tasks):\n", len(tasks))
	total := 0.0
	for _, t := range tasks {
		total += t.Utilization()
		fmt.Fprintf(p.Out, "  %s  C=%-8s T=%-8s D=%-8s offset=%-8s U=%.3f\n",
			p.taskName(colors, t.Name(), width),
			p.time(t.Computation()), p.time(t.Period()), p.time(t.Deadline()), p.time(t.Offset()),
			t.Utilization())
	}

	line := fmt.Sprintf("Total utilization: %.3f", total)
	if total > 1+task.Epsilon {
		line = p.paint(color.Style{color.FgRed, color.OpBold}, line+" (overload)")
	}
	fmt.Fprintln(p.Out, line)
}

// StaticTaskTable renders a fixed-priority set through TaskTable, over
// the embedded task parameters.
func (p *Printer) StaticTaskTable(tasks []*task.StaticTask) {
	plain := make([]*task.Task, len(tasks))
	for i, st := range tasks {
		plain[i] = &st.Task
	}
	p.TaskTable(plain)
}

// Timeline prints one line per timeline slice followed by the deadline
// misses, unfinished jobs and the instant the run stopped.
func (p *Printer) Timeline(res *sim.Result) {
	fmt.Fprintf(p.Out, "Timeline (0 to %s):\n", p.time(res.SimulationEnd))

	statuses := classify(res.Timeline, res.SimulationEnd)
	var names []string
	seen := make(map[string]bool)
	labels := make([]string, len(res.Timeline))
	for i, e := range res.Timeline {
		if e.Idle {
			labels[i] = "idle"
			continue
		}
		labels[i] = fmt.Sprintf("%s#%d", e.Task, e.Instance)
		if !seen[e.Task] {
			seen[e.Task] = true
			names = append(names, e.Task)
		}
	}
	colors := taskColors(names)
	width := nameWidth(labels)

	for i, e := range res.Timeline {
		label := fmt.Sprintf("%-*s", width, labels[i])
		if e.Idle {
			label = p.paint(color.Style{color.FgDarkGray}, label)
		} else if p.Colorize {
			label = colors[e.Task].Sprint(label)
		}
		fmt.Fprintf(p.Out, "  [%8s, %8s)  %s  %s", p.time(e.Start), p.time(e.End), label, p.status(statuses[i]))
		if !e.Idle {
			fmt.Fprintf(p.Out, "  deadline %s", p.time(e.Deadline))
		}
		fmt.Fprintln(p.Out)
	}

	if len(res.MissedDeadlines) == 0 {
		fmt.Fprintln(p.Out, p.paint(color.Style{color.FgGreen}, "No deadline misses."))
	}
	for _, j := range res.MissedDeadlines {
		fmt.Fprintln(p.Out, p.paint(color.Style{color.FgRed, color.OpBold},
			fmt.Sprintf("Deadline miss: %s#%d finished at %s, deadline was %s",
				j.Task.Name(), j.Instance, p.time(*j.CompletedAt), p.time(j.AbsoluteDeadline))))
	}
	for _, j := range res.UnfinishedJobs {
		fmt.Fprintln(p.Out, p.paint(color.Style{color.FgYellow},
			fmt.Sprintf("Unfinished: %s#%d still needs %s", j.Task.Name(), j.Instance, p.time(j.Remaining))))
	}
	fmt.Fprintf(p.Out, "Simulation ended at %s\n", p.time(res.SimulationEnd))
}

// Feasibility prints the response-time analysis as a table, one task
// per row in priority order, and the overall verdict.
func (p *Printer) Feasibility(rep *rta.Report) {
	mode := "non-preemptive"
	if rep.Preemptive {
		mode = "preemptive"
	}
	fmt.Fprintf(p.Out, "Feasibility under %s (%s):\n", strings.ToUpper(rep.Policy.String()), mode)

	names := make([]string, len(rep.Results))
	for i, r := range rep.Results {
		names[i] = r.Task.Name()
	}
	colors := taskColors(names)
	width := nameWidth(append([]string{"task"}, names...))

	fmt.Fprintf(p.Out, "  %-4s  %-*s  %8s  %8s  %8s  %8s  %8s  %8s  %s\n",
		"rank", width, "task", "priority", "C", "T", "D", "blocking", "response", "verdict")
	for _, r := range rep.Results {
		prio := strconv.Itoa(r.Rank)
		if rep.Policy == rta.HighestPriorityFirst {
			if v, ok := r.Task.Priority(); ok {
				prio = strconv.Itoa(v)
			}
		}
		verdict := p.paint(color.Style{color.FgGreen}, "met")
		if !r.DeadlineMet {
			verdict = p.paint(color.Style{color.FgRed, color.OpBold}, "MISSED")
		}
		fmt.Fprintf(p.Out, "  %-4d  %s  %8s  %8s  %8s  %8s  %8s  %8s  %s\n",
			r.Rank,
			p.taskName(colors, r.Task.Name(), width),
			prio,
			p.time(r.Task.Computation()), p.time(r.Task.Period()), p.time(r.Task.Deadline()),
			p.time(r.Blocking), p.time(r.ResponseTime),
			verdict)
	}

	if rep.Feasible {
		fmt.Fprintln(p.Out, p.paint(color.Style{color.FgGreen}, "Task set is feasible."))
	} else {
		fmt.Fprintln(p.Out, p.paint(color.Style{color.FgRed, color.OpBold}, "Task set is NOT feasible."))
	}
}

func (p *Printer) paint(sty color.Style, s string) string {
	if !p.Colorize {
		return s
	}
	return sty.Sprint(s)
}

func (p *Printer) status(st SegmentStatus) string {
	switch st {
	case StatusCompleted:
		return p.paint(color.Style{color.FgGreen}, st.String())
	case StatusLate:
		return p.paint(color.Style{color.FgRed, color.OpBold}, st.String())
	case StatusPreempted:
		return p.paint(color.Style{color.FgYellow}, st.String())
	case StatusUnfinished:
		return p.paint(color.Style{color.FgMagenta}, st.String())
	default:
		return p.paint(color.Style{color.FgDarkGray}, st.String())
	}
}

func (p *Printer) taskName(colors map[string]color.RGBColor, name string, width int) string {
	padded := fmt.Sprintf("%-*s", width, name)
	if !p.Colorize {
		return padded
	}
	return colors[name].Sprint(padded)
}

// time renders an instant or duration, with the configured unit.
func (p *Printer) time(v float64) string {
	s := FormatTime(v)
	if p.Unit != "" {
		return s + p.Unit
	}
	return s
}

// FormatTime keeps integral values free of decimals and trims everything
// else to at most three places.
func FormatTime(v float64) string {
	r := math.Round(v)
	if math.Abs(v-r) < task.Epsilon {
		return strconv.FormatFloat(r, 'f', 0, 64)
	}
	s := strconv.FormatFloat(v, 'f', 3, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

// taskColors gives every task a fixed, evenly spaced hue so repeated
// runs of the same set render identically.
func taskColors(names []string) map[string]color.RGBColor {
	out := make(map[string]color.RGBColor, len(names))
	for i, name := range names {
		hue := float64(i) * 360 / float64(len(names))
		r, g, b := colorful.Hsv(hue, 0.6, 0.95).RGB255()
		out[name] = color.RGB(r, g, b)
	}
	return out
}

func nameWidth(labels []string) int {
	w := 0
	for _, l := range labels {
		if len(l) > w {
			w = len(l)
		}
	}
	return w
}
