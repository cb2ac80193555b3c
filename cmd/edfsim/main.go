// Command edfsim simulates a periodic task set under preemptive
// earliest-deadline-first scheduling and prints the resulting timeline.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/Maeell04/TP1-Real-time-system/internal/report"
	"github.com/Maeell04/TP1-Real-time-system/internal/sim"
	"github.com/Maeell04/TP1-Real-time-system/internal/task"
	"github.com/Maeell04/TP1-Real-time-system/internal/taskfile"
)

func main() {
	var (
		tasksPath = flag.String("tasks", "", "task file (yaml or json); empty runs the built-in demo set")
		horizon   = flag.Float64("horizon", -1, "simulation horizon; negative picks one from the task periods")
		unit      = flag.String("unit", "s", "time unit suffix for the report, e.g. ms")
		csvPath   = flag.String("csv", "", "also export the timeline as CSV to this file")
		noColor   = flag.Bool("no-color", false, "disable colored output")
	)
	flag.Parse()

	tasks, err := loadTasks(*tasksPath)
	if err != nil {
		log.Fatalf("load tasks: %v", err)
	}

	h := *horizon
	if h < 0 {
		h = sim.DefaultHorizon(tasks)
	}

	res, err := sim.Simulate(tasks, h)
	if err != nil {
		log.Fatalf("simulate: %v", err)
	}

	p := report.New(os.Stdout)
	p.Colorize = !*noColor
	p.Unit = *unit
	p.TaskTable(tasks)
	fmt.Printf("Horizon: %s%s\n\n", report.FormatTime(h), *unit)
	p.Timeline(res)

	if *csvPath != "" {
		if err := exportCSV(*csvPath, res); err != nil {
			log.Fatalf("export csv: %v", err)
		}
		fmt.Printf("Timeline written to %s\n", *csvPath)
	}
}

func loadTasks(path string) ([]*task.Task, error) {
	if path == "" {
		return demoTasks()
	}
	return taskfile.Load(path)
}

// demoTasks is the set simulated when no task file is given.
func demoTasks() ([]*task.Task, error) {
	specs := []task.Params{
		{Name: "Thread1", Computation: 2, Period: 7},
		{Name: "Thread2", Computation: 3, Period: 11},
		{Name: "Thread3", Computation: 5, Period: 13},
	}
	tasks := make([]*task.Task, 0, len(specs))
	for _, p := range specs {
		t, err := task.New(p)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func exportCSV(path string, res *sim.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := report.WriteTimelineCSV(f, res.Timeline); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
