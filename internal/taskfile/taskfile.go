// Package taskfile loads task-set descriptions from YAML or JSON files.
package taskfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	yaml "github.com/goccy/go-yaml"

	"github.com/Maeell04/TP1-Real-time-system/internal/task"
)

// Descriptor mirrors one task entry in a task-set file. Deadline and
// priority are optional; a missing deadline falls back to the period.
type Descriptor struct {
	Name        string   `yaml:"name" json:"name"`
	Computation float64  `yaml:"computation_time" json:"computation_time"`
	Period      float64  `yaml:"period" json:"period"`
	Deadline    *float64 `yaml:"deadline,omitempty" json:"deadline,omitempty"`
	Offset      float64  `yaml:"offset,omitempty" json:"offset,omitempty"`
	Priority    *int     `yaml:"priority,omitempty" json:"priority,omitempty"`
}

// document is the mapping form of a task file.
type document struct {
	Tasks []Descriptor `yaml:"tasks" json:"tasks"`
}

func (d Descriptor) params() task.Params {
	return task.Params{
		Name:        d.Name,
		Computation: d.Computation,
		Period:      d.Period,
		Deadline:    d.Deadline,
		Offset:      d.Offset,
	}
}

// Tasks validates descriptors and turns them into tasks.
func Tasks(descs []Descriptor) ([]*task.Task, error) {
	tasks := make([]*task.Task, 0, len(descs))
	for _, d := range descs {
		t, err := task.New(d.params())
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// StaticTasks is Tasks for fixed-priority analysis: it keeps the
// optional priority of every entry.
func StaticTasks(descs []Descriptor) ([]*task.StaticTask, error) {
	tasks := make([]*task.StaticTask, 0, len(descs))
	for _, d := range descs {
		st, err := task.NewStatic(d.params(), d.Priority)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, st)
	}
	return tasks, nil
}

// Load reads a task file and validates every entry. Files ending in
// .json are decoded as JSON, everything else as YAML.
func Load(path string) ([]*task.Task, error) {
	descs, err := load(path)
	if err != nil {
		return nil, err
	}
	return Tasks(descs)
}

// LoadStatic is Load for fixed-priority analysis.
func LoadStatic(path string) ([]*task.StaticTask, error) {
	descs, err := load(path)
	if err != nil {
		return nil, err
	}
	return StaticTasks(descs)
}

func load(path string) ([]Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read task file: %w", err)
	}
	return decode(data, path)
}

// decode accepts both file shapes: a mapping with a tasks list, or a
// bare list of tasks.
func decode(data []byte, path string) ([]Descriptor, error) {
	unmarshal := yaml.Unmarshal
	if strings.EqualFold(filepath.Ext(path), ".json") {
		unmarshal = json.Unmarshal
	}

	var doc document
	if err := unmarshal(data, &doc); err == nil && doc.Tasks != nil {
		return doc.Tasks, nil
	}
	var list []Descriptor
	if err := unmarshal(data, &list); err != nil {
		return nil, task.NewValidationError("cannot parse task file %s: %v", path, err)
	}
	return list, nil
}
