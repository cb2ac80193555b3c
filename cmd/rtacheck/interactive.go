package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Maeell04/TP1-Real-time-system/internal/rta"
	"github.com/Maeell04/TP1-Real-time-system/internal/task"
)

// promptSession collects the whole analysis input interactively: policy,
// preemption mode and the task set. Prompts showing a default in
// brackets accept an empty answer; invalid answers are asked again.
func promptSession(in io.Reader, out io.Writer, defPolicy rta.Policy, defPreemptive bool) (rta.Policy, bool, []*task.StaticTask, error) {
	sc := bufio.NewScanner(in)

	policy, err := promptPolicy(sc, out, defPolicy)
	if err != nil {
		return 0, false, nil, err
	}
	preemptive, err := promptBool(sc, out, "Preemptive (y/n)", defPreemptive)
	if err != nil {
		return 0, false, nil, err
	}
	tasks, err := promptTaskSet(sc, out, policy)
	if err != nil {
		return 0, false, nil, err
	}
	return policy, preemptive, tasks, nil
}

func promptPolicy(sc *bufio.Scanner, out io.Writer, def rta.Policy) (rta.Policy, error) {
	for {
		line, err := promptLine(sc, out, fmt.Sprintf("Policy (rm, dm or hpf) [%s]", def))
		if err != nil {
			return 0, err
		}
		if line == "" {
			return def, nil
		}
		policy, err := rta.ParsePolicy(line)
		if err != nil {
			fmt.Fprintf(out, "  %v\n", err)
			continue
		}
		return policy, nil
	}
}

func promptBool(sc *bufio.Scanner, out io.Writer, label string, def bool) (bool, error) {
	shown := "n"
	if def {
		shown = "y"
	}
	for {
		line, err := promptLine(sc, out, fmt.Sprintf("%s [%s]", label, shown))
		if err != nil {
			return false, err
		}
		switch strings.ToLower(line) {
		case "":
			return def, nil
		case "y", "yes", "true":
			return true, nil
		case "n", "no", "false":
			return false, nil
		}
		fmt.Fprintln(out, "  please answer y or n")
	}
}

// promptTaskSet asks for every task in turn. A task that fails
// validation is asked again from the top; under hpf a priority that
// collides with an accepted task must be chosen again.
func promptTaskSet(sc *bufio.Scanner, out io.Writer, policy rta.Policy) ([]*task.StaticTask, error) {
	count, err := promptCount(sc, out)
	if err != nil {
		return nil, err
	}

	used := make(map[int]string, count)
	tasks := make([]*task.StaticTask, 0, count)
	for i := 1; i <= count; {
		fmt.Fprintf(out, "Task %d of %d\n", i, count)
		st, err := promptTask(sc, out, i, policy, used)
		if err != nil {
			return nil, err
		}
		if st == nil {
			continue
		}
		if p, ok := st.Priority(); ok {
			used[p] = st.Name()
		}
		tasks = append(tasks, st)
		i++
	}
	return tasks, nil
}

func promptCount(sc *bufio.Scanner, out io.Writer) (int, error) {
	for {
		v, err := promptInt(sc, out, "Number of tasks")
		if err != nil {
			return 0, err
		}
		if v > 0 {
			return v, nil
		}
		fmt.Fprintln(out, "  at least one task is required")
	}
}

func promptTask(sc *bufio.Scanner, out io.Writer, index int, policy rta.Policy, used map[int]string) (*task.StaticTask, error) {
	name, err := promptLine(sc, out, fmt.Sprintf("  name [T%d]", index))
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = fmt.Sprintf("T%d", index)
	}

	comp, err := promptFloat(sc, out, "  computation time")
	if err != nil {
		return nil, err
	}
	period, err := promptFloat(sc, out, "  period")
	if err != nil {
		return nil, err
	}
	deadline, err := promptOptionalFloat(sc, out, "  deadline [period]")
	if err != nil {
		return nil, err
	}
	offset, err := promptOptionalFloat(sc, out, "  offset [0]")
	if err != nil {
		return nil, err
	}

	var priority *int
	if policy == rta.HighestPriorityFirst {
		for {
			v, err := promptInt(sc, out, "  priority (larger is more urgent)")
			if err != nil {
				return nil, err
			}
			if owner, taken := used[v]; taken {
				fmt.Fprintf(out, "  priority %d already belongs to %s, choose another\n", v, owner)
				continue
			}
			priority = &v
			break
		}
	}

	params := task.Params{Name: name, Computation: comp, Period: period, Deadline: deadline}
	if offset != nil {
		params.Offset = *offset
	}
	st, err := task.NewStatic(params, priority)
	if err != nil {
		var verr *task.ValidationError
		if errors.As(err, &verr) {
			fmt.Fprintf(out, "  %v, starting this task over\n", err)
			return nil, nil
		}
		return nil, err
	}
	return st, nil
}

func promptLine(sc *bufio.Scanner, out io.Writer, label string) (string, error) {
	fmt.Fprintf(out, "%s: ", label)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}
	return strings.TrimSpace(sc.Text()), nil
}

func promptFloat(sc *bufio.Scanner, out io.Writer, label string) (float64, error) {
	for {
		line, err := promptLine(sc, out, label)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(line, 64)
		if err != nil {
			fmt.Fprintln(out, "  please enter a number")
			continue
		}
		return v, nil
	}
}

func promptOptionalFloat(sc *bufio.Scanner, out io.Writer, label string) (*float64, error) {
	for {
		line, err := promptLine(sc, out, label)
		if err != nil {
			return nil, err
		}
		if line == "" {
			return nil, nil
		}
		v, err := strconv.ParseFloat(line, 64)
		if err != nil {
			fmt.Fprintln(out, "  please enter a number or leave empty")
			continue
		}
		return &v, nil
	}
}

func promptInt(sc *bufio.Scanner, out io.Writer, label string) (int, error) {
	for {
		line, err := promptLine(sc, out, label)
		if err != nil {
			return 0, err
		}
		v, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintln(out, "  please enter a whole number")
			continue
		}
		return v, nil
	}
}
