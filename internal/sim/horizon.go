package sim

import (
	"math"

	"github.com/Maeell04/TP1-Real-time-system/internal/task"
)

// horizonCeiling bounds the hyperperiod accepted as a default horizon.
// Task sets whose hyperperiod exceeds it fall back to the max-period
// heuristic, keeping default runs affordable.
const horizonCeiling = 500

// DefaultHorizon picks a simulation horizon for tasks. When every period
// is an integer within ε the horizon is the hyperperiod, the least
// common multiple of the periods, provided it stays within a fixed
// ceiling. Otherwise it is max(period) multiplied by max(3, number of
// tasks), long enough to expose recurring interference without the cost
// of a full hyperperiod. An empty task set yields 0.
func DefaultHorizon(tasks []*task.Task) float64 {
	if len(tasks) == 0 {
		return 0
	}

	maxPeriod := tasks[0].Period()
	for _, t := range tasks[1:] {
		if p := t.Period(); p > maxPeriod {
			maxPeriod = p
		}
	}

	periods := make([]int, 0, len(tasks))
	for _, t := range tasks {
		p := t.Period()
		r := math.Round(p)
		// The hyperperiod is at least the largest period, so a period past
		// the ceiling forces the fallback before the int conversion.
		if math.Abs(p-r) >= task.Epsilon || r > horizonCeiling {
			periods = nil
			break
		}
		periods = append(periods, int(r))
	}

	if len(periods) == len(tasks) {
		hyper := periods[0]
		for _, p := range periods[1:] {
			if hyper > horizonCeiling {
				break
			}
			hyper = lcm(hyper, p)
		}
		if hyper <= horizonCeiling {
			return float64(hyper)
		}
	}

	return maxPeriod * float64(max(3, len(tasks)))
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func lcm(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	return a / gcd(a, b) * b
}
