package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/Maeell04/TP1-Real-time-system/internal/sim"
)

// WriteTimelineCSV exports timeline entries, one row each, for plotting
// or spreadsheet inspection.
func WriteTimelineCSV(w io.Writer, entries []sim.TimelineEntry) error {
	cw := csv.NewWriter(w)

	// write header
	cw.Write([]string{"start", "end", "task", "instance", "deadline", "completed", "idle"})
	for _, e := range entries {
		cw.Write([]string{
			floatField(e.Start),
			floatField(e.End),
			e.Task,
			strconv.Itoa(e.Instance),
			floatField(e.Deadline),
			strconv.FormatBool(e.Completed),
			strconv.FormatBool(e.Idle),
		})
	}
	cw.Flush()
	return cw.Error()
}

func floatField(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
