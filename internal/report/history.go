package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/dfabench/dfabench/internal/history"
)

func short(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// PrintHistory lists recorded runs, newest first, numbered from 1 as accepted
// by "history delete".
func PrintHistory(w io.Writer, records []history.Record, opts PrintOptions) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No recorded runs")
		return err
	}
	t := tablewriter.NewWriter(w)
	t.Header("#", "WHEN", "RUN", "LANGUAGE", "LOOPS", "RESULTS", "DISAGREE", "COMMIT")
	for i, r := range records {
		disagree := strconv.Itoa(len(r.Disagreements))
		if len(r.Disagreements) > 0 && !opts.NoColor {
			disagree = rejectStyle.Render(disagree)
		}
		commit := short(r.Commit, 8)
		if r.Branch != "" {
			commit += " (" + r.Branch + ")"
		}
		if err := t.Append(
			strconv.Itoa(i+1),
			r.Timestamp.Local().Format("2006-01-02 15:04:05"),
			short(r.RunID, 8),
			r.Language,
			strconv.Itoa(r.Loops),
			strconv.Itoa(len(r.Measurements)),
			disagree,
			commit,
		); err != nil {
			return err
		}
	}
	return t.Render()
}
