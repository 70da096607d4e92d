package dfabench

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dfabench/dfabench/internal/lang"
	"github.com/dfabench/dfabench/internal/report"
)

func init() {
	cmd := &cobra.Command{
		Use:     "trace <word>",
		Short:   "Print every transition taken while consuming a word",
		Args:    cobra.ExactArgs(1),
		Example: `  dfabench trace dttcat`,
		RunE:    runTrace,
	}
	rootCmd.AddCommand(cmd)
}

type traceResult struct {
	Language string            `json:"language"`
	Input    string            `json:"input"`
	Initial  string            `json:"initial"`
	Steps    []report.TraceRow `json:"steps"`
	Final    string            `json:"final"`
	Accept   bool              `json:"accept"`
}

func runTrace(cmd *cobra.Command, args []string) error {
	d, l, err := loadLanguage()
	if err != nil {
		return err
	}
	word := args[0]
	rows := report.Rows(lang.TraceString(l, word))
	final := l.Initial()
	if len(rows) > 0 {
		final = rows[len(rows)-1].To
	}
	res := traceResult{
		Language: d.Name,
		Input:    word,
		Initial:  l.Initial(),
		Steps:    rows,
		Final:    final,
		Accept:   l.IsAccepting(final),
	}

	out := cmd.OutOrStdout()
	if flagJSON {
		return report.WriteJSON(out, res)
	}
	opts := printOptions(cmd)
	opts.Accepting = d.Accepting
	if err := report.PrintTrace(out, rows, opts); err != nil {
		return err
	}
	verdict := "reject"
	if res.Accept {
		verdict = "accept"
	}
	_, err = fmt.Fprintf(out, "final: %s (%s)\n", final, verdict)
	return err
}
