package dfabench

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/dfabench/dfabench/internal/bench"
	"github.com/dfabench/dfabench/internal/report"
)

func init() {
	cmd := &cobra.Command{
		Use:   "compare [word]...",
		Short: "Check that every matcher gives the same verdict; exit 1 on disagreement",
		Example: `  dfabench compare cat dtcatt ca x ''
  dfabench compare -d mylang.yaml --from words.txt`,
		RunE: runCompare,
	}
	addMatcherFlags(cmd)
	addCorpusFlags(cmd)
	rootCmd.AddCommand(cmd)
}

type compareResult struct {
	Matchers      []string             `json:"matchers"`
	Inputs        int                  `json:"inputs"`
	Disagreements []bench.Disagreement `json:"disagreements"`
}

func runCompare(cmd *cobra.Command, args []string) error {
	d, l, err := loadLanguage()
	if err != nil {
		return err
	}
	matchers, err := buildMatchers(d, l)
	if err != nil {
		return err
	}
	words, err := collectInputs(cmd, args)
	if err != nil {
		return err
	}
	if len(words) == 0 {
		return errors.New("no words given (pass words as arguments, --from or --stdin)")
	}

	ds := bench.Compare(matchers, words)
	out := cmd.OutOrStdout()
	if flagJSON {
		names := make([]string, len(matchers))
		for i, m := range matchers {
			names[i] = m.Name()
		}
		if ds == nil {
			ds = []bench.Disagreement{}
		}
		err = report.WriteJSON(out, compareResult{Matchers: names, Inputs: len(words), Disagreements: ds})
	} else {
		err = report.PrintDisagreements(out, ds, printOptions(cmd))
	}
	if err != nil {
		return err
	}
	if len(ds) > 0 {
		return exitError{code: 1}
	}
	return nil
}
