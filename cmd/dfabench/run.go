package dfabench

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/dfabench/dfabench/internal/lang"
	"github.com/dfabench/dfabench/internal/report"
)

var flagFailOnReject bool

func init() {
	cmd := &cobra.Command{
		Use:   "run [word]...",
		Short: "Run words through the language and print final state and verdict",
		Example: `  dfabench run cat dttcat ca
  dfabench run -l mod3 110 111
  printf 'cat\ndt\n' | dfabench run --stdin --json`,
		RunE: runRun,
	}
	cmd.Flags().BoolVar(&flagFailOnReject, "fail-on-reject", false, "exit 1 when any word is rejected")
	addCorpusFlags(cmd)
	rootCmd.AddCommand(cmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	_, l, err := loadLanguage()
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

	verdicts := make([]report.Verdict, len(words))
	rejected := 0
	for i, w := range words {
		final := lang.FinalString(l, w)
		verdicts[i] = report.Verdict{Input: w, Final: final, Accept: l.IsAccepting(final)}
		if !verdicts[i].Accept {
			rejected++
		}
	}

	out := cmd.OutOrStdout()
	if flagJSON {
		err = report.WriteJSON(out, verdicts)
	} else {
		err = report.PrintVerdicts(out, verdicts, printOptions(cmd))
	}
	if err != nil {
		return err
	}
	if flagFailOnReject && rejected > 0 {
		return exitError{code: 1}
	}
	return nil
}
