package dfabench

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dfabench/dfabench/internal/bench"
	"github.com/dfabench/dfabench/internal/history"
	"github.com/dfabench/dfabench/internal/logger"
	"github.com/dfabench/dfabench/internal/report"
)

var (
	flagNoHistory bool
	flagTable     bool
	flagText      bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "bench [word]...",
		Short: "Time the state machine against regular expressions for the same language",
		Long: "bench calls every matcher --loops times per word and prints the time per call,\n" +
			"fastest first. Words on which matchers disagree are reported afterwards.",
		Example: `  dfabench bench dttcat
  dfabench bench --matchers fsm,regexp --loops 100000 cat dt
  dfabench bench --from 'testdata/**/*.txt' --table`,
		RunE: runBench,
	}
	cmd.Flags().IntVar(&flagLoops, "loops", bench.DefaultLoops, "match calls per measurement")
	cmd.Flags().IntVar(&flagThreads, "threads", 1, "measurements run in parallel (1 keeps timings independent)")
	cmd.Flags().BoolVar(&flagNoHistory, "no-history", false, "do not record this run in the history log")
	cmd.Flags().BoolVar(&flagTable, "table", false, "print a table")
	cmd.Flags().BoolVar(&flagText, "text", false, "print one 'NAME: <ms>ms' line per measurement (default)")
	cmd.MarkFlagsMutuallyExclusive("table", "text")
	addMatcherFlags(cmd)
	addCorpusFlags(cmd)
	rootCmd.AddCommand(cmd)
}

func runBench(cmd *cobra.Command, args []string) error {
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

	res, err := bench.Run(cmd.Context(), bench.Config{
		Loops:   cfg.loops,
		Threads: cfg.threads,
		Logger:  appLog,
	}, matchers, words)
	if err != nil {
		return err
	}

	if cfg.history {
		recordRun(d.Name, d.Fingerprint(), res)
	}

	out := cmd.OutOrStdout()
	if flagJSON {
		return report.WriteJSON(out, res)
	}
	opts := printOptions(cmd)
	if flagTable {
		err = report.PrintTable(out, res.Measurements, opts)
	} else {
		err = report.PrintText(out, res.Measurements, opts)
	}
	if err != nil {
		return err
	}
	if len(res.Disagreements) > 0 {
		fmt.Fprintln(out)
		return report.PrintDisagreements(out, res.Disagreements, opts)
	}
	return nil
}

// recordRun appends res to the history log in the working directory. A
// failure is logged, not returned: the measurements are already valid.
func recordRun(language, fingerprint string, res bench.Result) {
	wd, err := os.Getwd()
	if err != nil {
		appLog.Warn("history skipped", logger.Component("history"), logger.Error(err))
		return
	}
	log := history.Open(wd)
	if err := log.Append(history.NewRecord(wd, language, fingerprint, cfg.loops, res)); err != nil {
		appLog.Warn("history not written", logger.Component("history"), logger.Error(err))
		return
	}
	appLog.Debug("history written", logger.Component("history"), slog.String("path", log.Path()))
}
