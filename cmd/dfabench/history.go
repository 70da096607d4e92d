package dfabench

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dfabench/dfabench/internal/history"
	"github.com/dfabench/dfabench/internal/report"
)

var historyLimit int

func init() {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded bench runs, newest first",
		Args:  cobra.NoArgs,
		RunE:  runHistory,
	}
	cmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum runs to show (0 for all)")

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <n>",
		Short: "Delete the n-th run as listed by 'history' (1 is the newest)",
		Args:  cobra.ExactArgs(1),
		RunE:  runHistoryDelete,
	})
	rootCmd.AddCommand(cmd)
}

func openHistory() (*history.Log, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return history.Open(wd), nil
}

func runHistory(cmd *cobra.Command, _ []string) error {
	log, err := openHistory()
	if err != nil {
		return err
	}
	records, err := log.Load()
	if err != nil {
		return err
	}
	if historyLimit > 0 && len(records) > historyLimit {
		records = records[:historyLimit]
	}
	out := cmd.OutOrStdout()
	if flagJSON {
		if records == nil {
			records = []history.Record{}
		}
		return report.WriteJSON(out, records)
	}
	return report.PrintHistory(out, records, printOptions(cmd))
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid index %q: %w", args[0], err)
	}
	log, err := openHistory()
	if err != nil {
		return err
	}
	if err := log.Delete(n - 1); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted run %d\n", n)
	return nil
}
