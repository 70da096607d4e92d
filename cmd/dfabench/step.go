package dfabench

import (
	"github.com/spf13/cobra"

	"github.com/dfabench/dfabench/internal/tui"
)

func init() {
	cmd := &cobra.Command{
		Use:   "step [word]",
		Short: "Step through a word interactively",
		Long: "step opens a terminal UI that consumes one symbol per key press.\n" +
			"Without a word it starts in the editor, pre-filled with the last word used.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			d, l, err := loadLanguage()
			if err != nil {
				return err
			}
			word := ""
			if len(args) == 1 {
				word = args[0]
			}
			return tui.Run(l, d.States, word)
		},
	}
	rootCmd.AddCommand(cmd)
}
