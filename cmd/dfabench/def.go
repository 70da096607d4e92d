package dfabench

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dfabench/dfabench/internal/definition"
	"github.com/dfabench/dfabench/internal/report"
)

var (
	defInitFrom   string
	defInitOutput string
	defInitForce  bool
)

func init() {
	defCmd := &cobra.Command{Use: "def", Short: "Inspect, validate and scaffold language definitions"}
	rootCmd.AddCommand(defCmd)

	defCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List built-in languages",
		Args:  cobra.NoArgs,
		RunE:  runDefList,
	})
	defCmd.AddCommand(&cobra.Command{
		Use:   "show [builtin]",
		Short: "Print a definition as YAML (default: the selected language)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runDefShow,
	})
	defCmd.AddCommand(&cobra.Command{
		Use:   "validate <file>...",
		Short: "Validate definition files and print their fingerprints",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runDefValidate,
	})

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter definition copied from a built-in",
		Args:  cobra.NoArgs,
		RunE:  runDefInit,
	}
	initCmd.Flags().StringVar(&defInitFrom, "from", definition.DefaultLanguage, "built-in to copy")
	initCmd.Flags().StringVar(&defInitOutput, "output", "language.yaml", "output file path")
	initCmd.Flags().BoolVar(&defInitForce, "force", false, "overwrite an existing file")
	defCmd.AddCommand(initCmd)
}

type defSummary struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	States      []string `json:"states"`
	Accepting   []string `json:"accepting"`
	Baseline    string   `json:"baseline,omitempty"`
	Fingerprint string   `json:"fingerprint"`
}

func summarize(d *definition.Definition) defSummary {
	return defSummary{
		Name:        d.Name,
		Description: strings.TrimSpace(d.Description),
		States:      d.States,
		Accepting:   d.Accepting,
		Baseline:    d.Baseline,
		Fingerprint: d.Fingerprint(),
	}
}

func runDefList(cmd *cobra.Command, _ []string) error {
	var all []defSummary
	for _, name := range definition.Builtins() {
		d, err := definition.Builtin(name)
		if err != nil {
			return err
		}
		all = append(all, summarize(d))
	}
	out := cmd.OutOrStdout()
	if flagJSON {
		return report.WriteJSON(out, all)
	}
	for _, s := range all {
		first, _, _ := strings.Cut(s.Description, "\n")
		fmt.Fprintf(out, "%-8s %s\n", s.Name, first)
	}
	return nil
}

func runDefShow(cmd *cobra.Command, args []string) error {
	var (
		src []byte
		err error
	)
	switch {
	case len(args) == 1:
		src, err = definition.BuiltinSource(args[0])
	case cfg.definition != "":
		src, err = os.ReadFile(cfg.definition)
	default:
		src, err = definition.BuiltinSource(cfg.language)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), report.HighlightYAML(src, printOptions(cmd).NoColor))
	return err
}

type validation struct {
	Path        string `json:"path"`
	Name        string `json:"name,omitempty"`
	Fingerprint string `json:"fingerprint,omitempty"`
	Error       string `json:"error,omitempty"`
}

func runDefValidate(cmd *cobra.Command, args []string) error {
	results := make([]validation, 0, len(args))
	failed := 0
	for _, p := range args {
		v := validation{Path: p}
		d, err := definition.Load(p)
		if err == nil {
			_, err = d.Compile()
		}
		if err != nil {
			v.Error = err.Error()
			failed++
		} else {
			v.Name = d.Name
			v.Fingerprint = d.Fingerprint()
		}
		results = append(results, v)
	}

	out := cmd.OutOrStdout()
	if flagJSON {
		if err := report.WriteJSON(out, results); err != nil {
			return err
		}
	} else {
		for _, v := range results {
			if v.Error != "" {
				fmt.Fprintf(out, "FAIL %s\n     %s\n", v.Path, strings.ReplaceAll(v.Error, "\n", "\n     "))
				continue
			}
			fmt.Fprintf(out, "ok   %s  %s  %s\n", v.Path, v.Name, v.Fingerprint)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d definitions invalid", failed, len(args))
	}
	return nil
}

func runDefInit(cmd *cobra.Command, _ []string) error {
	src, err := definition.BuiltinSource(defInitFrom)
	if err != nil {
		return err
	}
	if !defInitForce {
		if _, err := os.Stat(defInitOutput); err == nil {
			return fmt.Errorf("%s exists (use --force to overwrite)", defInitOutput)
		} else if !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	if err := os.WriteFile(defInitOutput, src, 0o644); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Wrote", defInitOutput)
	return nil
}
