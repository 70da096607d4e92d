package dfabench

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dfabench/dfabench/internal/baseline"
	"github.com/dfabench/dfabench/internal/bench"
	"github.com/dfabench/dfabench/internal/config"
	"github.com/dfabench/dfabench/internal/definition"
)

var (
	cfgOutput       string
	cfgForce        bool
	cfgLanguage     string
	cfgDefinition   string
	cfgLoops        int
	cfgThreads      int
	cfgMatchers     string
	cfgRegexTimeout time.Duration
	cfgNoColor      bool
	cfgNoHistory    bool
)

func init() {
	cfgCmd := &cobra.Command{Use: "config", Short: "Configuration helpers"}
	rootCmd.AddCommand(cfgCmd)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a .dfabench.yml with the selected options",
		Args:  cobra.NoArgs,
		RunE:  runConfigInit,
	}
	cfgCmd.AddCommand(initCmd)

	initCmd.Flags().StringVar(&cfgOutput, "output", config.LocalNames[0], "output file path")
	initCmd.Flags().BoolVar(&cfgForce, "force", false, "overwrite an existing file")
	initCmd.Flags().StringVar(&cfgLanguage, "set-language", definition.DefaultLanguage, "built-in language")
	initCmd.Flags().StringVar(&cfgDefinition, "set-definition", "", "definition file path (overrides the language)")
	initCmd.Flags().IntVar(&cfgLoops, "set-loops", bench.DefaultLoops, "bench loops per measurement")
	initCmd.Flags().IntVar(&cfgThreads, "set-threads", 1, "bench parallelism")
	initCmd.Flags().StringVar(&cfgMatchers, "set-matchers", defaultMatchers, "comma-separated matchers")
	initCmd.Flags().DurationVar(&cfgRegexTimeout, "set-regex-timeout", baseline.DefaultTimeout, "backtracking match timeout")
	initCmd.Flags().BoolVar(&cfgNoColor, "set-no-color", false, "disable color output by default")
	initCmd.Flags().BoolVar(&cfgNoHistory, "set-no-history", false, "do not record bench runs by default")
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	if _, err := parseMatchers(cfgMatchers); err != nil {
		return err
	}
	if !cfgForce {
		if _, err := os.Stat(cfgOutput); err == nil {
			return fmt.Errorf("%s exists (use --force to overwrite)", cfgOutput)
		} else if !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}

	fc := config.FileConfig{
		Language:     strPtr(cfgLanguage),
		Definition:   optStrPtr(cfgDefinition),
		Loops:        intPtr(cfgLoops),
		Threads:      intPtr(cfgThreads),
		Matchers:     strPtr(cfgMatchers),
		RegexTimeout: strPtr(cfgRegexTimeout.String()),
		NoColor:      boolPtr(cfgNoColor),
		History:      boolPtr(!cfgNoHistory),
	}

	b, err := yaml.Marshal(&fc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(cfgOutput, b, 0o644); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Wrote", cfgOutput)
	return nil
}

func strPtr(s string) *string { return &s }

func optStrPtr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func intPtr(v int) *int {
	if v == 0 {
		return nil
	}
	return &v
}

func boolPtr(v bool) *bool { return &v }
