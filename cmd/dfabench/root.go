package dfabench

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/dfabench/dfabench/internal/logger"
)

var (
	flagJSON       bool
	flagNoColor    bool
	flagLogLevel   string
	flagLogFormat  string
	flagLanguage   string
	flagDefinition string

	version = "0.1.0"

	// appLog is set up by the root pre-run from flags and configuration.
	appLog = logger.Discard()
	// cfg is the resolved configuration for the running command.
	cfg settings
)

// exitError carries a non-error exit status, such as a rejected word.
type exitError struct {
	code int
}

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// rootCmd is the base Cobra command for the dfabench CLI.
var rootCmd = &cobra.Command{
	Use:   "dfabench",
	Short: "Run, trace and benchmark deterministic finite automata",
	Long: "dfabench runs words through table-driven finite state machines, traces each\n" +
		"transition, and times the machine against equivalent regular expressions.",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the dfabench CLI. It should be called by the main package.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err == nil {
		return
	}
	var ee exitError
	if errors.As(err, &ee) {
		os.Exit(ee.code)
	}
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(2)
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "emit JSON")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "diagnostic level: debug|info|warn|error (default warn)")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "diagnostic format: text|json (default text)")
	rootCmd.PersistentFlags().StringVarP(&flagLanguage, "language", "l", "", "built-in language name (see 'def list')")
	rootCmd.PersistentFlags().StringVarP(&flagDefinition, "definition", "d", "", "path to a YAML language definition (overrides --language)")
}

// setup resolves configuration and builds the diagnostic logger before any
// subcommand runs.
func setup(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	cfg = s
	appLog = logger.New(
		logger.WithLevel(s.logLevel),
		logger.WithFormat(s.logFormat),
		logger.WithOutput(cmd.ErrOrStderr()),
	)
	appLog.Debug("configuration resolved",
		logger.Component("cli"),
		slog.String("command", cmd.CommandPath()),
		slog.String("language", s.language),
		slog.String("definition", s.definition))
	return nil
}
