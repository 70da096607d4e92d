package dfabench

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dfabench/dfabench/internal/baseline"
	"github.com/dfabench/dfabench/internal/bench"
	"github.com/dfabench/dfabench/internal/config"
	"github.com/dfabench/dfabench/internal/corpus"
	"github.com/dfabench/dfabench/internal/definition"
	"github.com/dfabench/dfabench/internal/lang"
	"github.com/dfabench/dfabench/internal/logger"
	"github.com/dfabench/dfabench/internal/report"
)

// matcherFSM names the table-driven recognizer in --matchers.
const matcherFSM = "fsm"

const defaultMatchers = "fsm,regexp,regexp2"

// Flags shared by several commands; see addMatcherFlags and addCorpusFlags.
var (
	flagLoops        int
	flagThreads      int
	flagMatchers     string
	flagRegexTimeout time.Duration
	flagFrom         string
	flagStdin        bool
)

type settings struct {
	language     string
	definition   string
	loops        int
	threads      int
	matchers     []string
	regexTimeout time.Duration
	noColor      bool
	history      bool
	logLevel     slog.Level
	logFormat    logger.Format
}

// pick returns the flag value when it was given on the command line, the
// configured value when one is set, and def otherwise.
func pick[T any](cmd *cobra.Command, name string, flag T, file *T, def T) T {
	if changed(cmd, name) {
		return flag
	}
	if file != nil {
		return *file
	}
	return def
}

func changed(cmd *cobra.Command, name string) bool {
	f := cmd.Flags().Lookup(name)
	return f != nil && f.Changed
}

func loadSettings(cmd *cobra.Command) (settings, error) {
	var s settings
	wd, err := os.Getwd()
	if err != nil {
		return s, err
	}
	fc, err := config.Resolve(wd)
	if err != nil {
		return s, fmt.Errorf("config: %w", err)
	}

	s.language = pick(cmd, "language", flagLanguage, fc.Language, definition.DefaultLanguage)
	s.definition = pick(cmd, "definition", flagDefinition, fc.Definition, "")
	// an explicit --language outranks a configured definition path
	if changed(cmd, "language") && !changed(cmd, "definition") {
		s.definition = ""
	}
	s.loops = pick(cmd, "loops", flagLoops, fc.Loops, bench.DefaultLoops)
	if s.loops <= 0 {
		return s, fmt.Errorf("%w: %d", bench.ErrInvalidLoops, s.loops)
	}
	s.threads = pick(cmd, "threads", flagThreads, fc.Threads, 1)
	s.noColor = pick(cmd, "no-color", flagNoColor, fc.NoColor, false)
	s.history = pick(cmd, "no-history", !flagNoHistory, fc.History, true)

	s.matchers, err = parseMatchers(pick(cmd, "matchers", flagMatchers, fc.Matchers, defaultMatchers))
	if err != nil {
		return s, err
	}

	timeout := pick(cmd, "regex-timeout", flagRegexTimeout.String(), fc.RegexTimeout, baseline.DefaultTimeout.String())
	if s.regexTimeout, err = time.ParseDuration(timeout); err != nil {
		return s, fmt.Errorf("regex timeout: %w", err)
	}
	if s.logLevel, err = logger.ParseLevel(pick(cmd, "log-level", flagLogLevel, fc.LogLevel, "")); err != nil {
		return s, err
	}
	if s.logFormat, err = logger.ParseFormat(pick(cmd, "log-format", flagLogFormat, fc.LogFormat, "")); err != nil {
		return s, err
	}
	return s, nil
}

func parseMatchers(list string) ([]string, error) {
	known := append([]string{matcherFSM}, baseline.Engines()...)
	var out []string
	for _, name := range strings.Split(list, ",") {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" || slices.Contains(out, name) {
			continue
		}
		if !slices.Contains(known, name) {
			return nil, fmt.Errorf("unknown matcher %q (want %s)", name, strings.Join(known, ", "))
		}
		out = append(out, name)
	}
	if len(out) == 0 {
		return nil, bench.ErrNoMatchers
	}
	return out, nil
}

// loadLanguage resolves the definition chosen by --definition or --language
// and compiles it.
func loadLanguage() (*definition.Definition, *lang.Language[string, rune], error) {
	d, err := definition.Resolve(cfg.language, cfg.definition)
	if err != nil {
		return nil, nil, err
	}
	l, err := d.Compile()
	if err != nil {
		return nil, nil, err
	}
	appLog.Debug("language loaded",
		logger.Component("cli"),
		slog.String("name", d.Name),
		slog.String("fingerprint", d.Fingerprint()))
	return d, l, nil
}

// buildMatchers constructs the requested recognizers. Regex engines are
// skipped with a warning when the definition has no baseline pattern.
func buildMatchers(d *definition.Definition, l *lang.Language[string, rune]) ([]bench.Matcher, error) {
	var out []bench.Matcher
	for _, name := range cfg.matchers {
		if name == matcherFSM {
			out = append(out, lang.Strings(l))
			continue
		}
		if d.Baseline == "" {
			appLog.Warn("definition has no baseline pattern; skipping matcher",
				logger.Component("cli"), slog.String("matcher", name), slog.String("language", d.Name))
			continue
		}
		m, err := baseline.New(name, d.Baseline, cfg.regexTimeout, appLog)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if len(out) == 0 {
		return nil, bench.ErrNoMatchers
	}
	return out, nil
}

// collectInputs merges positional words, --from globs and, with --stdin,
// lines from standard input.
func collectInputs(cmd *cobra.Command, args []string) ([]string, error) {
	var globs []string
	for _, g := range strings.Split(flagFrom, ",") {
		if g = strings.TrimSpace(g); g != "" {
			globs = append(globs, g)
		}
	}
	var in io.Reader
	if flagStdin {
		in = cmd.InOrStdin()
	}
	return corpus.Collect(args, globs, in, corpus.Limits{})
}

func printOptions(cmd *cobra.Command) report.PrintOptions {
	f, _ := cmd.OutOrStdout().(*os.File)
	return report.PrintOptions{NoColor: !report.ColorEnabled(cfg.noColor, f)}
}

func addMatcherFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagMatchers, "matchers", defaultMatchers, "comma-separated matchers: fsm, regexp, regexp2")
	cmd.Flags().DurationVar(&flagRegexTimeout, "regex-timeout", baseline.DefaultTimeout, "per-match timeout for the backtracking engine")
}

func addCorpusFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagFrom, "from", "", "comma-separated globs of word files (one word per line, ** supported)")
	cmd.Flags().BoolVar(&flagStdin, "stdin", false, "also read words from standard input, one per line")
}
