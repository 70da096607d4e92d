package report

import (
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"

	"github.com/dfabench/dfabench/internal/bench"
	"github.com/dfabench/dfabench/internal/lang"
)

type PrintOptions struct {
	NoColor bool
	// Accepting marks states drawn in the accept colour by PrintTrace.
	Accepting []string
}

var (
	acceptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	rejectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Verdict is the outcome of running one word through a language.
type Verdict struct {
	Input  string `json:"input"`
	Final  string `json:"final"`
	Accept bool   `json:"accept"`
}

// TraceRow is a printable transition. Symbols are kept as strings so JSON
// output stays readable.
type TraceRow struct {
	Index  int    `json:"index"`
	Symbol string `json:"symbol"`
	From   string `json:"from"`
	To     string `json:"to"`
}

// Rows converts engine steps into TraceRows.
func Rows(steps []lang.Step[string, rune]) []TraceRow {
	out := make([]TraceRow, len(steps))
	for i, s := range steps {
		out[i] = TraceRow{Index: s.Index, Symbol: string(s.Symbol), From: s.From, To: s.To}
	}
	return out
}

func verdictLabel(accept, noColor bool) string {
	label := "reject"
	if accept {
		label = "accept"
	}
	if noColor {
		return label
	}
	if accept {
		return acceptStyle.Render(label)
	}
	return rejectStyle.Render(label)
}

func millis(m bench.Measurement) string {
	return strconv.FormatFloat(m.Millis(), 'g', 6, 64) + "ms"
}

// PrintTable renders measurements as a table, one row per matcher and input.
func PrintTable(w io.Writer, ms []bench.Measurement, opts PrintOptions) error {
	if len(ms) == 0 {
		_, err := fmt.Fprintln(w, "No measurements")
		return err
	}
	t := tablewriter.NewWriter(w)
	t.Header("INPUT", "MATCHER", "VERDICT", "PER OP", "LOOPS", "TOTAL")
	for _, m := range ms {
		if err := t.Append(
			strconv.Quote(m.Input),
			m.Matcher,
			verdictLabel(m.Accept, opts.NoColor),
			millis(m),
			strconv.Itoa(m.Loops),
			m.Total.String(),
		); err != nil {
			return err
		}
	}
	return t.Render()
}

// PrintText writes one "NAME: <ms>ms" line per measurement, grouped by input
// when there is more than one.
func PrintText(w io.Writer, ms []bench.Measurement, opts PrintOptions) error {
	multi := false
	for _, m := range ms {
		if m.Input != ms[0].Input {
			multi = true
			break
		}
	}
	last := ""
	for i, m := range ms {
		if multi && (i == 0 || m.Input != last) {
			if _, err := fmt.Fprintf(w, "%q\n", m.Input); err != nil {
				return err
			}
		}
		last = m.Input
		indent := ""
		if multi {
			indent = "  "
		}
		name := m.Matcher
		if !opts.NoColor && !m.Accept {
			name = dimStyle.Render(name)
		}
		if _, err := fmt.Fprintf(w, "%s%s: %s\n", indent, name, millis(m)); err != nil {
			return err
		}
	}
	return nil
}

// PrintVerdicts writes one line per word: quoted input, final state, verdict.
func PrintVerdicts(w io.Writer, vs []Verdict, opts PrintOptions) error {
	width := 0
	for _, v := range vs {
		width = max(width, len(strconv.Quote(v.Input)))
	}
	for _, v := range vs {
		if _, err := fmt.Fprintf(w, "%-*s  %-8s %s\n", width, strconv.Quote(v.Input), v.Final, verdictLabel(v.Accept, opts.NoColor)); err != nil {
			return err
		}
	}
	return nil
}

// PrintTrace writes one line per transition: index, symbol and the edge
// taken. States listed in opts.Accepting are highlighted.
func PrintTrace(w io.Writer, rows []TraceRow, opts PrintOptions) error {
	state := func(s string) string {
		if opts.NoColor || !slices.Contains(opts.Accepting, s) {
			return s
		}
		return acceptStyle.Render(s)
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(w, "%3d  %-4q %s -> %s\n", r.Index, r.Symbol, state(r.From), state(r.To)); err != nil {
			return err
		}
	}
	return nil
}

// PrintDisagreements lists inputs on which matchers disagree.
func PrintDisagreements(w io.Writer, ds []bench.Disagreement, opts PrintOptions) error {
	if len(ds) == 0 {
		_, err := fmt.Fprintln(w, "All matchers agree ✅")
		return err
	}
	if _, err := fmt.Fprintf(w, "Disagreements: %d\n", len(ds)); err != nil {
		return err
	}
	for _, d := range ds {
		names := make([]string, 0, len(d.Verdicts))
		for n := range d.Verdicts {
			names = append(names, n)
		}
		slices.Sort(names)
		line := strconv.Quote(d.Input)
		for _, n := range names {
			line += fmt.Sprintf("  %s=%s", n, verdictLabel(d.Verdicts[n], opts.NoColor))
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
