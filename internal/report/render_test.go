package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dfabench/dfabench/internal/bench"
	"github.com/dfabench/dfabench/internal/git"
	"github.com/dfabench/dfabench/internal/history"
	"github.com/dfabench/dfabench/internal/lang"
)

func sample() []bench.Measurement {
	return []bench.Measurement{
		{Matcher: "fsm", Input: "cat", Accept: true, Loops: 10, Total: 10 * time.Microsecond, PerOp: time.Microsecond},
		{Matcher: "regexp", Input: "cat", Accept: true, Loops: 10, Total: 20 * time.Millisecond, PerOp: 2 * time.Millisecond},
	}
}

func TestPrintText_MillisPerLine(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintText(&buf, sample(), PrintOptions{NoColor: true}))
	assert.Equal(t, "fsm: 0.001ms\nregexp: 2ms\n", buf.String())
}

func TestPrintText_GroupsInputs(t *testing.T) {
	ms := append(sample(), bench.Measurement{Matcher: "fsm", Input: "ca", PerOp: time.Millisecond})
	var buf bytes.Buffer
	require.NoError(t, PrintText(&buf, ms, PrintOptions{NoColor: true}))
	out := buf.String()
	assert.Contains(t, out, "\"cat\"\n  fsm: 0.001ms\n")
	assert.Contains(t, out, "\"ca\"\n  fsm: 1ms\n")
}

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintTable(&buf, sample(), PrintOptions{NoColor: true}))
	out := buf.String()
	assert.Contains(t, out, "MATCHER")
	assert.Contains(t, out, "regexp")
	assert.Contains(t, out, "accept")

	buf.Reset()
	require.NoError(t, PrintTable(&buf, nil, PrintOptions{}))
	assert.Contains(t, buf.String(), "No measurements")
}

func TestPrintVerdicts(t *testing.T) {
	var buf bytes.Buffer
	vs := []Verdict{{Input: "cat", Final: "D", Accept: true}, {Input: "ca", Final: "C"}}
	require.NoError(t, PrintVerdicts(&buf, vs, PrintOptions{NoColor: true}))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `"cat"  D        accept`, lines[0])
	assert.Equal(t, `"ca"   C        reject`, lines[1])
}

func TestPrintTrace(t *testing.T) {
	steps := []lang.Step[string, rune]{
		{Index: 0, Symbol: 'c', From: "A", To: "B"},
		{Index: 1, Symbol: 'a', From: "B", To: "C"},
	}
	rows := Rows(steps)
	assert.Equal(t, "c", rows[0].Symbol)

	var buf bytes.Buffer
	require.NoError(t, PrintTrace(&buf, rows, PrintOptions{NoColor: true, Accepting: []string{"D"}}))
	assert.Equal(t, "  0  \"c\"  A -> B\n  1  \"a\"  B -> C\n", buf.String())
}

func TestPrintDisagreements(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintDisagreements(&buf, nil, PrintOptions{NoColor: true}))
	assert.Contains(t, buf.String(), "All matchers agree")

	buf.Reset()
	ds := []bench.Disagreement{{Input: "x", Verdicts: map[string]bool{"regexp": true, "fsm": false}}}
	require.NoError(t, PrintDisagreements(&buf, ds, PrintOptions{NoColor: true}))
	assert.Contains(t, buf.String(), `"x"  fsm=reject  regexp=accept`)
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, Verdict{Input: "cat", Final: "D", Accept: true}))
	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "D", got["final"])
	assert.Equal(t, true, got["accept"])
}

func TestHighlightYAML(t *testing.T) {
	src := []byte("name: cat\nstates: [A, B]\n")
	assert.Equal(t, string(src), HighlightYAML(src, true))
	colored := HighlightYAML(src, false)
	assert.Contains(t, colored, "\x1b[")
	assert.Contains(t, colored, "cat")
}

func TestColorEnabled(t *testing.T) {
	assert.False(t, ColorEnabled(true, os.Stdout))
	assert.False(t, ColorEnabled(false, nil))

	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	require.NoError(t, err)
	defer f.Close()
	assert.False(t, ColorEnabled(false, f))
}

func TestPrintHistory(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintHistory(&buf, nil, PrintOptions{}))
	assert.Contains(t, buf.String(), "No recorded runs")

	buf.Reset()
	rs := []history.Record{{
		Timestamp: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		RunID:     "0123456789abcdef",
		Language:  "cat",
		Loops:     10,
		Metadata:  git.Metadata{Commit: "deadbeefcafe", Branch: "main"},
	}}
	require.NoError(t, PrintHistory(&buf, rs, PrintOptions{NoColor: true}))
	out := buf.String()
	assert.Contains(t, out, "01234567")
	assert.Contains(t, out, "deadbeef (main)")
	assert.Contains(t, out, "LANGUAGE")
	assert.Regexp(t, `(?m)^\W*1\W+20\d\d-`, out, "rows are numbered from 1")
}
