package dfabench

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/dfabench/dfabench/internal/bench"
	"github.com/dfabench/dfabench/internal/history"
	"github.com/dfabench/dfabench/internal/report"
)

// execute runs the CLI in-process from a scratch directory with an isolated
// home. Flag values left over from earlier runs are restored to defaults.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out, errOut bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	err := rootCmd.Execute()
	if errOut.Len() > 0 {
		t.Logf("stderr: %s", errOut.String())
	}
	return out.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func sandbox(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, ".config"))
	t.Setenv("NO_COLOR", "1")
	t.Chdir(dir)
	return dir
}

func exitCode(err error) int {
	var ee exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return -1
}

func TestRun_Verdicts(t *testing.T) {
	sandbox(t)
	out, err := execute(t, "", "run", "cat", "dttcat", "ca")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("want 3 lines, got %q", out)
	}
	if !strings.Contains(lines[0], "D") || !strings.HasSuffix(lines[0], "accept") {
		t.Fatalf("cat line: %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], "accept") {
		t.Fatalf("dttcat line: %q", lines[1])
	}
	if !strings.Contains(lines[2], "C") || !strings.HasSuffix(lines[2], "reject") {
		t.Fatalf("ca line: %q", lines[2])
	}
}

func TestRun_FailOnReject(t *testing.T) {
	sandbox(t)
	_, err := execute(t, "", "run", "--fail-on-reject", "cat", "x")
	if exitCode(err) != 1 {
		t.Fatalf("want exit 1, got %v", err)
	}
	if _, err := execute(t, "", "run", "--fail-on-reject", "cat"); err != nil {
		t.Fatalf("all accepted: %v", err)
	}
}

func TestRun_JSONFromStdin(t *testing.T) {
	sandbox(t)
	out, err := execute(t, "110\n# comment\n\n111\n", "run", "-l", "mod3", "--stdin", "--json")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	var vs []report.Verdict
	if err := json.Unmarshal([]byte(out), &vs); err != nil {
		t.Fatalf("json: %v\n%s", err, out)
	}
	if len(vs) != 2 {
		t.Fatalf("want 2 verdicts, got %+v", vs)
	}
	if !vs[0].Accept || vs[0].Final != "R0" {
		t.Fatalf("110 is 6: %+v", vs[0])
	}
	if vs[1].Accept || vs[1].Final != "R1" {
		t.Fatalf("111 is 7: %+v", vs[1])
	}
}

func TestRun_NoWords(t *testing.T) {
	sandbox(t)
	if _, err := execute(t, "", "run"); err == nil {
		t.Fatal("expected error without words")
	}
}

func TestTrace_JSON(t *testing.T) {
	sandbox(t)
	out, err := execute(t, "", "trace", "--json", "cat")
	if err != nil {
		t.Fatalf("trace: %v", err)
	}
	var res traceResult
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("json: %v\n%s", err, out)
	}
	if len(res.Steps) != 3 || res.Final != "D" || !res.Accept || res.Initial != "A" {
		t.Fatalf("unexpected trace: %+v", res)
	}
	if res.Steps[0].From != "A" || res.Steps[0].To != "B" || res.Steps[0].Symbol != "c" {
		t.Fatalf("first step: %+v", res.Steps[0])
	}
}

func TestTrace_Text(t *testing.T) {
	sandbox(t)
	out, err := execute(t, "", "trace", "dt")
	if err != nil {
		t.Fatalf("trace: %v", err)
	}
	if !strings.Contains(out, "C -> D") || !strings.Contains(out, "final: D (accept)") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestCompare_Agree(t *testing.T) {
	sandbox(t)
	out, err := execute(t, "", "compare", "cat", "dttcat", "ca", "x", "")
	if err != nil {
		t.Fatalf("compare: %v\n%s", err, out)
	}
	if !strings.Contains(out, "agree") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestCompare_JSONMatcherSubset(t *testing.T) {
	sandbox(t)
	out, err := execute(t, "", "compare", "--json", "--matchers", "fsm,regexp", "cat", "dt")
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	var res compareResult
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("json: %v\n%s", err, out)
	}
	if len(res.Matchers) != 2 || res.Inputs != 2 || len(res.Disagreements) != 0 {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestCompare_UnknownMatcher(t *testing.T) {
	sandbox(t)
	if _, err := execute(t, "", "compare", "--matchers", "pcre", "cat"); err == nil {
		t.Fatal("expected unknown matcher error")
	}
}

func TestBench_TextNoHistory(t *testing.T) {
	dir := sandbox(t)
	out, err := execute(t, "", "bench", "--loops", "10", "--no-history", "dttcat")
	if err != nil {
		t.Fatalf("bench: %v", err)
	}
	for _, name := range []string{"fsm:", "regexp:", "regexp2:"} {
		if !strings.Contains(out, name) {
			t.Fatalf("missing %s in output:\n%s", name, out)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, ".dfabench_history.jsonl")); !os.IsNotExist(err) {
		t.Fatalf("history written despite --no-history: %v", err)
	}
}

func TestBench_JSONAndHistory(t *testing.T) {
	sandbox(t)
	out, err := execute(t, "", "bench", "--json", "--loops", "5", "--threads", "2", "cat", "dt")
	if err != nil {
		t.Fatalf("bench: %v", err)
	}
	var res bench.Result
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("json: %v\n%s", err, out)
	}
	if len(res.Measurements) != 6 {
		t.Fatalf("want 6 measurements, got %d", len(res.Measurements))
	}
	for _, m := range res.Measurements {
		if m.Loops != 5 || !m.Accept {
			t.Fatalf("unexpected measurement: %+v", m)
		}
	}

	out, err = execute(t, "", "history", "--json")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	var records []history.Record
	if err := json.Unmarshal([]byte(out), &records); err != nil {
		t.Fatalf("json: %v\n%s", err, out)
	}
	if len(records) != 1 || records[0].Language != "cat" || records[0].Loops != 5 || records[0].RunID == "" {
		t.Fatalf("unexpected history: %+v", records)
	}

	if _, err := execute(t, "", "bench", "--loops", "7", "cat"); err != nil {
		t.Fatalf("second bench: %v", err)
	}
	out, err = execute(t, "", "history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	rowOf := func(loops string) string {
		for _, line := range strings.Split(out, "\n") {
			fields := strings.FieldsFunc(line, func(r rune) bool { return r == '│' || r == '|' })
			if len(fields) > 4 && strings.TrimSpace(fields[4]) == loops {
				return strings.TrimSpace(fields[0])
			}
		}
		t.Fatalf("no row with %s loops in:\n%s", loops, out)
		return ""
	}
	newest, oldest := rowOf("7"), rowOf("5")
	if newest != "1" || oldest != "2" {
		t.Fatalf("rows numbered %s and %s, want 1 and 2:\n%s", newest, oldest, out)
	}

	// the number shown in the listing is the one delete removes
	if _, err := execute(t, "", "history", "delete", newest); err != nil {
		t.Fatalf("history delete: %v", err)
	}
	out, err = execute(t, "", "history", "--json")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	records = nil
	if err := json.Unmarshal([]byte(out), &records); err != nil {
		t.Fatalf("json: %v\n%s", err, out)
	}
	if len(records) != 1 || records[0].Loops != 5 {
		t.Fatalf("wrong run deleted: %+v", records)
	}

	if _, err := execute(t, "", "history", "delete", "0"); err == nil {
		t.Fatal("expected error for row 0")
	}
	if _, err := execute(t, "", "history", "delete", "1"); err != nil {
		t.Fatalf("history delete: %v", err)
	}
	if _, err := execute(t, "", "history", "delete", "1"); err == nil {
		t.Fatal("expected error deleting from empty history")
	}
}

func TestBench_TableAndTextExclusive(t *testing.T) {
	sandbox(t)
	if _, err := execute(t, "", "bench", "--table", "--text", "cat"); err == nil {
		t.Fatal("expected mutually exclusive flag error")
	}
}

func TestDef_ListAndShow(t *testing.T) {
	sandbox(t)
	out, err := execute(t, "", "def", "list")
	if err != nil {
		t.Fatalf("def list: %v", err)
	}
	if !strings.Contains(out, "cat") || !strings.Contains(out, "mod3") {
		t.Fatalf("unexpected list:\n%s", out)
	}
	out, err = execute(t, "", "def", "show", "mod3")
	if err != nil {
		t.Fatalf("def show: %v", err)
	}
	if !strings.Contains(out, "name: mod3") {
		t.Fatalf("unexpected show:\n%s", out)
	}
}

func TestDef_InitValidate(t *testing.T) {
	dir := sandbox(t)
	if _, err := execute(t, "", "def", "init", "--from", "mod3", "--output", "lang.yaml"); err != nil {
		t.Fatalf("def init: %v", err)
	}
	if _, err := execute(t, "", "def", "init", "--from", "mod3", "--output", "lang.yaml"); err == nil {
		t.Fatal("expected refusal to overwrite")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("version: \"1.0\"\nname: bad\nstates: [A]\ninitial: Z\naccepting: [A]\nsink: A\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := execute(t, "", "def", "validate", "lang.yaml")
	if err != nil {
		t.Fatalf("validate: %v\n%s", err, out)
	}
	if !strings.HasPrefix(out, "ok") {
		t.Fatalf("unexpected output: %q", out)
	}
	out, err = execute(t, "", "def", "validate", "lang.yaml", bad)
	if err == nil {
		t.Fatal("expected validation failure")
	}
	if !strings.Contains(out, "FAIL "+bad) {
		t.Fatalf("unexpected output:\n%s", out)
	}

	out, err = execute(t, "", "run", "-d", "lang.yaml", "11")
	if err != nil || !strings.Contains(out, "accept") {
		t.Fatalf("run with definition: %v\n%s", err, out)
	}
}

func TestConfigInit_AppliesToRun(t *testing.T) {
	sandbox(t)
	if _, err := execute(t, "", "config", "init", "--set-language", "mod3"); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if _, err := os.Stat(".dfabench.yml"); err != nil {
		t.Fatalf("config not written: %v", err)
	}
	out, err := execute(t, "", "run", "--json", "11")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	var vs []report.Verdict
	if err := json.Unmarshal([]byte(out), &vs); err != nil {
		t.Fatalf("json: %v\n%s", err, out)
	}
	if len(vs) != 1 || vs[0].Final != "R0" {
		t.Fatalf("config language not applied: %+v", vs)
	}

	// flags still win over the file
	out, err = execute(t, "", "run", "--json", "-l", "cat", "11")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out, `"final": "DEAD"`) {
		t.Fatalf("flag did not override config:\n%s", out)
	}
}

func TestConfigInit_BadMatchers(t *testing.T) {
	sandbox(t)
	if _, err := execute(t, "", "config", "init", "--set-matchers", "nope"); err == nil {
		t.Fatal("expected matcher validation error")
	}
}

func TestVersion(t *testing.T) {
	sandbox(t)
	out, err := execute(t, "", "version", "--json")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	var v versionInfo
	if err := json.Unmarshal([]byte(out), &v); err != nil {
		t.Fatalf("json: %v", err)
	}
	if v.Version != version || v.Go == "" {
		t.Fatalf("unexpected version: %+v", v)
	}
}

func TestLanguageFlagOverridesConfiguredDefinition(t *testing.T) {
	sandbox(t)
	if _, err := execute(t, "", "def", "init", "--from", "cat", "--output", "cat.yaml"); err != nil {
		t.Fatalf("def init: %v", err)
	}
	if err := os.WriteFile(".dfabench.yml", []byte("definition: cat.yaml\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "", "run", "--json", "110")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out, `"final": "DEAD"`) {
		t.Fatalf("configured definition not used:\n%s", out)
	}

	out, err = execute(t, "", "run", "--json", "-l", "mod3", "110")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	var vs []report.Verdict
	if err := json.Unmarshal([]byte(out), &vs); err != nil {
		t.Fatalf("json: %v\n%s", err, out)
	}
	if len(vs) != 1 || vs[0].Final != "R0" || !vs[0].Accept {
		t.Fatalf("--language did not override configured definition: %+v", vs)
	}

	// an explicit --definition still wins over --language
	out, err = execute(t, "", "run", "--json", "-l", "mod3", "-d", "cat.yaml", "110")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out, `"final": "DEAD"`) {
		t.Fatalf("--definition lost to --language:\n%s", out)
	}
}

func TestBench_RejectsNonPositiveLoops(t *testing.T) {
	sandbox(t)
	for _, loops := range []string{"0", "-3"} {
		_, err := execute(t, "", "bench", "--no-history", "--loops", loops, "cat")
		if !errors.Is(err, bench.ErrInvalidLoops) {
			t.Fatalf("--loops %s: want ErrInvalidLoops, got %v", loops, err)
		}
	}
	if err := os.WriteFile(".dfabench.yml", []byte("loops: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "", "bench", "--no-history", "cat"); !errors.Is(err, bench.ErrInvalidLoops) {
		t.Fatalf("configured loops 0: want ErrInvalidLoops, got %v", err)
	}
}
