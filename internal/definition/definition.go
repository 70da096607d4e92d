package definition

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	semver "github.com/blang/semver/v4"
	xxhash "github.com/cespare/xxhash/v2"
	"gopkg.in/yaml.v3"

	"github.com/dfabench/dfabench/internal/lang"
	"github.com/dfabench/dfabench/internal/table"
)

// SupportedMajor is the definition format major version this build reads.
const SupportedMajor = 1

var (
	ErrInvalidDefinition  = errors.New("invalid definition")
	ErrUnsupportedVersion = errors.New("unsupported definition version")
)

// Definition is the on-disk YAML shape of a language.
type Definition struct {
	Version     string            `yaml:"version"`
	Name        string            `yaml:"name"`
	Description string            `yaml:"description,omitempty"`
	States      []string          `yaml:"states"`
	Initial     string            `yaml:"initial"`
	Accepting   []string          `yaml:"accepting"`
	Sink        string            `yaml:"sink"`
	Transitions []Edge            `yaml:"transitions"`
	Defaults    map[string]string `yaml:"defaults,omitempty"`
	Baseline    string            `yaml:"baseline,omitempty"`
}

// Edge sends From to To on every rune in Symbols.
type Edge struct {
	From    string `yaml:"from"`
	Symbols string `yaml:"symbols"`
	To      string `yaml:"to"`
}

// Load reads and validates a definition file.
func Load(path string) (*Definition, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	d, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Parse decodes and validates a definition.
func Parse(b []byte) (*Definition, error) {
	var d Definition
	if err := yaml.Unmarshal(b, &d); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDefinition, err)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// Marshal encodes d as YAML.
func (d *Definition) Marshal() ([]byte, error) {
	return yaml.Marshal(d)
}

// Fingerprint identifies the definition's content. Two definitions with the
// same fingerprint describe the same language the same way.
func (d *Definition) Fingerprint() string {
	b, err := d.Marshal()
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%016x", xxhash.Sum64(b))
}

// Validate reports every structural problem at once.
func (d *Definition) Validate() error {
	if err := checkVersion(d.Version); err != nil {
		return err
	}
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidDefinition, fmt.Sprintf(format, args...)))
	}

	if d.Name == "" {
		bad("name is required")
	}
	known := make(map[string]struct{}, len(d.States))
	for _, s := range d.States {
		if s == "" {
			bad("empty state name")
			continue
		}
		if _, dup := known[s]; dup {
			bad("state %q listed twice", s)
		}
		known[s] = struct{}{}
	}
	if len(d.States) == 0 {
		bad("no states")
	}
	check := func(field, s string) {
		if s == "" {
			bad("%s is required", field)
			return
		}
		if _, ok := known[s]; !ok {
			bad("%s refers to unknown state %q", field, s)
		}
	}
	check("initial", d.Initial)
	check("sink", d.Sink)
	for _, s := range d.Accepting {
		check("accepting", s)
	}
	for i, e := range d.Transitions {
		where := "transitions[" + strconv.Itoa(i) + "]"
		check(where+".from", e.From)
		check(where+".to", e.To)
		if e.Symbols == "" {
			bad("%s has no symbols", where)
		}
		if e.From != "" && e.From == d.Sink {
			bad("%s leaves the sink state %q", where, d.Sink)
		}
	}
	for from, to := range d.Defaults {
		check("defaults key", from)
		check("defaults["+from+"]", to)
		if from == d.Sink && to != d.Sink {
			bad("defaults leave the sink state %q", d.Sink)
		}
	}
	return errors.Join(errs...)
}

func checkVersion(v string) error {
	if v == "" {
		return fmt.Errorf("%w: version is required", ErrInvalidDefinition)
	}
	ver, err := semver.ParseTolerant(v)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrUnsupportedVersion, v, err)
	}
	if ver.Major != SupportedMajor {
		return fmt.Errorf("%w: %s (want %d.x)", ErrUnsupportedVersion, ver, SupportedMajor)
	}
	return nil
}

// Table builds the transition table described by d.
func (d *Definition) Table() (*table.Table[string, rune], error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	b := table.NewBuilder[string, rune](d.Sink)
	for _, e := range d.Transitions {
		b.OnEach(e.From, []rune(e.Symbols), e.To)
	}
	for from, to := range d.Defaults {
		b.Otherwise(from, to)
	}
	t, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDefinition, err)
	}
	return t, nil
}

// Compile turns d into a language over runes.
func (d *Definition) Compile() (*lang.Language[string, rune], error) {
	t, err := d.Table()
	if err != nil {
		return nil, err
	}
	return lang.New[string, rune](d.Name, t, d.Initial, d.Accepting...)
}
