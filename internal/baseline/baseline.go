// Package baseline provides regex matchers used as a reference point for
// the table-driven recognizers. Matchers are built explicitly by callers;
// nothing is compiled at package initialisation.
package baseline

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"sync"
	"time"

	"github.com/dlclark/regexp2"

	"github.com/dfabench/dfabench/internal/logger"
)

// Engine names accepted by New.
const (
	EngineRE2          = "regexp"
	EngineBacktracking = "regexp2"
)

// DefaultTimeout bounds a single backtracking match.
const DefaultTimeout = time.Second

var (
	ErrEmptyPattern  = errors.New("baseline: empty pattern")
	ErrUnknownEngine = errors.New("baseline: unknown regex engine")
)

// Matcher is the common surface of every baseline.
type Matcher interface {
	Name() string
	Pattern() string
	Match(input string) bool
}

// RE2 matches with the standard library's linear-time engine.
type RE2 struct {
	name string
	re   *regexp.Regexp
}

// NewRE2 compiles pattern.
func NewRE2(name, pattern string) (*RE2, error) {
	if pattern == "" {
		return nil, ErrEmptyPattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("baseline %s: %w", name, err)
	}
	return &RE2{name: name, re: re}, nil
}

func (m *RE2) Name() string { return m.name }

func (m *RE2) Pattern() string { return m.re.String() }

func (m *RE2) Match(input string) bool { return m.re.MatchString(input) }

// Backtracking matches with regexp2's ECMAScript-flavoured backtracking
// engine. A match that errors (normally a timeout) counts as no match; the
// first such error is logged.
type Backtracking struct {
	name    string
	re      *regexp2.Regexp
	log     *slog.Logger
	errOnce sync.Once
}

// NewBacktracking compiles pattern. A zero timeout means DefaultTimeout.
func NewBacktracking(name, pattern string, timeout time.Duration, log *slog.Logger) (*Backtracking, error) {
	if pattern == "" {
		return nil, ErrEmptyPattern
	}
	re, err := regexp2.Compile(pattern, regexp2.ECMAScript)
	if err != nil {
		return nil, fmt.Errorf("baseline %s: %w", name, err)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	re.MatchTimeout = timeout
	if log == nil {
		log = slog.Default()
	}
	return &Backtracking{name: name, re: re, log: log}, nil
}

func (m *Backtracking) Name() string { return m.name }

func (m *Backtracking) Pattern() string { return m.re.String() }

func (m *Backtracking) Match(input string) bool {
	ok, err := m.re.MatchString(input)
	if err != nil {
		m.errOnce.Do(func() {
			m.log.Warn("baseline match failed", logger.Component("baseline"), slog.String("matcher", m.name), logger.Error(err))
		})
		return false
	}
	return ok
}

// New builds a matcher for engine, named after the engine.
func New(engine, pattern string, timeout time.Duration, log *slog.Logger) (Matcher, error) {
	switch engine {
	case EngineRE2:
		m, err := NewRE2(engine, pattern)
		if err != nil {
			return nil, err
		}
		return m, nil
	case EngineBacktracking:
		m, err := NewBacktracking(engine, pattern, timeout, log)
		if err != nil {
			return nil, err
		}
		return m, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, engine)
	}
}

// Engines lists the names New accepts.
func Engines() []string { return []string{EngineRE2, EngineBacktracking} }
