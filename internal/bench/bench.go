// Package bench times recognizers against each other and checks that they
// agree on every verdict.
package bench

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dfabench/dfabench/internal/logger"
)

// DefaultLoops is the number of match calls per measurement.
const DefaultLoops = 65356

// checkEvery is how many iterations run between context checks.
const checkEvery = 4096

var (
	ErrNoMatchers   = errors.New("bench: no matchers")
	ErrNoInputs     = errors.New("bench: no inputs")
	ErrInvalidLoops = errors.New("bench: loops must be positive")
)

// Matcher is anything that can decide membership of a word.
type Matcher interface {
	Name() string
	Match(input string) bool
}

// Measurement is the timing of one matcher on one input.
type Measurement struct {
	Matcher string        `json:"matcher"`
	Input   string        `json:"input"`
	Accept  bool          `json:"accept"`
	Loops   int           `json:"loops"`
	Total   time.Duration `json:"total_ns"`
	PerOp   time.Duration `json:"per_op_ns"`
}

// Millis is the per-call time in milliseconds.
func (m Measurement) Millis() float64 {
	return float64(m.PerOp) / float64(time.Millisecond)
}

// Disagreement lists the verdict of every matcher for an input on which they
// do not all agree.
type Disagreement struct {
	Input    string          `json:"input"`
	Verdicts map[string]bool `json:"verdicts"`
}

// Config controls Run.
type Config struct {
	Loops   int // zero means DefaultLoops
	Threads int // zero or less means 1
	Logger  *slog.Logger
}

// Result is the outcome of Run.
type Result struct {
	Measurements  []Measurement  `json:"measurements"`
	Disagreements []Disagreement `json:"disagreements,omitempty"`
	Elapsed       time.Duration  `json:"elapsed_ns"`
}

// Measure calls m.Match(input) loops times.
func Measure(ctx context.Context, m Matcher, input string, loops int) (Measurement, error) {
	if loops <= 0 {
		return Measurement{}, ErrInvalidLoops
	}
	accept := m.Match(input)
	start := time.Now()
	for i := 0; i < loops; i++ {
		if i%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return Measurement{}, err
			}
		}
		m.Match(input)
	}
	total := time.Since(start)
	return Measurement{
		Matcher: m.Name(),
		Input:   input,
		Accept:  accept,
		Loops:   loops,
		Total:   total,
		PerOp:   total / time.Duration(loops),
	}, nil
}

// Run measures every matcher against every input. Measurements are grouped
// by input in the order given, fastest first within each group.
func Run(ctx context.Context, cfg Config, matchers []Matcher, inputs []string) (Result, error) {
	if len(matchers) == 0 {
		return Result{}, ErrNoMatchers
	}
	if len(inputs) == 0 {
		return Result{}, ErrNoInputs
	}
	loops := cfg.Loops
	if loops == 0 {
		loops = DefaultLoops
	}
	if loops < 0 {
		return Result{}, ErrInvalidLoops
	}
	threads := max(cfg.Threads, 1)
	log := cfg.Logger
	if log == nil {
		log = logger.Discard()
	}
	log = log.With(logger.Component("bench"))

	start := time.Now()
	out := make([]Measurement, len(inputs)*len(matchers))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(threads)
	for i, in := range inputs {
		for j, m := range matchers {
			slot := i*len(matchers) + j
			g.Go(func() error {
				ms, err := Measure(gctx, m, in, loops)
				if err != nil {
					return fmt.Errorf("%s on %q: %w", m.Name(), in, err)
				}
				log.Debug("measured", slog.String("matcher", ms.Matcher), slog.String("input", in), logger.Duration(ms.PerOp))
				out[slot] = ms
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	for i := range inputs {
		group := out[i*len(matchers) : (i+1)*len(matchers)]
		slices.SortStableFunc(group, func(a, b Measurement) int { return cmp.Compare(a.PerOp, b.PerOp) })
	}
	res := Result{
		Measurements:  out,
		Disagreements: Compare(matchers, inputs),
		Elapsed:       time.Since(start),
	}
	log.Info("bench finished",
		slog.Int("matchers", len(matchers)),
		slog.Int("inputs", len(inputs)),
		slog.Int("disagreements", len(res.Disagreements)),
		logger.Duration(res.Elapsed))
	return res, nil
}

// Compare returns the inputs on which matchers give different verdicts.
func Compare(matchers []Matcher, inputs []string) []Disagreement {
	var out []Disagreement
	for _, in := range inputs {
		verdicts := make(map[string]bool, len(matchers))
		agree := true
		var first bool
		for k, m := range matchers {
			v := m.Match(in)
			verdicts[m.Name()] = v
			if k == 0 {
				first = v
			} else if v != first {
				agree = false
			}
		}
		if !agree {
			out = append(out, Disagreement{Input: in, Verdicts: verdicts})
		}
	}
	return out
}
