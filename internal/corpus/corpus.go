// Package corpus gathers the input words fed to recognizers: positional
// arguments, line-oriented readers and files matched by glob patterns.
package corpus

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"
)

// DefaultMaxFileBytes caps how much of a single corpus file is read.
const DefaultMaxFileBytes int64 = 1 << 20

// Limits bounds file collection. A zero MaxFileBytes means DefaultMaxFileBytes.
type Limits struct {
	MaxFileBytes int64
}

func (l Limits) maxBytes() int64 {
	if l.MaxFileBytes <= 0 {
		return DefaultMaxFileBytes
	}
	return l.MaxFileBytes
}

// FromArgs returns the arguments as words. Arguments are taken verbatim, so
// the empty word can be passed explicitly.
func FromArgs(args []string) []string {
	out := make([]string, len(args))
	copy(out, args)
	return out
}

// ReadLines returns one word per line. Blank lines and lines starting with
// '#' are skipped; trailing carriage returns are dropped.
func ReadLines(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}
	return out, nil
}

// FromGlobs reads every file matched by patterns (doublestar syntax, so
// "testdata/**/*.txt" works) and returns their lines. Files above the size
// limit are skipped. A pattern matching nothing is not an error.
func FromGlobs(patterns []string, limits Limits) ([]string, error) {
	var out []string
	seen := map[string]bool{}
	for _, pat := range patterns {
		if !doublestar.ValidatePathPattern(pat) {
			return nil, fmt.Errorf("corpus: bad pattern %q: %w", pat, doublestar.ErrBadPattern)
		}
		matches, err := doublestar.FilepathGlob(pat, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("corpus: glob %q: %w", pat, err)
		}
		for _, path := range matches {
			if seen[path] {
				continue
			}
			seen[path] = true
			words, err := readFile(path, limits.maxBytes())
			if err != nil {
				return nil, err
			}
			out = append(out, words...)
		}
	}
	return out, nil
}

func readFile(path string, max int64) ([]string, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if fi.Size() > max {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	words, err := ReadLines(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return words, nil
}

// Collect merges args, glob matches and stdin (when non-nil) in that order,
// keeping the first occurrence of each word.
func Collect(args, globs []string, stdin io.Reader, limits Limits) ([]string, error) {
	words := FromArgs(args)
	if len(globs) > 0 {
		more, err := FromGlobs(globs, limits)
		if err != nil {
			return nil, err
		}
		words = append(words, more...)
	}
	if stdin != nil {
		more, err := ReadLines(stdin)
		if err != nil {
			return nil, err
		}
		words = append(words, more...)
	}
	return dedupe(words), nil
}

func dedupe(words []string) []string {
	seen := make(map[string]struct{}, len(words))
	out := words[:0]
	for _, w := range words {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}
