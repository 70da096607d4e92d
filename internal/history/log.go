// Package history keeps an append-only JSONL log of bench runs.
package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/dfabench/dfabench/internal/bench"
	"github.com/dfabench/dfabench/internal/git"
)

// ErrInvalidIndex is returned by Delete for an index outside the log.
var ErrInvalidIndex = errors.New("history: invalid index")

// Record is one bench run.
type Record struct {
	Timestamp     time.Time            `json:"timestamp"`
	RunID         string               `json:"run_id"`
	Language      string               `json:"language"`
	Fingerprint   string               `json:"fingerprint"`
	Loops         int                  `json:"loops"`
	Measurements  []bench.Measurement  `json:"measurements"`
	Disagreements []bench.Disagreement `json:"disagreements,omitempty"`
	git.Metadata
}

// Log is a JSONL file of Records, oldest first on disk.
type Log struct {
	path string
}

// Open places the log inside .git when root is a repository checkout and
// next to it otherwise.
func Open(root string) *Log {
	gitDir := filepath.Join(root, ".git")
	path := filepath.Join(root, ".dfabench_history.jsonl")
	if st, err := os.Stat(gitDir); err == nil && st.IsDir() {
		path = filepath.Join(gitDir, "dfabench_history.jsonl")
	}
	return &Log{path: path}
}

// Path returns the backing file.
func (l *Log) Path() string { return l.path }

// NewRecord stamps a run with a fresh ID, the current time and repository
// metadata for root.
func NewRecord(root, language, fingerprint string, loops int, res bench.Result) Record {
	return Record{
		Timestamp:     time.Now().UTC(),
		RunID:         uuid.NewString(),
		Language:      language,
		Fingerprint:   fingerprint,
		Loops:         loops,
		Measurements:  res.Measurements,
		Disagreements: res.Disagreements,
		Metadata:      git.RepoMetadata(root),
	}
}

// Load returns all records, newest first. A missing log yields no records.
// Undecodable lines are skipped.
func (l *Log) Load() ([]Record, error) {
	f, err := os.Open(l.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	defer f.Close()

	var records []Record
	dec := json.NewDecoder(f)
	for dec.More() {
		var r Record
		if err := dec.Decode(&r); err != nil {
			var syn *json.SyntaxError
			if errors.As(err, &syn) {
				break
			}
			continue
		}
		records = append(records, r)
	}
	slices.Reverse(records)
	return records, nil
}

// Append adds r to the log, assigning a RunID if it has none.
func (l *Log) Append(r Record) error {
	if r.RunID == "" {
		r.RunID = uuid.NewString()
	}
	// runs may carry inputs taken from private corpora
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer f.Close()
	if err := json.NewEncoder(f).Encode(r); err != nil {
		return fmt.Errorf("write history record: %w", err)
	}
	return nil
}

// Delete removes the record at index, counted newest first as returned by Load.
func (l *Log) Delete(index int) error {
	records, err := l.Load()
	if err != nil {
		return err
	}
	if index < 0 || index >= len(records) {
		return fmt.Errorf("%w: %d", ErrInvalidIndex, index)
	}
	records = slices.Delete(records, index, index+1)
	slices.Reverse(records)

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("rewrite history: %w", err)
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	for _, r := range records {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("write history record: %w", err)
		}
	}
	return nil
}
