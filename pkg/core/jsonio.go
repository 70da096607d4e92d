package core

import (
	"encoding/json"
	"io"

	"github.com/dfabench/dfabench/internal/report"
)

// MarshalVerdicts writes verdicts in the same indented JSON the CLI emits.
func MarshalVerdicts(w io.Writer, vs []Verdict) error {
	return report.WriteJSON(w, vs)
}

// UnmarshalVerdicts decodes the output of MarshalVerdicts or "run --json".
func UnmarshalVerdicts(r io.Reader) ([]Verdict, error) {
	var vs []Verdict
	if err := json.NewDecoder(r).Decode(&vs); err != nil {
		return nil, err
	}
	return vs, nil
}
