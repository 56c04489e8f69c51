package core

import (
	"encoding/json"
	"io"

	"github.com/stkeys/stkeys/internal/report"
)

// MarshalMatches pretty-prints matches as JSON for humans or pipelines.
func MarshalMatches(w io.Writer, matches []Match) error {
	return report.WriteJSON(w, matches)
}

// UnmarshalMatches decodes matches JSON, useful for ingestion tests.
func UnmarshalMatches(r io.Reader) ([]Match, error) {
	var ms []Match
	if err := json.NewDecoder(r).Decode(&ms); err != nil {
		return nil, err
	}
	return ms, nil
}
