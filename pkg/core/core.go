package core

import (
	"github.com/stkeys/stkeys/internal/engine"
	"github.com/stkeys/stkeys/internal/ssid"
	"github.com/stkeys/stkeys/internal/types"
)

// Re-export selected internal types as a stable public API surface.
type Config = engine.Config
type Result = engine.Result
type Match = types.Match
type Target = ssid.Target

var (
	ErrInvalidLength    = ssid.ErrInvalidLength
	ErrInvalidCharacter = ssid.ErrInvalidCharacter
)

// ParseSSID validates the hex SSID suffix and returns the digest target.
func ParseSSID(s string) (Target, error) { return ssid.Parse(s) }

// Search runs the search and returns all matches in emit order.
func Search(cfg Config) ([]Match, error) {
	matches, _, err := SearchWithStats(cfg)
	return matches, err
}

// SearchWithStats runs the search and returns matches along with statistics.
func SearchWithStats(cfg Config) ([]Match, Result, error) {
	var out []Match
	res, err := engine.Search(cfg, func(m Match) { out = append(out, m) })
	if err != nil {
		return nil, res, err
	}
	return out, res, nil
}

// Count returns the number of candidates cfg covers.
func Count(cfg Config) int64 { return engine.Count(cfg) }
