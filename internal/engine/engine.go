package engine

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/stkeys/stkeys/internal/serial"
	"github.com/stkeys/stkeys/internal/ssid"
	"github.com/stkeys/stkeys/internal/types"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultStartYear and DefaultEndYear bound the year field when the
	// caller gives no range.
	DefaultStartYear = 2
	DefaultEndYear   = 10

	maxWorkers = 32
)

// ErrInvalidConfig is wrapped by every error Validate returns.
var ErrInvalidConfig = errors.New("invalid search config")

// Config controls the search range, the digest target, and parallelism.
type Config struct {
	Target    ssid.Target
	StartYear int
	EndYear   int
	// Threads is the worker count. 1 searches sequentially and emits matches
	// in enumeration order; 0 uses GOMAXPROCS.
	Threads int
	// KeySize is the number of leading digest bytes rendered as the key.
	// 0 selects serial.DefaultKeySize.
	KeySize int
	Logger  *slog.Logger
}

// Result contains basic search statistics.
type Result struct {
	Candidates int64
	Matches    int64
	Duration   time.Duration
}

// Validate reports configuration errors. An inverted year range is valid
// and yields an empty search.
func (c Config) Validate() error {
	if c.KeySize < 0 || c.KeySize > serial.DigestSize {
		return fmt.Errorf("%w: key size %d outside 0..%d (0 selects the default)", ErrInvalidConfig, c.KeySize, serial.DigestSize)
	}
	if c.Threads < 0 {
		return fmt.Errorf("%w: negative thread count %d", ErrInvalidConfig, c.Threads)
	}
	return nil
}

// Count returns the number of candidates the search will test:
// (end-start+1) * 52 * 36^3, or zero for an inverted range.
func Count(cfg Config) int64 {
	if cfg.EndYear < cfg.StartYear {
		return 0
	}
	years := int64(cfg.EndYear) - int64(cfg.StartYear) + 1
	return years * unitSize()
}

func unitSize() int64 {
	n := int64(len(serial.Alphabet))
	return serial.WeeksPerYear * n * n * n
}

type unit struct {
	year, week int
}

type unitResult struct {
	candidates, matches int64
}

// Search tests every candidate in the configured range and calls emit for
// each match. With a single worker matches arrive in enumeration order (year,
// week, then the three symbols over serial.Alphabet). With more workers each
// (year, week) unit keeps that order internally but units interleave. emit is
// never called concurrently. emit may be nil to only count matches.
func Search(cfg Config, emit func(types.Match)) (Result, error) {
	var result Result
	if err := cfg.Validate(); err != nil {
		return result, err
	}
	if cfg.KeySize == 0 {
		cfg.KeySize = serial.DefaultKeySize
	}
	if emit == nil {
		emit = func(types.Match) {}
	}
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	workers := workerCount(cfg.Threads)
	log.Debug("search started",
		"target", cfg.Target.String(),
		"start_year", cfg.StartYear,
		"end_year", cfg.EndYear,
		"candidates", Count(cfg),
		"workers", workers)

	started := time.Now()
	if workers == 1 {
		for year := cfg.StartYear; year <= cfg.EndYear; year++ {
			for week := 1; week <= serial.WeeksPerYear; week++ {
				r := searchUnit(cfg, unit{year, week}, emit)
				result.Candidates += r.candidates
				result.Matches += r.matches
			}
		}
	} else {
		r, err := searchParallel(cfg, workers, emit)
		if err != nil {
			return result, err
		}
		result.Candidates, result.Matches = r.candidates, r.matches
	}
	result.Duration = time.Since(started)

	log.Debug("search finished",
		"candidates", result.Candidates,
		"matches", result.Matches,
		"duration", result.Duration)
	return result, nil
}

func searchParallel(cfg Config, workers int, emit func(types.Match)) (unitResult, error) {
	var (
		mu    sync.Mutex
		total unitResult
		g     errgroup.Group
	)
	g.SetLimit(workers)

	locked := func(m types.Match) {
		mu.Lock()
		defer mu.Unlock()
		emit(m)
	}
	for year := cfg.StartYear; year <= cfg.EndYear; year++ {
		for week := 1; week <= serial.WeeksPerYear; week++ {
			u := unit{year, week}
			g.Go(func() error {
				r := searchUnit(cfg, u, locked)
				mu.Lock()
				total.candidates += r.candidates
				total.matches += r.matches
				mu.Unlock()
				return nil
			})
		}
	}
	err := g.Wait()
	return total, err
}

// searchUnit enumerates the three symbol fields for one year and week.
func searchUnit(cfg Config, u unit, emit func(types.Match)) unitResult {
	var r unitResult
	const symbols = serial.Alphabet
	for i := 0; i < len(symbols); i++ {
		for j := 0; j < len(symbols); j++ {
			for k := 0; k < len(symbols); k++ {
				c := serial.Encode(u.year, u.week, symbols[i], symbols[j], symbols[k])
				digest := c.Digest()
				r.candidates++
				if !cfg.Target.Matches(digest) {
					continue
				}
				r.matches++
				emit(types.Match{
					Serial: c.Label(),
					Year:   u.year,
					Week:   u.week,
					Key:    serial.Key(digest, cfg.KeySize),
					Digest: strings.ToUpper(hex.EncodeToString(digest[:])),
				})
			}
		}
	}
	return r
}

func workerCount(threads int) int {
	if threads <= 0 {
		threads = runtime.GOMAXPROCS(0)
	}
	if threads > maxWorkers {
		threads = maxWorkers
	}
	return threads
}
