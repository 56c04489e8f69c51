package stkeys

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/stkeys/stkeys/internal/engine"
	"github.com/stkeys/stkeys/internal/report"
	"github.com/stkeys/stkeys/internal/serial"
	"github.com/stkeys/stkeys/internal/ssid"
	"github.com/stkeys/stkeys/internal/types"
)

const (
	formatText  = "text"
	formatJSON  = "json"
	formatTable = "table"
)

func runSearch(cmd *cobra.Command, args []string) error {
	if len(args) < 1 || len(args) > 3 {
		fmt.Fprintf(cmd.OutOrStdout(), "Usage: %s <SSID> [start year] [end year]\n", cmd.Root().Name())
		return nil
	}

	target, err := ssid.Parse(args[0])
	if err != nil {
		return err
	}

	lcfg, gcfg := loadConfigs()
	flags := cmd.Flags()

	start, err := pickYear(args, 1, lcfg.StartYear, gcfg.StartYear, engine.DefaultStartYear)
	if err != nil {
		return err
	}
	end, err := pickYear(args, 2, lcfg.EndYear, gcfg.EndYear, engine.DefaultEndYear)
	if err != nil {
		return err
	}

	cfg := engine.Config{
		Target:    target,
		StartYear: start,
		EndYear:   end,
		Threads:   pickInt(flags.Changed("threads"), flagThreads, lcfg.Threads, gcfg.Threads, 1),
		KeySize:   pickInt(flags.Changed("key-size"), flagKeySize, lcfg.KeySize, gcfg.KeySize, serial.DefaultKeySize),
		Logger:    newLogger(cmd.ErrOrStderr(), flagVerbose),
	}
	if cfg.KeySize < 1 {
		return fmt.Errorf("%w: key size %d outside 1..%d", engine.ErrInvalidConfig, cfg.KeySize, serial.DigestSize)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	var format string
	switch {
	case flagJSON:
		format = formatJSON
	case flagTable:
		format = formatTable
	default:
		format = strings.ToLower(pickString("", lcfg.Format, gcfg.Format, formatText))
	}

	var (
		res     engine.Result
		matches []types.Match
	)
	switch format {
	case formatText:
		kw := report.NewKeyWriter(cmd.OutOrStdout())
		res, err = engine.Search(cfg, kw.Write)
		if err != nil {
			return err
		}
		if err := kw.Flush(); err != nil {
			return err
		}
	case formatJSON, formatTable:
		res, err = engine.Search(cfg, func(m types.Match) { matches = append(matches, m) })
		if err != nil {
			return err
		}
		if format == formatJSON {
			err = report.WriteJSON(cmd.OutOrStdout(), matches)
		} else {
			err = report.PrintTable(cmd.OutOrStdout(), matches)
		}
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown output format %q (want text, json or table)", format)
	}

	if flagSummary {
		noColor := pickBool(flagNoColor, lcfg.NoColor, gcfg.NoColor) || !colorEnabled(cmd.ErrOrStderr())
		report.PrintSummary(cmd.ErrOrStderr(), report.PrintOptions{
			NoColor:    noColor,
			Duration:   res.Duration,
			Candidates: res.Candidates,
			Matches:    res.Matches,
		})
	}
	return nil
}

// pickYear resolves a year bound: positional argument > local > global > default.
func pickYear(args []string, pos int, local, global *int, def int) (int, error) {
	if len(args) > pos {
		v, err := strconv.Atoi(strings.TrimSpace(args[pos]))
		if err != nil {
			return 0, fmt.Errorf("invalid year %q: %w", args[pos], err)
		}
		return v, nil
	}
	return pickInt(false, 0, local, global, def), nil
}
