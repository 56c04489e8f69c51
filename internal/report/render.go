package report

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/stkeys/stkeys/internal/types"
)

// PrintOptions carries the run statistics for PrintSummary. NoColor drops
// the lipgloss styling.
type PrintOptions struct {
	NoColor    bool
	Duration   time.Duration
	Candidates int64
	Matches    int64
}

// KeyWriter streams one key per line. It is the default output: each line
// is the uppercase hex key of one match and nothing else.
type KeyWriter struct {
	bw  *bufio.Writer
	err error
}

func NewKeyWriter(w io.Writer) *KeyWriter {
	return &KeyWriter{bw: bufio.NewWriter(w)}
}

// Write appends m's key. The first write error is kept and returned by Flush.
func (k *KeyWriter) Write(m types.Match) {
	if k.err != nil {
		return
	}
	if _, err := k.bw.WriteString(m.Key); err != nil {
		k.err = err
		return
	}
	k.err = k.bw.WriteByte('\n')
}

func (k *KeyWriter) Flush() error {
	if k.err != nil {
		return k.err
	}
	return k.bw.Flush()
}

// PrintText writes one key per line.
func PrintText(w io.Writer, matches []types.Match) error {
	kw := NewKeyWriter(w)
	for _, m := range matches {
		kw.Write(m)
	}
	return kw.Flush()
}

// WriteJSON pretty-prints matches as a JSON array; nil encodes as [].
func WriteJSON(w io.Writer, matches []types.Match) error {
	if matches == nil {
		matches = []types.Match{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(matches)
}

// PrintTable renders matches with borders, one row per serial.
func PrintTable(w io.Writer, matches []types.Match) error {
	if len(matches) == 0 {
		fmt.Fprintln(w, "No matching serials")
		return nil
	}
	table := tablewriter.NewWriter(w)
	table.Header("Serial", "Year", "Week", "Key")
	for _, m := range matches {
		if err := table.Append([]string{m.Serial, strconv.Itoa(m.Year), strconv.Itoa(m.Week), m.Key}); err != nil {
			return err
		}
	}
	return table.Render()
}

var (
	labelStyle = lipgloss.NewStyle().Bold(true)
	hitStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	missStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// PrintSummary writes the search statistics footer.
func PrintSummary(w io.Writer, opts PrintOptions) {
	label := func(s string) string {
		if opts.NoColor {
			return s
		}
		return labelStyle.Render(s)
	}
	count := strconv.FormatInt(opts.Matches, 10)
	if !opts.NoColor {
		if opts.Matches > 0 {
			count = hitStyle.Render(count)
		} else {
			count = missStyle.Render(count)
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s %d\n", label("Candidates tested:"), opts.Candidates)
	fmt.Fprintf(w, "%s %s\n", label("Matches:"), count)
	if opts.Duration > 0 {
		fmt.Fprintf(w, "%s %.2fs\n", label("Search duration:"), opts.Duration.Seconds())
	}
}
