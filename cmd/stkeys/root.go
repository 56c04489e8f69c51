package stkeys

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/stkeys/stkeys/internal/ssid"
)

var (
	flagJSON    bool
	flagTable   bool
	flagThreads int
	flagKeySize int
	flagSummary bool
	flagNoColor bool
	flagVerbose bool

	version = "0.1.0"
)

// rootCmd is the base Cobra command for the stkeys CLI. Given an SSID it
// runs the search; subcommands cover configuration and maintenance.
var rootCmd = &cobra.Command{
	Use:   "stkeys [flags] <SSID> [start-year] [end-year]",
	Short: "Recover default router keys from the SSID suffix",
	Long: "stkeys enumerates every CP serial in the year range (default 2-10), " +
		"hashes it with SHA-1 and prints the default key of each serial whose " +
		"digest ends with the hex SSID suffix.",
	Args:          cobra.ArbitraryArgs,
	RunE:          runSearch,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the stkeys CLI. It should be called by the main package.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorMessage(err))
		os.Exit(1)
	}
}

func errorMessage(err error) string {
	switch {
	case errors.Is(err, ssid.ErrInvalidLength):
		return "Invalid SSID length"
	case errors.Is(err, ssid.ErrInvalidCharacter):
		return "Invalid SSID"
	}
	return "error: " + err.Error()
}

func init() {
	// flags end at the SSID so negative years stay positional
	rootCmd.Flags().SetInterspersed(false)
	rootCmd.Flags().BoolVar(&flagJSON, "json", false, "emit matches as JSON")
	rootCmd.Flags().BoolVar(&flagTable, "table", false, "emit matches as a table with serials")
	rootCmd.Flags().IntVar(&flagThreads, "threads", 1, "worker count (0 = GOMAXPROCS, 1 = ordered output)")
	rootCmd.Flags().IntVar(&flagKeySize, "key-size", 5, "leading digest bytes printed per match (1-20)")
	rootCmd.Flags().BoolVar(&flagSummary, "summary", false, "print search statistics to stderr")
	for _, name := range []string{"threads", "key-size"} {
		_ = rootCmd.RegisterFlagCompletionFunc(name, cobra.NoFileCompletions)
	}
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
}
