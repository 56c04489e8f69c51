package stkeys

import (
	"strconv"

	"github.com/spf13/cobra"
	"github.com/stkeys/stkeys/internal/engine"
)

// completeSearchArgs offers the default year bounds for the two optional
// positional arguments. SSIDs are free-form hex, never file names.
func completeSearchArgs(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	switch len(args) {
	case 1:
		return []string{strconv.Itoa(engine.DefaultStartYear)}, cobra.ShellCompDirectiveNoFileComp
	case 2:
		return []string{strconv.Itoa(engine.DefaultEndYear)}, cobra.ShellCompDirectiveNoFileComp
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}

func init() {
	rootCmd.ValidArgsFunction = completeSearchArgs
	// cobra's own `completion` command covers bash, zsh, fish and powershell
	rootCmd.CompletionOptions.HiddenDefaultCmd = false
}
