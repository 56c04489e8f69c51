package stkeys

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/stkeys/stkeys/internal/update"
)

var flagCheck bool

func init() {
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the stkeys version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "stkeys v%s\n", version)
			if !flagCheck {
				return nil
			}
			if latest, newer, _ := update.Check(version, false); newer && latest != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "(new version available: v%s)  run 'stkeys update' to upgrade\n", latest)
			}
			return nil
		},
	}
	versionCmd.Flags().BoolVar(&flagCheck, "check", false, "check GitHub for a newer release")
	rootCmd.AddCommand(versionCmd)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "update",
		Short: "Update stkeys to the latest release",
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := selfUpdate()
			if err != nil {
				return fmt.Errorf("self update: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated to v%s\n", v)
			return nil
		},
	})
}
