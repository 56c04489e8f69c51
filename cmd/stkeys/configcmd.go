package stkeys

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/stkeys/stkeys/internal/config"
	"github.com/stkeys/stkeys/internal/engine"
	"github.com/stkeys/stkeys/internal/serial"
	"gopkg.in/yaml.v3"
)

var (
	cfgOutput    string
	cfgStartYear int
	cfgEndYear   int
	cfgThreads   int
	cfgKeySize   int
	cfgFormat    string
	cfgNoColor   bool
	cfgForce     bool
)

func init() {
	cfgCmd := &cobra.Command{Use: "config", Short: "Configuration helpers"}
	rootCmd.AddCommand(cfgCmd)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a .stkeys.yml with the search defaults",
		RunE:  runConfigInit,
	}
	cfgCmd.AddCommand(initCmd)

	initCmd.Flags().StringVar(&cfgOutput, "output", ".stkeys.yml", "output file path")
	initCmd.Flags().IntVar(&cfgStartYear, "start-year", engine.DefaultStartYear, "first year to enumerate")
	initCmd.Flags().IntVar(&cfgEndYear, "end-year", engine.DefaultEndYear, "last year to enumerate")
	initCmd.Flags().IntVar(&cfgThreads, "threads", 1, "worker count (0 = GOMAXPROCS)")
	initCmd.Flags().IntVar(&cfgKeySize, "key-size", serial.DefaultKeySize, "leading digest bytes printed per match")
	initCmd.Flags().StringVar(&cfgFormat, "format", formatText, "output format: text | json | table")
	initCmd.Flags().BoolVar(&cfgNoColor, "no-color", false, "disable color output by default")
	initCmd.Flags().BoolVar(&cfgForce, "force", false, "overwrite an existing file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the configuration merged from local and global files",
		RunE:  runConfigShow,
	}
	cfgCmd.AddCommand(showCmd)
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	switch cfgFormat {
	case formatText, formatJSON, formatTable:
	default:
		return fmt.Errorf("unknown output format %q (want text, json or table)", cfgFormat)
	}
	probe := engine.Config{Threads: cfgThreads, KeySize: cfgKeySize}
	if err := probe.Validate(); err != nil {
		return err
	}
	if !cfgForce {
		if _, err := os.Stat(cfgOutput); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", cfgOutput)
		}
	}

	fc := config.FileConfig{
		StartYear: intPtr(cfgStartYear),
		EndYear:   intPtr(cfgEndYear),
		Threads:   intPtr(cfgThreads),
		KeySize:   intPtr(cfgKeySize),
		Format:    strPtr(cfgFormat),
		NoColor:   boolPtr(cfgNoColor),
	}

	b, err := yaml.Marshal(&fc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(cfgOutput, b, 0644); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Wrote", cfgOutput)
	return nil
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	lcfg, gcfg := loadConfigs()
	fc := config.FileConfig{
		StartYear: intPtr(pickInt(false, 0, lcfg.StartYear, gcfg.StartYear, engine.DefaultStartYear)),
		EndYear:   intPtr(pickInt(false, 0, lcfg.EndYear, gcfg.EndYear, engine.DefaultEndYear)),
		Threads:   intPtr(pickInt(false, 0, lcfg.Threads, gcfg.Threads, 1)),
		KeySize:   intPtr(pickInt(false, 0, lcfg.KeySize, gcfg.KeySize, serial.DefaultKeySize)),
		Format:    strPtr(pickString("", lcfg.Format, gcfg.Format, formatText)),
		NoColor:   boolPtr(pickBool(false, lcfg.NoColor, gcfg.NoColor)),
	}
	enc := yaml.NewEncoder(cmd.OutOrStdout())
	defer enc.Close()
	return enc.Encode(&fc)
}

func strPtr(s string) *string { return &s }
func intPtr(v int) *int       { return &v }
func boolPtr(v bool) *bool    { return &v }
