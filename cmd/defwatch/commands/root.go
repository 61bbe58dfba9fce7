// Package commands implements the CLI commands for defwatch.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "defwatch",
	Short: "Defense and space sector news harvester",
	Long: `Defwatch polls a curated list of RSS feeds for defense- and
space-sector news, filters entries by keyword relevance, extracts the
full article text, and writes a Markdown report.

Examples:
  # Harvest the last 7 days and write the report to the current directory
  defwatch run

  # Narrower window, custom output directory
  defwatch run --days 3 --output-dir reports

  # Include Google News search results
  defwatch run --search

  # Run automatically every Monday at 09:00
  defwatch schedule --weekday monday --at 09:00`,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config file overriding the built-in feeds and vocabularies")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress progress output")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
}

func initConfig() {
	viper.SetEnvPrefix("DEFWATCH")
	viper.AutomaticEnv()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// logError prints an error message to stderr.
func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}

// logInfo prints an info message to stderr (unless quiet mode).
func logInfo(format string, args ...any) {
	if !viper.GetBool("quiet") {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
