// Package commands implements the CLI commands for planwatch.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/planwatch/planwatch/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "planwatch",
	Short: "Wireless plan monitor for Canadian carrier pricing pages",
	Long: `Planwatch reduces carrier pricing pages to compact plan markup and
extracts structured plan data with an LLM.

Pricing pages are megabytes of framework markup wrapping a handful of
plan tiles. Planwatch locates the tiles, deduplicates repeated offers,
and re-serializes them as minimal HTML small enough to hand to a model.

Examples:
  # Reduce a saved pricing page to plan markup
  planwatch reduce -c telus -i telus.html

  # Fetch, reduce, and extract plans for every carrier
  planwatch run

  # Extract plans for two carriers using a specific provider
  planwatch run -C rogers -C bell -p anthropic

  # List supported carriers and their pricing pages
  planwatch carriers`,
	Version: version.String(),
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config file (default $HOME/.planwatch.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress progress output")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))

	rootCmd.SetVersionTemplate(version.Full() + "\n")
}

func initConfig() {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".planwatch")
		viper.SetConfigType("yaml")
	}

	// Environment variables
	viper.SetEnvPrefix("PLANWATCH")
	viper.AutomaticEnv()

	// Also check common API key env vars
	_ = viper.BindEnv("api_key", "ANTHROPIC_API_KEY", "OPENAI_API_KEY", "OPENROUTER_API_KEY")

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()
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
