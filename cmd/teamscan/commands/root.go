// Package commands implements the CLI commands for teamscan.
package commands

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/teamscan/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "teamscan",
	Short: "LLM-powered extraction of people from team pages",
	Long: `Teamscan reads a list of team-page URLs, cleans each page down to
plain text, asks an LLM for one CSV row per person, and appends the
results to a spreadsheet-ready CSV file.

Examples:
  # Extract people from a list of team pages
  teamscan extract -i urls.csv -o people.csv

  # Use local Ollama
  teamscan extract -i urls.csv -p ollama -m llama3.2

  # Find likely team pages for a list of sites
  teamscan discover -i sites.csv -o candidates.csv`,
	Version: version.Version,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config file (default $HOME/.teamscan.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress progress output")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))

	rootCmd.SetVersionTemplate(version.String() + "\n")
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
		viper.SetConfigName(".teamscan")
		viper.SetConfigType("yaml")
	}

	// Environment variables
	viper.SetEnvPrefix("TEAMSCAN")
	viper.AutomaticEnv()

	// Also check common API key env vars
	_ = viper.BindEnv("api_key", "ANTHROPIC_API_KEY", "OPENAI_API_KEY")

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
