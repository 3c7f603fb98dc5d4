package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	dbPath string
	region string
)

var rootCmd = &cobra.Command{
	Use:   "lolinsights",
	Short: "League of Legends match insights tool",
	Long:  "Fetch League of Legends matches from the Riot API and compute tactical insights: laning phase, team fights, objectives, power spikes, deaths, and duo dynamics.",
}

// Execute runs the root command.
func Execute() {
	_ = godotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	defaultDB := filepath.Join(mustUserHome(), ".lolinsights", "insights.db")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", defaultDB, "path to SQLite database")
	rootCmd.PersistentFlags().StringVar(&region, "region", "americas", "Riot regional routing value (americas, europe, asia, sea)")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(recentCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(askCmd)
}

func mustUserHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

// loadRiotAPIKey returns the Riot API key from the RIOT_API_KEY environment
// variable or ~/.lolinsights/riot_api_key.
func loadRiotAPIKey() (string, error) {
	if key := os.Getenv("RIOT_API_KEY"); key != "" {
		return key, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(filepath.Join(home, ".lolinsights", "riot_api_key"))
	if err != nil {
		return "", fmt.Errorf("Riot API key not found: set RIOT_API_KEY or create ~/.lolinsights/riot_api_key")
	}
	return strings.TrimSpace(string(data)), nil
}
