package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all stored match reports",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := openStorage()
	if err != nil {
		return err
	}
	defer db.Close()

	matches, err := db.ListMatches()
	if err != nil {
		return fmt.Errorf("list matches: %w", err)
	}
	if len(matches) == 0 {
		fmt.Fprintln(os.Stdout, "No matches stored yet. Run 'lolinsights analyze <match-id>' to add one.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-18s  %5s  %-8s  %8s  %-30s  %s\n",
		"MATCH", "QUEUE", "VERSION", "DURATION", "CHAMPIONS", "ANALYZED")
	fmt.Fprintf(os.Stdout, "%-18s  %5s  %-8s  %8s  %-30s  %s\n",
		"──────────────────", "─────", "────────", "────────", "──────────────────────────────", "────────")
	for _, m := range matches {
		duration := fmt.Sprintf("%dm%02ds", m.GameDurationSec/60, m.GameDurationSec%60)
		fmt.Fprintf(os.Stdout, "%-18s  %5d  %-8s  %8s  %-30s  %s\n",
			m.MatchID, m.QueueID, shortVersion(m.GameVersion), duration, m.Champions, m.AnalyzedAt)
	}
	return nil
}

// shortVersion trims a full game version like "14.23.632.8141" to "14.23".
func shortVersion(v string) string {
	dots := 0
	for i, r := range v {
		if r == '.' {
			dots++
			if dots == 2 {
				return v[:i]
			}
		}
	}
	return v
}
