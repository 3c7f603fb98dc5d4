package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-lol-insights/internal/report"
)

var showCmd = &cobra.Command{
	Use:   "show <match-id-prefix>",
	Short: "Show a stored match report by match-id prefix",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	prefix := args[0]

	db, err := openStorage()
	if err != nil {
		return err
	}
	defer db.Close()

	summary, err := db.GetMatchByPrefix(prefix)
	if err != nil {
		return fmt.Errorf("query match: %w", err)
	}
	if summary == nil {
		fmt.Fprintf(os.Stderr, "No match found with id prefix %q\n", prefix)
		return nil
	}

	matchReport, err := db.GetReport(summary.MatchID)
	if err != nil {
		return fmt.Errorf("load report: %w", err)
	}

	report.PrintMatchSummary(os.Stdout, *summary)
	report.PrintMatchReport(os.Stdout, matchReport)
	return nil
}
