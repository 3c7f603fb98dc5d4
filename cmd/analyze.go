package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pable/go-lol-insights/internal/analyzer"
	"github.com/pable/go-lol-insights/internal/model"
	"github.com/pable/go-lol-insights/internal/report"
	"github.com/pable/go-lol-insights/internal/riot"
	"github.com/pable/go-lol-insights/internal/storage"
)

// analyze command flags.
var (
	// analyzePUUIDs are the tracked players, given directly as PUUIDs.
	analyzePUUIDs []string
	// analyzeRiotIDs are tracked players given as "GameName#TAG", resolved
	// through the account-v1 API.
	analyzeRiotIDs []string
	// analyzeFriends is a comma-separated PUUID pool scanned for a duo partner.
	analyzeFriends string
	// analyzeItemsPath optionally overrides the builtin power-spike item table.
	analyzeItemsPath string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <match-id>",
	Short: "Analyze a match and store its report",
	Long: `Fetches a match and its timeline from the Riot API, computes per-player
tactical reports (laning phase, team fights, objectives, deaths) plus duo
dynamics when two tracked players are in the lobby, stores the result, and
prints it.

Examples:
  # Analyze for one player by Riot ID
  lolinsights analyze NA1_1234567890 --riot-id "Faker#KR1"

  # Duo analysis for two known PUUIDs
  lolinsights analyze NA1_1234567890 --puuid <p1> --puuid <p2>

  # Scan a friend pool and include whichever friend is in the lobby
  lolinsights analyze NA1_1234567890 --puuid <me> --friends <f1>,<f2>,<f3>`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringArrayVar(&analyzePUUIDs, "puuid", nil, "tracked player PUUID (repeatable)")
	analyzeCmd.Flags().StringArrayVar(&analyzeRiotIDs, "riot-id", nil, `tracked player Riot ID, e.g. "Name#TAG" (repeatable)`)
	analyzeCmd.Flags().StringVar(&analyzeFriends, "friends", "", "comma-separated friend PUUIDs to scan for a duo partner")
	analyzeCmd.Flags().StringVar(&analyzeItemsPath, "spike-items", "", "JSON file overriding the power-spike item table")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	client, err := newRiotClient()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	puuids, err := resolveTrackedPlayers(ctx, client)
	if err != nil {
		return err
	}
	if len(puuids) == 0 {
		return fmt.Errorf("no players specified: use --puuid or --riot-id")
	}

	items, err := loadSpikeItems()
	if err != nil {
		return err
	}

	db, err := openStorage()
	if err != nil {
		return err
	}
	defer db.Close()

	return analyzeAndStore(ctx, client, db, items, args[0], puuids, splitFriends(analyzeFriends))
}

// analyzeAndStore fetches, analyzes, persists, and prints one match. The
// match payload is fetched once and shared between the summary row and the
// analysis. A timeline failure degrades to summary-only reports.
func analyzeAndStore(ctx context.Context, client *riot.Client, db *storage.DB, items *analyzer.ItemTable, matchID string, puuids, friendPUUIDs []string) error {
	match, err := client.GetMatch(ctx, matchID)
	if err != nil {
		return fmt.Errorf("fetch match data: %w", err)
	}

	timeline, err := client.GetTimeline(ctx, matchID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to fetch timeline for %s, timeline sections will be skipped: %v\n", matchID, err)
		timeline = nil
	}

	if len(friendPUUIDs) > 0 {
		puuids = analyzer.DetectFriends(match, puuids[0], friendPUUIDs)
	}

	matchReport := analyzer.New(client, items).Analyze(match, timeline, puuids)
	matchReport.MatchID = matchID

	summary := model.MatchSummary{
		MatchID:         matchID,
		QueueID:         match.Info.QueueID,
		GameVersion:     match.Info.GameVersion,
		GameDurationSec: match.Info.GameDuration,
		AnalyzedAt:      time.Now().UTC().Format(time.RFC3339),
	}
	if err := db.SaveReport(summary, matchReport); err != nil {
		return fmt.Errorf("store report: %w", err)
	}

	report.PrintMatchSummary(os.Stdout, summary)
	report.PrintMatchReport(os.Stdout, matchReport)
	return nil
}

// newRiotClient builds a Riot API client from the key sources and the
// --region flag.
func newRiotClient() (*riot.Client, error) {
	apiKey, err := loadRiotAPIKey()
	if err != nil {
		return nil, err
	}
	return riot.NewClient(apiKey, region)
}

// openStorage opens the SQLite database at --db, creating its directory.
func openStorage() (*storage.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	return db, nil
}

// resolveTrackedPlayers merges --puuid values with --riot-id lookups.
func resolveTrackedPlayers(ctx context.Context, client *riot.Client) ([]string, error) {
	puuids := append([]string(nil), analyzePUUIDs...)
	for _, riotID := range analyzeRiotIDs {
		gameName, tagLine, ok := strings.Cut(riotID, "#")
		if !ok {
			return nil, fmt.Errorf("invalid Riot ID %q: expected \"Name#TAG\"", riotID)
		}
		account, err := client.GetAccountByRiotID(ctx, gameName, tagLine)
		if err != nil {
			return nil, fmt.Errorf("resolve Riot ID %q: %w", riotID, err)
		}
		puuids = append(puuids, account.PUUID)
	}
	return puuids, nil
}

// loadSpikeItems returns the item table from --spike-items, or nil for the
// builtin default.
func loadSpikeItems() (*analyzer.ItemTable, error) {
	if analyzeItemsPath == "" {
		return nil, nil
	}
	items, err := analyzer.LoadItemTable(analyzeItemsPath)
	if err != nil {
		return nil, fmt.Errorf("load spike items: %w", err)
	}
	return items, nil
}

// splitFriends parses the comma-separated --friends value.
func splitFriends(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
