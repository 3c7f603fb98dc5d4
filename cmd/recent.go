package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// recent command flags.
var (
	// recentPlayer is the primary player, as a PUUID or "Name#TAG" Riot ID.
	recentPlayer string
	// recentCount is the number of recent matches to analyze.
	recentCount int
	// recentDays restricts the match history to this look-back window.
	recentDays int
	// recentFriends is a comma-separated friend PUUID pool for duo detection.
	recentFriends string
	// recentForce re-analyzes matches already stored.
	recentForce bool
)

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Analyze a player's recent matches",
	Long: `Fetches a player's recent match history and runs the full analysis on each
match, skipping matches already stored unless --force is set.

Examples:
  lolinsights recent --player "Faker#KR1" --count 5
  lolinsights recent --player <puuid> --count 10 --days 7 --friends <f1>,<f2>`,
	Args: cobra.NoArgs,
	RunE: runRecent,
}

func init() {
	recentCmd.Flags().StringVar(&recentPlayer, "player", "", `PUUID or Riot ID ("Name#TAG") of the player (required)`)
	recentCmd.Flags().IntVar(&recentCount, "count", 5, "number of matches to analyze")
	recentCmd.Flags().IntVar(&recentDays, "days", 0, "only consider matches from the last N days (0 = no limit)")
	recentCmd.Flags().StringVar(&recentFriends, "friends", "", "comma-separated friend PUUIDs to scan for a duo partner")
	recentCmd.Flags().BoolVar(&recentForce, "force", false, "re-analyze matches already stored")
	_ = recentCmd.MarkFlagRequired("player")
}

func runRecent(cmd *cobra.Command, args []string) error {
	client, err := newRiotClient()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	puuid := recentPlayer
	if gameName, tagLine, ok := strings.Cut(recentPlayer, "#"); ok {
		account, err := client.GetAccountByRiotID(ctx, gameName, tagLine)
		if err != nil {
			return fmt.Errorf("resolve Riot ID %q: %w", recentPlayer, err)
		}
		fmt.Printf("Player: %s#%s\n", account.GameName, account.TagLine)
		puuid = account.PUUID
	}

	var startTime int64
	if recentDays > 0 {
		startTime = time.Now().AddDate(0, 0, -recentDays).Unix()
	}

	matchIDs, err := client.GetMatchIDs(ctx, puuid, recentCount, startTime)
	if err != nil {
		return fmt.Errorf("match history: %w", err)
	}
	if len(matchIDs) == 0 {
		fmt.Println("No recent matches found.")
		return nil
	}

	db, err := openStorage()
	if err != nil {
		return err
	}
	defer db.Close()

	friends := splitFriends(recentFriends)
	analyzed := 0
	for i, matchID := range matchIDs {
		if !recentForce {
			exists, err := db.MatchExists(matchID)
			if err != nil {
				return err
			}
			if exists {
				fmt.Printf("[%d/%d] %s  already stored\n", i+1, len(matchIDs), matchID)
				continue
			}
		}

		fmt.Printf("[%d/%d] %s\n", i+1, len(matchIDs), matchID)
		if err := analyzeAndStore(ctx, client, db, nil, matchID, []string{puuid}, friends); err != nil {
			fmt.Fprintf(os.Stderr, "  [error] %s: %v\n", matchID, err)
			continue
		}
		analyzed++
	}

	fmt.Printf("\nDone: %d/%d matches analyzed\n", analyzed, len(matchIDs))
	return nil
}
