package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/spf13/cobra"
)

const askSystemPrompt = `You are a League of Legends match analyst. You are given a structured
tactical report computed from Riot match and timeline data, plus a question
from the player.

Rules:
- Answer ONLY from the data provided. Never invent or estimate statistics.
- Always cite specific numbers and timestamps when making a claim.
- If the data is insufficient to answer confidently, say so explicitly.
- Be concise and actionable — focus on what the player can actually improve.
- Avoid generic League advice unless it directly explains a pattern in the data.

Report glossary:
- Times are minutes into the game, rounded to 2 decimals.
- laning_phase: CS and gold at the 10-minute mark vs the lane opponent;
  positive leads favor the player.
- team_fights: engagements of 3+ kills within tight windows; blue/red kill
  counts decide who won, player_involvement lists the player's roles.
- objectives: elite monster takedowns (dragons, heralds, barons) with the
  team that secured them.
- death_analysis: per-death context such as being outnumbered, gold
  disparity in the fight, or dying to an enemy on a recent power spike,
  plus what objective the enemy took within 60 seconds.
- duo_report: kill collaboration between two tracked players, objectives
  they took together, and shared deaths or revenge trades.`

var (
	askModel  string
	askAPIKey string
)

var askCmd = &cobra.Command{
	Use:   "ask <match-id-prefix> <question>",
	Short: "AI-powered grounded analysis of a stored report (requires ANTHROPIC_API_KEY)",
	Args:  cobra.ExactArgs(2),
	RunE:  runAsk,
}

func init() {
	askCmd.Flags().StringVar(&askModel, "model", "claude-haiku-4-5-20251001", "Anthropic model to use")
	askCmd.Flags().StringVar(&askAPIKey, "api-key", "", "Anthropic API key (falls back to $ANTHROPIC_API_KEY)")
}

func runAsk(cmd *cobra.Command, args []string) error {
	db, err := openStorage()
	if err != nil {
		return err
	}
	defer db.Close()

	summary, err := db.GetMatchByPrefix(args[0])
	if err != nil {
		return fmt.Errorf("query match: %w", err)
	}
	if summary == nil {
		return fmt.Errorf("no match found with id prefix %q", args[0])
	}

	matchReport, err := db.GetReport(summary.MatchID)
	if err != nil {
		return fmt.Errorf("load report: %w", err)
	}

	doc := map[string]interface{}{
		"match_id":          summary.MatchID,
		"queue_id":          summary.QueueID,
		"game_version":      summary.GameVersion,
		"game_duration_sec": summary.GameDurationSec,
		"report":            matchReport,
	}
	contextJSON, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("build context: %w", err)
	}

	return callAnthropic(cmd.Context(), askAPIKey, askModel, string(contextJSON), args[1])
}

// callAnthropic streams a response from the Anthropic API and prints it to stdout.
func callAnthropic(ctx context.Context, apiKey, modelID, dataJSON, question string) error {
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("no API key: set ANTHROPIC_API_KEY or use --api-key")
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	userMsg := fmt.Sprintf("DATA:\n%s\n\nQUESTION: %s", dataJSON, question)

	fmt.Fprintln(os.Stdout, "\n─── AI Analysis ─────────────────────────────────────")

	stream := client.Messages.NewStreaming(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(modelID),
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: askSystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userMsg)),
		},
	})

	for stream.Next() {
		evt := stream.Current()
		if evt.Type == "content_block_delta" {
			delta := evt.AsContentBlockDelta()
			if delta.Delta.Type == "text_delta" {
				fmt.Fprint(os.Stdout, delta.Delta.AsTextDelta().Text)
			}
		}
	}
	fmt.Fprintln(os.Stdout, "\n─────────────────────────────────────────────────────")

	if err := stream.Err(); err != nil {
		errStr := err.Error()
		if strings.Contains(errStr, "401") || strings.Contains(errStr, "authentication") {
			return fmt.Errorf("API authentication failed — check your API key")
		}
		return fmt.Errorf("streaming error: %w", err)
	}
	return nil
}
