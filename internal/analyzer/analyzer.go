// Package analyzer derives structured tactical insights from raw Riot
// match and timeline payloads: laning-phase deltas, consolidated team-fight
// engagements, objective timelines, power-spike detection, contextual death
// analysis, and a two-player duo cross-analysis.
//
// Every function here is a pure computation over already-fetched payloads.
// Fetching (with its rate limiting and retries) belongs to the Fetcher
// collaborator; independent matches can be analyzed concurrently by the
// caller since no state is shared across calls.
package analyzer

import (
	"context"
	"fmt"
	"math"
	"os"

	"github.com/pable/go-lol-insights/internal/model"
)

// Fetcher retrieves raw match payloads. It owns all network resilience
// (rate limiting, retries); the analyzer never reimplements any of it.
type Fetcher interface {
	GetMatch(ctx context.Context, matchID string) (*model.Match, error)
	GetTimeline(ctx context.Context, matchID string) (*model.Timeline, error)
}

// Analyzer composes the per-match analysis passes.
type Analyzer struct {
	fetcher Fetcher
	items   *ItemTable
}

// New returns an Analyzer using the given fetcher and spike-item table.
// A nil table selects the builtin default.
func New(fetcher Fetcher, items *ItemTable) *Analyzer {
	if items == nil {
		items = DefaultItemTable()
	}
	return &Analyzer{fetcher: fetcher, items: items}
}

// AnalyzeMatch fetches a match and its timeline and produces a full report
// for the tracked PUUIDs. A match fetch failure is fatal; a timeline fetch
// failure degrades to summary-only reports.
func (a *Analyzer) AnalyzeMatch(ctx context.Context, matchID string, puuids []string) (*model.MatchReport, error) {
	match, err := a.fetcher.GetMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("fetch match data: %w", err)
	}

	timeline, err := a.fetcher.GetTimeline(ctx, matchID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to fetch timeline for %s, timeline sections will be skipped: %v\n", matchID, err)
		timeline = nil
	}

	report := a.Analyze(match, timeline, puuids)
	report.MatchID = matchID
	return report, nil
}

// AnalyzeMatchDynamic analyzes a match for the primary player, scanning the
// participant list for known friends and including at most one (the first
// found, in list order) for the duo analysis.
func (a *Analyzer) AnalyzeMatchDynamic(ctx context.Context, matchID, primaryPUUID string, friendPUUIDs []string) (*model.MatchReport, error) {
	match, err := a.fetcher.GetMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("fetch match data: %w", err)
	}

	timeline, err := a.fetcher.GetTimeline(ctx, matchID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to fetch timeline for %s, timeline sections will be skipped: %v\n", matchID, err)
		timeline = nil
	}

	report := a.Analyze(match, timeline, DetectFriends(match, primaryPUUID, friendPUUIDs))
	report.MatchID = matchID
	return report, nil
}

// DetectFriends returns the tracked PUUID list for a match: the primary
// player plus at most one known friend actually present in the lobby (the
// first found, in list order).
func DetectFriends(match *model.Match, primaryPUUID string, friendPUUIDs []string) []string {
	puuids := []string{primaryPUUID}
	for _, friend := range friendPUUIDs {
		if friend == primaryPUUID {
			continue
		}
		if containsPUUID(match.Metadata.Participants, friend) {
			puuids = append(puuids, friend)
			break // duo analysis takes exactly one extra player
		}
	}
	return puuids
}

// Analyze is the pure orchestrator over already-fetched payloads. timeline
// may be nil, in which case only player summaries are produced. The duo
// report is built only when exactly two tracked players resolved and
// timeline data is present.
func (a *Analyzer) Analyze(match *model.Match, timeline *model.Timeline, puuids []string) *model.MatchReport {
	report := &model.MatchReport{
		MatchID:           match.Metadata.MatchID,
		IndividualReports: make(map[string]*model.PlayerReport),
	}

	var spikes map[int][]model.PowerSpike
	if timeline != nil {
		spikes = TrackPowerSpikes(timeline, a.items)
	}

	var resolved []*model.Participant
	for _, puuid := range puuids {
		player := ResolvePlayer(match, puuid)
		if player == nil {
			fmt.Fprintf(os.Stderr, "Warning: PUUID %s not found in match %s, skipping\n",
				shortPUUID(puuid), match.Metadata.MatchID)
			continue
		}
		resolved = append(resolved, player)

		playerReport := &model.PlayerReport{PlayerSummary: summaryOf(player)}
		if timeline != nil {
			if opponent := FindLaneOpponent(match, player); opponent != nil {
				playerReport.LaningPhase = AnalyzeLaningPhase(
					timeline, player.ParticipantID, opponent.ParticipantID)
			}
			playerReport.TeamFights = ConsolidateEngagements(
				DetectTeamFights(timeline, player.ParticipantID))
			playerReport.Objectives = AnalyzeObjectives(timeline)
			playerReport.DeathAnalysis = AnalyzeDeaths(
				timeline, match, player.ParticipantID, spikes)
		}
		report.IndividualReports[player.ChampionName] = playerReport
	}

	if len(resolved) == 2 && timeline != nil {
		duo := AnalyzeDuoDynamics(timeline, resolved[0], resolved[1])
		duo.DeathContext = AnalyzeDuoDeathContext(timeline, resolved[0], resolved[1])
		report.DuoReport = duo
	}

	return report
}

func summaryOf(p *model.Participant) model.PlayerSummary {
	lane := p.TeamPosition
	if lane == "" {
		lane = p.Lane
	}
	return model.PlayerSummary{
		ChampionName:                p.ChampionName,
		ParticipantID:               p.ParticipantID,
		Lane:                        lane,
		Kills:                       p.Kills,
		Deaths:                      p.Deaths,
		Assists:                     p.Assists,
		Win:                         p.Win,
		KDA:                         p.Challenges.KDA,
		KillParticipation:           p.Challenges.KillParticipation,
		TotalDamageDealtToChampions: p.TotalDamageDealtToChampions,
		VisionScore:                 p.VisionScore,
	}
}

func containsPUUID(list []string, puuid string) bool {
	for _, p := range list {
		if p == puuid {
			return true
		}
	}
	return false
}

func shortPUUID(puuid string) string {
	if len(puuid) > 8 {
		return puuid[:8] + "..."
	}
	return puuid
}

// minutes converts a millisecond timestamp to minutes, rounded to two
// decimals. All derived times compare on this rounded value.
func minutes(ms int64) float64 {
	return round2(float64(ms) / 60000)
}

// round2 rounds to 2 decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
