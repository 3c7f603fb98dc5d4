package analyzer

import (
	"context"
	"fmt"
	"testing"

	"github.com/pable/go-lol-insights/internal/model"
)

// testMatch builds a full 10-player match: participant ids 1-10, PUUIDs
// "puuid-1".."puuid-10", champions "Champ1".."Champ10". Ids 1-5 are blue
// (team 100), 6-10 red (team 200); roles cycle TOP/JUNGLE/MIDDLE/BOTTOM/UTILITY
// so id 1 lanes against id 6, 2 against 7, and so on.
func testMatch() *model.Match {
	roles := []string{"TOP", "JUNGLE", "MIDDLE", "BOTTOM", "UTILITY"}
	m := &model.Match{}
	m.Metadata.MatchID = "NA1_TEST"
	m.Info.GameDuration = 1800
	m.Info.QueueID = 420
	for i := 1; i <= 10; i++ {
		teamID := 100
		if i > 5 {
			teamID = 200
		}
		p := model.Participant{
			ParticipantID: i,
			PUUID:         fmt.Sprintf("puuid-%d", i),
			ChampionName:  fmt.Sprintf("Champ%d", i),
			TeamID:        teamID,
			TeamPosition:  roles[(i-1)%5],
			Kills:         i,
			Deaths:        2,
			Assists:       3,
			Win:           i <= 5,
		}
		m.Metadata.Participants = append(m.Metadata.Participants, p.PUUID)
		m.Info.Participants = append(m.Info.Participants, p)
	}
	return m
}

func champKill(ts int64, killer, victim int, assists ...int) model.Event {
	return model.Event{
		Type: model.EventChampionKill, Timestamp: ts,
		KillerID: killer, VictimID: victim,
		AssistingParticipantIDs: assists,
	}
}

func monsterKill(ts int64, killerID, killerTeamID int, monsterType, subType string, assists ...int) model.Event {
	return model.Event{
		Type: model.EventEliteMonsterKill, Timestamp: ts,
		KillerID: killerID, KillerTeamID: killerTeamID,
		MonsterType: monsterType, MonsterSubType: subType,
		AssistingParticipantIDs: assists,
	}
}

func itemPurchase(ts int64, participantID, itemID int) model.Event {
	return model.Event{
		Type: model.EventItemPurchased, Timestamp: ts,
		ParticipantID: participantID, ItemID: itemID,
	}
}

// timelineWith wraps events into a single frame; enough for the passes
// that only read AllEvents.
func timelineWith(events ...model.Event) *model.Timeline {
	return &model.Timeline{
		Info: model.TimelineInfo{
			FrameInterval: 60_000,
			Frames:        []model.Frame{{Timestamp: 0, Events: events}},
		},
	}
}

// fakeFetcher serves canned payloads, recording how many match fetches
// were made.
type fakeFetcher struct {
	match       *model.Match
	timeline    *model.Timeline
	timelineErr error
	matchCalls  int
}

func (f *fakeFetcher) GetMatch(ctx context.Context, matchID string) (*model.Match, error) {
	f.matchCalls++
	return f.match, nil
}

func (f *fakeFetcher) GetTimeline(ctx context.Context, matchID string) (*model.Timeline, error) {
	if f.timelineErr != nil {
		return nil, f.timelineErr
	}
	return f.timeline, nil
}

func TestAnalyzeMatch_OneTrackedPlayer(t *testing.T) {
	fetcher := &fakeFetcher{
		match:    testMatch(),
		timeline: timelineWith(champKill(120_000, 1, 6)),
	}

	report, err := New(fetcher, nil).AnalyzeMatch(context.Background(), "NA1_TEST", []string{"puuid-1"})
	if err != nil {
		t.Fatalf("AnalyzeMatch: %v", err)
	}
	if report.MatchID != "NA1_TEST" {
		t.Errorf("unexpected match id %q", report.MatchID)
	}
	if len(report.IndividualReports) != 1 {
		t.Fatalf("expected 1 individual report, got %d", len(report.IndividualReports))
	}
	pr, ok := report.IndividualReports["Champ1"]
	if !ok {
		t.Fatal("expected a report keyed by Champ1")
	}
	if pr.PlayerSummary.ParticipantID != 1 || pr.PlayerSummary.Kills != 1 {
		t.Errorf("unexpected summary %+v", pr.PlayerSummary)
	}
	if report.DuoReport != nil {
		t.Error("duo report should require two tracked players")
	}
}

func TestAnalyzeMatch_TimelineFailureIsNotFatal(t *testing.T) {
	fetcher := &fakeFetcher{
		match:       testMatch(),
		timelineErr: fmt.Errorf("503 from riot"),
	}

	report, err := New(fetcher, nil).AnalyzeMatch(context.Background(), "NA1_TEST", []string{"puuid-1"})
	if err != nil {
		t.Fatalf("AnalyzeMatch should tolerate a timeline failure: %v", err)
	}
	pr := report.IndividualReports["Champ1"]
	if pr == nil {
		t.Fatal("missing Champ1 report")
	}
	if pr.LaningPhase != nil || len(pr.TeamFights) != 0 {
		t.Error("timeline sections should be skipped when the timeline fetch fails")
	}
}

func TestAnalyze_UnknownPUUIDIsSkipped(t *testing.T) {
	an := New(&fakeFetcher{}, nil)
	report := an.Analyze(testMatch(), timelineWith(), []string{"puuid-1", "not-in-match"})

	if len(report.IndividualReports) != 1 {
		t.Errorf("expected 1 report after skipping unknown PUUID, got %d", len(report.IndividualReports))
	}
	if report.DuoReport != nil {
		t.Error("duo report should not be built when only one player resolved")
	}
}

func TestAnalyze_NilTimelineDegradesToSummaries(t *testing.T) {
	an := New(&fakeFetcher{}, nil)
	report := an.Analyze(testMatch(), nil, []string{"puuid-1", "puuid-2"})

	pr := report.IndividualReports["Champ1"]
	if pr == nil {
		t.Fatal("missing Champ1 report")
	}
	if pr.LaningPhase != nil || pr.TeamFights != nil || pr.Objectives != nil || pr.DeathAnalysis != nil {
		t.Error("timeline sections should be absent without a timeline")
	}
	if report.DuoReport != nil {
		t.Error("duo report should be absent without a timeline")
	}
}

func TestAnalyze_DuoReportForTwoResolvedPlayers(t *testing.T) {
	an := New(&fakeFetcher{}, nil)
	report := an.Analyze(testMatch(), timelineWith(), []string{"puuid-1", "puuid-2"})

	if report.DuoReport == nil {
		t.Fatal("expected duo report for two resolved players with timeline")
	}
	if report.DuoReport.P1Champion != "Champ1" || report.DuoReport.P2Champion != "Champ2" {
		t.Errorf("unexpected duo champions %q/%q",
			report.DuoReport.P1Champion, report.DuoReport.P2Champion)
	}
}

func TestDetectFriends(t *testing.T) {
	match := testMatch()

	// First friend present in the lobby wins; absent friends are skipped.
	puuids := DetectFriends(match, "puuid-1", []string{"absent", "puuid-4", "puuid-2"})
	if len(puuids) != 2 || puuids[1] != "puuid-4" {
		t.Errorf("expected [puuid-1 puuid-4], got %v", puuids)
	}

	// The primary player is never its own friend.
	puuids = DetectFriends(match, "puuid-1", []string{"puuid-1"})
	if len(puuids) != 1 {
		t.Errorf("expected primary only, got %v", puuids)
	}

	// No friends in the lobby keeps the analysis single-player.
	puuids = DetectFriends(match, "puuid-1", []string{"absent-a", "absent-b"})
	if len(puuids) != 1 {
		t.Errorf("expected primary only, got %v", puuids)
	}
}

func TestAnalyzeMatchDynamic_FetchesMatchOnce(t *testing.T) {
	fetcher := &fakeFetcher{
		match:    testMatch(),
		timeline: timelineWith(),
	}

	report, err := New(fetcher, nil).AnalyzeMatchDynamic(
		context.Background(), "NA1_TEST", "puuid-1", []string{"puuid-2"})
	if err != nil {
		t.Fatalf("AnalyzeMatchDynamic: %v", err)
	}
	if fetcher.matchCalls != 1 {
		t.Errorf("expected 1 match fetch, got %d", fetcher.matchCalls)
	}
	if report.DuoReport == nil {
		t.Error("expected duo report when a friend is in the lobby")
	}
}
