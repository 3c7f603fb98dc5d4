package storage

import (
	"strings"
	"testing"

	"github.com/pable/go-lol-insights/internal/model"
)

func openMemDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func sampleReport(matchID string) (model.MatchSummary, *model.MatchReport) {
	summary := model.MatchSummary{
		MatchID:         matchID,
		QueueID:         420,
		GameVersion:     "14.18.610.1234",
		GameDurationSec: 1923,
		AnalyzedAt:      "2025-06-01T12:00:00Z",
	}
	report := &model.MatchReport{
		MatchID: matchID,
		IndividualReports: map[string]*model.PlayerReport{
			"Jinx": {
				PlayerSummary: model.PlayerSummary{
					ChampionName: "Jinx", ParticipantID: 4, Lane: "BOTTOM",
					Kills: 9, Deaths: 3, Assists: 7, Win: true, KDA: 5.33,
				},
				LaningPhase: &model.LaningPhase{CSAt10: 84, OpponentCSAt10: 71, CSLeadAt10: 13},
				TeamFights: []model.Engagement{
					{StartTimeMinutes: 14.5, BlueTeamKills: 3, RedTeamKills: 1, PlayerInvolvement: "Kill"},
				},
				Objectives: []model.Objective{
					{TimeMinutes: 8.0, Team: "Blue", Type: "EARTH_DRAGON"},
				},
				DeathAnalysis: []model.DeathAnalysis{
					{TimeMinutes: 22.1, KilledBy: "Zed",
						Context: []string{"No special circumstances noted."},
						Outcome: []string{"Enemy took BARON_NASHOR"}},
				},
			},
			"Lulu": {
				PlayerSummary: model.PlayerSummary{
					ChampionName: "Lulu", ParticipantID: 5, Lane: "UTILITY",
					Kills: 1, Deaths: 5, Assists: 19, Win: true,
				},
			},
		},
		DuoReport: &model.DuoReport{
			P1Champion: "Jinx",
			P2Champion: "Lulu",
			KillCollaboration: model.KillCollaboration{
				P1OnP2Kills: 1, P2OnP1Kills: 6, TotalP1Kills: 9, TotalP2Kills: 1,
			},
			JointObjectives: []model.JointObjective{{TimeMinutes: 8.0, Type: "EARTH_DRAGON"}},
			DeathContext: []model.DuoDeathContext{
				{TimeMinutes: 22.1, Event: "Jinx died", Outcome: "Lulu got a revenge kill 6s later"},
			},
		},
	}
	return summary, report
}

func TestSaveAndGetReport(t *testing.T) {
	db := openMemDB(t)
	summary, report := sampleReport("NA1_100")

	if err := db.SaveReport(summary, report); err != nil {
		t.Fatalf("SaveReport: %v", err)
	}

	exists, err := db.MatchExists("NA1_100")
	if err != nil {
		t.Fatalf("MatchExists: %v", err)
	}
	if !exists {
		t.Error("expected match to exist after save")
	}
	if exists, _ := db.MatchExists("NA1_999"); exists {
		t.Error("expected unsaved match to not exist")
	}

	got, err := db.GetReport("NA1_100")
	if err != nil {
		t.Fatalf("GetReport: %v", err)
	}
	if len(got.IndividualReports) != 2 {
		t.Fatalf("expected 2 player reports, got %d", len(got.IndividualReports))
	}

	jinx := got.IndividualReports["Jinx"]
	if jinx == nil {
		t.Fatal("missing Jinx report")
	}
	if jinx.PlayerSummary.Kills != 9 || jinx.PlayerSummary.ParticipantID != 4 {
		t.Errorf("summary did not round trip: %+v", jinx.PlayerSummary)
	}
	if jinx.LaningPhase == nil || jinx.LaningPhase.CSLeadAt10 != 13 {
		t.Errorf("laning phase did not round trip: %+v", jinx.LaningPhase)
	}
	if len(jinx.TeamFights) != 1 || jinx.TeamFights[0].PlayerInvolvement != "Kill" {
		t.Errorf("team fights did not round trip: %+v", jinx.TeamFights)
	}
	if len(jinx.DeathAnalysis) != 1 || jinx.DeathAnalysis[0].KilledBy != "Zed" {
		t.Errorf("death analysis did not round trip: %+v", jinx.DeathAnalysis)
	}

	if got.DuoReport == nil {
		t.Fatal("missing duo report")
	}
	if got.DuoReport.P2Champion != "Lulu" || got.DuoReport.KillCollaboration.P2OnP1Kills != 6 {
		t.Errorf("duo report did not round trip: %+v", got.DuoReport)
	}
}

func TestGetReport_NoDuo(t *testing.T) {
	db := openMemDB(t)
	summary, report := sampleReport("NA1_200")
	report.DuoReport = nil

	if err := db.SaveReport(summary, report); err != nil {
		t.Fatalf("SaveReport: %v", err)
	}
	got, err := db.GetReport("NA1_200")
	if err != nil {
		t.Fatalf("GetReport: %v", err)
	}
	if got.DuoReport != nil {
		t.Errorf("expected no duo report, got %+v", got.DuoReport)
	}
}

func TestGetReport_Unknown(t *testing.T) {
	db := openMemDB(t)
	if _, err := db.GetReport("NA1_NOPE"); err == nil {
		t.Error("expected error for unknown match")
	}
}

func TestSaveReport_IsIdempotent(t *testing.T) {
	db := openMemDB(t)
	summary, report := sampleReport("NA1_300")

	if err := db.SaveReport(summary, report); err != nil {
		t.Fatalf("first SaveReport: %v", err)
	}
	report.IndividualReports["Jinx"].PlayerSummary.Kills = 12
	if err := db.SaveReport(summary, report); err != nil {
		t.Fatalf("second SaveReport: %v", err)
	}

	got, err := db.GetReport("NA1_300")
	if err != nil {
		t.Fatalf("GetReport: %v", err)
	}
	if got.IndividualReports["Jinx"].PlayerSummary.Kills != 12 {
		t.Error("re-save should replace the stored report")
	}
	matches, _ := db.ListMatches()
	if len(matches) != 1 {
		t.Errorf("expected 1 match row after re-save, got %d", len(matches))
	}
}

func TestGetMatchByPrefix(t *testing.T) {
	db := openMemDB(t)

	for _, id := range []string{"NA1_4001", "NA1_4002", "EUW1_777"} {
		summary, report := sampleReport(id)
		if err := db.SaveReport(summary, report); err != nil {
			t.Fatalf("SaveReport %s: %v", id, err)
		}
	}

	s, err := db.GetMatchByPrefix("EUW1")
	if err != nil {
		t.Fatalf("GetMatchByPrefix: %v", err)
	}
	if s == nil || s.MatchID != "EUW1_777" {
		t.Errorf("unexpected match %+v", s)
	}
	if s.Champions != "Jinx, Lulu" {
		t.Errorf("expected champions column to be filled, got %q", s.Champions)
	}

	s, err = db.GetMatchByPrefix("KR_")
	if err != nil {
		t.Fatalf("GetMatchByPrefix no-match: %v", err)
	}
	if s != nil {
		t.Error("expected nil for unknown prefix")
	}

	_, err = db.GetMatchByPrefix("NA1_400")
	if err == nil || !strings.Contains(err.Error(), "ambiguous") {
		t.Errorf("expected ambiguity error, got %v", err)
	}
}

func TestListMatches_Order(t *testing.T) {
	db := openMemDB(t)

	early, r1 := sampleReport("NA1_10")
	early.AnalyzedAt = "2025-01-01T00:00:00Z"
	late, r2 := sampleReport("NA1_20")
	late.AnalyzedAt = "2025-02-01T00:00:00Z"

	if err := db.SaveReport(early, r1); err != nil {
		t.Fatal(err)
	}
	if err := db.SaveReport(late, r2); err != nil {
		t.Fatal(err)
	}

	matches, err := db.ListMatches()
	if err != nil {
		t.Fatalf("ListMatches: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if matches[0].MatchID != "NA1_20" {
		t.Errorf("expected most recently analyzed first, got %s", matches[0].MatchID)
	}
	if matches[0].GameDurationSec != 1923 || matches[0].QueueID != 420 {
		t.Errorf("summary columns did not round trip: %+v", matches[0])
	}
}
