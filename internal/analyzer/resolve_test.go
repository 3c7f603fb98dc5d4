package analyzer

import "testing"

func TestResolvePlayer_MetadataIndex(t *testing.T) {
	match := testMatch()
	p := ResolvePlayer(match, "puuid-3")
	if p == nil {
		t.Fatal("expected to resolve puuid-3")
	}
	if p.ParticipantID != 3 || p.ChampionName != "Champ3" {
		t.Errorf("resolved wrong participant %+v", p)
	}
}

func TestResolvePlayer_FallbackScan(t *testing.T) {
	// A payload whose info list is not ordered by participant id fails the
	// index sanity check and resolves through the linear scan.
	match := testMatch()
	match.Info.Participants[0], match.Info.Participants[1] =
		match.Info.Participants[1], match.Info.Participants[0]

	p := ResolvePlayer(match, "puuid-1")
	if p == nil {
		t.Fatal("expected fallback scan to resolve puuid-1")
	}
	if p.ParticipantID != 1 {
		t.Errorf("expected participant 1, got %d", p.ParticipantID)
	}
}

func TestResolvePlayer_NotFound(t *testing.T) {
	if p := ResolvePlayer(testMatch(), "stranger"); p != nil {
		t.Errorf("expected nil for unknown PUUID, got %+v", p)
	}
}

func TestFindLaneOpponent(t *testing.T) {
	match := testMatch()
	player := &match.Info.Participants[0] // blue TOP

	opp := FindLaneOpponent(match, player)
	if opp == nil {
		t.Fatal("expected a lane opponent")
	}
	if opp.ParticipantID != 6 || opp.Role() != "TOP" {
		t.Errorf("expected red TOP (id 6), got %+v", opp)
	}
}

func TestFindLaneOpponent_RoleMismatch(t *testing.T) {
	match := testMatch()
	// Nobody on red plays TOP: a role swap.
	match.Info.Participants[5].TeamPosition = "JUNGLE"

	if opp := FindLaneOpponent(match, &match.Info.Participants[0]); opp != nil {
		t.Errorf("expected nil opponent on role mismatch, got %+v", opp)
	}
}

func TestFindLaneOpponent_EmptyRole(t *testing.T) {
	match := testMatch()
	match.Info.Participants[0].TeamPosition = ""
	match.Info.Participants[0].IndividualPosition = ""

	if opp := FindLaneOpponent(match, &match.Info.Participants[0]); opp != nil {
		t.Errorf("expected nil opponent for empty role, got %+v", opp)
	}
}
