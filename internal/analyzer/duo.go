package analyzer

import (
	"fmt"
	"math"
	"sort"

	"github.com/pable/go-lol-insights/internal/model"
)

// Shared-death scan window around a tracked player's death.
const (
	duoWindowBeforeMS = 10_000
	duoWindowAfterMS  = 15_000
)

// AnalyzeDuoDynamics cross-references two tracked players: how often each
// assisted the other's kills, and which epic monsters they secured
// together (both ids among killer and assisters on their own team's kill).
func AnalyzeDuoDynamics(timeline *model.Timeline, p1, p2 *model.Participant) *model.DuoReport {
	report := &model.DuoReport{
		P1Champion: p1.ChampionName,
		P2Champion: p2.ChampionName,
		KillCollaboration: model.KillCollaboration{
			TotalP1Kills: p1.Kills,
			TotalP2Kills: p2.Kills,
		},
	}

	for _, e := range timeline.AllEvents() {
		switch e.Type {
		case model.EventChampionKill:
			if e.KillerID == p1.ParticipantID && containsID(e.AssistingParticipantIDs, p2.ParticipantID) {
				report.KillCollaboration.P2OnP1Kills++
			}
			if e.KillerID == p2.ParticipantID && containsID(e.AssistingParticipantIDs, p1.ParticipantID) {
				report.KillCollaboration.P1OnP2Kills++
			}
		case model.EventEliteMonsterKill:
			if e.KillerTeamID != p1.TeamID {
				continue
			}
			involved := append([]int{e.KillerID}, e.AssistingParticipantIDs...)
			if containsID(involved, p1.ParticipantID) && containsID(involved, p2.ParticipantID) {
				report.JointObjectives = append(report.JointObjectives, model.JointObjective{
					TimeMinutes: minutes(e.Timestamp),
					Type:        monsterName(e),
				})
			}
		}
	}

	return report
}

// AnalyzeDuoDeathContext inspects a [-10s, +15s] window around every death
// of either tracked player for the other one's reaction: a near-simultaneous
// co-death, or a revenge kill on the original killer. The first matching
// event wins, and co-deaths are deduplicated by timestamp so a shared death
// is not reported from both players' directions.
func AnalyzeDuoDeathContext(timeline *model.Timeline, p1, p2 *model.Participant) []model.DuoDeathContext {
	p1ID, p2ID := p1.ParticipantID, p2.ParticipantID
	p1Champ, p2Champ := p1.ChampionName, p2.ChampionName

	events := timeline.AllEvents()
	var deaths []model.Event
	for _, e := range events {
		if e.Type == model.EventChampionKill && (e.VictimID == p1ID || e.VictimID == p2ID) {
			deaths = append(deaths, e)
		}
	}

	processed := make(map[int64]struct{})
	var contexts []model.DuoDeathContext

	for _, death := range deaths {
		if _, done := processed[death.Timestamp]; done {
			continue
		}

		victimID := death.VictimID
		otherID := p2ID
		victimChamp, otherChamp := p1Champ, p2Champ
		if victimID == p2ID {
			otherID = p1ID
			victimChamp, otherChamp = p2Champ, p1Champ
		}

		windowStart := death.Timestamp - duoWindowBeforeMS
		windowEnd := death.Timestamp + duoWindowAfterMS

		for _, e := range events {
			if e.Timestamp <= windowStart || e.Timestamp >= windowEnd || e.Type != model.EventChampionKill {
				continue
			}

			if e.VictimID == otherID {
				gap := int(math.Round(math.Abs(float64(death.Timestamp-e.Timestamp)) / 1000))
				contexts = append(contexts, model.DuoDeathContext{
					TimeMinutes: minutes(death.Timestamp),
					Event:       fmt.Sprintf("%s and %s died together", p1Champ, p2Champ),
					Outcome:     fmt.Sprintf("Both died within %ds", gap),
				})
				processed[e.Timestamp] = struct{}{}
				break
			}

			if e.KillerID == otherID && e.VictimID == death.KillerID {
				gap := int(math.Round(math.Abs(float64(e.Timestamp-death.Timestamp)) / 1000))
				contexts = append(contexts, model.DuoDeathContext{
					TimeMinutes: minutes(death.Timestamp),
					Event:       fmt.Sprintf("%s died", victimChamp),
					Outcome:     fmt.Sprintf("%s got a revenge kill %ds later", otherChamp, gap),
				})
				break
			}
		}
	}

	sort.Slice(contexts, func(i, j int) bool {
		return contexts[i].TimeMinutes < contexts[j].TimeMinutes
	})
	return contexts
}

func containsID(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
