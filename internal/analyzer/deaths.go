package analyzer

import (
	"fmt"
	"math"

	"github.com/pable/go-lol-insights/internal/model"
)

const (
	// fightRadius bounds the local cluster around the victim, in map units.
	fightRadius = 2000.0
	// spikeRecencyMinutes is how far back a killer's power spike still
	// counts as context for a death.
	spikeRecencyMinutes = 1.5
	// goldDisparityThreshold filters out unremarkable gold gaps inside the
	// local cluster.
	goldDisparityThreshold = 500
	// outcomeWindowMS is how long after a death an epic-monster kill is
	// considered a consequence of it.
	outcomeWindowMS = 60_000
)

// Placeholder notes emitted when a death has no special context or
// follow-up. Context and Outcome are contractually non-empty.
const (
	noteNoContext = "No special circumstances noted."
	noteNoOutcome = "No immediate objective change."
)

// AnalyzeDeaths reconstructs the tactical context of every death of the
// tracked player: who killed them and how strong that killer was, the
// local head-count and gold spread, and whether either team converted the
// death into an epic monster.
func AnalyzeDeaths(timeline *model.Timeline, match *model.Match, playerID int, spikes map[int][]model.PowerSpike) []model.DeathAnalysis {
	events := timeline.AllEvents()
	frames := timeline.Info.Frames
	playerSide := model.TeamOfParticipant(playerID)

	var analyses []model.DeathAnalysis
	for _, death := range events {
		if death.Type != model.EventChampionKill || death.VictimID != playerID {
			continue
		}

		deathMS := death.Timestamp
		deathMin := minutes(deathMS)

		// Nearest frame at or after the death carries the closest game state.
		var deathFrame map[int]model.ParticipantFrame
		for i := range frames {
			if frames[i].Timestamp >= deathMS {
				deathFrame = frames[i].ParticipantFrames
				break
			}
		}

		analysis := model.DeathAnalysis{
			TimeMinutes: deathMin,
			KilledBy:    "Unknown",
		}

		killerID := death.KillerID
		if killerID > 0 {
			if killer := participantByID(match, killerID); killer != nil {
				analysis.KilledBy = killer.ChampionName
			}
			for _, spike := range spikes[killerID] {
				if spike.TimeMinutes < deathMin && spike.TimeMinutes > deathMin-spikeRecencyMinutes {
					analysis.Context = append(analysis.Context,
						fmt.Sprintf("Killer had recent '%s' spike", spike.Type))
					break
				}
			}
			if deathFrame != nil && killerIsTeamStrongest(deathFrame, killerID, playerSide.Opponent()) {
				analysis.Context = append(analysis.Context,
					"Killer was their team's strongest player (by gold)")
			}
		}

		if deathFrame != nil {
			analysis.Context = append(analysis.Context,
				fightContext(deathFrame, playerID, killerID)...)
			if richest := richestParticipant(deathFrame); richest == killerID {
				analysis.Context = append(analysis.Context,
					"Killed by strongest player in the game")
			}
		}

		// First epic monster within 60s of the death decides the outcome.
		for _, e := range events {
			if e.Timestamp <= deathMS || e.Timestamp > deathMS+outcomeWindowMS {
				continue
			}
			if e.Type != model.EventEliteMonsterKill {
				continue
			}
			objType := e.MonsterType
			if objType == "" {
				objType = "Objective"
			}
			if objectiveTeam(e) != playerSide {
				analysis.Outcome = append(analysis.Outcome, fmt.Sprintf("Enemy took %s", objType))
			} else {
				analysis.Outcome = append(analysis.Outcome, fmt.Sprintf("Allies took %s (trade)", objType))
			}
			break
		}

		if len(analysis.Context) == 0 {
			analysis.Context = []string{noteNoContext}
		}
		if len(analysis.Outcome) == 0 {
			analysis.Outcome = []string{noteNoOutcome}
		}

		analyses = append(analyses, analysis)
	}

	return analyses
}

// killerIsTeamStrongest reports whether no one else on the killer's side
// holds more gold at the frame.
func killerIsTeamStrongest(frame map[int]model.ParticipantFrame, killerID int, killerSide model.Team) bool {
	killerGold := frame[killerID].TotalGold
	for id := 1; id <= 10; id++ {
		if id == killerID || model.TeamOfParticipant(id) != killerSide {
			continue
		}
		if frame[id].TotalGold > killerGold {
			return false
		}
	}
	return true
}

// fightContext gathers everyone within fightRadius of the victim and notes
// lopsided head counts and significant gold spreads.
func fightContext(frame map[int]model.ParticipantFrame, playerID, killerID int) []string {
	playerFrame, ok := frame[playerID]
	if !ok {
		return nil
	}
	playerSide := model.TeamOfParticipant(playerID)

	type member struct {
		id    int
		frame model.ParticipantFrame
	}
	var cluster []member
	for id := 1; id <= 10; id++ {
		pf, present := frame[id]
		if !present {
			continue
		}
		dx := float64(playerFrame.Position.X - pf.Position.X)
		dy := float64(playerFrame.Position.Y - pf.Position.Y)
		if math.Hypot(dx, dy) < fightRadius {
			cluster = append(cluster, member{id: id, frame: pf})
		}
	}

	var notes []string

	allies := 0
	for _, m := range cluster {
		if model.TeamOfParticipant(m.id) == playerSide {
			allies++
		}
	}
	enemies := len(cluster) - allies
	if allies != enemies {
		notes = append(notes, fmt.Sprintf("Fought in a %dv%d situation", allies, enemies))
	}

	if len(cluster) > 1 {
		strongest, weakest := cluster[0], cluster[0]
		for _, m := range cluster[1:] {
			if m.frame.TotalGold > strongest.frame.TotalGold {
				strongest = m
			}
			if m.frame.TotalGold < weakest.frame.TotalGold {
				weakest = m
			}
		}
		if diff := strongest.frame.TotalGold - weakest.frame.TotalGold; diff > goldDisparityThreshold {
			notes = append(notes, fmt.Sprintf("Fight gold disparity was %dg", diff))
		}
		if killerID == strongest.id {
			notes = append(notes, "Killed by strongest in fight")
		}
		if playerID == weakest.id {
			notes = append(notes, "Died as weakest in fight")
		}
	}

	return notes
}

// richestParticipant returns the id holding the most gold in the frame.
func richestParticipant(frame map[int]model.ParticipantFrame) int {
	bestID, bestGold := 0, -1
	for id := 1; id <= 10; id++ {
		if pf, ok := frame[id]; ok && pf.TotalGold > bestGold {
			bestID, bestGold = id, pf.TotalGold
		}
	}
	return bestID
}

// objectiveTeam normalizes epic-monster attribution: killerTeamId when the
// payload carries it, otherwise the killer's participant-id range.
func objectiveTeam(e model.Event) model.Team {
	if t := model.TeamOfRiotID(e.KillerTeamID); t != model.TeamUnknown {
		return t
	}
	return model.TeamOfParticipant(e.KillerID)
}
