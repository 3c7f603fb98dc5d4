package analyzer

import "github.com/pable/go-lol-insights/internal/model"

// AnalyzeObjectives extracts the epic-monster timeline. Team attribution
// uses killerTeamId (the 100/200 scheme, not the participant-id ranges used
// elsewhere). Dragon kills carry their element in monsterSubType, which is
// preferred over the generic monsterType when present.
func AnalyzeObjectives(timeline *model.Timeline) []model.Objective {
	var objectives []model.Objective
	for _, e := range timeline.AllEvents() {
		if e.Type != model.EventEliteMonsterKill {
			continue
		}
		objectives = append(objectives, model.Objective{
			TimeMinutes: minutes(e.Timestamp),
			Team:        model.TeamOfRiotID(e.KillerTeamID).String(),
			Type:        monsterName(e),
		})
	}
	return objectives
}

// monsterName prefers the subtype (dragon elements) over the generic type.
func monsterName(e model.Event) string {
	if e.MonsterSubType != "" {
		return e.MonsterSubType
	}
	if e.MonsterType != "" {
		return e.MonsterType
	}
	return "UNKNOWN"
}
