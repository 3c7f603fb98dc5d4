package analyzer

import (
	"sort"
	"strings"

	"github.com/pable/go-lol-insights/internal/model"
)

const (
	// fightMinKills is the cluster size below which a kill group is noise,
	// not a team fight.
	fightMinKills = 3
	// fightWindowMS anchors at the first kill of a cluster and does not
	// slide as later kills are absorbed.
	fightWindowMS = 20_000
	// engagementWindowMinutes is the max gap between fight start times for
	// two fights to merge into one engagement (45 seconds).
	engagementWindowMinutes = 0.75
)

// involvementNone is the involvement value for a fight the tracked player
// had no part in.
const involvementNone = "None"

// DetectTeamFights clusters CHAMPION_KILL events into fights.
//
// Each unvisited kill anchors a 20-second window; subsequent kills inside
// the window are absorbed. Clusters of 3+ kills become a fight record with
// kills attributed to the killing side (inferred from the victim's id
// range) and the tracked player's involvement collected across the
// cluster. Kills absorbed into a sub-threshold cluster stay unvisited and
// may anchor a later window.
func DetectTeamFights(timeline *model.Timeline, playerID int) []model.Engagement {
	var kills []model.Event
	for _, e := range timeline.AllEvents() {
		if e.Type == model.EventChampionKill {
			kills = append(kills, e)
		}
	}

	visited := make([]bool, len(kills))
	var fights []model.Engagement

	for i := range kills {
		if visited[i] {
			continue
		}
		cluster := []int{i}
		windowEnd := kills[i].Timestamp + fightWindowMS
		for j := i + 1; j < len(kills); j++ {
			if kills[j].Timestamp > windowEnd {
				break
			}
			cluster = append(cluster, j)
		}
		if len(cluster) < fightMinKills {
			continue
		}

		fight := model.Engagement{StartTimeMinutes: minutes(kills[i].Timestamp)}
		involvement := make(map[string]struct{})

		for _, idx := range cluster {
			visited[idx] = true
			k := kills[idx]

			// A victim on blue means red scored the kill, and vice versa.
			if model.TeamOfParticipant(k.VictimID) == model.TeamBlue {
				fight.RedTeamKills++
			} else {
				fight.BlueTeamKills++
			}

			if k.KillerID == playerID {
				involvement["Kill"] = struct{}{}
			}
			if k.VictimID == playerID {
				involvement["Death"] = struct{}{}
			}
			for _, assister := range k.AssistingParticipantIDs {
				if assister == playerID {
					involvement["Assist"] = struct{}{}
				}
			}
		}

		fight.PlayerInvolvement = joinInvolvement(involvement)
		fights = append(fights, fight)
	}

	return fights
}

// ConsolidateEngagements merges chronologically adjacent fights whose start
// times fall within 45 seconds of the current engagement's start. Kill
// counts add and involvement sets union. Running the pass again over its
// own output is a no-op: surviving engagements are farther apart than the
// merge window.
func ConsolidateEngagements(fights []model.Engagement) []model.Engagement {
	if len(fights) == 0 {
		return nil
	}

	var engagements []model.Engagement
	current := fights[0]

	for _, next := range fights[1:] {
		if next.StartTimeMinutes-current.StartTimeMinutes <= engagementWindowMinutes {
			current.BlueTeamKills += next.BlueTeamKills
			current.RedTeamKills += next.RedTeamKills
			current.PlayerInvolvement = mergeInvolvement(current.PlayerInvolvement, next.PlayerInvolvement)
		} else {
			engagements = append(engagements, current)
			current = next
		}
	}
	return append(engagements, current)
}

func joinInvolvement(set map[string]struct{}) string {
	if len(set) == 0 {
		return involvementNone
	}
	parts := make([]string, 0, len(set))
	for p := range set {
		parts = append(parts, p)
	}
	sort.Strings(parts)
	return strings.Join(parts, ", ")
}

func mergeInvolvement(a, b string) string {
	set := make(map[string]struct{})
	for _, s := range []string{a, b} {
		for _, part := range strings.Split(s, ", ") {
			if part != "" && part != involvementNone {
				set[part] = struct{}{}
			}
		}
	}
	return joinInvolvement(set)
}
