package analyzer

import "github.com/pable/go-lol-insights/internal/model"

// ResolvePlayer finds the participant record for a PUUID.
//
// Fast path: the metadata participant list is ordered by participant id, so
// the PUUID's index there points at info.participants[index]. Riot documents
// participantId == index+1 but does not contract it, so the hit is sanity
// checked and a linear scan by puuid is the fallback. Returns nil when the
// PUUID is not in the match; callers skip that player rather than aborting.
func ResolvePlayer(match *model.Match, puuid string) *model.Participant {
	for i, p := range match.Metadata.Participants {
		if p != puuid {
			continue
		}
		if i < len(match.Info.Participants) {
			cand := &match.Info.Participants[i]
			if cand.PUUID == puuid || cand.ParticipantID == i+1 {
				return cand
			}
		}
		break
	}
	for i := range match.Info.Participants {
		if match.Info.Participants[i].PUUID == puuid {
			return &match.Info.Participants[i]
		}
	}
	return nil
}

// FindLaneOpponent returns the opposing-team participant playing the same
// role, or nil when roles don't line up (role swaps and off-meta picks make
// that legitimate, not an error).
func FindLaneOpponent(match *model.Match, player *model.Participant) *model.Participant {
	role := player.Role()
	if role == "" || player.TeamID == 0 {
		return nil
	}
	for i := range match.Info.Participants {
		p := &match.Info.Participants[i]
		if p.TeamID != player.TeamID && p.Role() == role {
			return p
		}
	}
	return nil
}

// participantByID returns the participant with the given id (1-10), or nil.
func participantByID(match *model.Match, id int) *model.Participant {
	for i := range match.Info.Participants {
		if match.Info.Participants[i].ParticipantID == id {
			return &match.Info.Participants[i]
		}
	}
	return nil
}
