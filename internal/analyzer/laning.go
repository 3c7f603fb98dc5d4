package analyzer

import "github.com/pable/go-lol-insights/internal/model"

// laningSnapshotFrame is the frame index nearest 10:00 game time. Frames
// are one per minute starting at 0, so index 10 is the 10-minute state.
const laningSnapshotFrame = 10

// AnalyzeLaningPhase compares player and opponent creep score and gold at
// the 10-minute snapshot. Short games that never reach frame 10 (or frames
// missing either participant) yield a LaningPhase carrying only an error
// marker; callers must check Error before reading the numeric fields.
func AnalyzeLaningPhase(timeline *model.Timeline, playerID, opponentID int) *model.LaningPhase {
	if len(timeline.Info.Frames) <= laningSnapshotFrame {
		return &model.LaningPhase{Error: "could not find frame data at 10 minutes"}
	}
	frames := timeline.Info.Frames[laningSnapshotFrame].ParticipantFrames

	playerFrame, okPlayer := frames[playerID]
	opponentFrame, okOpp := frames[opponentID]
	if !okPlayer || !okOpp {
		return &model.LaningPhase{Error: "could not find player or opponent frame data at 10 minutes"}
	}

	playerCS := playerFrame.MinionsKilled + playerFrame.JungleMinionsKilled
	opponentCS := opponentFrame.MinionsKilled + opponentFrame.JungleMinionsKilled

	return &model.LaningPhase{
		CSAt10:           playerCS,
		OpponentCSAt10:   opponentCS,
		CSLeadAt10:       playerCS - opponentCS,
		GoldAt10:         playerFrame.TotalGold,
		OpponentGoldAt10: opponentFrame.TotalGold,
		GoldLeadAt10:     playerFrame.TotalGold - opponentFrame.TotalGold,
	}
}
