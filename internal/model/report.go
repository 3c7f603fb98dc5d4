package model

// Derived analysis structures. All of these are computed once per analysis
// run and are plain JSON-serializable values: involvement sets are emitted
// as sorted comma-joined strings, never as Go sets or maps.

// LaningPhase compares player and lane opponent at the 10:00 frame.
// When Error is non-empty the numeric fields are meaningless and callers
// must not read them.
type LaningPhase struct {
	Error string `json:"error,omitempty"`

	CSAt10         int `json:"cs_at_10"`
	OpponentCSAt10 int `json:"opponent_cs_at_10"`
	CSLeadAt10     int `json:"cs_lead_at_10"`

	GoldAt10         int `json:"gold_at_10"`
	OpponentGoldAt10 int `json:"opponent_gold_at_10"`
	GoldLeadAt10     int `json:"gold_lead_at_10"`
}

// Engagement is a consolidated team-fight summary. PlayerInvolvement is
// "None" or a sorted comma-joined subset of {Assist, Death, Kill}.
type Engagement struct {
	StartTimeMinutes  float64 `json:"start_time_minutes"`
	BlueTeamKills     int     `json:"blue_team_kills"`
	RedTeamKills      int     `json:"red_team_kills"`
	PlayerInvolvement string  `json:"player_involvement"`
}

// Outcome reports the engagement result from the given side's point of view.
func (e *Engagement) Outcome(side Team) string {
	own, other := e.BlueTeamKills, e.RedTeamKills
	if side == TeamRed {
		own, other = other, own
	}
	switch {
	case own > other:
		return "Won"
	case other > own:
		return "Lost"
	default:
		return "Even"
	}
}

// Objective is one epic-monster kill from the timeline.
type Objective struct {
	TimeMinutes float64 `json:"time_minutes"`
	Team        string  `json:"team"` // "Blue" or "Red"
	Type        string  `json:"type"` // monsterSubType when present, else monsterType
}

// Power spike kinds.
const (
	SpikeItemCompletion = "Item Completion"
	SpikeKillingSpree   = "Killing Spree"
)

// PowerSpike is a detected combat-strength increase for one participant.
type PowerSpike struct {
	TimeMinutes float64 `json:"time_minutes"`
	Type        string  `json:"type"`
	Detail      string  `json:"detail"`
}

// DeathAnalysis reconstructs the tactical context around one death of the
// tracked player. Context and Outcome are always non-empty: placeholder
// notes are emitted when nothing special was found.
type DeathAnalysis struct {
	TimeMinutes float64  `json:"time_minutes"`
	KilledBy    string   `json:"killed_by"`
	Context     []string `json:"context"`
	Outcome     []string `json:"outcome"`
}

// KillCollaboration counts cross-assists between two tracked players.
// PxOnPyKills is the number of Py's kills that Px assisted on.
type KillCollaboration struct {
	P1OnP2Kills  int `json:"p1_on_p2_kills"`
	P2OnP1Kills  int `json:"p2_on_p1_kills"`
	TotalP1Kills int `json:"total_p1_kills"`
	TotalP2Kills int `json:"total_p2_kills"`
}

// JointObjective is an epic monster both tracked players helped secure.
type JointObjective struct {
	TimeMinutes float64 `json:"time_minutes"`
	Type        string  `json:"type"`
}

// DuoDeathContext describes what the other tracked player did around one
// player's death (co-death or revenge kill).
type DuoDeathContext struct {
	TimeMinutes float64 `json:"time_minutes"`
	Event       string  `json:"event"`
	Outcome     string  `json:"outcome"`
}

// DuoReport cross-references two tracked players on the same team.
type DuoReport struct {
	P1Champion        string            `json:"p1_champion"`
	P2Champion        string            `json:"p2_champion"`
	KillCollaboration KillCollaboration `json:"kill_collaboration"`
	JointObjectives   []JointObjective  `json:"joint_objectives"`
	DeathContext      []DuoDeathContext `json:"death_context"`
}

// PlayerSummary carries end-of-game scoreboard stats for one tracked player.
type PlayerSummary struct {
	ChampionName                string  `json:"championName"`
	ParticipantID               int     `json:"participantId"`
	Lane                        string  `json:"lane"`
	Kills                       int     `json:"kills"`
	Deaths                      int     `json:"deaths"`
	Assists                     int     `json:"assists"`
	Win                         bool    `json:"win"`
	KDA                         float64 `json:"kda"`
	KillParticipation           float64 `json:"killParticipation"`
	TotalDamageDealtToChampions int     `json:"totalDamageDealtToChampions"`
	VisionScore                 int     `json:"visionScore"`
}

// PlayerReport is the per-player section of a match report. The timeline
// sections are nil when timeline data was unavailable; LaningPhase is also
// nil when no lane opponent could be matched.
type PlayerReport struct {
	PlayerSummary PlayerSummary   `json:"player_summary"`
	LaningPhase   *LaningPhase    `json:"laning_phase,omitempty"`
	TeamFights    []Engagement    `json:"team_fights,omitempty"`
	Objectives    []Objective     `json:"objectives,omitempty"`
	DeathAnalysis []DeathAnalysis `json:"death_analysis,omitempty"`
}

// MatchReport is the full analysis output for one match, keyed by champion
// name. DuoReport is present only when exactly two tracked players resolved
// and timeline data was available.
type MatchReport struct {
	MatchID           string                   `json:"match_id"`
	IndividualReports map[string]*PlayerReport `json:"individual_reports"`
	DuoReport         *DuoReport               `json:"duo_report,omitempty"`
}

// MatchSummary is a lightweight record for list/show commands.
type MatchSummary struct {
	MatchID         string
	QueueID         int
	GameVersion     string
	GameDurationSec int64
	Champions       string // comma-joined analyzed champions
	AnalyzedAt      string
}
