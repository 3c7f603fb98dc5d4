package model

// Team identifies a side on Summoner's Rift.
//
// Riot payloads encode sides two different ways: participant ids 1-5 are
// blue and 6-10 are red, while team-scoped fields use 100 for blue and
// 200 for red. Convert at the boundary with TeamOfParticipant and
// TeamOfRiotID instead of branching on raw ints.
type Team int

const (
	TeamUnknown Team = 0
	TeamBlue    Team = 1
	TeamRed     Team = 2
)

func (t Team) String() string {
	switch t {
	case TeamBlue:
		return "Blue"
	case TeamRed:
		return "Red"
	default:
		return "?"
	}
}

// Opponent returns the opposing side, or TeamUnknown for TeamUnknown.
func (t Team) Opponent() Team {
	switch t {
	case TeamBlue:
		return TeamRed
	case TeamRed:
		return TeamBlue
	default:
		return TeamUnknown
	}
}

// TeamOfParticipant maps a participant id (1-10) to its side.
func TeamOfParticipant(id int) Team {
	switch {
	case id >= 1 && id <= 5:
		return TeamBlue
	case id >= 6 && id <= 10:
		return TeamRed
	default:
		return TeamUnknown
	}
}

// TeamOfRiotID maps a Riot team id (100/200) to its side.
func TeamOfRiotID(teamID int) Team {
	switch teamID {
	case 100:
		return TeamBlue
	case 200:
		return TeamRed
	default:
		return TeamUnknown
	}
}

// ---- Raw match-v5 payloads ----

// Match is the response from /lol/match/v5/matches/{matchId}.
type Match struct {
	Metadata MatchMetadata `json:"metadata"`
	Info     MatchInfo     `json:"info"`
}

type MatchMetadata struct {
	MatchID      string   `json:"matchId"`
	Participants []string `json:"participants"` // PUUIDs, ordered by participant id
}

type MatchInfo struct {
	GameCreation int64         `json:"gameCreation"`
	GameDuration int64         `json:"gameDuration"`
	GameVersion  string        `json:"gameVersion"`
	QueueID      int           `json:"queueId"`
	Participants []Participant `json:"participants"`
}

type Participant struct {
	ParticipantID      int    `json:"participantId"`
	PUUID              string `json:"puuid"`
	ChampionName       string `json:"championName"`
	TeamID             int    `json:"teamId"` // 100 or 200
	TeamPosition       string `json:"teamPosition"`
	IndividualPosition string `json:"individualPosition"`
	Lane               string `json:"lane"`

	Kills   int  `json:"kills"`
	Deaths  int  `json:"deaths"`
	Assists int  `json:"assists"`
	Win     bool `json:"win"`

	TotalDamageDealtToChampions int `json:"totalDamageDealtToChampions"`
	VisionScore                 int `json:"visionScore"`

	Challenges ParticipantChallenges `json:"challenges"`
}

type ParticipantChallenges struct {
	KDA               float64 `json:"kda"`
	KillParticipation float64 `json:"killParticipation"`
}

// Role returns the participant's role, preferring teamPosition over
// individualPosition. Either can be empty in remakes and odd queues.
func (p *Participant) Role() string {
	if p.TeamPosition != "" {
		return p.TeamPosition
	}
	return p.IndividualPosition
}

// Team returns the participant's side from its Riot team id.
func (p *Participant) Team() Team {
	return TeamOfRiotID(p.TeamID)
}

// ---- Raw timeline payloads ----

// Timeline is the response from /lol/match/v5/matches/{matchId}/timeline.
// Frames arrive one per minute starting at 0:00.
type Timeline struct {
	Metadata MatchMetadata `json:"metadata"`
	Info     TimelineInfo  `json:"info"`
}

type TimelineInfo struct {
	FrameInterval int64   `json:"frameInterval"` // milliseconds, normally 60000
	Frames        []Frame `json:"frames"`
}

type Frame struct {
	Timestamp         int64                    `json:"timestamp"`
	ParticipantFrames map[int]ParticipantFrame `json:"participantFrames"`
	Events            []Event                  `json:"events"`
}

type ParticipantFrame struct {
	ParticipantID       int      `json:"participantId"`
	Position            Position `json:"position"`
	TotalGold           int      `json:"totalGold"`
	MinionsKilled       int      `json:"minionsKilled"`
	JungleMinionsKilled int      `json:"jungleMinionsKilled"`
}

// Position is a map coordinate in game units.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Event is a typed timeline event. Fields beyond Type and Timestamp are
// populated per event type; unused ones stay zero.
type Event struct {
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp"` // milliseconds

	// ITEM_PURCHASED
	ParticipantID int `json:"participantId,omitempty"`
	ItemID        int `json:"itemId,omitempty"`

	// CHAMPION_KILL; KillerID 0 means the victim died to minions or turrets.
	KillerID                int   `json:"killerId,omitempty"`
	VictimID                int   `json:"victimId,omitempty"`
	AssistingParticipantIDs []int `json:"assistingParticipantIds,omitempty"`

	// ELITE_MONSTER_KILL
	KillerTeamID   int    `json:"killerTeamId,omitempty"`
	MonsterType    string `json:"monsterType,omitempty"`
	MonsterSubType string `json:"monsterSubType,omitempty"`
}

// Event type names as they appear in timeline payloads.
const (
	EventChampionKill     = "CHAMPION_KILL"
	EventItemPurchased    = "ITEM_PURCHASED"
	EventEliteMonsterKill = "ELITE_MONSTER_KILL"
)

// AllEvents flattens the per-frame event lists. Riot emits frames and the
// events within them in chronological order, so the result is time-sorted.
func (t *Timeline) AllEvents() []Event {
	var events []Event
	for _, frame := range t.Info.Frames {
		events = append(events, frame.Events...)
	}
	return events
}
