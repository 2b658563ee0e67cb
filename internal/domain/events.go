package domain

import "time"

// EventType represents the type of session event
type EventType string

const (
	EventLobbyUpdate        EventType = "LOBBY_UPDATE"
	EventPlayerJoined       EventType = "PLAYER_JOINED"
	EventPlayerLeft         EventType = "PLAYER_LEFT"
	EventPlayerDisconnected EventType = "PLAYER_DISCONNECTED"
	EventPlayerReconnected  EventType = "PLAYER_RECONNECTED"
	EventHostChanged        EventType = "HOST_CHANGED"
	EventGameStarting       EventType = "GAME_STARTING"
	EventRoundStarted       EventType = "ROUND_STARTED"
	EventPrivateDice        EventType = "PRIVATE_DICE"
	EventTimerTick          EventType = "TIMER_TICK"
	EventTimerHalved        EventType = "TIMER_HALVED"
	EventSubmissionUpdate   EventType = "SUBMISSION_UPDATE"
	EventRoundRevealed      EventType = "ROUND_REVEALED"
	EventBestWord           EventType = "BEST_WORD"
	EventFunFact            EventType = "FUN_FACT"
	EventIllustration       EventType = "ILLUSTRATION"
	EventFinalStandings     EventType = "FINAL_STANDINGS"
	EventSessionReset       EventType = "SESSION_RESET"
	EventError              EventType = "ERROR"
)

// GameEvent represents an event that occurred in a session
type GameEvent struct {
	Type      EventType   `json:"type"`
	Code      string      `json:"code"`
	PlayerID  string      `json:"playerId,omitempty"` // If event is player-specific
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewEvent creates a new session-wide event
func NewEvent(eventType EventType, code string, payload interface{}) *GameEvent {
	return &GameEvent{
		Type:      eventType,
		Code:      code,
		Payload:   payload,
		Timestamp: time.Now(),
	}
}

// NewPlayerEvent creates a new player-specific event
func NewPlayerEvent(eventType EventType, code, playerID string, payload interface{}) *GameEvent {
	return &GameEvent{
		Type:      eventType,
		Code:      code,
		PlayerID:  playerID,
		Payload:   payload,
		Timestamp: time.Now(),
	}
}

// Payload types for different events

// LobbyUpdatePayload is sent whenever lobby membership or settings change
type LobbyUpdatePayload struct {
	Players  []PlayerInfo `json:"players"`
	HostID   string       `json:"hostId"`
	Settings Settings     `json:"settings"`
	Status   Status       `json:"status"`
	CanStart bool         `json:"canStart"`
}

// GameStartingPayload announces the pre-round countdown animation window
type GameStartingPayload struct {
	StartsInSeconds int `json:"startsInSeconds"`
	RoundCount      int `json:"roundCount"`
}

// RoundStartedPayload is broadcast when a round's dice hit the table
type RoundStartedPayload struct {
	RoundNumber     int      `json:"roundNumber"`
	TotalRounds     int      `json:"totalRounds"`
	CommunityDice   []Tile   `json:"communityDice"`
	Modifier        Modifier `json:"modifier"`
	ModifierText    string   `json:"modifierText"`
	DurationSeconds int      `json:"durationSeconds"`
}

// PrivateDicePayload is sent to each player with their own dice
type PrivateDicePayload struct {
	RoundNumber int    `json:"roundNumber"`
	Dice        []Tile `json:"dice"`
}

// TimerTickPayload is sent every second during a round
type TimerTickPayload struct {
	RemainingSeconds int `json:"remainingSeconds"`
}

// TimerHalvedPayload is broadcast distinctly from ordinary ticks when the
// first submission halves the remaining time
type TimerHalvedPayload struct {
	RemainingSeconds int    `json:"remainingSeconds"`
	TriggeredBy      string `json:"triggeredBy"`
}

// SubmissionUpdatePayload reports who has submitted (not what)
type SubmissionUpdatePayload struct {
	SubmittedIDs []string `json:"submittedIds"`
	Submitted    int      `json:"submitted"`
	TotalPlayers int      `json:"totalPlayers"`
}

// SubmissionResultPayload is sent to the submitting player only
type SubmissionResultPayload struct {
	Word      string     `json:"word"`
	IsValid   bool       `json:"isValid"`
	Reason    ReasonCode `json:"reason,omitempty"`
	Message   string     `json:"message,omitempty"`
	Score     int        `json:"score"`
	Breakdown string     `json:"breakdown,omitempty"`
}

// RoundRevealedPayload carries the full round results
type RoundRevealedPayload struct {
	Summary     *RoundSummary `json:"summary"`
	Scoreboard  []PlayerInfo  `json:"scoreboard"`
	IsLastRound bool          `json:"isLastRound"`
}

// BestWordPayload tells one player the best word their pool allowed
type BestWordPayload struct {
	RoundNumber int            `json:"roundNumber"`
	Result      BestWordResult `json:"result"`
}

// FunFactPayload carries post-reveal flavor text
type FunFactPayload struct {
	RoundNumber int    `json:"roundNumber"`
	Text        string `json:"text"`
}

// IllustrationPayload carries a post-reveal illustration reference
type IllustrationPayload struct {
	RoundNumber int    `json:"roundNumber"`
	URL         string `json:"url"`
}

// FinalStandingsPayload is sent when the host views final results
type FinalStandingsPayload struct {
	Standings []StandingEntry `json:"standings"`
	History   []*RoundSummary `json:"history"`
}

// HostChangedPayload announces host migration
type HostChangedPayload struct {
	HostID string `json:"hostId"`
	Name   string `json:"name"`
}

// ErrorPayload is sent when an error occurs
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
