package domain

import "time"

// PlayerRoundResult is one player's line in a round summary.
type PlayerRoundResult struct {
	PlayerID      string     `json:"playerId"`
	Name          string     `json:"name"`
	Word          string     `json:"word,omitempty"`
	Score         int        `json:"score"`
	Breakdown     string     `json:"breakdown,omitempty"`
	IsValid       bool       `json:"isValid"`
	Reason        ReasonCode `json:"reason,omitempty"`
	NoSubmission  bool       `json:"noSubmission"`
	Place         *int       `json:"place"` // nil when unranked
	PointsAwarded int        `json:"pointsAwarded"`
	Dice          []Tile     `json:"dice"`
}

// RoundSummary is the full record of a completed round, appended to the
// session's history at reveal.
type RoundSummary struct {
	Number        int                 `json:"number"`
	CommunityDice []Tile              `json:"communityDice"`
	Modifier      Modifier            `json:"modifier"`
	Results       []PlayerRoundResult `json:"results"`
	RevealedAt    time.Time           `json:"revealedAt"`
}

// StandingEntry is one row of the final standings.
type StandingEntry struct {
	PlayerID    string `json:"playerId"`
	Name        string `json:"name"`
	TotalPoints int    `json:"totalPoints"`
	Rank        int    `json:"rank"`
}
