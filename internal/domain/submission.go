package domain

import "time"

// Submission is one player's word for the current round, with its
// validated score. A resubmission before reveal overwrites the prior one.
type Submission struct {
	PlayerID  string     `json:"playerId"`
	Name      string     `json:"name"`
	Word      string     `json:"word"`
	TileRefs  []TileRef  `json:"tileRefs"`
	IsValid   bool       `json:"isValid"`
	Reason    ReasonCode `json:"reason,omitempty"`
	Score     int        `json:"score"`
	Breakdown string     `json:"breakdown"`
	Timestamp time.Time  `json:"timestamp"`
}

// NewSubmission creates a submission from a scoring result.
func NewSubmission(playerID, name string, refs []TileRef, res ScoreResult) *Submission {
	return &Submission{
		PlayerID:  playerID,
		Name:      name,
		Word:      res.Word,
		TileRefs:  refs,
		IsValid:   res.Valid,
		Reason:    res.Reason,
		Score:     res.Score,
		Breakdown: res.Breakdown,
		Timestamp: time.Now(),
	}
}
