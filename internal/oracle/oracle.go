// Package oracle defines the external word-proposal, flavor-text, and
// illustration collaborators. All of them are treated as unreliable:
// timeouts, malformed output, and content needing sanitization degrade to
// "no usable candidate", never to a fatal error.
package oracle

import (
	"context"
	"errors"

	"lexidice/internal/domain"
)

// ErrNoCandidate is returned when an oracle produced nothing usable.
var ErrNoCandidate = errors.New("no usable candidate")

// TileInfo describes one available tile in a proposal request.
type TileInfo struct {
	Letter string `json:"letter"`
	Points int    `json:"points"`
}

// ProposalFailure is one prior rejected candidate, fed back on retries.
type ProposalFailure struct {
	Word   string `json:"word"`
	Reason string `json:"reason"`
}

// ProposalRequest carries the tiles split by origin, the active modifier
// description, and accumulated prior failures.
type ProposalRequest struct {
	Community []TileInfo        `json:"community"`
	Private   []TileInfo        `json:"private"`
	Modifier  string            `json:"modifier"`
	Failures  []ProposalFailure `json:"failures,omitempty"`
}

// Proposal is a claimed word plus an ordered list of tile-slot references.
type Proposal struct {
	Word string           `json:"word"`
	Refs []domain.TileRef `json:"tiles"`
}

// WordProposer drafts candidate words for bot players.
type WordProposer interface {
	ProposeWord(ctx context.Context, req ProposalRequest) (Proposal, error)
}

// FlavorTexter produces a fun fact about the round's valid words.
type FlavorTexter interface {
	FunFact(ctx context.Context, words []string) (string, error)
}

// Illustrator produces an illustration for the round's words and fact,
// returning a URL.
type Illustrator interface {
	Illustrate(ctx context.Context, words []string, funFact string) (string, error)
}

// PoolInfo converts a domain tile pool into request tile info.
func PoolInfo(pool domain.TilePool) (community, private []TileInfo) {
	for _, t := range pool.Community {
		community = append(community, TileInfo{Letter: t.Letter, Points: t.Points})
	}
	for _, t := range pool.Private {
		private = append(private, TileInfo{Letter: t.Letter, Points: t.Points})
	}
	return community, private
}
