package domain

import (
	"sort"

	"github.com/samber/lo"
)

// placePoints maps a round placement to the points added to a player's
// running total. Places beyond third earn nothing.
var placePoints = map[int]int{1: 3, 2: 2, 3: 1}

// Placement is one player's rank within a round.
type Placement struct {
	PlayerID string `json:"playerId"`
	Place    int    `json:"place"`
	Points   int    `json:"points"`
}

// RankSubmissions converts this round's submissions into competition-ranked
// placements: tied scores share a place and the next distinct score
// continues at index+1. Invalid submissions are excluded from ranking.
func RankSubmissions(subs []*Submission) map[string]Placement {
	valid := lo.Filter(subs, func(s *Submission, _ int) bool { return s.IsValid })

	sort.SliceStable(valid, func(i, j int) bool {
		if valid[i].Score != valid[j].Score {
			return valid[i].Score > valid[j].Score
		}
		return valid[i].Timestamp.Before(valid[j].Timestamp)
	})

	placements := make(map[string]Placement, len(valid))
	for _, s := range valid {
		score := s.Score
		higher := lo.CountBy(valid, func(o *Submission) bool { return o.Score > score })
		place := higher + 1
		placements[s.PlayerID] = Placement{
			PlayerID: s.PlayerID,
			Place:    place,
			Points:   placePoints[place],
		}
	}
	return placements
}
