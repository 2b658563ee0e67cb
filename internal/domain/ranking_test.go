package domain

import (
	"testing"
	"time"
)

func sub(playerID string, score int, valid bool, at time.Time) *Submission {
	return &Submission{PlayerID: playerID, IsValid: valid, Score: score, Timestamp: at}
}

func TestRankSubmissionsCompetitionRanking(t *testing.T) {
	now := time.Now()
	placements := RankSubmissions([]*Submission{
		sub("a", 50, true, now),
		sub("b", 50, true, now.Add(time.Second)),
		sub("c", 30, true, now.Add(2*time.Second)),
	})

	// Tied scores share a place; the next distinct score continues at one
	// past the number of strictly higher submissions.
	want := map[string]Placement{
		"a": {PlayerID: "a", Place: 1, Points: 3},
		"b": {PlayerID: "b", Place: 1, Points: 3},
		"c": {PlayerID: "c", Place: 3, Points: 1},
	}
	if len(placements) != len(want) {
		t.Fatalf("got %d placements, want %d", len(placements), len(want))
	}
	for id, w := range want {
		if placements[id] != w {
			t.Errorf("placement[%s] = %+v, want %+v", id, placements[id], w)
		}
	}
}

func TestRankSubmissionsExcludesInvalid(t *testing.T) {
	now := time.Now()
	placements := RankSubmissions([]*Submission{
		sub("a", 10, true, now),
		sub("b", 99, false, now),
	})

	if _, ok := placements["b"]; ok {
		t.Error("invalid submission was ranked")
	}
	if p := placements["a"]; p.Place != 1 || p.Points != 3 {
		t.Errorf("placement[a] = %+v, want place 1 / 3 points", p)
	}
}

func TestRankSubmissionsPointsBeyondThird(t *testing.T) {
	now := time.Now()
	placements := RankSubmissions([]*Submission{
		sub("a", 10, true, now),
		sub("b", 8, true, now),
		sub("c", 6, true, now),
		sub("d", 4, true, now),
	})

	wantPoints := map[string]int{"a": 3, "b": 2, "c": 1, "d": 0}
	for id, pts := range wantPoints {
		if placements[id].Points != pts {
			t.Errorf("points[%s] = %d, want %d", id, placements[id].Points, pts)
		}
	}
	if placements["d"].Place != 4 {
		t.Errorf("place[d] = %d, want 4", placements["d"].Place)
	}
}

func TestRankSubmissionsEmpty(t *testing.T) {
	if got := RankSubmissions(nil); len(got) != 0 {
		t.Fatalf("got %d placements for no submissions", len(got))
	}
}
