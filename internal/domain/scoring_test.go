package domain

import (
	"strings"
	"testing"
)

type fakeDict map[string]bool

func (d fakeDict) Contains(word string) bool { return d[strings.ToLower(word)] }

type fakePrefixDict map[string]bool

func (d fakePrefixDict) Contains(word string) bool { return d[strings.ToLower(word)] }

func (d fakePrefixDict) HasPrefix(prefix string) bool {
	for w := range d {
		if strings.HasPrefix(w, strings.ToLower(prefix)) {
			return true
		}
	}
	return false
}

// testPool is the fixed tile layout used across scoring tests:
// community c(2) a(1) t(1) s(1) sh(3), private d(2) i(1) e(1).
func testPool() TilePool {
	return TilePool{
		Community: []Tile{NewTile("c"), NewTile("a"), NewTile("t"), NewTile("s"), NewTile("sh")},
		Private:   []Tile{NewTile("d"), NewTile("i"), NewTile("e")},
	}
}

func refs(rs ...TileRef) []TileRef { return rs }

func com(i int) TileRef  { return TileRef{OriginCommunity, i} }
func priv(i int) TileRef { return TileRef{OriginPrivate, i} }

func TestScoreSubmissionReasonCodes(t *testing.T) {
	pool := testPool()
	dict := fakeDict{"dice": true, "cat": true}
	mod := Modifier{Type: ModifierBonus, Bonus: 3}

	tests := []struct {
		name   string
		word   string
		refs   []TileRef
		reason ReasonCode
	}{
		{"empty", "dice", nil, ReasonEmpty},
		{"bad community index", "dice", refs(com(9), priv(1), com(0), priv(2)), ReasonBadTileRef},
		{"bad private index", "dice", refs(priv(5)), ReasonBadTileRef},
		{"duplicate tile", "dd", refs(priv(0), priv(0)), ReasonDuplicateTile},
		{"letters mismatch", "dog", refs(priv(0), priv(1), com(0), priv(2)), ReasonLettersMismatch},
		{"no private tile", "cat", refs(com(0), com(1), com(2)), ReasonNoPrivateTile},
		{"not a word", "cte", refs(com(0), com(2), priv(2)), ReasonNotAWord},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ScoreSubmission(pool, tt.refs, tt.word, mod, dict)
			if res.Valid {
				t.Fatalf("expected invalid result, got valid with score %d", res.Score)
			}
			if res.Reason != tt.reason {
				t.Errorf("reason = %q, want %q", res.Reason, tt.reason)
			}
			if res.Score != 0 {
				t.Errorf("invalid submission scored %d, want 0", res.Score)
			}
		})
	}
}

func TestScoreSubmissionExactLengthModifier(t *testing.T) {
	pool := testPool()
	dict := fakeDict{"dice": true, "dices": true}
	mod := Modifier{
		Name: "Four on the Floor", Type: ModifierLength,
		ExactLength: 4, Bonus: 3, Multiplier: 3, DieIndex: 0,
	}

	// d(2)+i(1)+c(2)+e(1) = 6 base; c is the modifier tile, tripled for
	// +4; exact-length bonus +3.
	res := ScoreSubmission(pool, refs(priv(0), priv(1), com(0), priv(2)), "dice", mod, dict)
	if !res.Valid {
		t.Fatalf("dice rejected: %s", res.Reason)
	}
	if res.Score != 13 {
		t.Errorf("4-letter word score = %d, want 13 (%s)", res.Score, res.Breakdown)
	}

	// A 5-letter word using the same modifier tile gets neither the
	// multiplier nor the bonus.
	res = ScoreSubmission(pool, refs(priv(0), priv(1), com(0), priv(2), com(3)), "dices", mod, dict)
	if !res.Valid {
		t.Fatalf("dices rejected: %s", res.Reason)
	}
	if res.Score != 7 {
		t.Errorf("5-letter word score = %d, want 7 (%s)", res.Score, res.Breakdown)
	}
}

func TestScoreSubmissionDigraphPositions(t *testing.T) {
	pool := testPool()
	dict := fakeDict{"dish": true}
	// sh occupies two letter positions; in "dish" its range is [2,4) of a
	// 4-letter word, so an end-position rule holds.
	mod := Modifier{
		Name: "Grand Finale", Type: ModifierPosition,
		Position: PositionEnd, Multiplier: 3, DieIndex: 4,
	}

	// d(2)+i(1)+sh(3) = 6 base; sh tripled for +6.
	res := ScoreSubmission(pool, refs(priv(0), priv(1), com(4)), "dish", mod, dict)
	if !res.Valid {
		t.Fatalf("dish rejected: %s", res.Reason)
	}
	if res.Score != 12 {
		t.Errorf("score = %d, want 12 (%s)", res.Score, res.Breakdown)
	}

	// The same tiles with a start-position rule score base only.
	mod.Position = PositionStart
	res = ScoreSubmission(pool, refs(priv(0), priv(1), com(4)), "dish", mod, dict)
	if res.Score != 6 {
		t.Errorf("score = %d, want 6 (%s)", res.Score, res.Breakdown)
	}
}

func TestScoreSubmissionModifierTable(t *testing.T) {
	pool := testPool()
	dict := fakeDict{"ice": true, "dice": true, "aced": true}

	iceRefs := refs(priv(1), com(0), priv(2))    // i(1) c(2) e(1) = 4
	diceRefs := refs(priv(0), priv(1), com(0), priv(2)) // d i c e = 6
	acedRefs := refs(com(1), com(0), priv(2), priv(0))  // a c e d = 6

	tests := []struct {
		name  string
		word  string
		refs  []TileRef
		mod   Modifier
		score int
	}{
		{
			"flat bonus always applies",
			"ice", iceRefs,
			Modifier{Type: ModifierBonus, Bonus: 5},
			9,
		},
		{
			"multiply applies when tile used",
			"aced", acedRefs,
			Modifier{Type: ModifierMultiply, Multiplier: 2, DieIndex: 1},
			7,
		},
		{
			"multiply skipped when tile unused",
			"ice", iceRefs,
			Modifier{Type: ModifierMultiply, Multiplier: 2, DieIndex: 1},
			4,
		},
		{
			"odd parity holds",
			"ice", iceRefs,
			Modifier{Type: ModifierParity, Parity: ParityOdd, Bonus: 4},
			8,
		},
		{
			"odd parity fails on even word",
			"dice", diceRefs,
			Modifier{Type: ModifierParity, Parity: ParityOdd, Bonus: 4},
			6,
		},
		{
			"center position in odd word",
			"ice", iceRefs,
			Modifier{Type: ModifierPosition, Position: PositionCenter, Multiplier: 4, DieIndex: 0},
			10,
		},
		{
			"center position fails in even word",
			"aced", acedRefs,
			Modifier{Type: ModifierPosition, Position: PositionCenter, Multiplier: 4, DieIndex: 0},
			6,
		},
		{
			"vowel neighbor before",
			"ice", iceRefs,
			Modifier{Type: ModifierNeighbor, Neighbor: NeighborBefore, Multiplier: 3, DieIndex: 0},
			8,
		},
		{
			"equal vowel consonant counts",
			"dice", diceRefs,
			Modifier{Type: ModifierComposition, Composition: CompositionEqual, Bonus: 6},
			12,
		},
		{
			"min vowels threshold not met",
			"dice", diceRefs,
			Modifier{Type: ModifierComposition, Composition: CompositionMinVowels, Threshold: 3, Bonus: 5},
			6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ScoreSubmission(pool, tt.refs, tt.word, tt.mod, dict)
			if !res.Valid {
				t.Fatalf("%q rejected: %s", tt.word, res.Reason)
			}
			if res.Score != tt.score {
				t.Errorf("score = %d, want %d (%s)", res.Score, tt.score, res.Breakdown)
			}
		})
	}
}

func TestScoreSubmissionDeterministic(t *testing.T) {
	pool := testPool()
	dict := fakeDict{"dice": true}
	mod := Modifier{Type: ModifierComposition, Composition: CompositionEqual, Bonus: 6}
	r := refs(priv(0), priv(1), com(0), priv(2))

	first := ScoreSubmission(pool, r, "dice", mod, dict)
	for i := 0; i < 10; i++ {
		again := ScoreSubmission(pool, r, "dice", mod, dict)
		if again != first {
			t.Fatalf("run %d differs: %+v vs %+v", i, again, first)
		}
	}
}

func TestBestWordRequiresPrivateTile(t *testing.T) {
	pool := TilePool{
		Community: []Tile{NewTile("a"), NewTile("t")},
		Private:   []Tile{NewTile("c")},
	}
	mod := Modifier{Type: ModifierBonus, Bonus: 1}

	// "at" is spellable from community tiles alone and must never win.
	res := BestWord(pool, mod, fakeDict{"cat": true, "at": true})
	if !res.Found || res.Word != "cat" {
		t.Fatalf("best = %+v, want cat", res)
	}

	res = BestWord(pool, mod, fakeDict{"at": true})
	if res.Found {
		t.Fatalf("found %q, want no result without a private tile", res.Word)
	}

	res = BestWord(pool, mod, fakeDict{})
	if res.Found {
		t.Fatalf("found %q with an empty dictionary", res.Word)
	}
}

func TestBestWordPrefersHigherScoreThenLongerThenLexical(t *testing.T) {
	pool := TilePool{
		Community: []Tile{NewTile("a"), NewTile("t")},
		Private:   []Tile{NewTile("c"), NewTile("s")},
	}
	mod := Modifier{}

	// cats(5) beats cat(4) and act(4).
	res := BestWord(pool, mod, fakeDict{"cat": true, "act": true, "cats": true})
	if res.Word != "cats" || res.Score != 5 {
		t.Fatalf("best = %q (%d), want cats (5)", res.Word, res.Score)
	}

	// Equal score and length: act and cat are anagrams, the
	// lexicographically smaller one wins.
	res = BestWord(pool, mod, fakeDict{"cat": true, "act": true})
	if res.Word != "act" {
		t.Fatalf("best = %q, want act", res.Word)
	}
}

func TestBestWordPrefixPruningFindsSameResult(t *testing.T) {
	pool := testPool()
	plain := fakeDict{"dice": true, "cat": true, "aced": true, "dish": true}
	pruned := fakePrefixDict{"dice": true, "cat": true, "aced": true, "dish": true}
	mod := Modifier{Type: ModifierMultiply, Multiplier: 2, DieIndex: 0}

	a := BestWord(pool, mod, plain)
	b := BestWord(pool, mod, pruned)
	if a.Word != b.Word || a.Score != b.Score {
		t.Fatalf("pruned search diverged: %q (%d) vs %q (%d)", b.Word, b.Score, a.Word, a.Score)
	}
	if !a.Found {
		t.Fatal("expected a result")
	}
}
