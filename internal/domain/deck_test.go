package domain

import "testing"

func TestDeckDrawSurvivesExhaustion(t *testing.T) {
	d := NewDeck()
	total := d.Size()
	if total == 0 {
		t.Fatal("empty deck")
	}

	// Draw through the deck twice; the cursor must reshuffle and reset.
	for i := 0; i < total*2; i++ {
		tile := d.DrawOne()
		if tile.Letter == "" {
			t.Fatalf("draw %d returned an empty tile", i)
		}
		if tile.Points != LetterPoints(tile.Letter) {
			t.Fatalf("tile %q carries %d points, mapping says %d",
				tile.Letter, tile.Points, LetterPoints(tile.Letter))
		}
	}
	if d.Remaining() < 0 || d.Remaining() > total {
		t.Errorf("remaining = %d out of range", d.Remaining())
	}
}

func TestDrawPrivateSetGuaranteesVowel(t *testing.T) {
	d := NewDeck()
	for i := 0; i < 200; i++ {
		dice := d.DrawPrivateSet()
		if len(dice) != PrivateDiceCount {
			t.Fatalf("draw %d: got %d dice, want %d", i, len(dice), PrivateDiceCount)
		}
		if !hasVowelTile(dice) {
			t.Fatalf("draw %d has no vowel: %v", i, dice)
		}
	}
}

func TestDrawCommunitySetGuaranteesVowel(t *testing.T) {
	d := NewDeck()
	for i := 0; i < 200; i++ {
		dice := d.DrawCommunitySet()
		if len(dice) != CommunityDiceCount {
			t.Fatalf("draw %d: got %d dice, want %d", i, len(dice), CommunityDiceCount)
		}
		if !hasVowelTile(dice) {
			t.Fatalf("draw %d has no vowel: %v", i, dice)
		}
	}
}

func hasVowelTile(dice []Tile) bool {
	for _, t := range dice {
		if t.IsVowel() {
			return true
		}
	}
	return false
}

func TestTilePointsRange(t *testing.T) {
	for letter, points := range letterPoints {
		if points < 1 || points > 4 {
			t.Errorf("letter %q has %d points, want 1-4", letter, points)
		}
		if len(letter) < 1 || len(letter) > 2 {
			t.Errorf("letter %q has unexpected length", letter)
		}
		if _, ok := letterCounts[letter]; !ok {
			t.Errorf("letter %q missing from the frequency table", letter)
		}
	}
}

func TestDigraphTilesAreNotVowels(t *testing.T) {
	for _, letter := range []string{"qu", "th", "ch", "sh"} {
		if NewTile(letter).IsVowel() {
			t.Errorf("digraph %q counted as a vowel tile", letter)
		}
		if NewTile(letter).LetterLen() != 2 {
			t.Errorf("digraph %q should occupy two letter positions", letter)
		}
	}
	for _, letter := range Vowels {
		if !NewTile(letter).IsVowel() {
			t.Errorf("%q should be a vowel tile", letter)
		}
	}
}
