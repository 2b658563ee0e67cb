package domain

import "math/rand"

const (
	// PrivateDiceCount is how many private dice each player holds per round.
	PrivateDiceCount = 3

	// CommunityDiceCount is how many shared dice are drawn per round.
	CommunityDiceCount = 5

	// diversityRedraws bounds how many times a community draw is retried
	// to avoid a repeated letter before giving up.
	diversityRedraws = 4
)

// Deck is an ordered, shuffled sequence of tiles built from the frequency
// table. A session owns exactly one deck; when the cursor reaches the end
// the deck is reshuffled and the cursor resets. Only the session's own
// event handlers draw from it.
type Deck struct {
	tiles  []Tile
	cursor int
}

// NewDeck builds and shuffles a fresh deck from the frequency table.
func NewDeck() *Deck {
	d := &Deck{}
	for letter, count := range letterCounts {
		for i := 0; i < count; i++ {
			d.tiles = append(d.tiles, NewTile(letter))
		}
	}
	d.shuffle()
	return d
}

func (d *Deck) shuffle() {
	rand.Shuffle(len(d.tiles), func(i, j int) {
		d.tiles[i], d.tiles[j] = d.tiles[j], d.tiles[i]
	})
	d.cursor = 0
}

// Size returns the total number of tiles in the deck.
func (d *Deck) Size() int {
	return len(d.tiles)
}

// Remaining returns how many tiles are left before a reshuffle.
func (d *Deck) Remaining() int {
	return len(d.tiles) - d.cursor
}

// DrawOne returns the next tile, reshuffling when the deck is exhausted.
// It always succeeds.
func (d *Deck) DrawOne() Tile {
	if d.cursor >= len(d.tiles) {
		d.shuffle()
	}
	t := d.tiles[d.cursor]
	d.cursor++
	return t
}

// DrawPrivateSet draws a player's private dice, guaranteeing at least one
// vowel by replacing a random slot with a random vowel tile if none were
// drawn naturally.
func (d *Deck) DrawPrivateSet() []Tile {
	dice := make([]Tile, PrivateDiceCount)
	for i := range dice {
		dice[i] = d.DrawOne()
	}
	return ensureVowel(dice)
}

// DrawCommunitySet draws the shared dice, attempting letter diversity: a
// repeated letter is redrawn a bounded number of times before being
// accepted. The same vowel guarantee as private draws applies.
func (d *Deck) DrawCommunitySet() []Tile {
	dice := make([]Tile, 0, CommunityDiceCount)
	seen := make(map[string]bool)

	for i := 0; i < CommunityDiceCount; i++ {
		tile := d.DrawOne()
		for attempt := 0; attempt < diversityRedraws && seen[tile.Letter]; attempt++ {
			tile = d.DrawOne()
		}
		seen[tile.Letter] = true
		dice = append(dice, tile)
	}

	return ensureVowel(dice)
}

// ensureVowel enforces the minimum-vowel constraint on a drawn set.
func ensureVowel(dice []Tile) []Tile {
	for _, t := range dice {
		if t.IsVowel() {
			return dice
		}
	}
	slot := rand.Intn(len(dice))
	vowel := Vowels[rand.Intn(len(Vowels))]
	dice[slot] = NewTile(vowel)
	return dice
}
