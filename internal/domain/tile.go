package domain

import "strings"

// letterPoints is the single letter-to-points mapping used everywhere
// scoring occurs. Digraph tiles carry both characters and count as two
// letters in positional calculations.
var letterPoints = map[string]int{
	"a": 1, "e": 1, "i": 1, "o": 1, "u": 1,
	"n": 1, "r": 1, "s": 1, "t": 1, "l": 1,
	"d": 2, "g": 2, "b": 2, "c": 2, "m": 2, "p": 2, "h": 2,
	"f": 3, "w": 3, "y": 3, "v": 3, "k": 3,
	"j": 4, "x": 4, "z": 4,
	"qu": 4, "th": 2, "ch": 3, "sh": 3,
}

// letterCounts is the vowel-weighted deck frequency table.
var letterCounts = map[string]int{
	"a": 5, "e": 7, "i": 5, "o": 4, "u": 3,
	"n": 3, "r": 3, "s": 3, "t": 4, "l": 2,
	"d": 2, "g": 2, "b": 2, "c": 2, "m": 2, "p": 2, "h": 2,
	"f": 1, "w": 1, "y": 1, "v": 1, "k": 1,
	"j": 1, "x": 1, "z": 1,
	"qu": 1, "th": 1, "ch": 1, "sh": 1,
}

// Vowels are the letters that satisfy the minimum-vowel draw guarantee.
var Vowels = []string{"a", "e", "i", "o", "u"}

// Tile is a single letter die face. Immutable once drawn; copied by value.
type Tile struct {
	Letter string `json:"letter"`
	Points int    `json:"points"`
}

// NewTile creates a tile for the given letter with its standard point value.
func NewTile(letter string) Tile {
	letter = strings.ToLower(letter)
	return Tile{Letter: letter, Points: letterPoints[letter]}
}

// LetterLen returns how many letter positions this tile occupies in a word.
// Digraphs occupy two.
func (t Tile) LetterLen() int {
	return len(t.Letter)
}

// IsVowel reports whether the tile is a single-vowel tile. Digraphs are
// never vowel tiles even when they contain one.
func (t Tile) IsVowel() bool {
	return len(t.Letter) == 1 && strings.Contains("aeiou", t.Letter)
}

// LetterPoints returns the point value for a letter, or 0 if unknown.
func LetterPoints(letter string) int {
	return letterPoints[strings.ToLower(letter)]
}

// isVowelChar reports whether a single character is a vowel.
func isVowelChar(c byte) bool {
	switch c {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}

// OriginKind tags which dice set a tile reference points into.
type OriginKind string

const (
	OriginCommunity OriginKind = "community"
	OriginPrivate   OriginKind = "private"
)

// TileRef identifies one tile slot in a player's available pool.
type TileRef struct {
	Origin OriginKind `json:"origin"`
	Index  int        `json:"index"`
}
