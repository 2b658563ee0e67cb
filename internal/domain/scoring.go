package domain

import (
	"fmt"
	"strings"
)

// Dictionary is the external word oracle. Lookups are case-insensitive.
type Dictionary interface {
	Contains(word string) bool
}

// PrefixDictionary is optionally implemented by dictionaries that can
// answer prefix queries, enabling pruning in the best-word search.
type PrefixDictionary interface {
	HasPrefix(prefix string) bool
}

// ReasonCode explains why a submission failed validation. Validation
// failures are values, never errors.
type ReasonCode string

const (
	ReasonNone           ReasonCode = ""
	ReasonEmpty          ReasonCode = "empty"
	ReasonBadTileRef     ReasonCode = "bad_tile_ref"
	ReasonDuplicateTile  ReasonCode = "duplicate_tile"
	ReasonLettersMismatch ReasonCode = "letters_mismatch"
	ReasonNoPrivateTile  ReasonCode = "no_private_tile"
	ReasonNotAWord       ReasonCode = "not_a_word"
)

// Message returns a human-readable description of the failure.
func (r ReasonCode) Message() string {
	switch r {
	case ReasonEmpty:
		return "no tiles were used"
	case ReasonBadTileRef:
		return "a tile reference points to a nonexistent slot"
	case ReasonDuplicateTile:
		return "the same tile was used more than once"
	case ReasonLettersMismatch:
		return "the tiles do not spell the claimed word"
	case ReasonNoPrivateTile:
		return "at least one private die must be used"
	case ReasonNotAWord:
		return "the word is not in the dictionary"
	}
	return ""
}

// TilePool is a player's full view of available tiles for one round.
type TilePool struct {
	Community []Tile
	Private   []Tile
}

// Resolve maps a tile reference to its tile, reporting whether the slot
// exists.
func (p TilePool) Resolve(ref TileRef) (Tile, bool) {
	switch ref.Origin {
	case OriginCommunity:
		if ref.Index >= 0 && ref.Index < len(p.Community) {
			return p.Community[ref.Index], true
		}
	case OriginPrivate:
		if ref.Index >= 0 && ref.Index < len(p.Private) {
			return p.Private[ref.Index], true
		}
	}
	return Tile{}, false
}

// ScoreResult is the outcome of scoring one ordered tile sequence against
// the round modifier.
type ScoreResult struct {
	Valid     bool       `json:"valid"`
	Reason    ReasonCode `json:"reason,omitempty"`
	Word      string     `json:"word"`
	Score     int        `json:"score"`
	Breakdown string     `json:"breakdown"`
}

func invalidResult(word string, reason ReasonCode) ScoreResult {
	return ScoreResult{Valid: false, Reason: reason, Word: word, Breakdown: reason.Message()}
}

// ScoreSubmission validates an ordered tile sequence against the claimed
// word and scores it under the round modifier. It is pure and
// deterministic: identical inputs always yield identical scores and
// breakdowns.
func ScoreSubmission(pool TilePool, refs []TileRef, word string, mod Modifier, dict Dictionary) ScoreResult {
	word = strings.ToLower(strings.TrimSpace(word))

	if len(refs) == 0 {
		return invalidResult(word, ReasonEmpty)
	}

	tiles := make([]Tile, len(refs))
	used := make(map[TileRef]bool, len(refs))
	hasPrivate := false

	for i, ref := range refs {
		tile, ok := pool.Resolve(ref)
		if !ok {
			return invalidResult(word, ReasonBadTileRef)
		}
		if used[ref] {
			return invalidResult(word, ReasonDuplicateTile)
		}
		used[ref] = true
		tiles[i] = tile
		if ref.Origin == OriginPrivate {
			hasPrivate = true
		}
	}

	assembled := concatLetters(tiles)
	if assembled != word {
		return invalidResult(word, ReasonLettersMismatch)
	}
	if !hasPrivate {
		return invalidResult(word, ReasonNoPrivateTile)
	}
	if !dict.Contains(assembled) {
		return invalidResult(word, ReasonNotAWord)
	}

	return scoreValidated(tiles, refs, assembled, mod)
}

// scoreValidated computes the score of an already-validated sequence.
func scoreValidated(tiles []Tile, refs []TileRef, word string, mod Modifier) ScoreResult {
	base := 0
	var b strings.Builder
	for i, t := range tiles {
		if i > 0 {
			b.WriteString(" ")
		}
		fmt.Fprintf(&b, "%s(%d)", t.Letter, t.Points)
		base += t.Points
	}

	// Locate the modifier tile's letter range, if used.
	modSeq := -1
	modStart := 0
	pos := 0
	for i, ref := range refs {
		if ref.Origin == OriginCommunity && ref.Index == mod.DieIndex {
			modSeq = i
			modStart = pos
		}
		pos += tiles[i].LetterLen()
	}
	totalLetters := pos

	holds := modifierApplies(mod, word, totalLetters, modSeq, modStart, tiles)
	total := base
	fmt.Fprintf(&b, " = %d", base)

	if holds {
		if mod.Multiplier > 1 && modSeq >= 0 && modifierMultiplies(mod.Type) {
			extra := tiles[modSeq].Points * (mod.Multiplier - 1)
			total += extra
			fmt.Fprintf(&b, "; %s: %s x%d (+%d)", mod.Name, tiles[modSeq].Letter, mod.Multiplier, extra)
		}
		if mod.Bonus > 0 && modifierGrantsBonus(mod.Type) {
			total += mod.Bonus
			fmt.Fprintf(&b, "; %s bonus +%d", mod.Name, mod.Bonus)
		}
	}
	if total != base {
		fmt.Fprintf(&b, " -> %d", total)
	}

	return ScoreResult{Valid: true, Word: word, Score: total, Breakdown: b.String()}
}

// modifierMultiplies reports whether a modifier type can apply its
// multiplier to the modifier tile.
func modifierMultiplies(t ModifierType) bool {
	switch t {
	case ModifierMultiply, ModifierPosition, ModifierNeighbor, ModifierLength:
		return true
	}
	return false
}

// modifierGrantsBonus reports whether a modifier type can grant its flat
// bonus.
func modifierGrantsBonus(t ModifierType) bool {
	switch t {
	case ModifierPosition, ModifierLength, ModifierParity, ModifierNeighbor, ModifierComposition, ModifierBonus:
		return true
	}
	return false
}

// modifierApplies evaluates the modifier condition. modSeq is the index of
// the modifier tile within the sequence (-1 when unused) and modStart its
// first letter position.
func modifierApplies(mod Modifier, word string, totalLetters, modSeq, modStart int, tiles []Tile) bool {
	switch mod.Type {
	case ModifierBonus:
		return true
	case ModifierMultiply:
		return modSeq >= 0
	case ModifierLength:
		if mod.ExactLength > 0 {
			return totalLetters == mod.ExactLength
		}
		return totalLetters >= mod.MinLength
	case ModifierParity:
		if mod.Parity == ParityOdd {
			return totalLetters%2 == 1
		}
		return totalLetters%2 == 0
	case ModifierComposition:
		return compositionHolds(mod, word)
	case ModifierPosition:
		if modSeq < 0 {
			return false
		}
		return positionHolds(mod.Position, modStart, tiles[modSeq].LetterLen(), totalLetters)
	case ModifierNeighbor:
		if modSeq < 0 {
			return false
		}
		return neighborHolds(mod.Neighbor, word, modStart, tiles[modSeq].LetterLen())
	}
	return false
}

// positionHolds evaluates a position rule for the letter range
// [start, start+length) inside a word of totalLetters letters.
func positionHolds(rule PositionRule, start, length, total int) bool {
	end := start + length
	switch rule {
	case PositionStart:
		return start == 0
	case PositionEnd:
		return end == total
	case PositionMiddle:
		return start > 0 && end < total
	case PositionSecond:
		return start == 1
	case PositionPenultimate:
		return end-1 == total-2
	case PositionCenter:
		// Exactly centered in an odd-length word.
		return total%2 == 1 && (total-length)%2 == 0 && start == (total-length)/2
	case PositionCenterAny:
		// The range covers a midpoint letter of any-length word.
		mid := (total - 1) / 2
		return start <= mid && mid < end
	}
	return false
}

// neighborHolds checks whether the letter adjacent to the modifier tile's
// letter range is a vowel.
func neighborHolds(rule NeighborRule, word string, start, length int) bool {
	before := start > 0 && isVowelChar(word[start-1])
	after := start+length < len(word) && isVowelChar(word[start+length])
	switch rule {
	case NeighborBefore:
		return before
	case NeighborAfter:
		return after
	case NeighborEither:
		return before || after
	}
	return false
}

// compositionHolds evaluates whole-word vowel/consonant balance rules.
func compositionHolds(mod Modifier, word string) bool {
	vowelCount := 0
	for i := 0; i < len(word); i++ {
		if isVowelChar(word[i]) {
			vowelCount++
		}
	}
	consonantCount := len(word) - vowelCount

	switch mod.Composition {
	case CompositionEqual:
		return vowelCount == consonantCount
	case CompositionVowelMajority:
		return vowelCount > consonantCount
	case CompositionMinVowels:
		return vowelCount >= mod.Threshold
	case CompositionMinConsonants:
		return consonantCount >= mod.Threshold
	}
	return false
}

func concatLetters(tiles []Tile) string {
	var b strings.Builder
	for _, t := range tiles {
		b.WriteString(t.Letter)
	}
	return b.String()
}

// BestWordResult is the outcome of the best-achievable-word search.
type BestWordResult struct {
	Found     bool      `json:"found"`
	Word      string    `json:"word"`
	Refs      []TileRef `json:"refs,omitempty"`
	Score     int       `json:"score"`
	Breakdown string    `json:"breakdown,omitempty"`
}

// BestWord exhaustively searches all orderings of all non-empty tile
// subsets that use at least one private tile and form a dictionary word,
// returning the maximum-scoring result. Ties break toward the longer
// word, then the lexicographically smaller one. The search never mutates
// its inputs and is bounded by the pool size (at most 8 tiles).
func BestWord(pool TilePool, mod Modifier, dict Dictionary) BestWordResult {
	prefixDict, _ := dict.(PrefixDictionary)

	type slot struct {
		tile Tile
		ref  TileRef
	}
	slots := make([]slot, 0, len(pool.Community)+len(pool.Private))
	for i, t := range pool.Community {
		slots = append(slots, slot{t, TileRef{OriginCommunity, i}})
	}
	for i, t := range pool.Private {
		slots = append(slots, slot{t, TileRef{OriginPrivate, i}})
	}

	var best BestWordResult
	refs := make([]TileRef, 0, len(slots))
	tiles := make([]Tile, 0, len(slots))
	var usedBits uint16

	consider := func(word string) {
		if !dict.Contains(word) {
			return
		}
		hasPrivate := false
		for _, r := range refs {
			if r.Origin == OriginPrivate {
				hasPrivate = true
				break
			}
		}
		if !hasPrivate {
			return
		}
		seq := make([]TileRef, len(refs))
		copy(seq, refs)
		res := scoreValidated(tiles, seq, word, mod)
		if betterCandidate(res, word, best) {
			best = BestWordResult{
				Found:     true,
				Word:      word,
				Refs:      seq,
				Score:     res.Score,
				Breakdown: res.Breakdown,
			}
		}
	}

	var walk func(word string)
	walk = func(word string) {
		if word != "" {
			if prefixDict != nil && !prefixDict.HasPrefix(word) {
				return
			}
			consider(word)
		}
		for i := range slots {
			bit := uint16(1) << i
			if usedBits&bit != 0 {
				continue
			}
			usedBits |= bit
			refs = append(refs, slots[i].ref)
			tiles = append(tiles, slots[i].tile)
			walk(word + slots[i].tile.Letter)
			refs = refs[:len(refs)-1]
			tiles = tiles[:len(tiles)-1]
			usedBits &^= bit
		}
	}
	walk("")

	return best
}

// betterCandidate applies the search tie-break: higher score, then longer
// word, then lexicographically smaller word.
func betterCandidate(res ScoreResult, word string, best BestWordResult) bool {
	if !best.Found {
		return true
	}
	if res.Score != best.Score {
		return res.Score > best.Score
	}
	if len(word) != len(best.Word) {
		return len(word) > len(best.Word)
	}
	return word < best.Word
}
