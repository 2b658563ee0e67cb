package domain

import (
	"fmt"
	"math/rand"
)

// ModifierType classifies how a round modifier's condition is evaluated.
type ModifierType string

const (
	ModifierMultiply    ModifierType = "multiply"
	ModifierPosition    ModifierType = "position"
	ModifierLength      ModifierType = "length"
	ModifierParity      ModifierType = "parity"
	ModifierNeighbor    ModifierType = "neighbor"
	ModifierComposition ModifierType = "composition"
	ModifierBonus       ModifierType = "bonus"
)

// PositionRule constrains where the modifier tile's letter range must sit
// within the word. All rules are evaluated over letter positions, not tile
// positions, so digraphs occupy two slots.
type PositionRule string

const (
	PositionStart       PositionRule = "start"
	PositionEnd         PositionRule = "end"
	PositionMiddle      PositionRule = "middle"
	PositionSecond      PositionRule = "second"
	PositionPenultimate PositionRule = "penultimate"
	PositionCenter      PositionRule = "center"
	PositionCenterAny   PositionRule = "centerAny"
)

// ParityRule constrains the total letter count's parity.
type ParityRule string

const (
	ParityOdd  ParityRule = "odd"
	ParityEven ParityRule = "even"
)

// NeighborRule constrains which adjacent letter must be a vowel.
type NeighborRule string

const (
	NeighborBefore NeighborRule = "before"
	NeighborAfter  NeighborRule = "after"
	NeighborEither NeighborRule = "either"
)

// CompositionRule constrains the vowel/consonant balance of the whole word.
type CompositionRule string

const (
	CompositionEqual         CompositionRule = "equalCounts"
	CompositionVowelMajority CompositionRule = "vowelMajority"
	CompositionMinVowels     CompositionRule = "minVowels"
	CompositionMinConsonants CompositionRule = "minConsonants"
)

// Modifier is the single randomized scoring rule attached to one community
// die slot for the duration of a round. Immutable for the round.
type Modifier struct {
	Name      string       `json:"name"`
	ShortName string       `json:"shortName"`
	Type      ModifierType `json:"type"`
	DieIndex  int          `json:"dieIndex"`

	// Multiplier applies to the modifier tile's points when the condition
	// holds and the tile is used. Zero or one means no multiplier.
	Multiplier int `json:"multiplier,omitempty"`

	// Bonus is a flat score added when the condition holds.
	Bonus int `json:"bonus,omitempty"`

	Position    PositionRule    `json:"position,omitempty"`
	MinLength   int             `json:"minLength,omitempty"`
	ExactLength int             `json:"exactLength,omitempty"`
	Parity      ParityRule      `json:"parity,omitempty"`
	Neighbor    NeighborRule    `json:"neighbor,omitempty"`
	Composition CompositionRule `json:"composition,omitempty"`
	Threshold   int             `json:"threshold,omitempty"`
}

// modifierCatalog holds every modifier a round can draw. DieIndex is
// assigned at draw time.
var modifierCatalog = []Modifier{
	{Name: "Double Trouble", ShortName: "x2", Type: ModifierMultiply, Multiplier: 2},
	{Name: "Triple Threat", ShortName: "x3", Type: ModifierMultiply, Multiplier: 3},
	{Name: "Opening Act", ShortName: "1st", Type: ModifierPosition, Position: PositionStart, Multiplier: 3},
	{Name: "Grand Finale", ShortName: "end", Type: ModifierPosition, Position: PositionEnd, Multiplier: 3},
	{Name: "Filling", ShortName: "mid", Type: ModifierPosition, Position: PositionMiddle, Multiplier: 2, Bonus: 2},
	{Name: "Runner-Up", ShortName: "2nd", Type: ModifierPosition, Position: PositionSecond, Multiplier: 3},
	{Name: "Almost Famous", ShortName: "pen", Type: ModifierPosition, Position: PositionPenultimate, Multiplier: 3},
	{Name: "Dead Center", ShortName: "ctr", Type: ModifierPosition, Position: PositionCenter, Multiplier: 4},
	{Name: "Heart of It", ShortName: "hrt", Type: ModifierPosition, Position: PositionCenterAny, Multiplier: 2, Bonus: 2},
	{Name: "Long Haul", ShortName: "6+", Type: ModifierLength, MinLength: 6, Bonus: 5, Multiplier: 2},
	{Name: "Marathon", ShortName: "7+", Type: ModifierLength, MinLength: 7, Bonus: 8, Multiplier: 2},
	{Name: "Four on the Floor", ShortName: "=4", Type: ModifierLength, ExactLength: 4, Bonus: 3, Multiplier: 3},
	{Name: "High Five", ShortName: "=5", Type: ModifierLength, ExactLength: 5, Bonus: 4, Multiplier: 2},
	{Name: "Odd One Out", ShortName: "odd", Type: ModifierParity, Parity: ParityOdd, Bonus: 4},
	{Name: "Even Steven", ShortName: "evn", Type: ModifierParity, Parity: ParityEven, Bonus: 4},
	{Name: "Good Neighbor", ShortName: "ngb", Type: ModifierNeighbor, Neighbor: NeighborEither, Multiplier: 2, Bonus: 2},
	{Name: "Lead-In", ShortName: "pre", Type: ModifierNeighbor, Neighbor: NeighborBefore, Multiplier: 3},
	{Name: "Follow-Through", ShortName: "nxt", Type: ModifierNeighbor, Neighbor: NeighborAfter, Multiplier: 3},
	{Name: "Perfect Balance", ShortName: "bal", Type: ModifierComposition, Composition: CompositionEqual, Bonus: 6},
	{Name: "Vowel Movement", ShortName: "vwl", Type: ModifierComposition, Composition: CompositionVowelMajority, Bonus: 6},
	{Name: "Three Apples", ShortName: "3v", Type: ModifierComposition, Composition: CompositionMinVowels, Threshold: 3, Bonus: 5},
	{Name: "Crunchy", ShortName: "4c", Type: ModifierComposition, Composition: CompositionMinConsonants, Threshold: 4, Bonus: 5},
	{Name: "Free Lunch", ShortName: "+3", Type: ModifierBonus, Bonus: 3},
	{Name: "Jackpot", ShortName: "+5", Type: ModifierBonus, Bonus: 5},
}

// RandomModifier picks a modifier from the catalog and attaches it to a
// random community die slot.
func RandomModifier() Modifier {
	m := modifierCatalog[rand.Intn(len(modifierCatalog))]
	m.DieIndex = rand.Intn(CommunityDiceCount)
	return m
}

// Describe renders a human-readable rule description, used in broadcasts
// and in word-proposal oracle prompts.
func (m Modifier) Describe() string {
	target := fmt.Sprintf("the community die #%d", m.DieIndex+1)
	switch m.Type {
	case ModifierMultiply:
		return fmt.Sprintf("%s: use %s to multiply its points by %d", m.Name, target, m.Multiplier)
	case ModifierPosition:
		return fmt.Sprintf("%s: %s scores x%d when its letters sit at position %q (letter positions, +%d bonus)",
			m.Name, target, m.Multiplier, m.Position, m.Bonus)
	case ModifierLength:
		if m.ExactLength > 0 {
			return fmt.Sprintf("%s: a word of exactly %d letters earns +%d, and %s scores x%d",
				m.Name, m.ExactLength, m.Bonus, target, m.Multiplier)
		}
		return fmt.Sprintf("%s: a word of at least %d letters earns +%d, and %s scores x%d",
			m.Name, m.MinLength, m.Bonus, target, m.Multiplier)
	case ModifierParity:
		return fmt.Sprintf("%s: a word with an %s letter count earns +%d", m.Name, m.Parity, m.Bonus)
	case ModifierNeighbor:
		return fmt.Sprintf("%s: %s scores x%d when the letter %s it is a vowel (+%d bonus)",
			m.Name, target, m.Multiplier, m.Neighbor, m.Bonus)
	case ModifierComposition:
		return fmt.Sprintf("%s: vowel/consonant balance rule %q (threshold %d) earns +%d",
			m.Name, m.Composition, m.Threshold, m.Bonus)
	case ModifierBonus:
		return fmt.Sprintf("%s: every valid word earns +%d", m.Name, m.Bonus)
	}
	return m.Name
}
