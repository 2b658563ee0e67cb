package domain

import (
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"
)

// Settings limits and defaults.
const (
	MinRoundCount      = 3
	MaxRoundCount      = 20
	MinRoundDuration   = 30
	MaxRoundDuration   = 600
	MaxPlayers         = 8
	DefaultRoundCount  = 5
	DefaultRoundLength = 90
)

// Settings holds the host-configurable game parameters.
type Settings struct {
	RoundCount           int `json:"roundCount"`
	RoundDurationSeconds int `json:"roundDurationSeconds"`
}

// DefaultSettings returns the default game settings.
func DefaultSettings() Settings {
	return Settings{
		RoundCount:           DefaultRoundCount,
		RoundDurationSeconds: DefaultRoundLength,
	}
}

// Validate checks that the settings are within the allowed ranges.
func (s Settings) Validate() error {
	if s.RoundCount < MinRoundCount || s.RoundCount > MaxRoundCount {
		return ErrInvalidSettings
	}
	if s.RoundDurationSeconds < MinRoundDuration || s.RoundDurationSeconds > MaxRoundDuration {
		return ErrInvalidSettings
	}
	return nil
}

// Game is one session's domain state: membership, round progression,
// submissions, and history. All mutation happens through the owning
// session's serialized handlers; Game itself does no locking.
type Game struct {
	Code          string                 `json:"code"`
	Status        Status                 `json:"status"`
	Settings      Settings               `json:"settings"`
	Players       map[string]*Player     `json:"players"`
	RoundNumber   int                    `json:"roundNumber"`
	CommunityDice []Tile                 `json:"communityDice"`
	Modifier      Modifier               `json:"modifier"`
	Submissions   map[string]*Submission `json:"submissions"`
	Revealed      bool                   `json:"revealed"`
	RoundHistory  []*RoundSummary        `json:"roundHistory"`
	CreatedAt     time.Time              `json:"createdAt"`

	// joinOrder preserves insertion order for host migration and the
	// deterministic final-standings tie-break.
	joinOrder []string
}

// NewGame creates a new game with the given session code.
func NewGame(code string) *Game {
	return &Game{
		Code:        code,
		Status:      StatusWaiting,
		Settings:    DefaultSettings(),
		Players:     make(map[string]*Player),
		Submissions: make(map[string]*Submission),
		CreatedAt:   time.Now(),
	}
}

// AddPlayer adds a human player while the session is waiting. The first
// player to join becomes the host.
func (g *Game) AddPlayer(playerID, name string) (*Player, error) {
	return g.addPlayer(NewPlayer(playerID, name))
}

// AddBot adds an automated player while the session is waiting.
func (g *Game) AddBot(botID, name string) (*Player, error) {
	return g.addPlayer(NewBotPlayer(botID, name))
}

func (g *Game) addPlayer(p *Player) (*Player, error) {
	if g.Status != StatusWaiting {
		return nil, ErrGameInProgress
	}
	if len(g.Players) >= MaxPlayers {
		return nil, ErrSessionFull
	}
	for _, other := range g.Players {
		if strings.EqualFold(other.Name, p.Name) {
			return nil, ErrNameTaken
		}
	}

	g.Players[p.ID] = p
	g.joinOrder = append(g.joinOrder, p.ID)
	if len(g.Players) == 1 {
		p.IsHost = true
	}
	return p, nil
}

// RemovePlayer removes a player. If the host leaves, host status passes to
// the first connected player in join order.
func (g *Game) RemovePlayer(playerID string) error {
	player, ok := g.Players[playerID]
	if !ok {
		return ErrPlayerNotFound
	}

	delete(g.Players, playerID)
	delete(g.Submissions, playerID)
	g.joinOrder = lo.Without(g.joinOrder, playerID)

	if player.IsHost {
		g.promoteNextHost()
	}
	return nil
}

// promoteNextHost hands host status to the first connected player in join
// order, falling back to any remaining player.
func (g *Game) promoteNextHost() {
	var fallback *Player
	for _, id := range g.joinOrder {
		p, ok := g.Players[id]
		if !ok {
			continue
		}
		if fallback == nil {
			fallback = p
		}
		if p.IsConnected() {
			p.IsHost = true
			return
		}
	}
	if fallback != nil {
		fallback.IsHost = true
	}
}

// MigrateHost demotes a disconnected host and promotes the first other
// connected player in join order. Reports false when no connected player
// exists to take over.
func (g *Game) MigrateHost() (*Player, bool) {
	host := g.Host()
	for _, id := range g.joinOrder {
		p, ok := g.Players[id]
		if !ok || p == host || !p.IsConnected() {
			continue
		}
		if host != nil {
			host.IsHost = false
		}
		p.IsHost = true
		return p, true
	}
	return nil, false
}

// GetPlayer returns a player by ID.
func (g *Game) GetPlayer(playerID string) (*Player, error) {
	player, ok := g.Players[playerID]
	if !ok {
		return nil, ErrPlayerNotFound
	}
	return player, nil
}

// Host returns the current host, or nil if the session is empty.
func (g *Game) Host() *Player {
	for _, p := range g.Players {
		if p.IsHost {
			return p
		}
	}
	return nil
}

// IsHost checks if the given player is the host.
func (g *Game) IsHost(playerID string) bool {
	p, ok := g.Players[playerID]
	return ok && p.IsHost
}

// PlayersInJoinOrder returns players in insertion order.
func (g *Game) PlayersInJoinOrder() []*Player {
	players := make([]*Player, 0, len(g.Players))
	for _, id := range g.joinOrder {
		if p, ok := g.Players[id]; ok {
			players = append(players, p)
		}
	}
	return players
}

// ConnectedCount returns the number of connected human players. Bots do
// not keep a session alive.
func (g *Game) ConnectedCount() int {
	return lo.CountBy(lo.Values(g.Players), func(p *Player) bool {
		return !p.IsBot && p.IsConnected()
	})
}

// UpdateSettings replaces the settings while the session is waiting.
func (g *Game) UpdateSettings(s Settings) error {
	if g.Status != StatusWaiting {
		return ErrInvalidStatus
	}
	if err := s.Validate(); err != nil {
		return err
	}
	g.Settings = s
	return nil
}

// Start moves the session from waiting to playing, resetting cumulative
// points and the round counter.
func (g *Game) Start() error {
	if g.Status != StatusWaiting {
		return ErrInvalidStatus
	}
	if len(g.Players) == 0 {
		return ErrNoPlayers
	}

	for _, p := range g.Players {
		p.ResetForNewGame()
	}
	g.RoundNumber = 0
	g.RoundHistory = g.RoundHistory[:0]
	g.Status = StatusPlaying
	return nil
}

// StartRound draws fresh dice for all players and a fresh modifier,
// clears submissions, and advances the round counter.
func (g *Game) StartRound(deck *Deck) error {
	if g.Status != StatusPlaying {
		return ErrInvalidStatus
	}
	if g.RoundNumber >= g.Settings.RoundCount {
		return ErrNoMoreRounds
	}
	if g.RoundNumber > 0 && !g.Revealed {
		return ErrRoundInProgress
	}

	g.RoundNumber++
	g.CommunityDice = deck.DrawCommunitySet()
	for _, p := range g.Players {
		p.Dice = deck.DrawPrivateSet()
	}
	g.Modifier = RandomModifier()
	g.Submissions = make(map[string]*Submission)
	g.Revealed = false
	return nil
}

// PoolFor returns the tile pool visible to one player this round.
func (g *Game) PoolFor(playerID string) (TilePool, error) {
	p, err := g.GetPlayer(playerID)
	if err != nil {
		return TilePool{}, err
	}
	return TilePool{Community: g.CommunityDice, Private: p.Dice}, nil
}

// RecordSubmission validates and scores a word for the current round. A
// resubmission before reveal overwrites the prior one; the second return
// value reports whether this was the player's first submission this round.
func (g *Game) RecordSubmission(playerID, word string, refs []TileRef, dict Dictionary) (*Submission, bool, error) {
	if g.Status != StatusPlaying || g.RoundNumber == 0 {
		return nil, false, ErrInvalidStatus
	}
	if g.Revealed {
		return nil, false, ErrRoundOver
	}

	pool, err := g.PoolFor(playerID)
	if err != nil {
		return nil, false, err
	}
	player := g.Players[playerID]

	res := ScoreSubmission(pool, refs, word, g.Modifier, dict)
	_, resubmitted := g.Submissions[playerID]
	sub := NewSubmission(playerID, player.Name, refs, res)
	g.Submissions[playerID] = sub

	return sub, !resubmitted, nil
}

// AllSubmitted reports whether every current player has a submission
// recorded for this round.
func (g *Game) AllSubmitted() bool {
	if len(g.Players) == 0 {
		return false
	}
	for id := range g.Players {
		if _, ok := g.Submissions[id]; !ok {
			return false
		}
	}
	return true
}

// Reveal ends the current round: ranks submissions, awards placement
// points exactly once, and appends the round summary to history. Calling
// it again for the same round returns the existing summary.
func (g *Game) Reveal() *RoundSummary {
	if g.Revealed {
		if len(g.RoundHistory) > 0 {
			return g.RoundHistory[len(g.RoundHistory)-1]
		}
		return nil
	}
	g.Revealed = true

	placements := RankSubmissions(lo.Values(g.Submissions))

	summary := &RoundSummary{
		Number:        g.RoundNumber,
		CommunityDice: append([]Tile(nil), g.CommunityDice...),
		Modifier:      g.Modifier,
		RevealedAt:    time.Now(),
	}

	for _, p := range g.PlayersInJoinOrder() {
		result := PlayerRoundResult{
			PlayerID: p.ID,
			Name:     p.Name,
			Dice:     append([]Tile(nil), p.Dice...),
		}
		if sub, ok := g.Submissions[p.ID]; ok {
			result.Word = sub.Word
			result.Score = sub.Score
			result.Breakdown = sub.Breakdown
			result.IsValid = sub.IsValid
			result.Reason = sub.Reason
		} else {
			result.NoSubmission = true
		}
		if placement, ok := placements[p.ID]; ok {
			place := placement.Place
			result.Place = &place
			result.PointsAwarded = placement.Points
			p.TotalPoints += placement.Points
		}
		summary.Results = append(summary.Results, result)
	}

	g.RoundHistory = append(g.RoundHistory, summary)
	return summary
}

// IsLastRound reports whether the just-played round was the final one.
func (g *Game) IsLastRound() bool {
	return g.RoundNumber >= g.Settings.RoundCount
}

// Finish moves the session to finished once the last round is revealed.
func (g *Game) Finish() error {
	if g.Status != StatusPlaying {
		return ErrInvalidStatus
	}
	if !g.Revealed && g.RoundNumber > 0 {
		return ErrRoundInProgress
	}
	if !g.IsLastRound() {
		return ErrRoundsRemaining
	}
	g.Status = StatusFinished
	return nil
}

// FinalStandings computes final placements from accumulated points. Ties
// break by join order (stable sort).
func (g *Game) FinalStandings() []StandingEntry {
	players := g.PlayersInJoinOrder()
	sort.SliceStable(players, func(i, j int) bool {
		return players[i].TotalPoints > players[j].TotalPoints
	})

	standings := make([]StandingEntry, 0, len(players))
	for i, p := range players {
		rank := i + 1
		if i > 0 && p.TotalPoints == players[i-1].TotalPoints {
			rank = standings[i-1].Rank
		}
		standings = append(standings, StandingEntry{
			PlayerID:    p.ID,
			Name:        p.Name,
			TotalPoints: p.TotalPoints,
			Rank:        rank,
		})
	}
	return standings
}

// ResetForLobby performs a full reset back to the waiting state ("play
// again" or "end early"), clearing round history, points, and dice.
func (g *Game) ResetForLobby() {
	g.Status = StatusWaiting
	g.RoundNumber = 0
	g.CommunityDice = nil
	g.Modifier = Modifier{}
	g.Submissions = make(map[string]*Submission)
	g.Revealed = false
	g.RoundHistory = nil
	for _, p := range g.Players {
		p.ResetForNewGame()
	}
}

// LobbyState returns the broadcast view of the lobby.
func (g *Game) LobbyState() *LobbyUpdatePayload {
	players := make([]PlayerInfo, 0, len(g.Players))
	for _, p := range g.PlayersInJoinOrder() {
		players = append(players, p.ToInfo())
	}
	hostID := ""
	if h := g.Host(); h != nil {
		hostID = h.ID
	}
	return &LobbyUpdatePayload{
		Players:  players,
		HostID:   hostID,
		Settings: g.Settings,
		Status:   g.Status,
		CanStart: g.Status == StatusWaiting && len(g.Players) > 0,
	}
}
