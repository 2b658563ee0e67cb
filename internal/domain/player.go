package domain

import "time"

// ConnectionStatus represents a player's connection state
type ConnectionStatus string

const (
	StatusConnected    ConnectionStatus = "CONNECTED"
	StatusDisconnected ConnectionStatus = "DISCONNECTED"
)

// Player represents a player in a session. The ID is stable across
// reconnects; the transient connection handle lives in the app layer.
type Player struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	Dice           []Tile           `json:"dice"`
	TotalPoints    int              `json:"totalPoints"`
	IsHost         bool             `json:"isHost"`
	IsBot          bool             `json:"isBot"`
	Status         ConnectionStatus `json:"status"`
	JoinedAt       time.Time        `json:"joinedAt"`
	DisconnectedAt time.Time        `json:"disconnectedAt,omitempty"`
}

// NewPlayer creates a new connected human player.
func NewPlayer(id, name string) *Player {
	return &Player{
		ID:       id,
		Name:     name,
		Status:   StatusConnected,
		JoinedAt: time.Now(),
	}
}

// NewBotPlayer creates an automated player. Bots have no connection and
// never disconnect.
func NewBotPlayer(id, name string) *Player {
	p := NewPlayer(id, name)
	p.IsBot = true
	return p
}

// IsConnected returns true if the player is currently connected. Bots
// always count as connected.
func (p *Player) IsConnected() bool {
	return p.Status == StatusConnected
}

// Disconnect marks the player as disconnected and records when.
func (p *Player) Disconnect() {
	p.Status = StatusDisconnected
	p.DisconnectedAt = time.Now()
}

// Reconnect marks the player as connected again.
func (p *Player) Reconnect() {
	p.Status = StatusConnected
	p.DisconnectedAt = time.Time{}
}

// ResetForNewGame clears cumulative state when a fresh game starts.
func (p *Player) ResetForNewGame() {
	p.TotalPoints = 0
	p.Dice = nil
}

// PlayerInfo is the broadcast-safe view of player data (dice are private).
type PlayerInfo struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	TotalPoints int              `json:"totalPoints"`
	IsHost      bool             `json:"isHost"`
	IsBot       bool             `json:"isBot"`
	Status      ConnectionStatus `json:"status"`
}

// ToInfo converts a Player to PlayerInfo (without dice).
func (p *Player) ToInfo() PlayerInfo {
	return PlayerInfo{
		ID:          p.ID,
		Name:        p.Name,
		TotalPoints: p.TotalPoints,
		IsHost:      p.IsHost,
		IsBot:       p.IsBot,
		Status:      p.Status,
	}
}
