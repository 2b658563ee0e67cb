package ws

import (
	"time"

	"lexidice/internal/domain"
)

// MessageType represents the type of WebSocket message
type MessageType string

// Client → Server message types
const (
	MsgJoin           MessageType = "join"
	MsgUpdateSettings MessageType = "update_settings"
	MsgAddBot         MessageType = "add_bot"
	MsgRemoveBot      MessageType = "remove_bot"
	MsgStartGame      MessageType = "start_game"
	MsgSubmitWord     MessageType = "submit_word"
	MsgNextRound      MessageType = "next_round"
	MsgFinalResults   MessageType = "final_results"
	MsgEndEarly       MessageType = "end_early"
	MsgPlayAgain      MessageType = "play_again"
	MsgPing           MessageType = "ping"
)

// Server → Client message types
const (
	MsgConnected MessageType = "connected"
	MsgError     MessageType = "error"
	MsgPong      MessageType = "pong"
)

// ClientMessage represents a message from client to server
type ClientMessage struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// ServerMessage represents a message from server to client
type ServerMessage struct {
	Type      MessageType `json:"type"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp string      `json:"timestamp"`
}

// NewServerMessage creates a new server message with current timestamp
func NewServerMessage(msgType MessageType, payload interface{}) *ServerMessage {
	return &ServerMessage{
		Type:      msgType,
		Payload:   payload,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// Client message payloads

// JoinPayload is the payload for the join message
type JoinPayload struct {
	Name string `json:"name"`
}

// UpdateSettingsPayload is the payload for update_settings
type UpdateSettingsPayload struct {
	RoundCount           int `json:"roundCount"`
	RoundDurationSeconds int `json:"roundDurationSeconds"`
}

// AddBotPayload is the payload for add_bot
type AddBotPayload struct {
	Name string `json:"name"`
}

// RemoveBotPayload is the payload for remove_bot
type RemoveBotPayload struct {
	BotID string `json:"botId"`
}

// SubmitWordPayload is the payload for submit_word
type SubmitWordPayload struct {
	Word  string           `json:"word"`
	Tiles []domain.TileRef `json:"tiles"`
}

// Server message payloads

// ConnectedPayload is the payload for the connected message
type ConnectedPayload struct {
	PlayerID     string                 `json:"playerId"`
	SessionCode  string                 `json:"sessionCode"`
	SessionState map[string]interface{} `json:"sessionState"`
}

// ErrorPayload is the payload for error messages
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes
const (
	ErrCodeInvalidMessage    = "INVALID_MESSAGE"
	ErrCodeSessionNotFound   = "SESSION_NOT_FOUND"
	ErrCodeSessionFull       = "SESSION_FULL"
	ErrCodeNameTaken         = "NAME_TAKEN"
	ErrCodeInvalidAction     = "INVALID_ACTION"
	ErrCodeInvalidSettings   = "INVALID_SETTINGS"
	ErrCodeNotHost           = "NOT_HOST"
	ErrCodeRoundOver         = "ROUND_OVER"
	ErrCodeInternalError     = "INTERNAL_ERROR"
)
