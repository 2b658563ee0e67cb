package ws

import (
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"lexidice/internal/app"
	"lexidice/internal/domain"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192

	// Size of the send channel buffer
	sendBufferSize = 256
)

// Client represents a WebSocket client connection
type Client struct {
	conn     *websocket.Conn
	session  *app.GameSession
	playerID string
	send     chan []byte
	done     chan struct{}
	logger   *slog.Logger
	mu       sync.Mutex
	closed   bool
}

// NewClient creates a new WebSocket client
func NewClient(conn *websocket.Conn, session *app.GameSession, playerID string, logger *slog.Logger) *Client {
	return &Client{
		conn:     conn,
		session:  session,
		playerID: playerID,
		send:     make(chan []byte, sendBufferSize),
		done:     make(chan struct{}),
		logger:   logger,
	}
}

// GetPlayerID returns the player ID for this client
func (c *Client) GetPlayerID() string {
	return c.playerID
}

// Send implements app.ClientConnection interface
func (c *Client) Send(message interface{}) error {
	data, err := json.Marshal(message)
	if err != nil {
		// An unserializable outbound payload is a structural bug; log
		// loudly and fail this send only.
		c.logger.Error("failed to marshal outbound payload", "playerID", c.playerID, "error", err)
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	select {
	case c.send <- data:
		return nil
	default:
		// Buffer full, message dropped
		c.logger.Warn("send buffer full, message dropped", "playerID", c.playerID)
		return nil
	}
}

// Close implements app.ClientConnection interface
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	c.closed = true
	close(c.done)
	return c.conn.Close()
}

// Run starts the client's read and write pumps
func (c *Client) Run() {
	go c.writePump()
	c.readPump()
}

// readPump pumps messages from the WebSocket connection
func (c *Client) readPump() {
	defer func() {
		c.session.UnregisterClient(c.playerID)
		c.session.DisconnectPlayer(c.playerID)
		c.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Debug("websocket read error", "error", err)
			}
			break
		}

		c.handleMessage(message)
	}
}

// writePump pumps messages from the send channel to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			return
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued messages to the current websocket message
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleMessage processes an incoming message from the client
func (c *Client) handleMessage(data []byte) {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		c.sendError(ErrCodeInvalidMessage, "Invalid message format")
		return
	}

	switch msg.Type {
	case MsgJoin:
		c.handleJoin(msg.Payload)
	case MsgUpdateSettings:
		c.handleUpdateSettings(msg.Payload)
	case MsgAddBot:
		c.handleAddBot(msg.Payload)
	case MsgRemoveBot:
		c.handleRemoveBot(msg.Payload)
	case MsgStartGame:
		c.handleStartGame()
	case MsgSubmitWord:
		c.handleSubmitWord(msg.Payload)
	case MsgNextRound:
		c.handleNextRound()
	case MsgFinalResults:
		c.handleFinalResults()
	case MsgEndEarly, MsgPlayAgain:
		c.handleReset()
	case MsgPing:
		c.sendPong()
	default:
		c.sendError(ErrCodeInvalidMessage, "Unknown message type")
	}
}

// decodePayload re-marshals a loosely-typed payload into a typed struct.
func decodePayload(payload interface{}, v interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// handleJoin handles a join message
func (c *Client) handleJoin(payload interface{}) {
	var p JoinPayload
	if err := decodePayload(payload, &p); err != nil || p.Name == "" {
		c.sendError(ErrCodeInvalidMessage, "Name is required")
		return
	}

	_, err := c.session.AddPlayer(c.playerID, p.Name)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSessionFull):
			c.sendError(ErrCodeSessionFull, "Session is full")
		case errors.Is(err, domain.ErrNameTaken):
			c.sendError(ErrCodeNameTaken, "That name is already taken")
		case errors.Is(err, domain.ErrGameInProgress):
			c.sendError(ErrCodeInvalidAction, "Game has already started")
		default:
			c.sendError(ErrCodeInternalError, err.Error())
		}
		return
	}

	c.sendConnected()
}

// handleUpdateSettings handles an update_settings message
func (c *Client) handleUpdateSettings(payload interface{}) {
	var p UpdateSettingsPayload
	if err := decodePayload(payload, &p); err != nil {
		c.sendError(ErrCodeInvalidMessage, "Invalid payload")
		return
	}

	err := c.session.UpdateSettings(c.playerID, domain.Settings{
		RoundCount:           p.RoundCount,
		RoundDurationSeconds: p.RoundDurationSeconds,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotHost):
			c.sendError(ErrCodeNotHost, "Only the host can change settings")
		case errors.Is(err, domain.ErrInvalidSettings):
			c.sendError(ErrCodeInvalidSettings, "Settings out of allowed range")
		case errors.Is(err, domain.ErrInvalidStatus):
			c.sendError(ErrCodeInvalidAction, "Settings can only change in the lobby")
		default:
			c.sendError(ErrCodeInternalError, err.Error())
		}
	}
}

// handleAddBot handles an add_bot message
func (c *Client) handleAddBot(payload interface{}) {
	var p AddBotPayload
	decodePayload(payload, &p)

	_, err := c.session.AddBot(c.playerID, p.Name)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotHost):
			c.sendError(ErrCodeNotHost, "Only the host can add bots")
		case errors.Is(err, domain.ErrSessionFull):
			c.sendError(ErrCodeSessionFull, "Session is full")
		case errors.Is(err, domain.ErrGameInProgress):
			c.sendError(ErrCodeInvalidAction, "Bots can only be added in the lobby")
		default:
			c.sendError(ErrCodeInternalError, err.Error())
		}
	}
}

// handleRemoveBot handles a remove_bot message
func (c *Client) handleRemoveBot(payload interface{}) {
	var p RemoveBotPayload
	if err := decodePayload(payload, &p); err != nil || p.BotID == "" {
		c.sendError(ErrCodeInvalidMessage, "Bot ID is required")
		return
	}

	if err := c.session.RemoveBot(c.playerID, p.BotID); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotHost):
			c.sendError(ErrCodeNotHost, "Only the host can remove bots")
		case errors.Is(err, domain.ErrNotABot), errors.Is(err, domain.ErrPlayerNotFound):
			c.sendError(ErrCodeInvalidAction, "No such bot")
		default:
			c.sendError(ErrCodeInternalError, err.Error())
		}
	}
}

// handleStartGame handles a start_game message
func (c *Client) handleStartGame() {
	if err := c.session.StartGame(c.playerID); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotHost):
			c.sendError(ErrCodeNotHost, "Only the host can start the game")
		case errors.Is(err, domain.ErrNoPlayers):
			c.sendError(ErrCodeInvalidAction, "At least one player is required")
		case errors.Is(err, domain.ErrInvalidStatus):
			c.sendError(ErrCodeInvalidAction, "Game cannot start now")
		default:
			c.sendError(ErrCodeInternalError, err.Error())
		}
	}
}

// handleSubmitWord handles a submit_word message
func (c *Client) handleSubmitWord(payload interface{}) {
	var p SubmitWordPayload
	if err := decodePayload(payload, &p); err != nil || p.Word == "" {
		c.sendError(ErrCodeInvalidMessage, "Word and tiles are required")
		return
	}

	if err := c.session.SubmitWord(c.playerID, p.Word, p.Tiles); err != nil {
		switch {
		case errors.Is(err, domain.ErrRoundOver):
			c.sendError(ErrCodeRoundOver, "Round already ended")
		case errors.Is(err, domain.ErrInvalidStatus):
			c.sendError(ErrCodeInvalidAction, "Cannot submit now")
		default:
			c.sendError(ErrCodeInternalError, err.Error())
		}
	}
}

// handleNextRound handles a next_round message
func (c *Client) handleNextRound() {
	if err := c.session.NextRound(c.playerID); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotHost):
			c.sendError(ErrCodeNotHost, "Only the host can advance rounds")
		case errors.Is(err, domain.ErrRoundInProgress):
			c.sendError(ErrCodeInvalidAction, "Round is still in progress")
		case errors.Is(err, domain.ErrNoMoreRounds):
			c.sendError(ErrCodeInvalidAction, "No rounds remaining")
		case errors.Is(err, domain.ErrInvalidStatus):
			c.sendError(ErrCodeInvalidAction, "Cannot advance now")
		default:
			c.sendError(ErrCodeInternalError, err.Error())
		}
	}
}

// handleFinalResults handles a final_results message
func (c *Client) handleFinalResults() {
	if err := c.session.FinalResults(c.playerID); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotHost):
			c.sendError(ErrCodeNotHost, "Only the host can end the game")
		case errors.Is(err, domain.ErrRoundsRemaining), errors.Is(err, domain.ErrRoundInProgress):
			c.sendError(ErrCodeInvalidAction, "The game is not over yet")
		case errors.Is(err, domain.ErrInvalidStatus):
			c.sendError(ErrCodeInvalidAction, "Cannot show results now")
		default:
			c.sendError(ErrCodeInternalError, err.Error())
		}
	}
}

// handleReset handles end_early and play_again messages
func (c *Client) handleReset() {
	if err := c.session.ResetSession(c.playerID); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotHost):
			c.sendError(ErrCodeNotHost, "Only the host can reset the session")
		default:
			c.sendError(ErrCodeInternalError, err.Error())
		}
	}
}

// sendConnected sends the connected message to the client
func (c *Client) sendConnected() {
	payload := &ConnectedPayload{
		PlayerID:     c.playerID,
		SessionCode:  c.session.Code(),
		SessionState: c.session.StateFor(c.playerID),
	}

	msg := NewServerMessage(MsgConnected, payload)
	c.Send(msg)
}

// sendError sends an error message to the client
func (c *Client) sendError(code, message string) {
	payload := &ErrorPayload{
		Code:    code,
		Message: message,
	}

	msg := NewServerMessage(MsgError, payload)
	c.Send(msg)
}

// sendPong sends a pong message in response to ping
func (c *Client) sendPong() {
	msg := NewServerMessage(MsgPong, nil)
	c.Send(msg)
}
