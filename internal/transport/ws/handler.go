package ws

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"lexidice/internal/app"
	"lexidice/internal/domain"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins in development
		// TODO: restrict origins when deploying behind a fixed frontend host
		return true
	},
}

// Handler handles WebSocket connections
type Handler struct {
	hub    *app.SessionHub
	logger *slog.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *app.SessionHub, logger *slog.Logger) *Handler {
	return &Handler{
		hub:    hub,
		logger: logger,
	}
}

// ServeWS upgrades an HTTP request to a WebSocket connection and attaches
// it to a session. A playerId query parameter that already belongs to the
// session makes this a reconnect; otherwise it is a fresh join and the
// client is expected to follow up with a join message.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(r.URL.Query().Get("code"))
	if code == "" {
		http.Error(w, "session code is required", http.StatusBadRequest)
		return
	}

	session, err := h.hub.GetSession(code)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	playerID := r.URL.Query().Get("playerId")
	reconnecting := playerID != "" && session.HasPlayer(playerID)

	if !reconnecting {
		if !session.CanJoin() {
			http.Error(w, "session cannot accept new players", http.StatusConflict)
			return
		}
		playerID = uuid.NewString()
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	client := NewClient(conn, session, playerID, h.logger)
	session.RegisterClient(playerID, client)

	if reconnecting {
		if _, err := session.ReconnectPlayer(playerID); err != nil {
			h.logger.Warn("reconnect failed", "playerID", playerID, "error", err)
			client.sendError(ErrCodeInternalError, "Reconnect failed")
			client.Close()
			return
		}
		client.sendConnected()
	}

	h.logger.Info("client connected",
		"code", code,
		"playerID", playerID,
		"reconnect", reconnecting,
	)

	client.Run()
}
