package app

import (
	"crypto/rand"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"lexidice/internal/config"
	"lexidice/internal/domain"
	"lexidice/internal/oracle"
)

const (
	// StaleSessionTimeout is how long an empty session may linger before
	// the background sweep removes it, as a safety net behind the
	// per-session deletion timer.
	StaleSessionTimeout = 2 * time.Hour
)

// SessionCodeChars are characters used for session codes (no ambiguous chars)
const SessionCodeChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// Oracles bundles the optional external collaborators. Any field may be
// nil, degrading the corresponding feature.
type Oracles struct {
	Proposer    oracle.WordProposer
	Flavor      oracle.FlavorTexter
	Illustrator oracle.Illustrator
}

// SessionHub owns the mapping from session code to session. Timer
// callbacks inside sessions close over the code only, so a deleted
// session's pending timers become safe no-ops.
type SessionHub struct {
	sessions map[string]*GameSession
	mu       sync.RWMutex
	cfg      *config.Config
	dict     domain.Dictionary
	oracles  Oracles
	logger   *slog.Logger
	done     chan struct{}
}

// NewSessionHub creates a new session hub
func NewSessionHub(cfg *config.Config, dict domain.Dictionary, oracles Oracles, logger *slog.Logger) *SessionHub {
	hub := &SessionHub{
		sessions: make(map[string]*GameSession),
		cfg:      cfg,
		dict:     dict,
		oracles:  oracles,
		logger:   logger,
		done:     make(chan struct{}),
	}

	// Start cleanup goroutine
	go hub.cleanupLoop()

	return hub
}

// CreateSession creates a new session and returns it
func (h *SessionHub) CreateSession() (*GameSession, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	// Generate unique session code
	var code string
	for attempts := 0; attempts < 10; attempts++ {
		code = h.generateCode()
		if _, exists := h.sessions[code]; !exists {
			break
		}
	}
	if _, exists := h.sessions[code]; exists {
		return nil, fmt.Errorf("failed to generate unique session code")
	}

	game := domain.NewGame(code)
	session := NewGameSession(game, h.cfg, h.dict, h.oracles, h.logger, func() {
		h.DeleteSession(code)
	})
	h.sessions[code] = session

	h.logger.Info("session created", "code", code)

	return session, nil
}

// GetSession returns a session by code
func (h *SessionHub) GetSession(code string) (*GameSession, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	session, ok := h.sessions[code]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}

	return session, nil
}

// DeleteSession removes a session
func (h *SessionHub) DeleteSession(code string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if session, ok := h.sessions[code]; ok {
		session.Close()
		delete(h.sessions, code)
		h.logger.Info("session deleted", "code", code)
	}
}

// SessionCount returns the number of active sessions
func (h *SessionHub) SessionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// TotalPlayerCount returns the total number of players across all sessions
func (h *SessionHub) TotalPlayerCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, session := range h.sessions {
		total += session.PlayerCount()
	}
	return total
}

// Close shuts down the hub and all sessions
func (h *SessionHub) Close() {
	close(h.done)

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, session := range h.sessions {
		session.Close()
	}
	h.sessions = make(map[string]*GameSession)
}

// generateCode generates a random session code
func (h *SessionHub) generateCode() string {
	n := h.cfg.Game.SessionCodeLength
	b := make([]byte, n)
	rand.Read(b)

	code := make([]byte, n)
	for i := range code {
		code[i] = SessionCodeChars[int(b[i])%len(SessionCodeChars)]
	}

	return string(code)
}

// cleanupLoop periodically sweeps sessions that somehow outlived their
// deletion timers
func (h *SessionHub) cleanupLoop() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-h.done:
			return
		case <-ticker.C:
			h.cleanupStaleSessions()
		}
	}
}

func (h *SessionHub) cleanupStaleSessions() {
	h.mu.Lock()
	defer h.mu.Unlock()

	now := time.Now()
	stale := make([]string, 0)

	for code, session := range h.sessions {
		if session.PlayerCount() == 0 && now.Sub(session.CreatedAt()) > StaleSessionTimeout {
			stale = append(stale, code)
		}
	}

	for _, code := range stale {
		if session, ok := h.sessions[code]; ok {
			session.Close()
			delete(h.sessions, code)
			h.logger.Info("stale session cleaned up", "code", code)
		}
	}
}
