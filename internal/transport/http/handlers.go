package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"lexidice/internal/domain"
)

// Response is a standard API response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
}

// ErrorInfo contains error details
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Hint    string `json:"hint,omitempty"`
}

// CreateSessionResponse is the response for session creation
type CreateSessionResponse struct {
	SessionCode string `json:"sessionCode"`
	InviteLink  string `json:"inviteLink"`
}

// GetSessionResponse is the response for getting session info
type GetSessionResponse struct {
	SessionCode string `json:"sessionCode"`
	PlayerCount int    `json:"playerCount"`
	Status      string `json:"status"`
	CanJoin     bool   `json:"canJoin"`
}

// SessionExistsResponse is the response for checking if a session exists
type SessionExistsResponse struct {
	Exists bool `json:"exists"`
}

// HealthResponse is the response for health check
type HealthResponse struct {
	Status string `json:"status"`
}

// StatsResponse is the response for stats endpoint
type StatsResponse struct {
	ActiveSessions int `json:"activeSessions"`
	TotalPlayers   int `json:"totalPlayers"`
}

// handleCreateSession handles POST /api/sessions
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	session, err := s.hub.CreateSession()
	if err != nil {
		s.sendError(w, http.StatusInternalServerError, "CREATION_FAILED", "Failed to create session", "")
		return
	}

	// Build invite link
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	inviteLink := scheme + "://" + r.Host + "/join/" + session.Code()

	s.sendSuccess(w, &CreateSessionResponse{
		SessionCode: session.Code(),
		InviteLink:  inviteLink,
	})
}

// handleGetSession handles GET /api/sessions/{code}
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	if code == "" {
		s.sendError(w, http.StatusBadRequest, "MISSING_SESSION_CODE", "Session code is required", "")
		return
	}

	session, err := s.hub.GetSession(strings.ToUpper(code))
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			// A wrong code on a busy server and any code on an idle server
			// are different user mistakes; hint accordingly.
			hint := "Check the code and try again"
			if s.hub.SessionCount() == 0 {
				hint = "There are no active sessions on this server"
			}
			s.sendError(w, http.StatusNotFound, "SESSION_NOT_FOUND", "Session not found", hint)
		} else {
			s.sendError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", "")
		}
		return
	}

	s.sendSuccess(w, &GetSessionResponse{
		SessionCode: session.Code(),
		PlayerCount: session.PlayerCount(),
		Status:      string(session.Status()),
		CanJoin:     session.CanJoin(),
	})
}

// handleSessionExists handles GET /api/sessions/{code}/exists
func (s *Server) handleSessionExists(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	if code == "" {
		s.sendError(w, http.StatusBadRequest, "MISSING_SESSION_CODE", "Session code is required", "")
		return
	}

	_, err := s.hub.GetSession(strings.ToUpper(code))

	s.sendSuccess(w, &SessionExistsResponse{
		Exists: err == nil,
	})
}

// handleHealth handles GET /api/health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.sendSuccess(w, &HealthResponse{
		Status: "ok",
	})
}

// handleStats handles GET /api/stats
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.sendSuccess(w, &StatsResponse{
		ActiveSessions: s.hub.SessionCount(),
		TotalPlayers:   s.hub.TotalPlayerCount(),
	})
}

// sendSuccess sends a successful JSON response
func (s *Server) sendSuccess(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(&Response{
		Success: true,
		Data:    data,
	})
}

// sendError sends an error JSON response
func (s *Server) sendError(w http.ResponseWriter, status int, code, message, hint string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(&Response{
		Success: false,
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
			Hint:    hint,
		},
	})
}
