package domain

import "errors"

// Domain errors
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionFull     = errors.New("session is full")
	ErrGameInProgress  = errors.New("game already in progress")
	ErrNoPlayers       = errors.New("at least one player is required")
	ErrPlayerNotFound  = errors.New("player not found")
	ErrNameTaken       = errors.New("name already taken in this session")
	ErrNotHost         = errors.New("only the host can perform this action")
	ErrNotABot         = errors.New("player is not a bot")
	ErrInvalidStatus   = errors.New("invalid action for current session status")
	ErrInvalidSettings = errors.New("settings out of allowed range")
	ErrRoundOver       = errors.New("round already ended")
	ErrRoundInProgress = errors.New("round still in progress")
	ErrNoMoreRounds    = errors.New("no rounds remaining")
	ErrRoundsRemaining = errors.New("rounds still remaining")
)
