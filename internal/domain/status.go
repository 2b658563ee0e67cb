package domain

// Status represents the lifecycle state of a session
type Status string

const (
	StatusWaiting  Status = "WAITING"  // Lobby open, players joining
	StatusPlaying  Status = "PLAYING"  // Rounds in progress
	StatusFinished Status = "FINISHED" // Final standings shown
)

// String returns the string representation of the status
func (s Status) String() string {
	return string(s)
}

// CanTransitionTo checks if a transition from the current status to the
// target status is valid
func (s Status) CanTransitionTo(target Status) bool {
	validTransitions := map[Status][]Status{
		StatusWaiting:  {StatusPlaying},
		StatusPlaying:  {StatusFinished, StatusWaiting}, // finish, or end early
		StatusFinished: {StatusWaiting},                 // play again
	}

	for _, allowed := range validTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}
