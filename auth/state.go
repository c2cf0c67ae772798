package auth

// State is the phase of the current login attempt.
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateAuthenticated
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateSubmitting:
		return "submitting"
	case StateAuthenticated:
		return "authenticated"
	case StateFailed:
		return "failed"
	}
	return "idle"
}
