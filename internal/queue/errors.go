package queue

import "errors"

var (
	ErrInsufficientPlayers  = errors.New("at least 4 players are required")
	ErrInvalidConfiguration = errors.New("number of courts must be at least 1")
	ErrInvalidRosterSize    = errors.New("a roster needs exactly 4 distinct players")
	ErrUnknownMatch         = errors.New("unknown match")
)

// Kind returns a stable name for the scheduler error wrapped in err, or "" if
// err is not one of them.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInsufficientPlayers):
		return "insufficient_players"
	case errors.Is(err, ErrInvalidConfiguration):
		return "invalid_configuration"
	case errors.Is(err, ErrInvalidRosterSize):
		return "invalid_roster_size"
	case errors.Is(err, ErrUnknownMatch):
		return "unknown_match"
	default:
		return ""
	}
}
