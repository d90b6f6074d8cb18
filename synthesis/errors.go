package synthesis

import "fmt"

// InsufficientDataError reports a run or a split that ended below its
// configured minimum viable size. It carries enough context to diagnose
// without re-running.
type InsufficientDataError struct {
	// Got is the number of examples available.
	Got int
	// Want is the configured minimum.
	Want int
	// Round is the round count at failure, zero when failure happened
	// outside a synthesis run.
	Round int
}

func (e *InsufficientDataError) Error() string {
	if e.Round > 0 {
		return fmt.Sprintf("insufficient data: %d examples after %d rounds, need at least %d", e.Got, e.Round, e.Want)
	}
	return fmt.Sprintf("insufficient data: got %d examples, need at least %d", e.Got, e.Want)
}
