package generation

import (
	"math/rand"
	"time"
)

// BackoffPolicy computes retry delays with exponential growth and optional
// jitter. It is a value type shared by every call site so its boundary
// conditions can be tested in one place. The zero value disables retries.
type BackoffPolicy struct {
	// MaxAttempts is the total number of attempts including the first.
	// Values below one are treated as a single attempt.
	MaxAttempts int
	// BaseDelay is the wait before the first retry.
	BaseDelay time.Duration
	// MaxDelay caps the grown delay. Zero means no cap.
	MaxDelay time.Duration
	// Multiplier grows the delay between consecutive retries. Values below
	// one are treated as 2.
	Multiplier float64
	// Jitter is the fraction of the delay randomized in both directions,
	// in [0, 1].
	Jitter float64
}

// DefaultBackoff is the policy used when a Client is built without one.
func DefaultBackoff() BackoffPolicy {
	return BackoffPolicy{
		MaxAttempts: 3,
		BaseDelay:   time.Second,
		MaxDelay:    30 * time.Second,
		Multiplier:  2,
		Jitter:      0.25,
	}
}

// Delay returns the wait before retry number attempt, counting from zero.
// A nil rng disables jitter, which keeps the schedule deterministic.
func (p BackoffPolicy) Delay(attempt int, rng *rand.Rand) time.Duration {
	if p.BaseDelay <= 0 {
		return 0
	}
	multiplier := p.Multiplier
	if multiplier < 1 {
		multiplier = 2
	}
	d := float64(p.BaseDelay)
	for i := 0; i < attempt; i++ {
		d *= multiplier
		if p.MaxDelay > 0 && d >= float64(p.MaxDelay) {
			d = float64(p.MaxDelay)
			break
		}
	}
	if rng != nil && p.Jitter > 0 {
		d += d * p.Jitter * (2*rng.Float64() - 1)
	}
	if p.MaxDelay > 0 && d > float64(p.MaxDelay) {
		d = float64(p.MaxDelay)
	}
	return time.Duration(d)
}
