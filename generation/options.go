package generation

import (
	"math/rand"
	"time"
)

// Options holds the immutable configuration of a Client. Everything enters
// at construction; nothing is read from ambient process state, so
// independent clients can run in parallel.
type Options struct {
	// model is the default model for requests that do not name one
	model string
	// temperature is the default sampling temperature
	temperature float32
	// maxTokens is the default per-completion token cap
	maxTokens int
	// timeout bounds a single provider call
	timeout time.Duration
	// backoff is the retry policy applied to transient failures
	backoff BackoffPolicy
	// maxCalls is the metered call budget, zero meaning unlimited
	maxCalls int64
	// rng drives backoff jitter
	rng *rand.Rand
}

// Option configures a Client.
type Option func(*Options)

func WithModel(model string) Option {
	return func(o *Options) {
		o.model = model
	}
}

func WithTemperature(temperature float32) Option {
	return func(o *Options) {
		o.temperature = temperature
	}
}

func WithMaxTokens(maxTokens int) Option {
	return func(o *Options) {
		o.maxTokens = maxTokens
	}
}

// WithTimeout bounds each provider call. Exceeding it counts as a transient
// failure subject to the retry policy.
func WithTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		o.timeout = timeout
	}
}

func WithBackoff(policy BackoffPolicy) Option {
	return func(o *Options) {
		o.backoff = policy
	}
}

// WithMaxCalls meters the client's total call budget. Once spent, Generate
// fails with an UnavailableError wrapping ErrBudgetExhausted.
func WithMaxCalls(maxCalls int64) Option {
	return func(o *Options) {
		o.maxCalls = maxCalls
	}
}

func WithRand(rng *rand.Rand) Option {
	return func(o *Options) {
		o.rng = rng
	}
}

func (o Options) Model() string {
	return o.model
}

func (o Options) Temperature() float32 {
	return o.temperature
}

func (o Options) MaxTokens() int {
	return o.maxTokens
}

func (o Options) Timeout() time.Duration {
	return o.timeout
}

func (o Options) Backoff() BackoffPolicy {
	return o.backoff
}

func (o Options) MaxCalls() int64 {
	return o.maxCalls
}
