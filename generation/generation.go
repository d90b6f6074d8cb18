// Package generation wraps hosted language model APIs behind a resilient
// client with timeouts, retry with backoff, and a metered call budget.
package generation

import "context"

// Provider issues one batch of completions against a hosted model.
// Implementations live under generation/providers and wrap a vendor SDK
// client; they perform no retries of their own.
type Provider interface {
	Name() string
	Complete(ctx context.Context, req *Request) ([]string, error)
}

// Request is one composed generation request. Requests are ephemeral; the
// synthesizer builds a fresh one per round.
type Request struct {
	// Prompt is the fully composed prompt text.
	Prompt string
	// N is the number of completions requested.
	N int
	// Model names the model to use. Empty means the provider's default.
	Model string
	// Temperature for completion sampling.
	Temperature float32
	// MaxTokens caps each completion's length. Zero means provider default.
	MaxTokens int
}
