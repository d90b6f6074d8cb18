package generation

import (
	"context"
	"time"

	"go.uber.org/atomic"
)

// Client wraps a Provider with per-call timeouts, retry with backoff on
// transient failures, and a metered call budget. Every call consumes
// externally billed quota, so callers must not invoke it for validation
// alone. Fatal provider errors (authentication, malformed request) are
// returned unmodified with no retry.
type Client struct {
	provider Provider
	calls    *atomic.Int64

	Options
}

// NewClient builds a Client around a provider.
func NewClient(provider Provider, opts ...Option) *Client {
	c := &Client{
		provider: provider,
		calls:    atomic.NewInt64(0),
	}
	c.timeout = 30 * time.Second
	c.backoff = DefaultBackoff()
	for _, opt := range opts {
		opt(&c.Options)
	}
	return c
}

// Calls returns how much of the call budget has been consumed.
func (c *Client) Calls() int64 {
	return c.calls.Load()
}

// Generate requests n completions for the prompt using the client defaults.
func (c *Client) Generate(ctx context.Context, promptText string, n int) ([]string, error) {
	return c.GenerateWith(ctx, &Request{
		Prompt:      promptText,
		N:           n,
		Model:       c.model,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	})
}

// GenerateWith issues a fully specified request, filling unset fields from
// the client defaults. It blocks until completions arrive, the retry budget
// is spent, or a fatal error occurs.
func (c *Client) GenerateWith(ctx context.Context, req *Request) ([]string, error) {
	if req.Model == "" {
		req.Model = c.model
	}
	if req.MaxTokens == 0 {
		req.MaxTokens = c.maxTokens
	}
	attempts := c.backoff.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			timer := time.NewTimer(c.backoff.Delay(attempt-1, c.rng))
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, &UnavailableError{Attempts: attempt, Err: ctx.Err()}
			case <-timer.C:
			}
		}
		if c.maxCalls > 0 && c.calls.Load() >= c.maxCalls {
			return nil, &UnavailableError{Attempts: attempt, Err: ErrBudgetExhausted}
		}
		c.calls.Inc()
		out, err := c.complete(ctx, req)
		if err == nil {
			return out, nil
		}
		if !Transient(err) {
			return nil, err
		}
		lastErr = err
	}
	return nil, &UnavailableError{Attempts: attempts, Err: lastErr}
}

func (c *Client) complete(ctx context.Context, req *Request) ([]string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	return c.provider.Complete(ctx, req)
}
