package generation

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"testing"
	"time"

	"github.com/cohere-ai/cohere-go/v2/core"
	openai "github.com/sashabaranov/go-openai"
)

// fakeProvider scripts a sequence of responses, then repeats the last one.
type fakeProvider struct {
	calls     int
	responses []func() ([]string, error)
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Complete(_ context.Context, _ *Request) ([]string, error) {
	idx := f.calls
	if idx >= len(f.responses) {
		idx = len(f.responses) - 1
	}
	f.calls++
	return f.responses[idx]()
}

func transientErr() ([]string, error) {
	return nil, &openai.APIError{HTTPStatusCode: 429, Message: "rate limited"}
}

func fatalErr() ([]string, error) {
	return nil, &openai.APIError{HTTPStatusCode: 401, Message: "bad key"}
}

func okResponse(completions ...string) func() ([]string, error) {
	return func() ([]string, error) { return completions, nil }
}

func fastBackoff(attempts int) BackoffPolicy {
	return BackoffPolicy{MaxAttempts: attempts, BaseDelay: time.Millisecond, Multiplier: 2}
}

func TestClientRetriesTransientThenSucceeds(t *testing.T) {
	provider := &fakeProvider{responses: []func() ([]string, error){
		transientErr,
		transientErr,
		okResponse("a", "b"),
	}}
	clt := NewClient(provider, WithBackoff(fastBackoff(3)))
	out, err := clt.Generate(context.Background(), "p", 2)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(out) != 2 {
		t.Errorf("got %d completions, want 2", len(out))
	}
	if provider.calls != 3 {
		t.Errorf("provider called %d times, want 3", provider.calls)
	}
	if clt.Calls() != 3 {
		t.Errorf("Calls() = %d, want 3", clt.Calls())
	}
}

func TestClientExhaustsExactlyMaxAttempts(t *testing.T) {
	provider := &fakeProvider{responses: []func() ([]string, error){transientErr}}
	clt := NewClient(provider, WithBackoff(fastBackoff(4)))
	_, err := clt.Generate(context.Background(), "p", 1)
	var unavailable *UnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("got %v, want UnavailableError", err)
	}
	if unavailable.Attempts != 4 {
		t.Errorf("Attempts = %d, want 4", unavailable.Attempts)
	}
	if provider.calls != 4 {
		t.Errorf("provider called %d times, want 4", provider.calls)
	}
}

func TestClientZeroAttemptsMeansOne(t *testing.T) {
	provider := &fakeProvider{responses: []func() ([]string, error){transientErr}}
	clt := NewClient(provider, WithBackoff(BackoffPolicy{}))
	_, err := clt.Generate(context.Background(), "p", 1)
	var unavailable *UnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("got %v, want UnavailableError", err)
	}
	if provider.calls != 1 {
		t.Errorf("provider called %d times, want 1", provider.calls)
	}
}

func TestClientFatalErrorNoRetry(t *testing.T) {
	provider := &fakeProvider{responses: []func() ([]string, error){fatalErr}}
	clt := NewClient(provider, WithBackoff(fastBackoff(5)))
	_, err := clt.Generate(context.Background(), "p", 1)
	var apiErr *openai.APIError
	if !errors.As(err, &apiErr) || apiErr.HTTPStatusCode != 401 {
		t.Fatalf("got %v, want the original 401 APIError", err)
	}
	var unavailable *UnavailableError
	if errors.As(err, &unavailable) {
		t.Error("fatal error must not be wrapped as UnavailableError")
	}
	if provider.calls != 1 {
		t.Errorf("provider called %d times, want 1", provider.calls)
	}
}

func TestClientBudgetExhaustion(t *testing.T) {
	provider := &fakeProvider{responses: []func() ([]string, error){transientErr}}
	clt := NewClient(provider, WithBackoff(fastBackoff(5)), WithMaxCalls(2))
	_, err := clt.Generate(context.Background(), "p", 1)
	if !errors.Is(err, ErrBudgetExhausted) {
		t.Fatalf("got %v, want ErrBudgetExhausted", err)
	}
	var unavailable *UnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("budget exhaustion should surface as UnavailableError, got %v", err)
	}
	if provider.calls != 2 {
		t.Errorf("provider called %d times, want 2", provider.calls)
	}
}

func TestClientHonorsCancellationBetweenRetries(t *testing.T) {
	provider := &fakeProvider{responses: []func() ([]string, error){transientErr}}
	clt := NewClient(provider, WithBackoff(BackoffPolicy{MaxAttempts: 3, BaseDelay: time.Hour}))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := clt.Generate(ctx, "p", 1)
		done <- err
	}()
	time.Sleep(10 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		var unavailable *UnavailableError
		if !errors.As(err, &unavailable) {
			t.Fatalf("got %v, want UnavailableError wrapping context error", err)
		}
		if !errors.Is(err, context.Canceled) {
			t.Errorf("got %v, want wrapped context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Generate did not return after cancellation")
	}
}

func TestTransientClassification(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"openai rate limit", &openai.APIError{HTTPStatusCode: 429}, true},
		{"openai server error", &openai.APIError{HTTPStatusCode: 503}, true},
		{"openai auth", &openai.APIError{HTTPStatusCode: 401}, false},
		{"openai bad request", &openai.APIError{HTTPStatusCode: 400}, false},
		{"openai request error", &openai.RequestError{HTTPStatusCode: 500}, true},
		{"cohere overloaded", &core.APIError{StatusCode: 529}, true},
		{"cohere unauthorized", &core.APIError{StatusCode: 403}, false},
		{"deadline", context.DeadlineExceeded, true},
		{"wrapped deadline", fmt.Errorf("call: %w", context.DeadlineExceeded), true},
		{"connection", &url.Error{Op: "Post", URL: "https://api", Err: errors.New("connection reset")}, true},
		{"unknown", errors.New("boom"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Transient(tc.err); got != tc.want {
				t.Errorf("Transient(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}
