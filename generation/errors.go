package generation

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"

	"github.com/cohere-ai/cohere-go/v2/core"
	anthropic "github.com/liushuangls/go-anthropic/v2"
	openai "github.com/sashabaranov/go-openai"
)

// ErrBudgetExhausted marks the metered call budget being fully spent.
var ErrBudgetExhausted = errors.New("generation call budget exhausted")

// UnavailableError reports a transient generation failure that survived the
// full retry budget. The synthesizer skips the round and keeps the run
// alive; every other error from the client is fatal to the run.
type UnavailableError struct {
	// Attempts is the number of calls made before giving up.
	Attempts int
	// Err is the last transient failure observed.
	Err error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("generation unavailable after %d attempts: %v", e.Attempts, e.Err)
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}

// Transient reports whether err is worth retrying: rate limits, overloaded
// or 5xx responses, timeouts and connection-level failures. Authentication
// and malformed-request errors are not transient, and neither is anything
// unrecognized.
func Transient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var oaiAPIErr *openai.APIError
	if errors.As(err, &oaiAPIErr) {
		return retryStatus(oaiAPIErr.HTTPStatusCode)
	}
	var oaiReqErr *openai.RequestError
	if errors.As(err, &oaiReqErr) {
		return retryStatus(oaiReqErr.HTTPStatusCode)
	}
	var antAPIErr *anthropic.APIError
	if errors.As(err, &antAPIErr) {
		return antAPIErr.IsRateLimitErr() || antAPIErr.IsOverloadedErr() || antAPIErr.IsApiErr()
	}
	var antReqErr *anthropic.RequestError
	if errors.As(err, &antReqErr) {
		return retryStatus(antReqErr.StatusCode)
	}
	var cohereErr *core.APIError
	if errors.As(err, &cohereErr) {
		return retryStatus(cohereErr.StatusCode)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	return false
}

func retryStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests, http.StatusRequestTimeout, http.StatusConflict:
		return true
	}
	return code >= http.StatusInternalServerError
}
