package prompt

import "fmt"

// MalformedPromptError reports a raw prompt from which no instruction text
// could be isolated.
type MalformedPromptError struct {
	Reason string
}

func (e *MalformedPromptError) Error() string {
	return fmt.Sprintf("malformed prompt: %s", e.Reason)
}
