// Package synthesis turns a parsed prompt into a validated, deduplicated
// pool of synthetic training examples by looping against a generation
// client. One Synthesizer drives one run; independent runs share no state.
package synthesis

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/xid"

	"github.com/viswavi/prompt-distillation/prompt"
)

// Candidate is a raw input/output pair extracted from a model completion,
// not yet checked against the schema or the dedup index.
type Candidate struct {
	Input  string `json:"input" validate:"required"`
	Output string `json:"output" validate:"required"`
}

// Example is a candidate that passed validation and uniqueness checks.
// Immutable once added to a Pool.
type Example struct {
	ID     string `json:"id"`
	Input  string `json:"input"`
	Output string `json:"output"`
}

func newExample(cand *Candidate) Example {
	return Example{
		ID:     xid.New().String(),
		Input:  cand.Input,
		Output: cand.Output,
	}
}

// ExtractCandidate pulls one input/output pair out of a raw completion.
// Completions are expected to carry a JSON object with "input" and "output"
// keys; the demonstration wire convention is accepted as a fallback so the
// synthesizer and the prompt parser share one format.
func ExtractCandidate(completion string) (*Candidate, error) {
	trimmed := strings.TrimSpace(completion)
	if start := strings.IndexByte(trimmed, '{'); start >= 0 {
		if end := strings.LastIndexByte(trimmed, '}'); end > start {
			var fields map[string]any
			if err := json.Unmarshal([]byte(trimmed[start:end+1]), &fields); err == nil {
				in, inOK := fields["input"]
				out, outOK := fields["output"]
				if !inOK || !outOK {
					return nil, fmt.Errorf("completion JSON is missing input/output keys")
				}
				return &Candidate{
					Input:  strings.TrimSpace(asString(in)),
					Output: strings.TrimSpace(asString(out)),
				}, nil
			}
		}
	}
	if demos, _ := prompt.ParseDemonstrations(trimmed); len(demos) > 0 {
		return &Candidate{Input: demos[0].Input, Output: demos[0].Output}, nil
	}
	return nil, fmt.Errorf("completion carries no input/output pair")
}

func asString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
