package synthesis

import (
	"fmt"

	"github.com/clipperhouse/uax29/words"
	"github.com/pkoukk/tiktoken-go"
)

// TokenCounter estimates the token cost of a composed generation prompt so
// the sampler can stay inside the external API's context limit.
type TokenCounter interface {
	Count(p []byte) int
}

// WordsTokenCounter approximates tokens by Unicode word boundaries. It needs
// no model data, which makes it the default and the one used in tests.
type WordsTokenCounter struct{}

func (c WordsTokenCounter) Count(p []byte) int {
	return len(words.SegmentAll(p))
}

// TikTokenCounter counts tokens exactly for OpenAI models using the given
// tiktoken encoding, e.g. "cl100k_base".
type TikTokenCounter struct {
	tke *tiktoken.Tiktoken
}

func NewTikTokenCounter(encoding string) (*TikTokenCounter, error) {
	tke, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("failed to get encoding: %w", err)
	}
	return &TikTokenCounter{tke: tke}, nil
}

func (c *TikTokenCounter) Count(p []byte) int {
	return len(c.tke.Encode(string(p), nil, nil))
}
