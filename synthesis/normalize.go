package synthesis

import (
	"strings"
	"unicode"

	"github.com/clipperhouse/uax29/words"
)

// Normalizer maps example input text to its dedup key. Two inputs with the
// same key are considered duplicates.
type Normalizer func(string) string

type normalizeConfig struct {
	caseFold     bool
	collapse     bool
	stripPunct   bool
	segmentWords bool
}

// NormalizeOption adjusts the normalization policy. The exact rule is a
// policy point, not a fixed behavior; the default lowercases and collapses
// whitespace.
type NormalizeOption func(*normalizeConfig)

// WithoutCaseFolding keeps the input's original case in the dedup key.
func WithoutCaseFolding() NormalizeOption {
	return func(c *normalizeConfig) {
		c.caseFold = false
	}
}

// WithoutWhitespaceCollapsing keeps the input's whitespace in the dedup key.
func WithoutWhitespaceCollapsing() NormalizeOption {
	return func(c *normalizeConfig) {
		c.collapse = false
	}
}

// WithPunctuationStripping drops punctuation from the dedup key.
func WithPunctuationStripping() NormalizeOption {
	return func(c *normalizeConfig) {
		c.stripPunct = true
	}
}

// WithWordSegmentation keys on Unicode word boundaries instead of raw
// whitespace, which also collapses runs of separators.
func WithWordSegmentation() NormalizeOption {
	return func(c *normalizeConfig) {
		c.segmentWords = true
	}
}

// NewNormalizer composes the configured normalization steps into one policy.
func NewNormalizer(opts ...NormalizeOption) Normalizer {
	cfg := normalizeConfig{
		caseFold: true,
		collapse: true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return func(s string) string {
		if cfg.caseFold {
			s = strings.ToLower(s)
		}
		if cfg.stripPunct {
			s = strings.Map(func(r rune) rune {
				if unicode.IsPunct(r) {
					return -1
				}
				return r
			}, s)
		}
		if cfg.segmentWords {
			segments := words.SegmentAll([]byte(s))
			parts := make([]string, 0, len(segments))
			for _, seg := range segments {
				if word := strings.TrimSpace(string(seg)); word != "" {
					parts = append(parts, word)
				}
			}
			return strings.Join(parts, " ")
		}
		if cfg.collapse {
			s = strings.Join(strings.Fields(s), " ")
		}
		return strings.TrimSpace(s)
	}
}
