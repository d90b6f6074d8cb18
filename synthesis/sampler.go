package synthesis

import (
	"math/rand"
	"strings"

	"github.com/viswavi/prompt-distillation/prompt"
)

// sampler builds each round's generation prompt from the instruction, a
// random subset of recently generated examples, and the user's
// demonstrations inserted at a random position for diversity.
type sampler struct {
	instruction prompt.Instruction
	demoBlock   string

	// window holds the most recent validated examples, bounded
	window      []Example
	windowSize  int
	maxSampled  int
	counter     TokenCounter
	tokenBudget int
	rng         *rand.Rand
}

func newSampler(p *prompt.Prompt, windowSize, maxSampled int, counter TokenCounter, tokenBudget int, rng *rand.Rand) *sampler {
	return &sampler{
		instruction: p.Instruction(),
		demoBlock:   prompt.FormatDemonstrations(p.Demonstrations()),
		windowSize:  windowSize,
		maxSampled:  maxSampled,
		counter:     counter,
		tokenBudget: tokenBudget,
		rng:         rng,
	}
}

// observe records a newly validated example in the recency window.
func (s *sampler) observe(ex Example) {
	s.window = append(s.window, ex)
	if s.windowSize > 0 && len(s.window) > s.windowSize {
		s.window = s.window[1:]
	}
}

// buildPrompt composes the round's meta prompt. When a token counter and
// budget are configured, the sampled subset is shrunk until the prompt fits.
func (s *sampler) buildPrompt() string {
	k := 0
	if len(s.window) > 0 {
		max := len(s.window)
		if s.maxSampled > 0 && s.maxSampled < max {
			max = s.maxSampled
		}
		k = 1 + s.rng.Intn(max)
	}
	for {
		p := s.compose(k)
		if s.counter == nil || s.tokenBudget <= 0 || k == 0 {
			return p
		}
		if s.counter.Count([]byte(p)) <= s.tokenBudget {
			return p
		}
		k /= 2
	}
}

// compose renders the meta prompt with k randomly sampled window examples;
// the user demonstrations are spliced in at a random index so their position
// varies between rounds.
func (s *sampler) compose(k int) string {
	var b strings.Builder
	if k == 0 {
		b.WriteString(s.demoBlock)
	} else {
		sampled := s.sample(k)
		insertAt := s.rng.Intn(len(sampled))
		for i, ex := range sampled {
			if i > 0 {
				b.WriteByte('\n')
			}
			b.WriteString(prompt.FormatPair(ex.Input, ex.Output))
			if i == insertAt && s.demoBlock != "" {
				b.WriteByte('\n')
				b.WriteString(s.demoBlock)
			}
		}
	}
	return metaPrompt(s.instruction.String(), b.String(), tierFor(k))
}

func (s *sampler) sample(k int) []Example {
	idx := s.rng.Perm(len(s.window))[:k]
	out := make([]Example, 0, k)
	for _, i := range idx {
		out = append(out, s.window[i])
	}
	return out
}
