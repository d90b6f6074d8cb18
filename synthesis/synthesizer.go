package synthesis

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/viswavi/prompt-distillation/generation"
	"github.com/viswavi/prompt-distillation/prompt"
)

// Generator is the synthesizer's view of the generation client.
// *generation.Client satisfies it; tests inject fakes.
type Generator interface {
	GenerateWith(ctx context.Context, req *generation.Request) ([]string, error)
}

// State identifies the synthesizer's position in the round loop.
type State uint8

const (
	// StateSampling chooses the seed examples for the next round's prompt.
	StateSampling State = iota
	// StateRequesting awaits the generation client.
	StateRequesting
	// StateValidating schema-checks and dedups each candidate.
	StateValidating
	// StateDeciding checks the termination conditions.
	StateDeciding
	// StateDone is terminal.
	StateDone
)

func (s State) String() string {
	switch s {
	case StateSampling:
		return "sampling"
	case StateRequesting:
		return "requesting"
	case StateValidating:
		return "validating"
	case StateDeciding:
		return "deciding"
	case StateDone:
		return "done"
	}
	return "unknown"
}

// Synthesizer drives the generation loop for one prompt. It owns the pool
// and mutates it only from the goroutine stepping the machine; run several
// prompts in parallel by giving each its own Synthesizer and client budget.
type Synthesizer struct {
	client   Generator
	pool     *Pool
	sampler  *sampler
	validate *validator.Validate
	rng      *rand.Rand

	state       State
	round       int
	emptyRounds int
	lastPrompt  string
	completions []string
	roundAdded  int

	Config
}

// NewSynthesizer prepares a run for the parsed prompt. The prompt's
// demonstrations seed the sampler and reserve their dedup keys so the run
// never returns a user demonstration as synthetic data.
func NewSynthesizer(client Generator, p *prompt.Prompt, opts ...Option) *Synthesizer {
	s := &Synthesizer{
		client:   client,
		validate: validator.New(),
		state:    StateSampling,
	}
	s.Config = Config{
		targetSize:         100,
		batchSize:          5,
		maxRounds:          50,
		saturationRounds:   3,
		maxSampled:         10,
		windowSize:         10,
		initialTemperature: 0.5,
		maxTemperature:     1.0,
	}
	for _, opt := range opts {
		opt(&s.Config)
	}
	seed := s.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	s.rng = rand.New(rand.NewSource(seed))
	s.pool = NewPool(s.normalize)
	for _, demo := range p.Demonstrations() {
		s.pool.Reserve(demo.Input)
	}
	s.sampler = newSampler(p, s.windowSize, s.maxSampled, s.counter, s.tokenBudget, s.rng)
	return s
}

// State returns the machine's current state.
func (s *Synthesizer) State() State {
	return s.state
}

// Round returns the number of completed rounds.
func (s *Synthesizer) Round() int {
	return s.round
}

// Pool returns the run's example pool.
func (s *Synthesizer) Pool() *Pool {
	return s.pool
}

// Step executes the current state once and advances the machine. A non-nil
// error is fatal to the run; transient generation failures are absorbed into
// the termination decision instead.
func (s *Synthesizer) Step(ctx context.Context) error {
	switch s.state {
	case StateSampling:
		s.lastPrompt = s.sampler.buildPrompt()
		s.state = StateRequesting
	case StateRequesting:
		req := &generation.Request{
			Prompt:      s.lastPrompt,
			N:           s.batchSize,
			Temperature: s.temperatureFor(s.round),
		}
		out, err := s.client.GenerateWith(ctx, req)
		if err != nil {
			var unavailable *generation.UnavailableError
			if errors.As(err, &unavailable) {
				// the round is lost, not the run
				log.Printf("synthesis round %d skipped: %v", s.round+1, unavailable)
				s.completions = nil
				s.state = StateDeciding
				return nil
			}
			s.state = StateDone
			return fmt.Errorf("synthesis round %d (pool size %d): %w", s.round+1, s.pool.Len(), err)
		}
		s.completions = out
		s.state = StateValidating
	case StateValidating:
		for _, completion := range s.completions {
			cand, err := ExtractCandidate(completion)
			if err != nil {
				continue
			}
			if err := s.validate.Struct(cand); err != nil {
				continue
			}
			if ex, ok := s.pool.Add(cand); ok {
				s.sampler.observe(ex)
				s.roundAdded++
			}
		}
		s.completions = nil
		s.state = StateDeciding
	case StateDeciding:
		s.round++
		if s.roundAdded == 0 {
			s.emptyRounds++
		} else {
			s.emptyRounds = 0
		}
		s.roundAdded = 0
		switch {
		case s.pool.Len() >= s.targetSize:
			s.state = StateDone
		case s.round >= s.maxRounds:
			s.state = StateDone
		case s.saturationRounds > 0 && s.emptyRounds >= s.saturationRounds:
			s.state = StateDone
		default:
			s.state = StateSampling
		}
	case StateDone:
	}
	return nil
}

// Run drives the machine until Done. Cancellation is checked at the round
// boundary so an in-flight request finishes or times out on its own. A run
// ending below the configured minimum viable size fails with
// InsufficientDataError.
func (s *Synthesizer) Run(ctx context.Context) (*Pool, error) {
	for s.state != StateDone {
		if s.state == StateSampling {
			select {
			case <-ctx.Done():
				return s.pool, ctx.Err()
			default:
			}
		}
		if err := s.Step(ctx); err != nil {
			return s.pool, err
		}
	}
	if s.minViableSize > 0 && s.pool.Len() < s.minViableSize {
		return s.pool, &InsufficientDataError{
			Got:   s.pool.Len(),
			Want:  s.minViableSize,
			Round: s.round,
		}
	}
	return s.pool, nil
}

// temperatureFor ramps sampling temperature linearly across the round
// budget.
func (s *Synthesizer) temperatureFor(round int) float32 {
	if s.maxTemperature <= s.initialTemperature || s.maxRounds <= 1 {
		return s.initialTemperature
	}
	frac := float32(round) / float32(s.maxRounds-1)
	return s.initialTemperature + (s.maxTemperature-s.initialTemperature)*frac
}
