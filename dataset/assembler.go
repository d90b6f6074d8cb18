package dataset

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/google/uuid"

	"github.com/viswavi/prompt-distillation/synthesis"
)

// Proportions are the relative sizes of the three splits. They must sum to
// one; a zero proportion omits its split entirely.
type Proportions struct {
	Train      float64
	Validation float64
	Test       float64
}

// DefaultProportions is the 80/10/10 partition.
func DefaultProportions() Proportions {
	return Proportions{Train: 0.8, Validation: 0.1, Test: 0.1}
}

func (p Proportions) check() error {
	for _, v := range []float64{p.Train, p.Validation, p.Test} {
		if v < 0 || v > 1 {
			return fmt.Errorf("split proportion %v outside [0, 1]", v)
		}
	}
	if sum := p.Train + p.Validation + p.Test; math.Abs(sum-1) > 1e-9 {
		return fmt.Errorf("split proportions sum to %v, want 1", sum)
	}
	return nil
}

type config struct {
	proportions Proportions
	seed        int64
}

// Option configures an assembly.
type Option func(*config)

func WithProportions(p Proportions) Option {
	return func(c *config) {
		c.proportions = p
	}
}

// WithSeed fixes the shuffle. Identical pool ordering, proportions and seed
// produce identical split membership.
func WithSeed(seed int64) Option {
	return func(c *config) {
		c.seed = seed
	}
}

// Assemble partitions the pool into named splits. It is pure and
// deterministic for a fixed pool, proportions and seed, and fails with
// InsufficientDataError instead of silently producing an empty configured
// split.
func Assemble(pool *synthesis.Pool, opts ...Option) (*Dataset, error) {
	cfg := config{proportions: DefaultProportions()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.proportions.check(); err != nil {
		return nil, err
	}
	examples := pool.Examples()
	n := len(examples)

	names := []SplitName{TrainSplit, ValidationSplit, TestSplit}
	fractions := []float64{cfg.proportions.Train, cfg.proportions.Validation, cfg.proportions.Test}
	counts := make([]int, len(fractions))
	assigned := 0
	for i, f := range fractions {
		counts[i] = int(f * float64(n))
		assigned += counts[i]
	}
	// leftover from flooring goes to the largest split
	largest := 0
	for i, f := range fractions {
		if f > fractions[largest] {
			largest = i
		}
	}
	counts[largest] += n - assigned
	for i, f := range fractions {
		if f > 0 && counts[i] == 0 {
			return nil, &synthesis.InsufficientDataError{Got: n, Want: minViableFor(fractions)}
		}
	}

	order := rand.New(rand.NewSource(cfg.seed)).Perm(n)
	ds := &Dataset{
		ID:     uuid.NewString(),
		Splits: make(map[SplitName][]synthesis.Example, len(names)),
	}
	pos := 0
	for i, name := range names {
		if fractions[i] == 0 {
			continue
		}
		split := make([]synthesis.Example, 0, counts[i])
		for _, j := range order[pos : pos+counts[i]] {
			split = append(split, examples[j])
		}
		pos += counts[i]
		ds.Splits[name] = split
	}
	return ds, nil
}

// minViableFor is the smallest pool that gives every configured split at
// least one example.
func minViableFor(fractions []float64) int {
	smallest := 1.0
	for _, f := range fractions {
		if f > 0 && f < smallest {
			smallest = f
		}
	}
	return int(math.Ceil(1 / smallest))
}
