package synthesis

// Pool accumulates the validated examples of one synthesis run. It grows
// monotonically and is written only by the run driving the state machine,
// so it carries no lock; independent runs own independent pools.
type Pool struct {
	examples  []Example
	seen      map[string]struct{}
	normalize Normalizer
}

// NewPool returns an empty pool deduplicating by the given policy. A nil
// normalizer falls back to the default policy.
func NewPool(normalize Normalizer) *Pool {
	if normalize == nil {
		normalize = NewNormalizer()
	}
	return &Pool{
		seen:      make(map[string]struct{}),
		normalize: normalize,
	}
}

// Add appends the candidate unless its normalized input collides with an
// existing key. It reports whether the example was added.
func (p *Pool) Add(cand *Candidate) (Example, bool) {
	key := p.normalize(cand.Input)
	if _, dup := p.seen[key]; dup {
		return Example{}, false
	}
	ex := newExample(cand)
	p.seen[key] = struct{}{}
	p.examples = append(p.examples, ex)
	return ex, true
}

// Reserve registers an input's key without adding an example. User
// demonstrations are reserved up front so the run never resells them as
// synthetic data.
func (p *Pool) Reserve(input string) {
	p.seen[p.normalize(input)] = struct{}{}
}

// Contains reports whether the input's normalized key is already taken.
func (p *Pool) Contains(input string) bool {
	_, ok := p.seen[p.normalize(input)]
	return ok
}

// Len returns the number of validated examples in the pool.
func (p *Pool) Len() int {
	return len(p.examples)
}

// Examples returns the pool contents in insertion order. The slice is a
// copy; the pool's own examples stay immutable.
func (p *Pool) Examples() []Example {
	out := make([]Example, len(p.examples))
	copy(out, p.examples)
	return out
}
