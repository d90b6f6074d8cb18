package synthesis

// Config holds the immutable settings of one synthesis run.
type Config struct {
	// targetSize stops the run once the pool reaches it
	targetSize int
	// batchSize is the number of completions requested per round
	batchSize int
	// maxRounds bounds the round budget
	maxRounds int
	// saturationRounds stops the run after this many consecutive rounds
	// with zero new examples
	saturationRounds int
	// minViableSize fails the run when the final pool is smaller, zero
	// disabling the check
	minViableSize int
	// maxSampled bounds the sampled example subset per round
	maxSampled int
	// windowSize bounds the recent-example window feeding the sampler
	windowSize int
	// tokenBudget caps the composed prompt, zero disabling the check
	tokenBudget int
	// counter measures prompts against tokenBudget
	counter TokenCounter
	// initialTemperature and maxTemperature bound the linear temperature
	// schedule across the round budget
	initialTemperature float32
	maxTemperature     float32
	// seed fixes the sampling randomness, zero drawing a fresh seed
	seed int64
	// normalize is the dedup policy
	normalize Normalizer
}

// Option configures a Synthesizer.
type Option func(*Config)

// WithTargetSize sets the pool size that terminates the run.
func WithTargetSize(n int) Option {
	return func(c *Config) {
		c.targetSize = n
	}
}

// WithBatchSize sets the number of completions requested per round.
func WithBatchSize(n int) Option {
	return func(c *Config) {
		c.batchSize = n
	}
}

// WithMaxRounds bounds the number of rounds in the run.
func WithMaxRounds(n int) Option {
	return func(c *Config) {
		c.maxRounds = n
	}
}

// WithSaturationRounds stops the run after n consecutive rounds contribute
// zero new examples, signaling the generation source is saturated.
func WithSaturationRounds(n int) Option {
	return func(c *Config) {
		c.saturationRounds = n
	}
}

// WithMinViableSize fails the run with InsufficientDataError when the final
// pool is smaller than n.
func WithMinViableSize(n int) Option {
	return func(c *Config) {
		c.minViableSize = n
	}
}

// WithMaxSampledExamples bounds the subset of examples sampled into each
// round's prompt.
func WithMaxSampledExamples(n int) Option {
	return func(c *Config) {
		c.maxSampled = n
	}
}

// WithWindowSize bounds the recent-example window feeding the sampler.
func WithWindowSize(n int) Option {
	return func(c *Config) {
		c.windowSize = n
	}
}

// WithTokenBudget keeps composed prompts at or under budget tokens as
// measured by the counter.
func WithTokenBudget(counter TokenCounter, budget int) Option {
	return func(c *Config) {
		c.counter = counter
		c.tokenBudget = budget
	}
}

// WithTemperatureSchedule ramps sampling temperature linearly from initial
// to max across the round budget, trading early consistency for late
// diversity.
func WithTemperatureSchedule(initial, max float32) Option {
	return func(c *Config) {
		c.initialTemperature = initial
		c.maxTemperature = max
	}
}

// WithSeed fixes the run's sampling randomness for reproducibility.
func WithSeed(seed int64) Option {
	return func(c *Config) {
		c.seed = seed
	}
}

// WithNormalizer sets the dedup normalization policy.
func WithNormalizer(normalize Normalizer) Option {
	return func(c *Config) {
		c.normalize = normalize
	}
}

func (c Config) TargetSize() int {
	return c.targetSize
}

func (c Config) BatchSize() int {
	return c.batchSize
}

func (c Config) MaxRounds() int {
	return c.maxRounds
}

func (c Config) SaturationRounds() int {
	return c.saturationRounds
}

func (c Config) MinViableSize() int {
	return c.minViableSize
}
