package synthesis

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// FileConfig is the YAML form of a run's settings.
type FileConfig struct {
	TargetSize         int     `yaml:"target_size" validate:"required,min=1"`
	BatchSize          int     `yaml:"batch_size" validate:"min=0"`
	MaxRounds          int     `yaml:"max_rounds" validate:"min=0"`
	SaturationRounds   int     `yaml:"saturation_rounds" validate:"min=0"`
	MinViableSize      int     `yaml:"min_viable_size" validate:"min=0,ltefield=TargetSize"`
	MaxSampledExamples int     `yaml:"max_sampled_examples" validate:"min=0"`
	WindowSize         int     `yaml:"window_size" validate:"min=0"`
	InitialTemperature float32 `yaml:"initial_temperature" validate:"min=0,max=2"`
	MaxTemperature     float32 `yaml:"max_temperature" validate:"min=0,max=2"`
	Seed               int64   `yaml:"seed"`
}

// LoadConfig reads and validates a YAML run configuration.
func LoadConfig(path string) (*FileConfig, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := new(FileConfig)
	if err := yaml.Unmarshal(bs, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Options converts the file configuration into synthesizer options,
// skipping unset fields so defaults apply.
func (c *FileConfig) Options() []Option {
	opts := []Option{WithTargetSize(c.TargetSize)}
	if c.BatchSize > 0 {
		opts = append(opts, WithBatchSize(c.BatchSize))
	}
	if c.MaxRounds > 0 {
		opts = append(opts, WithMaxRounds(c.MaxRounds))
	}
	if c.SaturationRounds > 0 {
		opts = append(opts, WithSaturationRounds(c.SaturationRounds))
	}
	if c.MinViableSize > 0 {
		opts = append(opts, WithMinViableSize(c.MinViableSize))
	}
	if c.MaxSampledExamples > 0 {
		opts = append(opts, WithMaxSampledExamples(c.MaxSampledExamples))
	}
	if c.WindowSize > 0 {
		opts = append(opts, WithWindowSize(c.WindowSize))
	}
	if c.MaxTemperature > 0 {
		opts = append(opts, WithTemperatureSchedule(c.InitialTemperature, c.MaxTemperature))
	}
	if c.Seed != 0 {
		opts = append(opts, WithSeed(c.Seed))
	}
	return opts
}
