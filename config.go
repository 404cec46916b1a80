package ursa

import (
	"fmt"
	"time"

	"github.com/ursalint/ursa/service/runner"
)

// Config is a serialisable representation of the engine configuration. It can
// be populated from JSON, YAML, environment variables, etc. The zero-value is
// useful – all nested fields inherit their package defaults.

type Config struct {
	Runner RunnerConfig `json:"runner" yaml:"runner"`
	Patch  PatchConfig  `json:"patch" yaml:"patch"`
}

type RunnerConfig struct {
	// Jobs overrides the worker count; 0 defers to each section's jobs
	// setting and ultimately the CPU count.
	Jobs          int `json:"jobs" yaml:"jobs"`
	PollTimeoutMs int `json:"pollTimeoutMs" yaml:"pollTimeoutMs"`
}

type PatchConfig struct {
	Apply bool `json:"apply" yaml:"apply"`
}

// DefaultConfig returns a Config populated with the package defaults.
// Callers may modify the returned struct before passing it to NewFromConfig.
func DefaultConfig() *Config {
	return &Config{
		Runner: RunnerConfig{
			Jobs:          0,
			PollTimeoutMs: int(runner.DefaultPollTimeout / time.Millisecond),
		},
	}
}

// Validate returns an error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if c.Runner.Jobs < 0 {
		return fmt.Errorf("runner.jobs must be >= 0")
	}
	if c.Runner.PollTimeoutMs <= 0 {
		return fmt.Errorf("runner.pollTimeoutMs must be > 0")
	}
	return nil
}

// NewFromConfig builds a service from a validated configuration; additional
// options are applied afterwards and take precedence.
func NewFromConfig(config *Config, options ...Option) (*Service, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	base := []Option{
		WithPollTimeout(time.Duration(config.Runner.PollTimeoutMs) * time.Millisecond),
		WithApplyPatches(config.Patch.Apply),
	}
	if config.Runner.Jobs > 0 {
		base = append(base, WithJobs(config.Runner.Jobs))
	}
	return New(append(base, options...)...), nil
}
