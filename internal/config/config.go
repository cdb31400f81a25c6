// Package config loads benchmark run settings from YAML.
//
// Example suite file:
//
//	warmup: 100
//	iterations: 10000
//	timeout: 2m
//	progress_interval: 1s
//	ticker: batch
//	canceler: atomic
//	params:
//	  iterations: 10000
//	  buffer_size: 128
//	  length: 1000
//	  x: 3
//	dir: /tmp/taskperf
//	subjects: [TenSyncTaskOfTask, TenSyncValueOfValue]
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/randomizedcoder/task-benchmarks/internal/cancel"
	"github.com/randomizedcoder/task-benchmarks/internal/tick"
)

var (
	// ErrInvalid wraps every validation failure.
	ErrInvalid = errors.New("config: invalid")
)

// Config is a benchmark run description.
type Config struct {
	Warmup           int           `yaml:"warmup"`
	Iterations       int           `yaml:"iterations"`
	Timeout          time.Duration `yaml:"timeout"`
	ProgressInterval time.Duration `yaml:"progress_interval"`
	ProgressEvery    int           `yaml:"progress_every"`
	Ticker           string        `yaml:"ticker"`
	Canceler         string        `yaml:"canceler"`
	Params           Params        `yaml:"params"`
	Dir              string        `yaml:"dir"`
	Subjects         []string      `yaml:"subjects"`
}

// Params are the tunable inputs handed to every subject.
type Params struct {
	Iterations int `yaml:"iterations"`  // writes per write-loop call
	BufferSize int `yaml:"buffer_size"` // bytes per write
	Length     int `yaml:"length"`      // count-loop length
	X          int `yaml:"x"`           // Values parameter
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		Warmup:           100,
		Iterations:       10000,
		ProgressInterval: tick.DefaultInterval,
		ProgressEvery:    tick.DefaultEvery,
		Ticker:           tick.KindBatch,
		Canceler:         cancel.KindAtomic,
		Params: Params{
			Iterations: 10000,
			BufferSize: 128,
			Length:     1000,
			X:          3,
		},
	}
}

// Load reads path over the defaults and validates the result.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result.
// Keys missing from data keep their default values.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first setting that cannot be run.
func (c Config) Validate() error {
	switch {
	case c.Warmup < 0:
		return fmt.Errorf("%w: warmup must be >= 0, got %d", ErrInvalid, c.Warmup)
	case c.Iterations < 1:
		return fmt.Errorf("%w: iterations must be positive, got %d", ErrInvalid, c.Iterations)
	case c.Timeout < 0:
		return fmt.Errorf("%w: timeout must be >= 0, got %s", ErrInvalid, c.Timeout)
	case c.ProgressInterval <= 0:
		return fmt.Errorf("%w: progress_interval must be positive, got %s", ErrInvalid, c.ProgressInterval)
	case c.Params.Iterations < 1:
		return fmt.Errorf("%w: params.iterations must be positive, got %d", ErrInvalid, c.Params.Iterations)
	case c.Params.BufferSize < 1:
		return fmt.Errorf("%w: params.buffer_size must be positive, got %d", ErrInvalid, c.Params.BufferSize)
	case c.Params.Length < 0:
		return fmt.Errorf("%w: params.length must be >= 0, got %d", ErrInvalid, c.Params.Length)
	}
	switch c.Ticker {
	case "", tick.KindBatch, tick.KindAtomic, tick.KindStd:
	default:
		return fmt.Errorf("%w: ticker %q", ErrInvalid, c.Ticker)
	}
	switch c.Canceler {
	case "", cancel.KindAtomic, cancel.KindContext:
	default:
		return fmt.Errorf("%w: canceler %q", ErrInvalid, c.Canceler)
	}
	return nil
}

// NewTicker builds the progress ticker the config describes.
func (c Config) NewTicker() (tick.Ticker, error) {
	return tick.New(c.Ticker, c.ProgressInterval, c.ProgressEvery)
}
