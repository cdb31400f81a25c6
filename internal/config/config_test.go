package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/randomizedcoder/task-benchmarks/internal/config"
	"github.com/randomizedcoder/task-benchmarks/internal/tick"
)

func TestDefault_Valid(t *testing.T) {
	if err := config.Default().Validate(); err != nil {
		t.Fatalf("expected default config to validate, got %v", err)
	}
}

func TestParse_OverridesDefaults(t *testing.T) {
	data := []byte(`
iterations: 50
timeout: 30s
ticker: atomic
params:
  buffer_size: 4096
subjects: [CountLoop, TenYieldTask]
`)
	cfg, err := config.Parse(data)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Iterations != 50 {
		t.Errorf("expected Iterations = 50, got %d", cfg.Iterations)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("expected Timeout = 30s, got %s", cfg.Timeout)
	}
	if cfg.Ticker != tick.KindAtomic {
		t.Errorf("expected Ticker = atomic, got %q", cfg.Ticker)
	}
	if cfg.Params.BufferSize != 4096 {
		t.Errorf("expected BufferSize = 4096, got %d", cfg.Params.BufferSize)
	}
	// untouched keys keep their defaults
	def := config.Default()
	if cfg.Warmup != def.Warmup {
		t.Errorf("expected default Warmup %d, got %d", def.Warmup, cfg.Warmup)
	}
	if cfg.Params.Iterations != def.Params.Iterations {
		t.Errorf("expected default params.iterations %d, got %d", def.Params.Iterations, cfg.Params.Iterations)
	}
	if want := []string{"CountLoop", "TenYieldTask"}; !reflect.DeepEqual(cfg.Subjects, want) {
		t.Errorf("expected Subjects = %v, got %v", want, cfg.Subjects)
	}
}

func TestParse_Invalid(t *testing.T) {
	testCases := []struct {
		name string
		yaml string
	}{
		{"ZeroIterations", "iterations: 0"},
		{"NegativeWarmup", "warmup: -1"},
		{"ZeroBuffer", "params: {buffer_size: 0}"},
		{"ZeroWrites", "params: {iterations: 0}"},
		{"NegativeLength", "params: {length: -5}"},
		{"UnknownTicker", "ticker: tsc"},
		{"UnknownCanceler", "canceler: channel"},
		{"ZeroProgress", "progress_interval: 0s"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := config.Parse([]byte(tc.yaml)); !errors.Is(err, config.ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	if _, err := config.Parse([]byte("iterations: [")); err == nil {
		t.Error("expected YAML syntax error")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suite.yaml")
	if err := os.WriteFile(path, []byte("warmup: 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Warmup != 3 {
		t.Errorf("expected Warmup = 3, got %d", cfg.Warmup)
	}

	if _, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected ErrNotExist for missing file, got %v", err)
	}
}

func TestNewTicker(t *testing.T) {
	cfg := config.Default()
	tk, err := cfg.NewTicker()
	if err != nil {
		t.Fatal(err)
	}
	defer tk.Stop()
	if _, ok := tk.(*tick.BatchTicker); !ok {
		t.Errorf("expected default ticker to be *tick.BatchTicker, got %T", tk)
	}
}
