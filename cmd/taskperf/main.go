// Command taskperf times the completion-handle, chain, loop and sequence
// subjects outside of `go test -bench`.
//
// Usage:
//
//	go run ./cmd/taskperf list
//	go run ./cmd/taskperf run -n 100000 TenSyncTaskOfTask TenSyncValueOfValue
//	go run ./cmd/taskperf run --config suite.yaml
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/randomizedcoder/task-benchmarks/internal/cancel"
	"github.com/randomizedcoder/task-benchmarks/internal/config"
	"github.com/randomizedcoder/task-benchmarks/internal/runner"
	"github.com/randomizedcoder/task-benchmarks/internal/subject"
)

var errFailed = errors.New("one or more subjects failed")

type options struct {
	configPath string
	iterations int
	warmup     int
	bufferSize int
	writes     int
	length     int
	x          int
	timeout    time.Duration
	logLevel   string
	dir        string
}

func main() {
	root := &cobra.Command{
		Use:           "taskperf",
		Short:         "Benchmark completion handles, suspension chains and sequences",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(listCmd(), runCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List benchmark subjects",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			runner.NewReporter(cmd.OutOrStdout()).List(runner.Registry())
		},
	}
}

func runCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "run [flags] [subjects...]",
		Short: "Time subjects (all of them when none are named)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, &opts, args)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.configPath, "config", "", "YAML suite file")
	f.IntVarP(&opts.iterations, "iterations", "n", 0, "measured invocations per subject")
	f.IntVar(&opts.warmup, "warmup", -1, "untimed invocations per subject")
	f.IntVar(&opts.bufferSize, "buffer-size", 0, "bytes per write in the write-loop subjects")
	f.IntVar(&opts.writes, "write-iterations", 0, "writes per write-loop invocation")
	f.IntVar(&opts.length, "length", 0, "count-loop length")
	f.IntVar(&opts.x, "x", 0, "Values parameter")
	f.DurationVar(&opts.timeout, "timeout", 0, "stop after this long (e.g. 30s)")
	f.StringVar(&opts.logLevel, "log-level", "info", "debug, info, warn or error")
	f.StringVar(&opts.dir, "dir", "", "directory for the write-loop file")

	return cmd
}

func run(cmd *cobra.Command, opts *options, args []string) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(opts.logLevel)); err != nil {
		return fmt.Errorf("--log-level: %w", err)
	}
	log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	cfg, err := loadConfig(cmd, opts, args)
	if err != nil {
		return err
	}

	subjects, err := runner.Select(cfg.Subjects)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if cfg.Timeout > 0 {
		var cancelTimeout context.CancelFunc
		ctx, cancelTimeout = context.WithTimeout(ctx, cfg.Timeout)
		defer cancelTimeout()
	}

	c, err := cancel.New(cfg.Canceler, ctx)
	if err != nil {
		return err
	}
	progress, err := cfg.NewTicker()
	if err != nil {
		return err
	}
	defer progress.Stop()

	r := runner.New(cfg.Warmup, cfg.Iterations)
	r.Canceler = c
	r.Progress = progress
	r.Log = log

	log.Info("starting", "subjects", len(subjects), "warmup", cfg.Warmup, "iterations", cfg.Iterations,
		"ticker", cfg.Ticker, "canceler", cfg.Canceler)

	results := r.Run(subjects, runner.Params{
		Iterations: cfg.Params.Iterations,
		BufferSize: cfg.Params.BufferSize,
		Length:     cfg.Params.Length,
		X:          cfg.Params.X,
		FS:         subject.OSFS{Dir: cfg.Dir},
	})
	runner.NewReporter(cmd.OutOrStdout()).Report(results)

	for _, res := range results {
		if !res.Success {
			return errFailed
		}
	}
	return nil
}

// loadConfig reads the suite file, if any, then applies flags the user
// set explicitly and positional subject names.
func loadConfig(cmd *cobra.Command, opts *options, args []string) (config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		var err error
		if cfg, err = config.Load(opts.configPath); err != nil {
			return config.Config{}, err
		}
	}

	f := cmd.Flags()
	if f.Changed("iterations") {
		cfg.Iterations = opts.iterations
	}
	if f.Changed("warmup") {
		cfg.Warmup = opts.warmup
	}
	if f.Changed("buffer-size") {
		cfg.Params.BufferSize = opts.bufferSize
	}
	if f.Changed("write-iterations") {
		cfg.Params.Iterations = opts.writes
	}
	if f.Changed("length") {
		cfg.Params.Length = opts.length
	}
	if f.Changed("x") {
		cfg.Params.X = opts.x
	}
	if f.Changed("timeout") {
		cfg.Timeout = opts.timeout
	}
	if f.Changed("dir") {
		cfg.Dir = opts.dir
	}
	if len(args) > 0 {
		cfg.Subjects = args
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
