/*
 * Fastbin - Zero-copy Binary Records
 *
 * Copyright Flow Foundation
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *   http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Command stress builds random records, arrays and variants, checks them
// against the values they were built from, and round trips them through
// storage until the requested count is reached or it is interrupted.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/onflow/fastbin"
	"github.com/onflow/fastbin/storage"
	"github.com/onflow/fastbin/test_utils"
)

var (
	configPath string
	verbose    bool
	flagConfig = DefaultConfig()
	rootCmd    *cobra.Command
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd = &cobra.Command{
		Use:   "stress",
		Short: "Stress test fastbin records, arrays and variants",
		Long: `Builds random fastbin objects, checks every field against the generated
values, verifies the bytes, and round trips each object through storage.

Examples:
  stress record --count 100000
  stress array --seed 0x5eed --store /tmp/fastbin
  stress variant --config stress.yaml`,
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	flags.Uint64VarP(&flagConfig.Count, "count", "n", flagConfig.Count, "number of objects to build, 0 runs until interrupted")
	flags.StringVar(&flagConfig.Seed, "seed", "", "seed for prng in hex (default is Unix time)")
	flags.StringVar(&flagConfig.Store, "store", "", "pebble directory (default is in-memory storage)")
	flags.BoolVar(&flagConfig.Sync, "sync", false, "sync pebble writes")
	flags.BoolVar(&flagConfig.Keep, "keep", false, "keep stored objects instead of removing them")
	flags.StringVar(&flagConfig.Allocator, "allocator", flagConfig.Allocator, "default allocator, heap or pool")
	flags.BoolVarP(&verbose, "verbose", "v", false, "log at debug level")

	rootCmd.AddCommand(
		newStressCmd("record", "Stress records of every test layout", (*runner).recordStep),
		newStressCmd("array", "Stress arrays of fixed and variable elements", (*runner).arrayStep),
		newStressCmd("variant", "Stress variants of every alternative kind", (*runner).variantStep),
	)
}

func newStressCmd(kind, short string, step func(*runner) error) *cobra.Command {
	return &cobra.Command{
		Use:   kind,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return runStress(cmd.Context(), kind, cfg, step)
		},
	}
}

// loadConfig layers the defaults, the config file and the flags set on the
// command line, in that order.
func loadConfig(cmd *cobra.Command) (*Config, error) {
	cfg := DefaultConfig()
	if configPath != "" {
		if err := LoadConfig(configPath, cfg); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("count") {
		cfg.Count = flagConfig.Count
	}
	if flags.Changed("seed") {
		cfg.Seed = flagConfig.Seed
	}
	if flags.Changed("store") {
		cfg.Store = flagConfig.Store
	}
	if flags.Changed("sync") {
		cfg.Sync = flagConfig.Sync
	}
	if flags.Changed("keep") {
		cfg.Keep = flagConfig.Keep
	}
	if flags.Changed("allocator") {
		cfg.Allocator = flagConfig.Allocator
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}
	return zc.Build()
}

func newRand(logger *zap.Logger, seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	logger.Info("rand seed", zap.String("seed", fmt.Sprintf("0x%x", seed)))
	return rand.New(rand.NewSource(seed))
}

func openBaseStorage(cfg *Config) (storage.BaseStorage, func() error, error) {
	if cfg.Store == "" {
		return storage.NewInMemBaseStorage(), func() error { return nil }, nil
	}
	base, err := storage.OpenPebbleBaseStorage(cfg.Store, nil)
	if err != nil {
		return nil, nil, err
	}
	base.SetSync(cfg.Sync)
	return base, base.Close, nil
}

func runStress(ctx context.Context, kind string, cfg *Config, step func(*runner) error) (err error) {
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	fastbin.SetLogger(logger.Named("fastbin"))
	storage.SetLogger(logger)

	if cfg.Allocator == "pool" {
		fastbin.SetDefaultAllocator(fastbin.NewPoolAllocator())
	}

	base, closeBase, err := openBaseStorage(cfg)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer func() {
		if cerr := closeBase(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close storage: %w", cerr)
		}
	}()

	reg := prometheus.NewRegistry()
	store := storage.NewStorage(base, storage.NewMetrics(reg))

	seed, _ := cfg.seed()
	r := newRand(logger, seed)
	gen := test_utils.NewGenerator(r)
	gen.MaxStringLen = cfg.Generator.MaxStringLen
	gen.MaxVectorLen = cfg.Generator.MaxVectorLen
	gen.MaxArrayLen = cfg.Generator.MaxArrayLen

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	st := newStatus(kind)
	statusCtx, stopStatus := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		updateStatus(statusCtx, st)
	}()

	logger.Info("starting stress test",
		zap.String("kind", kind),
		zap.Uint64("count", cfg.Count),
		zap.String("store", cfg.Store),
		zap.String("allocator", cfg.Allocator),
	)

	run := &runner{
		cfg:    cfg,
		r:      r,
		gen:    gen,
		store:  store,
		status: st,
		logger: logger,
	}
	err = run.run(ctx, func() error { return step(run) })

	stopStatus()
	<-done

	if err != nil {
		logger.Error("stress test failed", zap.Error(err))
		return err
	}

	families, gerr := reg.Gather()
	if gerr == nil {
		for _, mf := range families {
			for _, m := range mf.GetMetric() {
				c := m.GetCounter()
				if c == nil {
					continue
				}
				fields := []zap.Field{zap.String("name", mf.GetName()), zap.Float64("value", c.GetValue())}
				for _, lp := range m.GetLabel() {
					fields = append(fields, zap.String(lp.GetName(), lp.GetValue()))
				}
				logger.Info("metric", fields...)
			}
		}
	}
	logger.Info("stored objects", zap.Int("count", store.Count()))
	return nil
}
