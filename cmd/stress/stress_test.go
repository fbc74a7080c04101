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

package main

import (
	"context"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/onflow/fastbin/storage"
	"github.com/onflow/fastbin/test_utils"
)

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "stress.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
count: 42
seed: "0x5eed"
allocator: heap
generator:
  max_array_len: 2
logging:
  level: debug
`)

	cfg := DefaultConfig()
	require.NoError(t, LoadConfig(path, cfg))

	require.Equal(t, uint64(42), cfg.Count)
	require.Equal(t, "heap", cfg.Allocator)
	require.Equal(t, 2, cfg.Generator.MaxArrayLen)
	require.Equal(t, 40, cfg.Generator.MaxStringLen)
	require.Equal(t, "debug", cfg.Logging.Level)

	seed, err := cfg.seed()
	require.NoError(t, err)
	require.Equal(t, int64(0x5eed), seed)
}

func TestLoadConfigInvalid(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		err := LoadConfig(filepath.Join(t.TempDir(), "none.yaml"), DefaultConfig())
		require.ErrorContains(t, err, "failed to read config file")
	})

	t.Run("syntax", func(t *testing.T) {
		err := LoadConfig(writeConfig(t, "count: [1"), DefaultConfig())
		require.ErrorContains(t, err, "failed to parse config file")
	})

	t.Run("allocator", func(t *testing.T) {
		err := LoadConfig(writeConfig(t, "allocator: arena"), DefaultConfig())
		require.ErrorContains(t, err, "unknown allocator")
	})

	t.Run("seed", func(t *testing.T) {
		err := LoadConfig(writeConfig(t, "seed: xyz"), DefaultConfig())
		require.ErrorContains(t, err, "failed to parse seed")
	})
}

func newTestRunner(t *testing.T, count uint64) (*runner, *storage.Storage) {
	cfg := DefaultConfig()
	cfg.Count = count

	r := rand.New(rand.NewSource(7))
	store := storage.NewStorage(storage.NewInMemBaseStorage(), storage.NewMetrics(prometheus.NewRegistry()))

	return &runner{
		cfg:    cfg,
		r:      r,
		gen:    test_utils.NewGenerator(r),
		store:  store,
		status: newStatus("test"),
		logger: zaptest.NewLogger(t),
	}, store
}

func TestRunnerSteps(t *testing.T) {
	steps := map[string]func(*runner) error{
		"record":  (*runner).recordStep,
		"array":   (*runner).arrayStep,
		"variant": (*runner).variantStep,
	}

	for name, step := range steps {
		t.Run(name, func(t *testing.T) {
			run, store := newTestRunner(t, 200)

			err := run.run(context.Background(), func() error { return step(run) })
			require.NoError(t, err)

			require.Equal(t, uint64(200), run.status.built)
			require.Equal(t, uint64(200), run.status.verified)
			require.Equal(t, uint64(200), run.status.retrieved)
			require.Equal(t, 0, store.Count())
		})
	}
}

func TestRunnerKeep(t *testing.T) {
	run, store := newTestRunner(t, 10)
	run.cfg.Keep = true

	require.NoError(t, run.run(context.Background(), run.recordStep))
	require.Equal(t, 10, store.Count())
}

func TestRunnerCanceled(t *testing.T) {
	run, _ := newTestRunner(t, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, run.run(ctx, run.recordStep))
	require.Equal(t, uint64(0), run.status.built)
}
