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
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the stress run configuration. A YAML file can override the
// defaults and command line flags override the file.
type Config struct {
	Count     uint64    `yaml:"count"`
	Seed      string    `yaml:"seed"`
	Store     string    `yaml:"store"`
	Sync      bool      `yaml:"sync"`
	Keep      bool      `yaml:"keep"`
	Allocator string    `yaml:"allocator"`
	Generator Generator `yaml:"generator"`
	Logging   Logging   `yaml:"logging"`
}

// Generator bounds the size of generated values.
type Generator struct {
	MaxStringLen int `yaml:"max_string_len"`
	MaxVectorLen int `yaml:"max_vector_len"`
	MaxArrayLen  int `yaml:"max_array_len"`
}

type Logging struct {
	Level string `yaml:"level"`
}

func DefaultConfig() *Config {
	return &Config{
		Count:     10_000,
		Allocator: "pool",
		Generator: Generator{
			MaxStringLen: 40,
			MaxVectorLen: 16,
			MaxArrayLen:  6,
		},
		Logging: Logging{
			Level: "info",
		},
	}
}

// LoadConfig reads path over the values already in cfg.
func LoadConfig(path string, cfg *Config) error {
	if !filepath.IsAbs(path) {
		abs, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("invalid config path: %w", err)
		}
		path = abs
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg.validate()
}

func (cfg *Config) validate() error {
	switch cfg.Allocator {
	case "heap", "pool":
	default:
		return fmt.Errorf("unknown allocator %q, want heap or pool", cfg.Allocator)
	}
	g := cfg.Generator
	if g.MaxStringLen < 0 || g.MaxVectorLen < 0 || g.MaxArrayLen < 0 {
		return fmt.Errorf("generator limits must not be negative")
	}
	if _, err := cfg.seed(); err != nil {
		return err
	}
	return nil
}

// seed parses the hex seed. Zero means seed from the clock.
func (cfg *Config) seed() (int64, error) {
	if len(cfg.Seed) == 0 {
		return 0, nil
	}
	seed, err := strconv.ParseInt(strings.TrimPrefix(cfg.Seed, "0x"), 16, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse seed %q (hex string): %w", cfg.Seed, err)
	}
	return seed, nil
}
