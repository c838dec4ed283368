// Copyright 2021 Silvio Böhler
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads the command line configuration.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v2"
)

// Environment variables overriding the configuration file.
const (
	EnvLedger = "TIGHT_LEDGER"
	EnvColor  = "TIGHT_COLOR"
)

// MaxDigits is the largest supported number of decimal digits in reports.
const MaxDigits = 8

// Config holds the settings shared by all commands.
type Config struct {
	// Ledger is the path of the ledger file.
	Ledger string `yaml:"ledger"`
	// Color enables colored output.
	Color bool `yaml:"color"`
	// Digits is the number of decimal digits in reports.
	Digits int32 `yaml:"digits"`
	// Aligned selects calendar windows in status reports.
	Aligned bool `yaml:"aligned"`
}

// Dir returns the directory holding the configuration file and, by
// default, the ledger.
func Dir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(dir, "tight")
}

// DefaultPath returns the default path of the configuration file.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// Default returns the configuration used in the absence of a file.
func Default() *Config {
	return &Config{
		Ledger: filepath.Join(Dir(), "ledger.yaml"),
		Color:  true,
		Digits: 2,
	}
}

// LoadEnv loads environment variables from the given .env files, or from
// .env in the working directory if none are given. Missing files are
// ignored.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return nil
}

// Load reads the configuration file at path on top of the defaults and
// applies the environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	f, err := os.Open(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		defer f.Close()
		if err := cfg.Decode(f); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Decode reads YAML from r into the configuration. Unknown keys are
// rejected.
func (c *Config) Decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.SetStrict(true)
	if err := dec.Decode(c); err != nil && err != io.EOF {
		return err
	}
	return nil
}

// ApplyEnv overrides settings with the environment variables found by
// lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvLedger); ok && v != "" {
		c.Ledger = v
	}
	if v, ok := lookup(EnvColor); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: invalid boolean %q", EnvColor, v)
		}
		c.Color = b
	}
	return nil
}

// Validate checks the configuration and reports all problems at once.
func (c *Config) Validate() error {
	var err error
	if strings.TrimSpace(c.Ledger) == "" {
		err = multierr.Append(err, errors.New("ledger path is empty"))
	} else if ext := filepath.Ext(c.Ledger); ext != ".yaml" && ext != ".yml" {
		err = multierr.Append(err, fmt.Errorf("ledger %q: expected a .yaml or .yml file", c.Ledger))
	}
	if c.Digits < 0 || c.Digits > MaxDigits {
		err = multierr.Append(err, fmt.Errorf("digits must be between 0 and %d, got %d", MaxDigits, c.Digits))
	}
	return err
}
