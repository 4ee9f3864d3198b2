// Copyright 2026 The Emberon Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for the emberon CLI.
//
// Configuration comes from a single YAML file named by:
//   - the EMBERON_CONFIG environment variable, or
//   - the --config flag passed to a command.
//
// There are no fallbacks or automatic discovery; with neither set, the
// built-in defaults apply. This keeps behavior deterministic with no
// hidden overrides.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TrustMode selects how the decoder handles an integrity digest
// mismatch.
type TrustMode string

const (
	// TrustPermissive returns the recovered file with verified=false
	// and leaves the decision to the operator.
	TrustPermissive TrustMode = "permissive"

	// TrustStrict treats a digest mismatch as a fatal decode error.
	TrustStrict TrustMode = "strict"
)

// Config holds the CLI's settings.
type Config struct {
	// OutputDir is the directory decoded files are written to.
	// Empty means the current working directory.
	OutputDir string `yaml:"output_dir"`

	// Trust selects the integrity policy (permissive or strict).
	Trust TrustMode `yaml:"trust"`

	// Progress controls whether decode commands render phase
	// progress on stderr.
	Progress bool `yaml:"progress"`
}

// Default returns the built-in configuration: current directory
// output, permissive trust, progress enabled.
func Default() *Config {
	return &Config{
		Trust:    TrustPermissive,
		Progress: true,
	}
}

// Load reads and validates the config file at path. When path is
// empty, the EMBERON_CONFIG environment variable is consulted; when
// that is also empty, the defaults are returned without touching the
// filesystem.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("EMBERON_CONFIG")
	}
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Trust {
	case TrustPermissive, TrustStrict:
		return nil
	default:
		return fmt.Errorf("unknown trust mode %q (expected %q or %q)",
			c.Trust, TrustPermissive, TrustStrict)
	}
}
