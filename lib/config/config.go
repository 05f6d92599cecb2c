// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for the hdrgen CLI.
//
// Configuration is loaded from a single file specified by:
//   - HDRGEN_CONFIG environment variable, or
//   - --config flag passed to the command
//
// There is no automatic discovery. When neither is given, the CLI uses
// [Default]. Environment variables never override values in the file;
// the only expansion performed is ${VAR} and ${VAR:-default} in
// output_dir.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"
)

// EnvironmentVariable names the variable consulted by [Load].
const EnvironmentVariable = "HDRGEN_CONFIG"

// Config is the complete hdrgen configuration.
type Config struct {
	// OutputDir is the base directory for relative manifest output
	// paths. Empty means relative to the manifest's own directory.
	OutputDir string `yaml:"output_dir"`

	// OnlyIfChanged skips rewriting headers whose content on disk
	// already matches. Default: true.
	OnlyIfChanged bool `yaml:"only_if_changed"`

	Snapshot SnapshotConfig `yaml:"snapshot"`
	Render   RenderConfig   `yaml:"render"`
	Log      LogConfig      `yaml:"log"`
}

// SnapshotConfig configures snapshot files.
type SnapshotConfig struct {
	// Compression is none, lz4, or zstd. Default: zstd.
	Compression string `yaml:"compression"`
}

// RenderConfig configures terminal output of rendered headers.
type RenderConfig struct {
	// Color is auto, always, or never. Default: auto.
	Color string `yaml:"color"`

	// Style is a chroma style name. Default: monokai.
	Style string `yaml:"style"`
}

// LogConfig configures the CLI logger.
type LogConfig struct {
	// Level is debug, info, warn, or error. Default: info.
	Level string `yaml:"level"`

	// Format is auto (text on terminals, JSON otherwise), text, or
	// json. Default: auto.
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is given. It is
// also the base that a loaded file is merged into.
func Default() *Config {
	return &Config{
		OnlyIfChanged: true,
		Snapshot: SnapshotConfig{
			Compression: "zstd",
		},
		Render: RenderConfig{
			Color: "auto",
			Style: "monokai",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "auto",
		},
	}
}

// Load loads configuration from the file named by HDRGEN_CONFIG. If the
// variable is unset, Load returns [Default].
func Load() (*Config, error) {
	path := os.Getenv(EnvironmentVariable)
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile loads configuration from path, merged over [Default], and
// validates it.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.OutputDir = expandVars(cfg.OutputDir, map[string]string{
		"HOME": os.Getenv("HOME"),
	})

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// varPattern matches ${VAR} and ${VAR:-default}.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		name, defaultValue := parts[1], parts[2]

		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks every enumerated field and reports all problems.
func (c *Config) Validate() error {
	var errs []error

	check := func(field, value string, allowed ...string) {
		for _, candidate := range allowed {
			if value == candidate {
				return
			}
		}
		errs = append(errs, fmt.Errorf("%s must be one of %v, got %q", field, allowed, value))
	}

	check("snapshot.compression", c.Snapshot.Compression, "none", "lz4", "zstd")
	check("render.color", c.Render.Color, "auto", "always", "never")
	check("log.level", c.Log.Level, "debug", "info", "warn", "error")
	check("log.format", c.Log.Format, "auto", "text", "json")

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// LogLevel returns the slog level named by Log.Level.
func (c *Config) LogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// ResolveOutput returns the path a manifest's output should be written
// to. Absolute paths are returned unchanged. Relative paths are joined
// to OutputDir when it is set, otherwise to manifestDir.
func (c *Config) ResolveOutput(output, manifestDir string) string {
	if output == "" || filepath.IsAbs(output) {
		return output
	}
	if c.OutputDir != "" {
		return filepath.Join(c.OutputDir, output)
	}
	return filepath.Join(manifestDir, output)
}
