// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/hdrgen/cmd/hdrgen/cli"
	"github.com/bureau-foundation/hdrgen/lib/cheader"
	"github.com/bureau-foundation/hdrgen/lib/config"
	"github.com/bureau-foundation/hdrgen/lib/manifest"
	"github.com/bureau-foundation/hdrgen/lib/snapshot"
)

// globalFlags are registered on every command that reads input.
type globalFlags struct {
	configPath string
}

func (g *globalFlags) register(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&g.configPath, "config", "", "path to hdrgen.yaml (default: $"+config.EnvironmentVariable+", else built-in defaults)")
}

// setup loads configuration and creates the command logger.
func (g *globalFlags) setup(command string) (*config.Config, *slog.Logger, error) {
	var cfg *config.Config
	var err error
	if g.configPath != "" {
		cfg, err = config.LoadFile(g.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, nil, err
	}

	logger := cli.NewCommandLogger(cfg.LogLevel(), cfg.Log.Format).With("command", command)
	return cfg, logger, nil
}

// singleInput returns the one positional argument every input-reading
// command takes.
func singleInput(args []string) (string, error) {
	switch len(args) {
	case 1:
		return args[0], nil
	case 0:
		return "", fmt.Errorf("INPUT is required (a manifest or %s snapshot)", snapshot.Extension)
	default:
		return "", fmt.Errorf("expected one INPUT, got %d arguments", len(args))
	}
}

// loadInput builds a header from a manifest or restores one from a
// snapshot. A non-empty outputOverride replaces the destination path;
// otherwise manifest outputs are resolved through cfg. A manifest with
// no output writes next to itself: config.yaml becomes config.h.
func loadInput(path, outputOverride string, cfg *config.Config) (*cheader.Builder, error) {
	if strings.EqualFold(filepath.Ext(path), snapshot.Extension) {
		builder, err := snapshot.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if outputOverride != "" {
			builder = builder.Retarget(outputOverride)
		}
		return builder, nil
	}

	parsed, err := manifest.ReadFile(path)
	if err != nil {
		return nil, err
	}

	output := outputOverride
	if output == "" {
		output = cfg.ResolveOutput(parsed.Output, filepath.Dir(path))
	}
	if output == "" {
		output = strings.TrimSuffix(path, filepath.Ext(path)) + ".h"
	}
	builder, err := parsed.Build(output)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return builder, nil
}
