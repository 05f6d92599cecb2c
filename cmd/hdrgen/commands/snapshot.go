// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"errors"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/hdrgen/cmd/hdrgen/cli"
	"github.com/bureau-foundation/hdrgen/lib/snapshot"
)

func snapshotCommand(out streams) *cli.Command {
	var (
		globals     globalFlags
		output      string
		headerPath  string
		compression string
	)

	return &cli.Command{
		Name:    "snapshot",
		Summary: "Save header state to a snapshot file",
		Description: `Capture the header state INPUT describes (macros in order, text
blocks, include guard, destination path) in a compact binary snapshot.

A later build step can pass the snapshot to generate, render, digest,
or list without the original manifest.`,
		Usage: "hdrgen snapshot [flags] -o <snapshot> <input>",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("snapshot", pflag.ContinueOnError)
			globals.register(flagSet)
			flagSet.StringVarP(&output, "output", "o", "", "snapshot path (required)")
			flagSet.StringVar(&headerPath, "header", "", "header path recorded in the snapshot (overrides the manifest)")
			flagSet.StringVar(&compression, "compression", "", "none, lz4, or zstd (default from config)")
			return flagSet
		},
		Run: func(args []string) error {
			input, err := singleInput(args)
			if err != nil {
				return err
			}
			if output == "" {
				return errors.New("--output is required")
			}
			cfg, logger, err := globals.setup("snapshot")
			if err != nil {
				return err
			}

			if compression == "" {
				compression = cfg.Snapshot.Compression
			}
			tag, err := snapshot.ParseCompressionTag(compression)
			if err != nil {
				return err
			}

			builder, err := loadInput(input, headerPath, cfg)
			if err != nil {
				return err
			}
			if err := snapshot.WriteFile(output, builder, tag); err != nil {
				return err
			}
			logger.Info("snapshot written",
				"input", input,
				"snapshot", output,
				"path", builder.Path(),
				"compression", tag.String(),
				"macros", builder.Len(),
				"blocks", len(builder.Blocks()),
			)
			return nil
		},
		Examples: []cli.Example{
			{
				Description: "Snapshot a manifest for a later build step",
				Command:     "hdrgen snapshot -o build/config.hdrs config.yaml",
			},
		},
	}
}
