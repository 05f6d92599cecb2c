// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/hdrgen/cmd/hdrgen/cli"
	"github.com/bureau-foundation/hdrgen/lib/cheader"
	"github.com/bureau-foundation/hdrgen/lib/snapshot"
)

func generateCommand(out streams) *cli.Command {
	var (
		globals      globalFlags
		output       string
		force        bool
		check        bool
		snapshotPath string
		compression  string
	)

	return &cli.Command{
		Name:    "generate",
		Summary: "Write the header described by a manifest or snapshot",
		Description: `Render INPUT and write it to its output path.

The output path comes from --output, else the manifest's "output"
field (relative paths resolve against output_dir from the config, else
the manifest's directory), else the path stored in a snapshot. A
manifest with no output writes next to itself with a .h extension.

By default the file is only rewritten when its content changes, so
make-style builds keyed on timestamps do not rebuild needlessly. Use
--force to always write. Missing parent directories of the header are
created.

With --check nothing is written: the command exits 0 when the header on
disk is current and 1 when it is missing or stale.`,
		Usage: "hdrgen generate [flags] <input>",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("generate", pflag.ContinueOnError)
			globals.register(flagSet)
			flagSet.StringVarP(&output, "output", "o", "", "header path (overrides the manifest)")
			flagSet.BoolVar(&force, "force", false, "write even if the content is unchanged")
			flagSet.BoolVar(&check, "check", false, "exit 1 if the header is missing or stale; write nothing")
			flagSet.StringVar(&snapshotPath, "snapshot", "", "also write a snapshot of the header state to this path")
			flagSet.StringVar(&compression, "compression", "", "snapshot compression: none, lz4, zstd (default from config)")
			return flagSet
		},
		Run: func(args []string) error {
			input, err := singleInput(args)
			if err != nil {
				return err
			}
			cfg, logger, err := globals.setup("generate")
			if err != nil {
				return err
			}

			builder, err := loadInput(input, output, cfg)
			if err != nil {
				return err
			}
			logger = logger.With("input", input, "path", builder.Path())
			digest := builder.Digest()

			if check {
				current, err := cheader.DigestFile(builder.Path())
				if err != nil && !errors.Is(err, fs.ErrNotExist) {
					return err
				}
				if err == nil && current == digest {
					logger.Info("header is up to date", "digest", digest.String())
					return nil
				}
				logger.Warn("header is stale", "want_digest", digest.String())
				return &cli.ExitError{Code: 1}
			}

			if err := os.MkdirAll(filepath.Dir(builder.Path()), 0o755); err != nil {
				return fmt.Errorf("creating output directory for %s: %w", builder.Path(), err)
			}

			written := true
			if force || !cfg.OnlyIfChanged {
				err = builder.WriteFile()
			} else {
				written, err = builder.UpdateFile()
			}
			if err != nil {
				return err
			}

			if written {
				logger.Info("header written",
					"digest", digest.String(),
					"macros", builder.Len(),
					"blocks", len(builder.Blocks()),
				)
			} else {
				logger.Info("header unchanged", "digest", digest.String())
			}

			if snapshotPath != "" {
				if compression == "" {
					compression = cfg.Snapshot.Compression
				}
				tag, err := snapshot.ParseCompressionTag(compression)
				if err != nil {
					return err
				}
				if err := snapshot.WriteFile(snapshotPath, builder, tag); err != nil {
					return err
				}
				logger.Info("snapshot written", "snapshot", snapshotPath, "compression", tag.String())
			}
			return nil
		},
		Examples: []cli.Example{
			{
				Description: "Write the header named in the manifest",
				Command:     "hdrgen generate config.yaml",
			},
			{
				Description: "Write to an explicit path and keep a snapshot for later steps",
				Command:     "hdrgen generate -o build/config.h --snapshot build/config.hdrs config.jsonc",
			},
			{
				Description: "Verify a checked-in header in CI",
				Command:     "hdrgen generate --check config.yaml",
			},
		},
	}
}
