// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the hdrgen command tree.
package commands

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/bureau-foundation/hdrgen/cmd/hdrgen/cli"
	"github.com/bureau-foundation/hdrgen/lib/version"
)

// streams is where commands write their primary output. Logs always go
// to stderr through the command logger.
type streams struct {
	stdout io.Writer

	// terminal reports whether stdout is an interactive terminal.
	terminal bool
}

// Root builds the complete hdrgen command tree writing to the process's
// stdout.
func Root() *cli.Command {
	return newRoot(streams{
		stdout:   os.Stdout,
		terminal: term.IsTerminal(int(os.Stdout.Fd())),
	})
}

func newRoot(out streams) *cli.Command {
	return &cli.Command{
		Name: "hdrgen",
		Description: `hdrgen: C preprocessor header generator.

Build headers of #define directives and verbatim text blocks from YAML
or JSONC manifests, and hand header state between build steps as
compact snapshots.

INPUT is a manifest (.yaml, .yml, .json, .jsonc) or a snapshot (.hdrs).`,
		Subcommands: []*cli.Command{
			generateCommand(out),
			renderCommand(out),
			digestCommand(out),
			snapshotCommand(out),
			listCommand(out),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(args []string) error {
					fmt.Fprintf(out.stdout, "hdrgen %s\n", version.Full())
					return nil
				},
			},
		},
		Examples: []cli.Example{
			{
				Description: "Write the header a manifest describes",
				Command:     "hdrgen generate config.yaml",
			},
			{
				Description: "Fail a CI step when a checked-in header is stale",
				Command:     "hdrgen generate --check config.yaml",
			},
			{
				Description: "Preview a header with syntax highlighting",
				Command:     "hdrgen render config.yaml",
			},
		},
	}
}
