// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// hdrgen generates C preprocessor headers from manifests and snapshots.
package main

import (
	"fmt"
	"os"

	"github.com/bureau-foundation/hdrgen/cmd/hdrgen/commands"
)

func main() {
	if err := run(); err != nil {
		if exitErr, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(exitErr.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	return commands.Root().Execute(os.Args[1:])
}
