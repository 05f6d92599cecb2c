// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/hdrgen/cmd/hdrgen/cli"
)

func digestCommand(out streams) *cli.Command {
	var globals globalFlags

	return &cli.Command{
		Name:    "digest",
		Summary: "Print the content digest of the header",
		Description: `Print the hex digest of the header INPUT describes.

The digest is a keyed BLAKE3 hash of the exact bytes generate would
write. Two inputs with the same digest produce identical headers.`,
		Usage: "hdrgen digest [flags] <input>",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("digest", pflag.ContinueOnError)
			globals.register(flagSet)
			return flagSet
		},
		Run: func(args []string) error {
			input, err := singleInput(args)
			if err != nil {
				return err
			}
			cfg, _, err := globals.setup("digest")
			if err != nil {
				return err
			}
			builder, err := loadInput(input, "", cfg)
			if err != nil {
				return err
			}
			fmt.Fprintln(out.stdout, builder.Digest())
			return nil
		},
	}
}
