// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/hdrgen/cmd/hdrgen/cli"
)

func listCommand(out streams) *cli.Command {
	var globals globalFlags

	return &cli.Command{
		Name:    "list",
		Summary: "List macros and block count",
		Description: `List the macros INPUT defines, in output order, followed by the
number of text blocks and the destination path.`,
		Usage: "hdrgen list [flags] <input>",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("list", pflag.ContinueOnError)
			globals.register(flagSet)
			return flagSet
		},
		Run: func(args []string) error {
			input, err := singleInput(args)
			if err != nil {
				return err
			}
			cfg, _, err := globals.setup("list")
			if err != nil {
				return err
			}
			builder, err := loadInput(input, "", cfg)
			if err != nil {
				return err
			}

			renderer := lipgloss.NewRenderer(out.stdout)
			macros := builder.Macros()

			width := 0
			for _, macro := range macros {
				width = max(width, lipgloss.Width(macro.Name))
			}
			nameStyle := renderer.NewStyle().Bold(true).Width(width + 2)
			faint := renderer.NewStyle().Faint(true)

			for _, macro := range macros {
				value := macro.Value
				if !macro.HasValue {
					value = faint.Render("(no value)")
				}
				fmt.Fprintf(out.stdout, "%s%s\n", nameStyle.Render(macro.Name), value)
			}

			summary := fmt.Sprintf("%d macros, %d blocks -> %s", len(macros), len(builder.Blocks()), builder.Path())
			fmt.Fprintln(out.stdout, faint.Render(summary))
			return nil
		},
	}
}
