// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/hdrgen/cmd/hdrgen/cli"
	"github.com/bureau-foundation/hdrgen/lib/highlight"
)

func renderCommand(out streams) *cli.Command {
	var (
		globals globalFlags
		color   string
		style   string
	)

	return &cli.Command{
		Name:    "render",
		Summary: "Print the header to stdout",
		Description: `Print the header INPUT describes without writing it.

Color is applied when stdout is a terminal (--color auto), always
(--color always), or never (--color never). The escape sequences match
the terminal's color depth as reported by COLORTERM and TERM.`,
		Usage: "hdrgen render [flags] <input>",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("render", pflag.ContinueOnError)
			globals.register(flagSet)
			flagSet.StringVar(&color, "color", "", "auto, always, or never (default from config)")
			flagSet.StringVar(&style, "style", "", "chroma style name (default from config)")
			return flagSet
		},
		Run: func(args []string) error {
			input, err := singleInput(args)
			if err != nil {
				return err
			}
			cfg, logger, err := globals.setup("render")
			if err != nil {
				return err
			}

			if color == "" {
				color = cfg.Render.Color
			}
			if style == "" {
				style = cfg.Render.Style
			}
			profile, err := colorProfile(out, color)
			if err != nil {
				return err
			}

			builder, err := loadInput(input, "", cfg)
			if err != nil {
				return err
			}
			logger.Debug("rendering header",
				"input", input,
				"style", style,
				"formatter", highlight.FormatterName(profile),
			)

			return highlight.Render(out.stdout, builder.Bytes(), highlight.Options{
				Style:   style,
				Profile: profile,
			})
		},
		Examples: []cli.Example{
			{
				Description: "Preview a header",
				Command:     "hdrgen render config.yaml",
			},
			{
				Description: "Force color through a pager",
				Command:     "hdrgen render --color always config.yaml | less -R",
			},
		},
	}
}

// colorProfile resolves a --color mode to the termenv profile used for
// highlighting. "always" on an output whose environment reports no color
// support uses 256 colors.
func colorProfile(out streams, mode string) (termenv.Profile, error) {
	switch mode {
	case "never":
		return termenv.Ascii, nil
	case "auto":
		if !out.terminal {
			return termenv.Ascii, nil
		}
		return detectedProfile(out.stdout), nil
	case "always":
		profile := detectedProfile(out.stdout)
		if profile == termenv.Ascii {
			profile = termenv.ANSI256
		}
		return profile, nil
	default:
		return termenv.Ascii, fmt.Errorf("--color must be auto, always, or never, got %q", mode)
	}
}

func detectedProfile(w io.Writer) termenv.Profile {
	return termenv.NewOutput(w).EnvColorProfile()
}
