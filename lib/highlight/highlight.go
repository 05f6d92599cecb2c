// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package highlight renders C source (rendered headers) with terminal
// syntax highlighting. The escape-sequence flavor follows the termenv
// color profile of the destination; the Ascii profile writes the
// source unchanged.
package highlight

import (
	"fmt"
	"io"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/muesli/termenv"
)

// DefaultStyle is the chroma style used when Options.Style is empty.
const DefaultStyle = "monokai"

// Options controls highlighting.
type Options struct {
	// Style is a chroma style name. Unknown names fall back to
	// chroma's default style.
	Style string

	// Profile is the color capability of the destination.
	Profile termenv.Profile
}

// FormatterName returns the chroma formatter for a termenv profile, or
// "" when the profile supports no color.
func FormatterName(profile termenv.Profile) string {
	switch profile {
	case termenv.TrueColor:
		return "terminal16m"
	case termenv.ANSI256:
		return "terminal256"
	case termenv.ANSI:
		return "terminal16"
	default:
		return ""
	}
}

// Render writes source to w, highlighted as C.
func Render(w io.Writer, source []byte, options Options) error {
	formatterName := FormatterName(options.Profile)
	if formatterName == "" {
		_, err := w.Write(source)
		return err
	}

	lexer := lexers.Get("c")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	styleName := options.Style
	if styleName == "" {
		styleName = DefaultStyle
	}
	style := styles.Get(styleName)

	formatter := formatters.Get(formatterName)

	iterator, err := lexer.Tokenise(nil, string(source))
	if err != nil {
		return fmt.Errorf("tokenising header: %w", err)
	}
	if err := formatter.Format(w, style, iterator); err != nil {
		return fmt.Errorf("formatting header: %w", err)
	}
	return nil
}
