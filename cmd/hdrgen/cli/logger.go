// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// NewCommandLogger creates the structured logger for CLI commands,
// writing to stderr. Format "auto" uses slog.TextHandler when stderr is
// a terminal and slog.JSONHandler when it is piped or redirected (build
// systems, CI), so logs stay machine-parseable in pipelines. "text" and
// "json" force one handler.
//
// Callers scope the logger with command context:
//
//	logger := cli.NewCommandLogger(slog.LevelInfo, "auto").With(
//	    "command", "generate",
//	    "manifest", manifestPath,
//	)
func NewCommandLogger(level slog.Level, format string) *slog.Logger {
	return newLogger(os.Stderr, term.IsTerminal(int(os.Stderr.Fd())), level, format)
}

func newLogger(w io.Writer, terminal bool, level slog.Level, format string) *slog.Logger {
	options := &slog.HandlerOptions{Level: level}

	text := terminal
	switch format {
	case "text":
		text = true
	case "json":
		text = false
	}

	var handler slog.Handler
	if text {
		handler = slog.NewTextHandler(w, options)
	} else {
		handler = slog.NewJSONHandler(w, options)
	}
	return slog.New(handler)
}
