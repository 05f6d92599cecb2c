// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package highlight

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

const header = "#define VERSION \"1.0\"\n#define DEBUG\ntypedef int handle_t;\n"

func TestRenderAsciiIsVerbatim(t *testing.T) {
	var buffer bytes.Buffer
	if err := Render(&buffer, []byte(header), Options{Profile: termenv.Ascii}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := buffer.String(); got != header {
		t.Errorf("Render(Ascii) = %q, want %q", got, header)
	}
}

func TestRenderColorPreservesText(t *testing.T) {
	for _, profile := range []termenv.Profile{termenv.TrueColor, termenv.ANSI256, termenv.ANSI} {
		t.Run(FormatterName(profile), func(t *testing.T) {
			var buffer bytes.Buffer
			if err := Render(&buffer, []byte(header), Options{Profile: profile}); err != nil {
				t.Fatalf("Render: %v", err)
			}
			output := buffer.String()
			if !strings.Contains(output, "\x1b[") {
				t.Errorf("Render produced no escape sequences: %q", output)
			}
			if got := ansi.Strip(output); got != header {
				t.Errorf("stripped output = %q, want %q", got, header)
			}
		})
	}
}

func TestRenderUnknownStyleFallsBack(t *testing.T) {
	var buffer bytes.Buffer
	options := Options{Style: "no-such-style", Profile: termenv.ANSI256}
	if err := Render(&buffer, []byte(header), options); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := ansi.Strip(buffer.String()); got != header {
		t.Errorf("stripped output = %q, want %q", got, header)
	}
}

func TestFormatterName(t *testing.T) {
	tests := []struct {
		profile termenv.Profile
		want    string
	}{
		{termenv.TrueColor, "terminal16m"},
		{termenv.ANSI256, "terminal256"},
		{termenv.ANSI, "terminal16"},
		{termenv.Ascii, ""},
	}
	for _, test := range tests {
		if got := FormatterName(test.profile); got != test.want {
			t.Errorf("FormatterName(%v) = %q, want %q", test.profile, got, test.want)
		}
	}
}
