// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cheader

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

func render(t *testing.T, builder *Builder) string {
	t.Helper()
	var buffer bytes.Buffer
	written, err := builder.WriteTo(&buffer)
	if err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	if written != int64(buffer.Len()) {
		t.Errorf("WriteTo reported %d bytes, buffer has %d", written, buffer.Len())
	}
	return buffer.String()
}

func TestDefineValuedAndValueless(t *testing.T) {
	builder := New("config.h")
	builder.Define("VERSION", `"1.0"`).Define("DEBUG", nil)

	got := render(t, builder)
	want := "#define VERSION \"1.0\"\n#define DEBUG\n"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestRedefineKeepsPosition(t *testing.T) {
	builder := New("config.h")
	builder.Define("A", "1")
	builder.Define("B", "2")
	builder.Define("A", "3")

	got := render(t, builder)
	want := "#define A 3\n#define B 2\n"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
	if builder.Len() != 2 {
		t.Errorf("Len() = %d, want 2", builder.Len())
	}
}

func TestRedefineManyTimesOneLinePerName(t *testing.T) {
	builder := New("config.h")
	names := []string{"ALPHA", "BRAVO", "CHARLIE", "DELTA"}
	for round := 0; round < 5; round++ {
		for _, name := range names {
			builder.Define(name, round)
		}
	}

	lines := strings.Split(strings.TrimSuffix(render(t, builder), "\n"), "\n")
	if len(lines) != len(names) {
		t.Fatalf("got %d lines, want %d: %q", len(lines), len(names), lines)
	}
	for i, name := range names {
		want := "#define " + name + " 4"
		if lines[i] != want {
			t.Errorf("line %d = %q, want %q", i, lines[i], want)
		}
	}
}

func TestRedefineValuedToValueless(t *testing.T) {
	builder := New("config.h")
	builder.Define("FEATURE", "1").Define("FEATURE", nil)

	if got, want := render(t, builder), "#define FEATURE\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

type level int

func (l level) String() string { return []string{"LOW", "HIGH"}[l] }

func TestDefineValueConversion(t *testing.T) {
	text := "from-pointer"
	var nilText *string
	var nilLevel *level
	var nilDuration *time.Duration

	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"string", "abc", "#define X abc\n"},
		{"empty string", "", "#define X \n"},
		{"int", 42, "#define X 42\n"},
		{"bool", true, "#define X true\n"},
		{"float", 1.5, "#define X 1.5\n"},
		{"stringer", level(1), "#define X HIGH\n"},
		{"pointer", &text, "#define X from-pointer\n"},
		{"nil pointer", nilText, "#define X\n"},
		{"nil stringer pointer", nilLevel, "#define X\n"},
		{"nil duration pointer", nilDuration, "#define X\n"},
		{"duration", 1500 * time.Millisecond, "#define X 1.5s\n"},
		{"stringer pointer", &[]level{1}[0], "#define X HIGH\n"},
		{"nil", nil, "#define X\n"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			builder := New("x.h").Define("X", test.value)
			if got := render(t, builder); got != test.want {
				t.Errorf("Define(X, %v) rendered %q, want %q", test.value, got, test.want)
			}
		})
	}
}

func TestValuelessHasNoTrailingSpace(t *testing.T) {
	got := render(t, New("x.h").Define("NAME", nil))
	if strings.HasSuffix(strings.TrimSuffix(got, "\n"), " ") {
		t.Errorf("valueless macro has trailing space: %q", got)
	}
}

func TestLookupAndMacros(t *testing.T) {
	builder := New("x.h").Define("A", "1").Define("B", nil)

	macro, ok := builder.Lookup("A")
	if !ok || macro != (Macro{Name: "A", Value: "1", HasValue: true}) {
		t.Errorf("Lookup(A) = %+v, %v", macro, ok)
	}
	macro, ok = builder.Lookup("B")
	if !ok || macro.HasValue {
		t.Errorf("Lookup(B) = %+v, %v; want valueless", macro, ok)
	}
	if _, ok := builder.Lookup("C"); ok {
		t.Error("Lookup(C) should report undefined")
	}

	macros := builder.Macros()
	if len(macros) != 2 || macros[0].Name != "A" || macros[1].Name != "B" {
		t.Errorf("Macros() = %+v", macros)
	}
	macros[0].Name = "MUTATED"
	if builder.Macros()[0].Name != "A" {
		t.Error("Macros() must return a copy")
	}
}

func TestEmptyBuilderRendersNothing(t *testing.T) {
	if got := render(t, New("x.h")); got != "" {
		t.Errorf("empty builder rendered %q", got)
	}
}

func TestWriteToIdempotent(t *testing.T) {
	builder := New("x.h").Define("A", "1").Define("B", nil).AddBlock("int x;\n")

	first := render(t, builder)
	second := render(t, builder)
	if first != second {
		t.Errorf("WriteTo not idempotent:\nfirst:  %q\nsecond: %q", first, second)
	}
	if !bytes.Equal(builder.Bytes(), []byte(first)) {
		t.Errorf("Bytes() = %q, want %q", builder.Bytes(), first)
	}
}

func TestIncludeGuard(t *testing.T) {
	builder := New("x.h", WithIncludeGuard("X_H")).
		Define("A", "1").
		AddBlock("int x;\n")

	want := "#ifndef X_H\n#define X_H\n#define A 1\nint x;\n#endif\n"
	if got := render(t, builder); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
	if builder.IncludeGuard() != "X_H" {
		t.Errorf("IncludeGuard() = %q", builder.IncludeGuard())
	}
}

// failingWriter accepts limit bytes, then fails every write.
type failingWriter struct {
	limit   int
	written bytes.Buffer
}

var errSinkFull = errors.New("sink full")

func (w *failingWriter) Write(p []byte) (int, error) {
	remaining := w.limit - w.written.Len()
	if remaining <= 0 {
		return 0, errSinkFull
	}
	if len(p) > remaining {
		w.written.Write(p[:remaining])
		return remaining, errSinkFull
	}
	return w.written.Write(p)
}

func TestWriteToStopsAtFirstError(t *testing.T) {
	builder := New("x.h").Define("FIRST", "1").Define("SECOND", "2").AddBlock("tail\n")

	sink := &failingWriter{limit: len("#define FIRST 1\n") + 3}
	written, err := builder.WriteTo(sink)
	if !errors.Is(err, errSinkFull) {
		t.Fatalf("WriteTo error = %v, want %v", err, errSinkFull)
	}
	if written != int64(sink.limit) {
		t.Errorf("WriteTo reported %d bytes, want %d", written, sink.limit)
	}
	if got := sink.written.String(); got != "#define FIRST 1\n#de" {
		t.Errorf("partial output = %q", got)
	}
}

func TestRetarget(t *testing.T) {
	original := New("a.h", WithIncludeGuard("A_H")).Define("A", "1").AddBlock("int a;\n")
	clone := original.Retarget("b.h")

	if clone.Path() != "b.h" || original.Path() != "a.h" {
		t.Errorf("paths = %q, %q", original.Path(), clone.Path())
	}
	if got, want := render(t, clone), render(t, original); got != want {
		t.Errorf("clone output = %q, want %q", got, want)
	}

	clone.Define("A", "2").Define("B", nil).AddBlock("int b;\n")
	if got := render(t, original); got != "#ifndef A_H\n#define A_H\n#define A 1\nint a;\n#endif\n" {
		t.Errorf("original changed after mutating clone: %q", got)
	}
}
