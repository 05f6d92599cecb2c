// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cheader

import (
	"fmt"
	"reflect"
)

// Macro is one #define directive. HasValue separates a valueless macro
// ("#define NAME") from one whose value is the empty string, which
// renders with a trailing space.
type Macro struct {
	Name     string
	Value    string
	HasValue bool
}

// Builder accumulates macros and text blocks for a single header file.
// The zero value is not usable; construct with [New].
type Builder struct {
	path string

	// order records first-insertion order of macro names. values is
	// keyed by name; a nil entry is a valueless macro.
	order  []string
	values map[string]*string

	blocks   []string
	blockSet map[string]struct{}

	guard  string
	strict bool
}

// Option configures a Builder at construction time.
type Option func(*Builder)

// WithIncludeGuard wraps the rendered output in
// "#ifndef NAME\n#define NAME\n" ... "#endif\n". The guard name is not
// part of the macro collection and is not validated.
func WithIncludeGuard(name string) Option {
	return func(builder *Builder) {
		builder.guard = name
	}
}

// WithStrictEncoding makes [Builder.Ingest] reject input that is not
// valid UTF-8 instead of replacing malformed sequences.
func WithStrictEncoding() Option {
	return func(builder *Builder) {
		builder.strict = true
	}
}

// New returns an empty Builder. The path is only used by
// [Builder.WriteFile] and [Builder.UpdateFile].
func New(path string, options ...Option) *Builder {
	builder := &Builder{
		path:     path,
		values:   make(map[string]*string),
		blockSet: make(map[string]struct{}),
	}
	for _, option := range options {
		option(builder)
	}
	return builder
}

// Path returns the destination path given to [New].
func (b *Builder) Path() string { return b.path }

// IncludeGuard returns the include guard name, or "" if none was set.
func (b *Builder) IncludeGuard() string { return b.guard }

// StrictEncoding reports whether the builder was created with
// [WithStrictEncoding].
func (b *Builder) StrictEncoding() bool { return b.strict }

// Define sets the macro name to value and returns b for chaining.
//
// A nil value (or any nil pointer) defines a valueless macro. Other
// values are converted to text: strings as-is, *string dereferenced,
// fmt.Stringer via String, anything else via fmt.Sprint.
//
// Redefining an existing name replaces its value in place.
func (b *Builder) Define(name string, value any) *Builder {
	if _, exists := b.values[name]; !exists {
		b.order = append(b.order, name)
	}
	b.values[name] = macroText(value)
	return b
}

func macroText(value any) *string {
	var text string
	switch v := value.(type) {
	case nil:
		return nil
	case *string:
		if v == nil {
			return nil
		}
		text = *v
	case string:
		text = v
	default:
		if reflected := reflect.ValueOf(v); reflected.Kind() == reflect.Pointer && reflected.IsNil() {
			return nil
		}
		// fmt.Sprint prefers String() for fmt.Stringer values.
		text = fmt.Sprint(v)
	}
	return &text
}

// Len returns the number of distinct macros.
func (b *Builder) Len() int { return len(b.order) }

// Lookup returns the macro defined under name.
func (b *Builder) Lookup(name string) (Macro, bool) {
	value, exists := b.values[name]
	if !exists {
		return Macro{}, false
	}
	return newMacro(name, value), true
}

// Macros returns a copy of all macros in emission order.
func (b *Builder) Macros() []Macro {
	macros := make([]Macro, 0, len(b.order))
	for _, name := range b.order {
		macros = append(macros, newMacro(name, b.values[name]))
	}
	return macros
}

func newMacro(name string, value *string) Macro {
	if value == nil {
		return Macro{Name: name}
	}
	return Macro{Name: name, Value: *value, HasValue: true}
}

// Retarget returns an independent copy of b that writes to path.
func (b *Builder) Retarget(path string) *Builder {
	clone := &Builder{
		path:     path,
		order:    make([]string, len(b.order)),
		values:   make(map[string]*string, len(b.values)),
		blocks:   make([]string, len(b.blocks)),
		blockSet: make(map[string]struct{}, len(b.blockSet)),
		guard:    b.guard,
		strict:   b.strict,
	}
	copy(clone.order, b.order)
	for name, value := range b.values {
		if value != nil {
			text := *value
			value = &text
		}
		clone.values[name] = value
	}
	copy(clone.blocks, b.blocks)
	for block := range b.blockSet {
		clone.blockSet[block] = struct{}{}
	}
	return clone
}
