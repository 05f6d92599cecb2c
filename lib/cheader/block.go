// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cheader

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ErrInvalidEncoding is returned by [Builder.Ingest] in strict mode
// when the input is not valid UTF-8.
var ErrInvalidEncoding = errors.New("block is not valid UTF-8")

// AddBlock inserts text as a verbatim block. A block whose exact
// content was already added is ignored.
func (b *Builder) AddBlock(text string) *Builder {
	if _, exists := b.blockSet[text]; exists {
		return b
	}
	b.blockSet[text] = struct{}{}
	b.blocks = append(b.blocks, text)
	return b
}

// Blocks returns a copy of all blocks in emission order.
func (b *Builder) Blocks() []string {
	blocks := make([]string, len(b.blocks))
	copy(blocks, b.blocks)
	return blocks
}

// Ingest adds the bytes of p as one block and reports len(p) consumed.
//
// Each byte that does not start a valid UTF-8 sequence is replaced with
// U+FFFD, so "a\xff\xfeb" becomes "a\uFFFD\uFFFDb". With
// [WithStrictEncoding] they are rejected instead: Ingest returns 0 and
// an error wrapping [ErrInvalidEncoding], and no block is added.
func (b *Builder) Ingest(p []byte) (int, error) {
	if !utf8.Valid(p) {
		if b.strict {
			return 0, &EncodingError{Offset: invalidOffset(p)}
		}
		b.AddBlock(replaceInvalid(p))
		return len(p), nil
	}
	b.AddBlock(string(p))
	return len(p), nil
}

// EncodingError locates the first malformed byte of a rejected block.
type EncodingError struct {
	Offset int
}

func (e *EncodingError) Error() string {
	return ErrInvalidEncoding.Error() + " (first invalid byte at offset " + strconv.Itoa(e.Offset) + ")"
}

func (e *EncodingError) Unwrap() error { return ErrInvalidEncoding }

func replaceInvalid(p []byte) string {
	var text strings.Builder
	text.Grow(len(p) + 8)
	for len(p) > 0 {
		r, size := utf8.DecodeRune(p)
		if r == utf8.RuneError && size <= 1 {
			text.WriteRune(utf8.RuneError)
		} else {
			text.Write(p[:size])
		}
		p = p[size:]
	}
	return text.String()
}

func invalidOffset(p []byte) int {
	offset := 0
	for offset < len(p) {
		r, size := utf8.DecodeRune(p[offset:])
		if r == utf8.RuneError && size <= 1 {
			return offset
		}
		offset += size
	}
	return offset
}

// BlockWriter adapts a Builder to [io.Writer]. Every Write call becomes
// one block, so fmt.Fprintf and similar helpers can produce blocks
// directly.
type BlockWriter struct {
	builder *Builder
}

// BlockWriter returns a writer that adds blocks to b.
func (b *Builder) BlockWriter() *BlockWriter {
	return &BlockWriter{builder: b}
}

// Write adds p as a block. See [Builder.Ingest].
func (w *BlockWriter) Write(p []byte) (int, error) {
	return w.builder.Ingest(p)
}

// Flush does nothing. Blocks are stored as soon as they are written.
func (w *BlockWriter) Flush() error { return nil }
