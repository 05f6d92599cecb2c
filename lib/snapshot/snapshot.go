// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package snapshot persists [cheader.Builder] state so one build step
// can assemble a header and a later step can render or extend it.
//
// A snapshot file (conventionally *.hdrs) is:
//
//	"HDRS" | version (1 byte) | compression tag (1 byte) |
//	uncompressed length (uvarint) | payload
//
// The payload is the builder state encoded as CBOR with Core
// Deterministic Encoding, so the same state always produces the same
// bytes. Payloads that do not shrink under the requested compression
// are stored with [CompressionNone].
//
// Restoring a snapshot yields a builder whose rendered output is
// byte-identical to the original's.
package snapshot

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/bureau-foundation/hdrgen/lib/cheader"
)

// Extension is the conventional file extension for snapshots.
const Extension = ".hdrs"

const (
	formatVersion = 1

	// maxPayloadSize bounds the allocation made for a declared
	// uncompressed length, so a corrupt header cannot request
	// gigabytes.
	maxPayloadSize = 64 << 20
)

var magic = [4]byte{'H', 'D', 'R', 'S'}

// ErrNotSnapshot is returned when input does not start with the
// snapshot magic bytes.
var ErrNotSnapshot = errors.New("not a header snapshot")

// state is the CBOR payload. Field keys are short and stable; they are
// part of the file format.
type state struct {
	Path   string   `cbor:"path"`
	Guard  string   `cbor:"guard,omitempty"`
	Strict bool     `cbor:"strict,omitempty"`
	Macros []macro  `cbor:"macros"`
	Blocks []string `cbor:"blocks"`
}

type macro struct {
	Name     string `cbor:"name"`
	Value    string `cbor:"value,omitempty"`
	HasValue bool   `cbor:"has_value,omitempty"`
}

func stateOf(builder *cheader.Builder) state {
	macros := builder.Macros()
	encoded := state{
		Path:   builder.Path(),
		Guard:  builder.IncludeGuard(),
		Strict: builder.StrictEncoding(),
		Macros: make([]macro, len(macros)),
		Blocks: builder.Blocks(),
	}
	for i, m := range macros {
		encoded.Macros[i] = macro{Name: m.Name, Value: m.Value, HasValue: m.HasValue}
	}
	return encoded
}

func (s state) builder() *cheader.Builder {
	var options []cheader.Option
	if s.Guard != "" {
		options = append(options, cheader.WithIncludeGuard(s.Guard))
	}
	if s.Strict {
		options = append(options, cheader.WithStrictEncoding())
	}

	builder := cheader.New(s.Path, options...)
	for _, m := range s.Macros {
		if m.HasValue {
			builder.Define(m.Name, m.Value)
		} else {
			builder.Define(m.Name, nil)
		}
	}
	for _, block := range s.Blocks {
		builder.AddBlock(block)
	}
	return builder
}

// Encode writes a snapshot of builder to w.
func Encode(w io.Writer, builder *cheader.Builder, tag CompressionTag) error {
	payload, err := marshal(stateOf(builder))
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	stored, err := compress(payload, tag)
	if errors.Is(err, errIncompressible) {
		stored, tag = payload, CompressionNone
	} else if err != nil {
		return fmt.Errorf("compressing snapshot: %w", err)
	}

	header := make([]byte, 0, len(magic)+2+binary.MaxVarintLen64)
	header = append(header, magic[:]...)
	header = append(header, formatVersion, byte(tag))
	header = binary.AppendUvarint(header, uint64(len(payload)))

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("writing snapshot header: %w", err)
	}
	if _, err := w.Write(stored); err != nil {
		return fmt.Errorf("writing snapshot payload: %w", err)
	}
	return nil
}

// Decode reads a snapshot from r and returns the restored builder.
func Decode(r io.Reader) (*cheader.Builder, error) {
	reader := bufio.NewReader(r)

	var prefix [6]byte
	if _, err := io.ReadFull(reader, prefix[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, ErrNotSnapshot
		}
		return nil, fmt.Errorf("reading snapshot header: %w", err)
	}
	if !bytes.Equal(prefix[:4], magic[:]) {
		return nil, ErrNotSnapshot
	}
	if version := prefix[4]; version != formatVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d (want %d)", version, formatVersion)
	}
	tag := CompressionTag(prefix[5])

	size, err := binary.ReadUvarint(reader)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot length: %w", err)
	}
	if size > maxPayloadSize {
		return nil, fmt.Errorf("snapshot payload of %d bytes exceeds limit of %d", size, maxPayloadSize)
	}

	stored, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot payload: %w", err)
	}
	payload, err := decompress(stored, tag, int(size))
	if err != nil {
		return nil, fmt.Errorf("decompressing snapshot (%s): %w", tag, err)
	}

	var decoded state
	if err := unmarshal(payload, &decoded); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	return decoded.builder(), nil
}

// WriteFile writes a snapshot of builder to path, replacing any
// existing file.
func WriteFile(path string, builder *cheader.Builder, tag CompressionTag) error {
	var buffer bytes.Buffer
	if err := Encode(&buffer, builder, tag); err != nil {
		return err
	}
	if err := os.WriteFile(path, buffer.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing snapshot %s: %w", path, err)
	}
	return nil
}

// ReadFile restores the builder stored in the snapshot at path.
func ReadFile(path string) (*cheader.Builder, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot %s: %w", path, err)
	}
	defer file.Close()

	builder, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return builder, nil
}
