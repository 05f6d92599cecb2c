// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cheader

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// WriteTo renders the header into w: macros first, then blocks. It
// stops at the first write error and returns it together with the
// number of bytes already written. Output that reached w before the
// error is not retracted.
func (b *Builder) WriteTo(w io.Writer) (int64, error) {
	counter := &countingWriter{writer: w}

	if b.guard != "" {
		if err := counter.writeString("#ifndef " + b.guard + "\n#define " + b.guard + "\n"); err != nil {
			return counter.count, err
		}
	}

	for _, name := range b.order {
		line := "#define " + name
		if value := b.values[name]; value != nil {
			line += " " + *value
		}
		if err := counter.writeString(line + "\n"); err != nil {
			return counter.count, err
		}
	}

	for _, block := range b.blocks {
		if err := counter.writeString(block); err != nil {
			return counter.count, err
		}
	}

	if b.guard != "" {
		if err := counter.writeString("#endif\n"); err != nil {
			return counter.count, err
		}
	}

	return counter.count, nil
}

// Bytes returns the rendered header.
func (b *Builder) Bytes() []byte {
	var buffer bytes.Buffer
	// bytes.Buffer writes cannot fail.
	_, _ = b.WriteTo(&buffer)
	return buffer.Bytes()
}

// WriteFile creates or truncates the file at the builder's path and
// writes the rendered header through a buffered writer. The file is
// closed on every return path. Errors wrap the underlying
// *fs.PathError, so errors.Is(err, fs.ErrPermission) and similar checks
// work.
func (b *Builder) WriteFile() (err error) {
	file, err := os.Create(b.path)
	if err != nil {
		return fmt.Errorf("creating header %s: %w", b.path, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing header %s: %w", b.path, closeErr)
		}
	}()

	buffered := bufio.NewWriter(file)
	if _, err := b.WriteTo(buffered); err != nil {
		return fmt.Errorf("writing header %s: %w", b.path, err)
	}
	if err := buffered.Flush(); err != nil {
		return fmt.Errorf("writing header %s: %w", b.path, err)
	}
	return nil
}

// UpdateFile writes the header only if the file at the builder's path
// is missing or its content differs from the rendered output. It
// reports whether the file was written.
func (b *Builder) UpdateFile() (bool, error) {
	existing, err := DigestFile(b.path)
	switch {
	case err == nil:
		if existing == b.Digest() {
			return false, nil
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return false, err
	}

	if err := b.WriteFile(); err != nil {
		return false, err
	}
	return true, nil
}

type countingWriter struct {
	writer io.Writer
	count  int64
}

func (c *countingWriter) writeString(s string) error {
	written, err := io.WriteString(c.writer, s)
	c.count += int64(written)
	return err
}
