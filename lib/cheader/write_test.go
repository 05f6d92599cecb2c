// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cheader

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bureau-foundation/hdrgen/lib/testutil"
)

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.h")
	builder := New(path).Define("VERSION", `"1.0"`).Define("DEBUG", nil)

	if err := builder.WriteFile(); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if got, want := testutil.ReadFile(t, path), "#define VERSION \"1.0\"\n#define DEBUG\n"; got != want {
		t.Errorf("file content = %q, want %q", got, want)
	}
}

func TestWriteFileTruncates(t *testing.T) {
	path := testutil.WriteFile(t, t.TempDir(), "config.h", "stale content that is much longer than the header\n")

	if err := New(path).Define("A", "1").WriteFile(); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if got := testutil.ReadFile(t, path); got != "#define A 1\n" {
		t.Errorf("file content = %q", got)
	}
}

func TestWriteFileMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist", "config.h")

	err := New(path).Define("A", "1").WriteFile()
	if err == nil {
		t.Fatal("WriteFile should fail when the parent directory is missing")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("WriteFile error = %v, want wrapped fs.ErrNotExist", err)
	}
	var pathErr *fs.PathError
	if !errors.As(err, &pathErr) {
		t.Errorf("WriteFile error = %v, want wrapped *fs.PathError", err)
	}
}

func TestWriteFileDirectoryTarget(t *testing.T) {
	// A directory cannot be opened for writing regardless of the
	// privileges the test runs with.
	err := New(t.TempDir()).Define("A", "1").WriteFile()
	if err == nil {
		t.Fatal("WriteFile should fail when the path is a directory")
	}
}

func TestUpdateFileSkipsUnchanged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.h")
	builder := New(path).Define("A", "1")

	written, err := builder.UpdateFile()
	if err != nil {
		t.Fatalf("first UpdateFile: %v", err)
	}
	if !written {
		t.Error("first UpdateFile should write a missing file")
	}

	past := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	if err := os.Chtimes(path, past, past); err != nil {
		t.Fatalf("Chtimes: %v", err)
	}

	written, err = builder.UpdateFile()
	if err != nil {
		t.Fatalf("second UpdateFile: %v", err)
	}
	if written {
		t.Error("second UpdateFile should not rewrite identical content")
	}
	if mtime := testutil.ModTime(t, path); !mtime.Equal(past) {
		t.Errorf("mtime changed to %v, want %v", mtime, past)
	}

	builder.Define("A", "2")
	written, err = builder.UpdateFile()
	if err != nil {
		t.Fatalf("third UpdateFile: %v", err)
	}
	if !written {
		t.Error("UpdateFile should rewrite changed content")
	}
}

func TestUpdateFileDirectoryTarget(t *testing.T) {
	_, err := New(t.TempDir()).Define("A", "1").UpdateFile()
	if err == nil {
		t.Fatal("UpdateFile should fail when the path is a directory")
	}
}
