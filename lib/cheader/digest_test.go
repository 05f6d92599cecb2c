// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cheader

import (
	"path/filepath"
	"testing"

	"github.com/bureau-foundation/hdrgen/lib/testutil"
)

func TestDigestMatchesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.h")
	builder := New(path).Define("A", "1").AddBlock("int x;\n")
	if err := builder.WriteFile(); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	fileDigest, err := DigestFile(path)
	if err != nil {
		t.Fatalf("DigestFile: %v", err)
	}
	if fileDigest != builder.Digest() {
		t.Errorf("DigestFile = %s, Digest = %s", fileDigest, builder.Digest())
	}
}

func TestDigestDiffersOnContent(t *testing.T) {
	first := New("x.h").Define("A", "1").Digest()
	second := New("x.h").Define("A", "2").Digest()
	if first == second {
		t.Error("different headers should produce different digests")
	}
}

func TestDigestIgnoresPath(t *testing.T) {
	first := New("a.h").Define("A", "1").Digest()
	second := New("b.h").Define("A", "1").Digest()
	if first != second {
		t.Error("digest should depend only on rendered content")
	}
}

func TestDigestFileNonexistent(t *testing.T) {
	if _, err := DigestFile(filepath.Join(t.TempDir(), "missing.h")); err == nil {
		t.Fatal("DigestFile should fail for a missing file")
	}
}

func TestDigestFileEmpty(t *testing.T) {
	path := testutil.WriteFile(t, t.TempDir(), "empty.h", "")
	got, err := DigestFile(path)
	if err != nil {
		t.Fatalf("DigestFile: %v", err)
	}
	if want := New("empty.h").Digest(); got != want {
		t.Errorf("DigestFile(empty) = %s, want %s", got, want)
	}
}

func TestParseDigestRoundTrip(t *testing.T) {
	original := New("x.h").Define("A", nil).Digest()

	formatted := original.String()
	if len(formatted) != 64 {
		t.Errorf("String() length = %d, want 64", len(formatted))
	}

	parsed, err := ParseDigest(formatted)
	if err != nil {
		t.Fatalf("ParseDigest: %v", err)
	}
	if parsed != original {
		t.Errorf("ParseDigest round-trip failed: %s != %s", parsed, original)
	}
}

func TestParseDigestInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not hex", "zzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz"},
		{"too short", "abcd"},
		{"too long", "abcdef0123456789abcdef0123456789abcdef0123456789abcdef0123456789aa"},
		{"empty", ""},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := ParseDigest(test.input); err == nil {
				t.Errorf("ParseDigest(%q) should fail", test.input)
			}
		})
	}
}
