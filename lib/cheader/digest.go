// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cheader

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/zeebo/blake3"
)

// Digest is a 32-byte BLAKE3 keyed hash of rendered header content.
type Digest [32]byte

// outputDomainKey separates header digests from any other BLAKE3 use of
// the same bytes. The value is the ASCII domain name zero-padded to 32
// bytes. Changing it changes every digest.
var outputDomainKey = [32]byte{
	'h', 'd', 'r', 'g', 'e', 'n', '.', 'c', 'h', 'e', 'a', 'd', 'e', 'r', '.',
	'o', 'u', 't', 'p', 'u', 't', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// Digest returns the digest of the rendered header.
func (b *Builder) Digest() Digest {
	hasher := newHasher()
	// blake3.Hasher writes cannot fail.
	_, _ = b.WriteTo(hasher)
	return sum(hasher)
}

// DigestFile streams the file at path through the same keyed hash used
// by [Builder.Digest], so the two can be compared directly.
func DigestFile(path string) (Digest, error) {
	file, err := os.Open(path)
	if err != nil {
		return Digest{}, fmt.Errorf("opening %s for hashing: %w", path, err)
	}
	defer file.Close()

	hasher := newHasher()
	if _, err := io.Copy(hasher, file); err != nil {
		return Digest{}, fmt.Errorf("hashing %s: %w", path, err)
	}
	return sum(hasher), nil
}

// String returns the hex encoding of the digest. This is the form used
// in logs and CLI output.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// ParseDigest parses a 64-character hex string into a Digest.
func ParseDigest(hexString string) (Digest, error) {
	var digest Digest
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return digest, fmt.Errorf("parsing header digest: %w", err)
	}
	if len(decoded) != len(digest) {
		return digest, fmt.Errorf("header digest is %d bytes, want %d", len(decoded), len(digest))
	}
	copy(digest[:], decoded)
	return digest, nil
}

func newHasher() *blake3.Hasher {
	// NewKeyed only fails for keys that are not 32 bytes.
	hasher, err := blake3.NewKeyed(outputDomainKey[:])
	if err != nil {
		panic("cheader: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	return hasher
}

func sum(hasher *blake3.Hasher) Digest {
	var digest Digest
	copy(digest[:], hasher.Sum(nil))
	return digest
}
