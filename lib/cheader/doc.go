// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cheader builds C preprocessor header content in memory and
// serializes it to a file or any [io.Writer].
//
// A [Builder] holds two ordered collections:
//
//   - macros: name to optional value. Re-defining a name replaces the
//     value but keeps the name's original position.
//   - blocks: verbatim text chunks, deduplicated by exact content.
//
// Rendering emits every macro in insertion order, one directive per
// line ("#define NAME VALUE\n" or "#define NAME\n"), followed by every
// block in insertion order with no separators. Nothing else is added
// unless the builder was created with [WithIncludeGuard].
//
//	header := cheader.New("include/config.h")
//	header.Define("VERSION", `"1.0"`).Define("DEBUG", nil)
//	if err := header.WriteFile(); err != nil {
//	    return err
//	}
//
// [Builder.WriteFile] truncates the target before writing. A failure
// part way through can leave a partial file; there is no rollback.
// [Builder.UpdateFile] compares BLAKE3 digests and skips the write when
// the file on disk already matches, so build systems keyed on mtimes
// do not rebuild needlessly.
//
// A Builder is not safe for concurrent mutation.
//
// This package has no dependencies on other hdrgen packages.
package cheader
