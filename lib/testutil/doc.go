// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for hdrgen packages.
//
// [WriteFile] and [ReadFile] create and read fixture files.
// [RequireNotExist] asserts that a command did not create a file, the
// check every "must not write" test repeats. [ModTime] reads a file's
// modification time for tests that verify unchanged output is left
// untouched.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no hdrgen-internal dependencies.
package testutil
