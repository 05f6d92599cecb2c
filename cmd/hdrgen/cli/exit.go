// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import "fmt"

// ExitError signals a non-zero exit code without printing an error
// message. Commands return it when the exit status itself is the
// answer, such as "hdrgen generate --check" reporting a stale header.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExitCode returns the exit code. main checks for this method to tell
// a handled non-zero exit from an error that should be printed.
func (e *ExitError) ExitCode() int {
	return e.Code
}
