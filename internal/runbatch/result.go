// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"io"
	"slices"
	"time"
)

// ResultStatus is the outcome of a run.
type ResultStatus int

const (
	// ResultStatusUnknown is the zero value, used before the outcome is known.
	ResultStatusUnknown ResultStatus = iota
	// ResultStatusSuccess means the process exited with a success exit code.
	ResultStatusSuccess
	// ResultStatusError means the process failed to start, failed or was terminated.
	ResultStatusError
)

func (s ResultStatus) String() string {
	switch s {
	case ResultStatusSuccess:
		return "success"
	case ResultStatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Result represents the outcome of running a command.
type Result struct {
	Label    string        // Label of the command
	ExitCode int           // Exit code of the command, -1 when it did not exit normally
	Error    error         // Error, if any
	StdOut   []byte        // Output from the command
	StdErr   []byte        // Error output from the command
	Status   ResultStatus  // Outcome of the run
	Duration time.Duration // Wall time between start and exit
}

// Results is a slice of Result pointers, used to represent multiple results.
type Results []*Result

// HasError reports whether any result failed.
func (r Results) HasError() bool {
	for v := range slices.Values(r) {
		if v.Error != nil || v.ExitCode != 0 || v.Status == ResultStatusError {
			return true
		}
	}

	return false
}

// ExitCode returns the first non-zero exit code, or 0.
func (r Results) ExitCode() int {
	for v := range slices.Values(r) {
		if v.ExitCode != 0 {
			return v.ExitCode
		}
	}

	return 0
}

// Write outputs the results to the specified writer with default options.
func (r Results) Write(w io.Writer) error {
	return r.WriteText(w, nil)
}
