// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import "context"

// Runnable is something that can be run and reports its results.
type Runnable interface {
	// Run executes the command and returns the results.
	// It should handle context cancellation and passing signals to any spawned process.
	Run(context.Context) Results
	// GetLabel returns the label or description of the command.
	GetLabel() string
}
