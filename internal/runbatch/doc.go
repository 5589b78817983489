// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package runbatch runs operating system processes on behalf of stored commands.
//
// An OSCommand captures stdout and stderr (optionally echoing them as they arrive),
// forwards termination signals to the child and kills it when the context is done
// or the same signal arrives twice. Results can be written as a short, coloured report.
package runbatch
