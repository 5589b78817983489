// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package color decorates terminal output with ANSI escape codes.
//
// Output is plain unless stdout is a terminal or FORCE_COLOR is set.
// NO_COLOR always wins.
package color
