// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package editor opens a command in the user's text editor.
//
// The command text is copied from the virtual filesystem into a temporary file,
// the editor runs on that file and the result is written back when it differs
// from the original.
package editor
