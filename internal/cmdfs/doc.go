// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmdfs presents the command store as a flat virtual filesystem.
//
// The root path `/` is the only directory. Every other path names a store key:
// `/Build.cmd` is the record stored under `Build.cmd`, and its file content is
// the command text. Writes and renames keep display names in step with file
// names using the explicit-name rule described on WriteFile.
//
// Each mutating call locks the adapter, changes the store, saves a full
// snapshot and, once the save has succeeded, notifies subscribers. When the
// save fails the in-memory store keeps the change and no notification is sent;
// the next successful save reconciles the snapshot.
//
// Afero wraps an FS as an afero.Fs so that generic file tooling, such as the
// editor integration, can work on command files.
package cmdfs
