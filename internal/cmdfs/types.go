// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package cmdfs

import "time"

// FileType distinguishes the root directory from command files.
type FileType int

const (
	// TypeFile is a command file.
	TypeFile FileType = iota + 1
	// TypeDirectory is the root directory.
	TypeDirectory
)

// String implements fmt.Stringer.
func (t FileType) String() string {
	switch t {
	case TypeFile:
		return "file"
	case TypeDirectory:
		return "directory"
	default:
		return "unknown"
	}
}

// FileStat describes a path. Size is the UTF-8 byte length of the command.
// Times are not tracked by the store and are reported as the time of the call.
type FileStat struct {
	Type  FileType
	Size  int64
	Ctime time.Time
	Mtime time.Time
}

// DirEntry is one element of a directory listing.
type DirEntry struct {
	Name string
	Type FileType
}

// WriteOptions controls WriteFile.
type WriteOptions struct {
	// Create allows a missing file to be created.
	Create bool
	// Overwrite allows an existing file to be replaced when Create is set.
	Overwrite bool
}

// DeleteOptions controls Delete.
type DeleteOptions struct {
	// Recursive is accepted for interface compatibility and ignored: the namespace is flat.
	Recursive bool
}

// RenameOptions controls Rename.
type RenameOptions struct {
	// Overwrite allows the target to be replaced.
	Overwrite bool
}

// WatchOptions controls Watch.
type WatchOptions struct {
	Recursive bool
	Excludes  []string
}
