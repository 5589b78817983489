// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package cmdfs

import (
	"errors"
	"io/fs"
)

// Error kinds reported inside *fs.PathError. Use errors.Is to test for them.
var (
	ErrNotFound      = fs.ErrNotExist
	ErrAlreadyExists = fs.ErrExist
	ErrNoPermissions = fs.ErrPermission
	ErrNotADirectory = errors.New("not a directory")
	ErrIsADirectory  = errors.New("is a directory")
)

func pathError(op, path string, err error) error {
	return &fs.PathError{Op: op, Path: path, Err: err}
}
