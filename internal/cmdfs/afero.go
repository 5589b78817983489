// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package cmdfs

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/afero/mem"
)

const (
	filePerm = 0o644
	dirPerm  = 0o755

	writeFlags = os.O_WRONLY | os.O_RDWR
)

var _ afero.Fs = (*Afero)(nil)

// Afero exposes an FS as an afero.Fs.
//
// Files opened for writing are buffered in memory and written back through
// FS.WriteFile on Sync and Close. Opening a missing file with O_CREATE creates
// an empty command immediately. Rename replaces an existing target, as
// os.Rename does.
type Afero struct {
	ctx context.Context
	fs  *FS
}

// NewAfero returns an afero.Fs over f. ctx is used for the store saves
// triggered through the returned filesystem.
func NewAfero(ctx context.Context, f *FS) *Afero {
	return &Afero{ctx: ctx, fs: f}
}

// Name implements afero.Fs.
func (a *Afero) Name() string { return "cmdfs" }

// Create implements afero.Fs.
func (a *Afero) Create(name string) (afero.File, error) {
	return a.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_TRUNC, filePerm)
}

// Mkdir implements afero.Fs.
func (a *Afero) Mkdir(name string, _ os.FileMode) error {
	return a.fs.CreateDirectory(name)
}

// MkdirAll implements afero.Fs. Only the root, which always exists, succeeds.
func (a *Afero) MkdirAll(name string, _ os.FileMode) error {
	if KeyFromPath(name) == "" {
		return nil
	}

	return a.fs.CreateDirectory(name)
}

// Open implements afero.Fs.
func (a *Afero) Open(name string) (afero.File, error) {
	return a.OpenFile(name, os.O_RDONLY, 0)
}

// OpenFile implements afero.Fs.
func (a *Afero) OpenFile(name string, flag int, _ os.FileMode) (afero.File, error) {
	p := CleanPath(name)
	writable := flag&writeFlags != 0

	if p == Root {
		if writable {
			return nil, pathError("open", p, ErrIsADirectory)
		}

		return a.rootHandle(), nil
	}

	key := KeyFromPath(p)
	r, exists := a.fs.Get(key)

	switch {
	case !exists && flag&os.O_CREATE == 0:
		return nil, pathError("open", p, ErrNotFound)
	case exists && flag&os.O_CREATE != 0 && flag&os.O_EXCL != 0:
		return nil, pathError("open", p, ErrAlreadyExists)
	case !exists:
		if err := a.fs.WriteFile(a.ctx, p, nil, WriteOptions{Create: true}); err != nil {
			return nil, err
		}
	}

	data := mem.CreateFile(p)
	mem.SetMode(data, filePerm)

	truncate := writable && flag&os.O_TRUNC != 0
	if exists && !truncate && r.Command != "" {
		if _, err := mem.NewFileHandle(data).WriteString(r.Command); err != nil {
			return nil, err
		}
	}

	if !writable {
		return mem.NewReadOnlyFileHandle(data), nil
	}

	h := &file{File: mem.NewFileHandle(data), a: a, path: p, dirty: exists && truncate}
	if flag&os.O_APPEND != 0 {
		if _, err := h.Seek(0, io.SeekEnd); err != nil {
			return nil, err
		}
	}

	return h, nil
}

// Remove implements afero.Fs.
func (a *Afero) Remove(name string) error {
	return a.fs.Delete(a.ctx, name, DeleteOptions{})
}

// RemoveAll implements afero.Fs. A missing file is not an error. The root cannot be removed.
func (a *Afero) RemoveAll(name string) error {
	err := a.fs.Delete(a.ctx, name, DeleteOptions{Recursive: true})
	if errors.Is(err, ErrNotFound) {
		return nil
	}

	return err
}

// Rename implements afero.Fs.
func (a *Afero) Rename(oldname, newname string) error {
	return a.fs.Rename(a.ctx, oldname, newname, RenameOptions{Overwrite: true})
}

// Stat implements afero.Fs.
func (a *Afero) Stat(name string) (os.FileInfo, error) {
	st, err := a.fs.Stat(name)
	if err != nil {
		return nil, err
	}

	return &fileInfo{name: name, stat: st}, nil
}

// Chmod implements afero.Fs. Modes are fixed, so only existence is checked.
func (a *Afero) Chmod(name string, _ os.FileMode) error {
	_, err := a.fs.Stat(name)
	return err
}

// Chown implements afero.Fs. Ownership is not tracked, so only existence is checked.
func (a *Afero) Chown(name string, _, _ int) error {
	_, err := a.fs.Stat(name)
	return err
}

// Chtimes implements afero.Fs. Times are not tracked, so only existence is checked.
func (a *Afero) Chtimes(name string, _, _ time.Time) error {
	_, err := a.fs.Stat(name)
	return err
}

// rootHandle returns a read-only directory handle holding a copy of every command.
func (a *Afero) rootHandle() afero.File {
	dir := mem.CreateDir(Root)
	mem.SetMode(dir, fs.ModeDir|dirPerm)

	for _, e := range a.fs.Entries() {
		child := mem.CreateFile(PathFor(e.Key))
		mem.SetMode(child, filePerm)
		_, _ = mem.NewFileHandle(child).WriteString(e.Command)
		mem.AddToMemDir(dir, child)
	}

	return mem.NewReadOnlyFileHandle(dir)
}

// fileInfo adapts a FileStat to os.FileInfo.
type fileInfo struct {
	name string
	stat FileStat
}

func (fi *fileInfo) Name() string {
	if fi.stat.Type == TypeDirectory {
		return Root
	}

	return KeyFromPath(fi.name)
}

func (fi *fileInfo) Size() int64        { return fi.stat.Size }
func (fi *fileInfo) ModTime() time.Time { return fi.stat.Mtime }
func (fi *fileInfo) IsDir() bool        { return fi.stat.Type == TypeDirectory }
func (fi *fileInfo) Sys() any           { return nil }

func (fi *fileInfo) Mode() os.FileMode {
	if fi.IsDir() {
		return fs.ModeDir | dirPerm
	}

	return filePerm
}
