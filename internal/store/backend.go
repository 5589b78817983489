// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"slices"
	"sync"

	"github.com/spf13/afero"
)

const (
	dirPerm  = 0o700
	filePerm = 0o600
)

var (
	_ Backend = (*MemoryBackend)(nil)
	_ Backend = (*FileBackend)(nil)
)

// Backend persists opaque snapshots in named slots.
// Get returns nil and no error when the slot has never been written.
type Backend interface {
	Get(ctx context.Context, slot string) ([]byte, error)
	Update(ctx context.Context, slot string, blob []byte) error
}

// MemoryBackend keeps slots in memory. It is safe for concurrent use.
type MemoryBackend struct {
	mu    sync.Mutex
	slots map[string][]byte
}

// NewMemoryBackend returns an empty MemoryBackend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{slots: make(map[string][]byte)}
}

// Get implements Backend.
func (b *MemoryBackend) Get(ctx context.Context, slot string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	return slices.Clone(b.slots[slot]), nil
}

// Update implements Backend.
func (b *MemoryBackend) Update(ctx context.Context, slot string, blob []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.slots[slot] = slices.Clone(blob)

	return nil
}

// FileBackend stores each slot as a file named `<slot><ext>` in a directory.
// Writes go to a temporary file that is renamed over the target.
type FileBackend struct {
	fs  afero.Fs
	dir string
	ext string
}

// NewFileBackend returns a FileBackend rooted at dir on the given filesystem.
func NewFileBackend(fs afero.Fs, dir, ext string) *FileBackend {
	return &FileBackend{fs: fs, dir: dir, ext: ext}
}

// Path returns the file that holds the slot.
func (b *FileBackend) Path(slot string) string {
	return filepath.Join(b.dir, slot+b.ext)
}

// Get implements Backend.
func (b *FileBackend) Get(ctx context.Context, slot string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := afero.ReadFile(b.fs, b.Path(slot))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	return data, err
}

// Update implements Backend.
func (b *FileBackend) Update(ctx context.Context, slot string, blob []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := b.fs.MkdirAll(b.dir, dirPerm); err != nil {
		return err
	}

	tmp, err := afero.TempFile(b.fs, b.dir, slot+"-*.tmp")
	if err != nil {
		return err
	}

	tmpName := tmp.Name()

	if _, err := tmp.Write(blob); err != nil {
		_ = tmp.Close()
		_ = b.fs.Remove(tmpName)

		return err
	}

	if err := tmp.Close(); err != nil {
		_ = b.fs.Remove(tmpName)
		return err
	}

	_ = b.fs.Chmod(tmpName, filePerm)

	if err := b.fs.Rename(tmpName, b.Path(slot)); err != nil {
		_ = b.fs.Remove(tmpName)
		return err
	}

	return nil
}
