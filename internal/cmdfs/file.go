// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package cmdfs

import (
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/afero/mem"
)

var _ afero.File = (*file)(nil)

// file is a writable handle. Content lives in the embedded in-memory file
// until it is flushed to the store.
type file struct {
	*mem.File

	a     *Afero
	path  string
	dirty bool
}

func (h *file) Write(b []byte) (int, error) {
	n, err := h.File.Write(b)
	if n > 0 {
		h.dirty = true
	}

	return n, err
}

func (h *file) WriteAt(b []byte, off int64) (int, error) {
	n, err := h.File.WriteAt(b, off)
	if n > 0 {
		h.dirty = true
	}

	return n, err
}

func (h *file) WriteString(s string) (int, error) {
	return h.Write([]byte(s))
}

func (h *file) Truncate(size int64) error {
	if err := h.File.Truncate(size); err != nil {
		return err
	}

	h.dirty = true

	return nil
}

// Sync writes the buffered content to the store.
func (h *file) Sync() error {
	return h.flush()
}

// Close flushes and closes the handle. The handle is closed even when the flush fails.
func (h *file) Close() error {
	err := h.flush()
	if cerr := h.File.Close(); err == nil {
		err = cerr
	}

	return err
}

func (h *file) flush() error {
	if !h.dirty {
		return nil
	}

	content, err := io.ReadAll(mem.NewReadOnlyFileHandle(h.Data()))
	if err != nil {
		return err
	}

	if err := h.a.fs.WriteFile(h.a.ctx, h.path, content, WriteOptions{Create: true, Overwrite: true}); err != nil {
		return err
	}

	h.dirty = false

	return nil
}
