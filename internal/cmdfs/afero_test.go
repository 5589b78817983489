// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package cmdfs

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/matt-FFFFFF/cmdshelf/internal/notify"
	"github.com/matt-FFFFFF/cmdshelf/internal/store"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAfero(t *testing.T, records ...store.Record) (*Afero, *FS, *recorder) {
	t.Helper()

	f, _, rec := newTestFS(t)
	for _, r := range records {
		_, err := f.AddCommandItem(context.Background(), r)
		require.NoError(t, err)
	}

	rec.batches = nil

	return NewAfero(context.Background(), f), f, rec
}

func TestAfero_ReadFile(t *testing.T) {
	a, _, _ := newTestAfero(t, store.Record{Command: "git status"})

	data, err := afero.ReadFile(a, "/git_status.cmd")
	require.NoError(t, err)
	assert.Equal(t, "git status", string(data))

	_, err = afero.ReadFile(a, "/missing.cmd")
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}

func TestAfero_WriteFile(t *testing.T) {
	a, f, rec := newTestAfero(t)

	require.NoError(t, afero.WriteFile(a, "/My Task.cmd", []byte("echo hi"), 0o644))

	r, ok := f.Get("My Task.cmd")
	require.True(t, ok)
	assert.Equal(t, store.Record{Name: "My Task", Command: "echo hi"}, r)

	// One change for the create on open, one for the flush on close.
	assert.Equal(t, []notify.Event{
		{Type: notify.Changed, Path: "/My Task.cmd"},
		{Type: notify.Changed, Path: "/My Task.cmd"},
	}, rec.all())

	require.NoError(t, afero.WriteFile(a, "/My Task.cmd", []byte("echo bye"), 0o644))

	data, err := f.ReadFile("/My Task.cmd")
	require.NoError(t, err)
	assert.Equal(t, "echo bye", string(data), "O_TRUNC replaces the content")
}

func TestAfero_CreateMakesFileVisible(t *testing.T) {
	a, f, _ := newTestAfero(t)

	h, err := a.Create("/draft.cmd")
	require.NoError(t, err)

	exists, err := afero.Exists(a, "/draft.cmd")
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = h.WriteString("echo draft")
	require.NoError(t, err)

	data, _ := f.ReadFile("/draft.cmd")
	assert.Empty(t, data, "writes are buffered until sync")

	require.NoError(t, h.Sync())

	data, _ = f.ReadFile("/draft.cmd")
	assert.Equal(t, "echo draft", string(data))

	require.NoError(t, h.Close())
	require.NoError(t, h.Close(), "closing twice is harmless")
}

func TestAfero_OpenFileFlags(t *testing.T) {
	a, f, _ := newTestAfero(t, store.Record{Command: "echo"})

	_, err := a.OpenFile("/echo.cmd", os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o644)
	require.ErrorIs(t, err, ErrAlreadyExists)

	_, err = a.OpenFile("/nope.cmd", os.O_RDWR, 0o644)
	require.ErrorIs(t, err, ErrNotFound)

	h, err := a.OpenFile("/echo.cmd", os.O_WRONLY|os.O_APPEND, 0o644)
	require.NoError(t, err)
	_, err = h.Write([]byte(" hello"))
	require.NoError(t, err)
	require.NoError(t, h.Close())

	data, err := f.ReadFile("/echo.cmd")
	require.NoError(t, err)
	assert.Equal(t, "echo hello", string(data))

	h, err = a.OpenFile("/echo.cmd", os.O_RDWR, 0o644)
	require.NoError(t, err)
	require.NoError(t, h.Truncate(4))
	require.NoError(t, h.Close())

	data, err = f.ReadFile("/echo.cmd")
	require.NoError(t, err)
	assert.Equal(t, "echo", string(data))
}

func TestAfero_ReadOnlyHandleCannotWrite(t *testing.T) {
	a, _, _ := newTestAfero(t, store.Record{Command: "echo"})

	h, err := a.Open("/echo.cmd")
	require.NoError(t, err)

	defer h.Close()

	_, err = h.Write([]byte("x"))
	require.Error(t, err)

	data, err := io.ReadAll(h)
	require.NoError(t, err)
	assert.Equal(t, "echo", string(data))
}

func TestAfero_UnchangedHandleDoesNotWrite(t *testing.T) {
	a, _, rec := newTestAfero(t, store.Record{Command: "echo"})

	h, err := a.OpenFile("/echo.cmd", os.O_RDWR, 0o644)
	require.NoError(t, err)
	require.NoError(t, h.Close())

	assert.Empty(t, rec.batches)
}

func TestAfero_ReadDirAndWalk(t *testing.T) {
	a, _, _ := newTestAfero(t,
		store.Record{Command: "git status"},
		store.Record{Name: "Build", Command: "npm run build"},
	)

	infos, err := afero.ReadDir(a, "/")
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, "Build.cmd", infos[0].Name())
	assert.Equal(t, int64(len("npm run build")), infos[0].Size())
	assert.False(t, infos[0].IsDir())
	assert.Equal(t, "git_status.cmd", infos[1].Name())

	var walked []string

	err = afero.Walk(a, "/", func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		walked = append(walked, filepath.ToSlash(p))

		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"/", "/Build.cmd", "/git_status.cmd"}, walked)
}

func TestAfero_Stat(t *testing.T) {
	a, _, _ := newTestAfero(t, store.Record{Command: "git status"})

	info, err := a.Stat("/")
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.True(t, info.Mode().IsDir())

	info, err = a.Stat("/git_status.cmd")
	require.NoError(t, err)
	assert.Equal(t, "git_status.cmd", info.Name())
	assert.Equal(t, int64(10), info.Size())
	assert.True(t, info.Mode().IsRegular())

	_, err = a.Stat("/missing.cmd")
	assert.True(t, os.IsNotExist(err))
}

func TestAfero_RemoveAndRename(t *testing.T) {
	a, f, _ := newTestAfero(t,
		store.Record{Command: "a"},
		store.Record{Command: "b"},
	)

	require.NoError(t, a.Rename("/a.cmd", "/b.cmd"), "rename replaces the target")

	data, err := f.ReadFile("/b.cmd")
	require.NoError(t, err)
	assert.Equal(t, "a", string(data))

	require.NoError(t, a.Remove("/b.cmd"))
	assert.True(t, os.IsNotExist(a.Remove("/b.cmd")))
	require.NoError(t, a.RemoveAll("/b.cmd"), "RemoveAll ignores missing files")
	assert.True(t, os.IsPermission(a.RemoveAll("/")))
}

func TestAfero_Directories(t *testing.T) {
	a, _, _ := newTestAfero(t)

	assert.True(t, os.IsPermission(a.Mkdir("/sub", 0o755)))
	assert.True(t, os.IsPermission(a.MkdirAll("/sub/deeper", 0o755)))
	require.NoError(t, a.MkdirAll("/", 0o755))

	_, err := a.OpenFile("/", os.O_WRONLY, 0)
	require.ErrorIs(t, err, ErrIsADirectory)
}

func TestAfero_Attributes(t *testing.T) {
	a, _, _ := newTestAfero(t, store.Record{Command: "ls"})

	require.NoError(t, a.Chmod("/ls.cmd", 0o600))
	require.NoError(t, a.Chown("/ls.cmd", 0, 0))
	assert.True(t, os.IsNotExist(a.Chmod("/nope.cmd", 0o600)))
	assert.Equal(t, "cmdfs", a.Name())
}
