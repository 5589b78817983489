// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBackendDown = errors.New("backend down")

// flakyBackend wraps a MemoryBackend and fails updates while down is set.
type flakyBackend struct {
	*MemoryBackend
	down bool
}

func (b *flakyBackend) Update(ctx context.Context, slot string, blob []byte) error {
	if b.down {
		return errBackendDown
	}

	return b.MemoryBackend.Update(ctx, slot, blob)
}

func TestLoad_EmptySlot(t *testing.T) {
	s := New(NewMemoryBackend())

	require.NoError(t, s.Load(context.Background()))
	assert.Equal(t, 0, s.Len())
}

func TestLoad_BlankSnapshot(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBackend()
	require.NoError(t, b.Update(ctx, DefaultSlot, []byte("  \n")))

	s := New(b)
	require.NoError(t, s.Load(ctx))
	assert.Equal(t, 0, s.Len())
}

func TestLoad_RecomputesKeysLastWins(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBackend()
	snapshot := `[
  {"name": "Build", "command": "npm run build"},
  {"command": "git status"},
  {"name": "Build", "command": "make build"},
  {"name": "  ", "command": "ls"}
]`
	require.NoError(t, b.Update(ctx, DefaultSlot, []byte(snapshot)))

	s := New(b)
	require.NoError(t, s.Load(ctx))

	assert.Equal(t, []string{"Build.cmd", "git_status.cmd", "ls.cmd"}, s.Keys())

	r, ok := s.Get("Build.cmd")
	require.True(t, ok)
	assert.Equal(t, "make build", r.Command)

	r, ok = s.Get("ls.cmd")
	require.True(t, ok)
	assert.Empty(t, r.Name, "blank names are normalized away")
}

func TestLoad_DecodeError(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBackend()
	require.NoError(t, b.Update(ctx, DefaultSlot, []byte(`{"not": "an array"}`)))

	s := New(b)
	err := s.Load(ctx)
	require.ErrorIs(t, err, ErrDecodeSnapshot)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBackend()

	s := New(b)
	records := []Record{
		{Name: "Build", Command: "npm run build"},
		{Command: "git status"},
		{Name: "multi", Command: "echo one\necho two"},
		{Command: ""},
	}

	for _, r := range records {
		s.Put(KeyFor(r), r)
	}

	require.NoError(t, s.Save(ctx))

	fresh := New(b)
	require.NoError(t, fresh.Load(ctx))

	assert.ElementsMatch(t, records, fresh.Records())
	assert.Equal(t, s.Keys(), fresh.Keys())
}

func TestSave_FailureKeepsMemoryAuthoritative(t *testing.T) {
	ctx := context.Background()
	b := &flakyBackend{MemoryBackend: NewMemoryBackend(), down: true}

	s := New(b)
	s.Put("git_status.cmd", Record{Command: "git status"})

	err := s.Save(ctx)
	require.ErrorIs(t, err, errBackendDown)
	assert.Equal(t, errBackendDown, err, "backend errors are returned verbatim")
	assert.True(t, s.Has("git_status.cmd"))

	b.down = false
	require.NoError(t, s.Save(ctx))

	fresh := New(b)
	require.NoError(t, fresh.Load(ctx))
	assert.Equal(t, []string{"git_status.cmd"}, fresh.Keys())
}

func TestFreeKey(t *testing.T) {
	s := New(NewMemoryBackend())
	r := Record{Name: "Build", Command: "npm run build"}

	assert.Equal(t, "Build.cmd", s.FreeKey(r))

	s.Put("Build.cmd", r)
	assert.Equal(t, "Build-1.cmd", s.FreeKey(r))

	s.Put("Build-1.cmd", r)
	assert.Equal(t, "Build-2.cmd", s.FreeKey(r))

	s.Remove("Build-1.cmd")
	assert.Equal(t, "Build-1.cmd", s.FreeKey(r))
}

func TestRemove(t *testing.T) {
	s := New(NewMemoryBackend())
	s.Put("a.cmd", Record{Command: "a"})

	assert.True(t, s.Remove("a.cmd"))
	assert.False(t, s.Remove("a.cmd"))
	assert.Equal(t, 0, s.Len())
}

func TestEntries_SortedByKey(t *testing.T) {
	s := New(NewMemoryBackend())
	s.Put("b.cmd", Record{Command: "b"})
	s.Put("a.cmd", Record{Command: "a"})

	entries := s.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "a.cmd", entries[0].Key)
	assert.Equal(t, "a", entries[0].Command)
	assert.Equal(t, "b.cmd", entries[1].Key)
}

func TestFileBackend_YAMLRoundTrip(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	codec := YAMLCodec{}
	b := NewFileBackend(fs, "/data/cmdshelf", codec.Ext())

	s := New(b, WithCodec(codec), WithSlot("snippets"))
	s.Put("Build.cmd", Record{Name: "Build", Command: "npm run build"})
	s.Put("git_status.cmd", Record{Command: "git status"})
	require.NoError(t, s.Save(ctx))

	exists, err := afero.Exists(fs, "/data/cmdshelf/snippets.yaml")
	require.NoError(t, err)
	assert.True(t, exists)

	fresh := New(b, WithCodec(codec), WithSlot("snippets"))
	require.NoError(t, fresh.Load(ctx))
	assert.ElementsMatch(t, s.Records(), fresh.Records())
}

func TestCodecFor(t *testing.T) {
	c, err := CodecFor("")
	require.NoError(t, err)
	assert.IsType(t, JSONCodec{}, c)

	c, err = CodecFor("YML")
	require.NoError(t, err)
	assert.IsType(t, YAMLCodec{}, c)

	_, err = CodecFor("toml")
	require.ErrorIs(t, err, ErrUnknownFormat)
}
