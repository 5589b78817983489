// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package editor

import (
	"context"
	"errors"
	"os"
	"runtime"
	"testing"

	"github.com/matt-FFFFFF/cmdshelf/internal/cmdfs"
	"github.com/matt-FFFFFF/cmdshelf/internal/store"
	"github.com/prashantv/gostub"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newShelf(t *testing.T, records ...store.Record) (afero.Fs, *cmdfs.FS) {
	t.Helper()

	ctx := context.Background()

	s := store.New(store.NewMemoryBackend())
	require.NoError(t, s.Load(ctx))

	f := cmdfs.New(s)
	for _, r := range records {
		_, err := f.AddCommandItem(ctx, r)
		require.NoError(t, err)
	}

	return cmdfs.NewAfero(ctx, f), f
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		visual     string
		editor     string
		want       []string
		wantErr    bool
	}{
		{name: "configured wins", configured: "code --wait", visual: "vim", editor: "nano", want: []string{"code", "--wait"}},
		{name: "visual before editor", visual: "vim", editor: "nano", want: []string{"vim"}},
		{name: "editor", editor: "nano -w", want: []string{"nano", "-w"}},
		{name: "default", want: []string{DefaultEditor}},
		{name: "quoted path", configured: `"/opt/My Editor/bin/edit" -n`, want: []string{"/opt/My Editor/bin/edit", "-n"}},
		{name: "unterminated quote", configured: `"vim`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("VISUAL", tt.visual)
			t.Setenv("EDITOR", tt.editor)

			got, err := Resolve(tt.configured)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidEditor)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSession_Finish(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		edited      string
		runErr      error
		wantChanged bool
		wantCommand string
		wantErr     error
	}{
		{name: "changed", edited: "git status -sb\n", wantChanged: true, wantCommand: "git status -sb"},
		{name: "only a final newline added", edited: "git status\n", wantCommand: "git status"},
		{name: "editor failed", edited: "rm -rf /", runErr: errors.New("exit status 1"), wantCommand: "git status", wantErr: ErrEditorFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempFs := afero.NewMemMapFs()

			stubs := gostub.StubFunc(&TempFs, tempFs)
			defer stubs.Reset()

			a, f := newShelf(t, store.Record{Command: "git status"})

			s, err := Open(ctx, a, "/git_status.cmd", []string{"vi"})
			require.NoError(t, err)

			got, err := afero.ReadFile(tempFs, s.TempPath())
			require.NoError(t, err)
			assert.Equal(t, "git status", string(got))

			require.NoError(t, afero.WriteFile(tempFs, s.TempPath(), []byte(tt.edited), 0o600))

			changed, err := s.Finish(ctx, tt.runErr)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}

			assert.Equal(t, tt.wantChanged, changed)

			r, ok := f.Get("git_status.cmd")
			require.True(t, ok)
			assert.Equal(t, tt.wantCommand, r.Command)

			exists, _ := afero.Exists(tempFs, s.TempPath())
			assert.False(t, exists, "temp file is removed")
		})
	}
}

func TestOpen_Errors(t *testing.T) {
	stubs := gostub.StubFunc(&TempFs, afero.NewMemMapFs())
	defer stubs.Reset()

	a, _ := newShelf(t)

	_, err := Open(context.Background(), a, "/missing.cmd", []string{"vi"})
	assert.True(t, os.IsNotExist(err))

	_, err = Open(context.Background(), a, "/missing.cmd", nil)
	require.ErrorIs(t, err, ErrInvalidEditor)
}

func TestSession_Run(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a POSIX shell as the editor")
	}

	stubs := gostub.Stub(&TempDir, t.TempDir())
	defer stubs.Reset()

	ctx := context.Background()
	a, f := newShelf(t, store.Record{Name: "Build", Command: "make"})

	argv, err := Resolve(`sh -c 'printf "make all\n" > "$1"' editor`)
	require.NoError(t, err)

	s, err := Open(ctx, a, "/Build.cmd", argv)
	require.NoError(t, err)

	changed, err := s.Run(ctx)
	require.NoError(t, err)
	assert.True(t, changed)

	r, ok := f.Get("Build.cmd")
	require.True(t, ok)
	assert.Equal(t, store.Record{Name: "Build", Command: "make all"}, r)

	_, err = os.Stat(s.TempPath())
	assert.True(t, os.IsNotExist(err))
}
