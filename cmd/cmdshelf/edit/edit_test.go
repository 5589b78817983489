// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package edit

import (
	"testing"

	"github.com/matt-FFFFFF/cmdshelf/cmd/cmdshelf/internal/clitest"
	"github.com/matt-FFFFFF/cmdshelf/internal/editor"
	"github.com/matt-FFFFFF/cmdshelf/internal/store"
	"github.com/prashantv/gostub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEdit(t *testing.T) {
	testCases := []struct {
		name       string
		configured string
		args       []string
		want       string
		wantRec    store.Record
		wantCode   int
		wantErr    string
	}{
		{
			name:       "configured editor rewrites the command",
			configured: `sh -c 'printf "make all\n" > "$1"' editor`,
			args:       []string{"Build"},
			want:       "Updated Build.cmd\n",
			wantRec:    store.Record{Name: "Build", Command: "make all"},
		},
		{
			name:       "editor flag wins",
			configured: "false",
			args:       []string{"--editor", "true", "Build.cmd"},
			want:       "No changes to Build.cmd\n",
			wantRec:    store.Record{Name: "Build", Command: "make"},
		},
		{
			name:       "failing editor keeps the command",
			configured: `sh -c 'printf "rm -rf /\n" > "$1"; exit 3' editor`,
			args:       []string{"Build"},
			wantRec:    store.Record{Name: "Build", Command: "make"},
			wantCode:   1,
			wantErr:    "failed to edit Build.cmd",
		},
		{
			name:     "unknown key",
			args:     []string{"nope"},
			wantRec:  store.Record{Name: "Build", Command: "make"},
			wantCode: 1,
			wantErr:  "no such command",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			stubs := gostub.Stub(&editor.TempDir, t.TempDir())
			defer stubs.Reset()

			st := clitest.NewState(t, store.Record{Name: "Build", Command: "make"})
			st.Config.Editor = tc.configured

			out, err := clitest.Run(t, st, newCmd(), tc.args...)
			assert.Equal(t, tc.wantCode, clitest.ExitCode(err))

			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.want, out.Stdout)
			}

			r, ok := st.FS.Get("Build.cmd")
			require.True(t, ok)
			assert.Equal(t, tc.wantRec, r)
		})
	}
}
