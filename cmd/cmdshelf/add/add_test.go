// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package add

import (
	"testing"

	"github.com/matt-FFFFFF/cmdshelf/cmd/cmdshelf/internal/clitest"
	"github.com/matt-FFFFFF/cmdshelf/internal/prompt"
	"github.com/matt-FFFFFF/cmdshelf/internal/store"
	"github.com/prashantv/gostub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdd(t *testing.T) {
	testCases := []struct {
		name      string
		existing  []store.Record
		args      []string
		answers   []string
		wantKey   string
		wantRec   store.Record
		wantAsked []string
	}{
		{
			name:    "arguments are joined",
			args:    []string{"git", "status"},
			wantKey: "git_status.cmd",
			wantRec: store.Record{Command: "git status"},
		},
		{
			name:    "name flag",
			args:    []string{"--name", "Build", "npm run build"},
			wantKey: "Build.cmd",
			wantRec: store.Record{Name: "Build", Command: "npm run build"},
		},
		{
			name:     "collision gets a suffix",
			existing: []store.Record{{Command: "ls"}},
			args:     []string{"ls"},
			wantKey:  "ls-1.cmd",
			wantRec:  store.Record{Command: "ls"},
		},
		{
			name:      "prompts for command and name",
			answers:   []string{"make test", "Tests"},
			wantKey:   "Tests.cmd",
			wantRec:   store.Record{Name: "Tests", Command: "make test"},
			wantAsked: []string{"Command: ", "Name (optional): "},
		},
		{
			name:      "name flag skips the name prompt",
			args:      []string{"-n", "Tests"},
			answers:   []string{"make test"},
			wantKey:   "Tests.cmd",
			wantRec:   store.Record{Name: "Tests", Command: "make test"},
			wantAsked: []string{"Command: "},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			st := clitest.NewState(t, tc.existing...)

			p := prompt.NewScripted(tc.answers...)
			stubs := gostub.StubFunc(&newPrompter, p)
			defer stubs.Reset()

			out, err := clitest.Run(t, st, newCmd(), tc.args...)
			require.NoError(t, err)
			assert.Equal(t, "Added "+tc.wantKey+"\n", out.Stdout)

			r, ok := st.FS.Get(tc.wantKey)
			require.True(t, ok)
			assert.Equal(t, tc.wantRec, r)
			assert.Equal(t, tc.wantAsked, p.Questions)
		})
	}
}

func TestAdd_Aborted(t *testing.T) {
	st := clitest.NewState(t)

	stubs := gostub.StubFunc(&newPrompter, prompt.NewScripted())
	defer stubs.Reset()

	_, err := clitest.Run(t, st, newCmd())
	require.Error(t, err)
	assert.Equal(t, 1, clitest.ExitCode(err))
	assert.Contains(t, err.Error(), "aborted")
	assert.Zero(t, st.Store.Len())
}
