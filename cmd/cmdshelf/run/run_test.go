// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package run

import (
	"path/filepath"
	"testing"

	"github.com/matt-FFFFFF/cmdshelf/cmd/cmdshelf/internal/clitest"
	"github.com/matt-FFFFFF/cmdshelf/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, goleak.IgnoreAnyFunction("os/signal.loop"))
}

func TestRun(t *testing.T) {
	dir := t.TempDir()

	testCases := []struct {
		name       string
		record     store.Record
		args       []string
		wantCode   int
		wantStdout string
		wantStderr []string
		wantErr    string
	}{
		{
			name:       "success streams output and prints a summary",
			record:     store.Record{Command: "echo hi"},
			args:       []string{"echo_hi"},
			wantStdout: "hi\n",
			wantStderr: []string{"✓ echo hi"},
		},
		{
			name:       "quiet success prints no summary",
			record:     store.Record{Command: "echo hi"},
			args:       []string{"-q", "echo_hi"},
			wantStdout: "hi\n",
		},
		{
			name:       "environment",
			record:     store.Record{Name: "Greet", Command: `echo "$GREETING"`},
			args:       []string{"--env", "GREETING=hello", "Greet"},
			wantStdout: "hello\n",
			wantStderr: []string{"✓ Greet"},
		},
		{
			name:       "working directory",
			record:     store.Record{Name: "Where", Command: "pwd"},
			args:       []string{"-q", "-C", dir, "Where"},
			wantStdout: filepath.Base(dir),
		},
		{
			name:       "exit code is passed through",
			record:     store.Record{Name: "Fail", Command: "echo oops >&2; exit 3"},
			args:       []string{"-q", "Fail.cmd"},
			wantCode:   3,
			wantStderr: []string{"oops\n", "✗ Fail (exit code: 3)"},
		},
		{
			name:     "empty command",
			record:   store.Record{Name: "Empty"},
			args:     []string{"Empty"},
			wantCode: 1,
			wantErr:  "cannot run Empty.cmd",
		},
		{
			name:     "unknown key",
			record:   store.Record{Command: "true"},
			args:     []string{"false"},
			wantCode: 1,
			wantErr:  "no such command",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			st := clitest.NewState(t, tc.record)
			st.Config.Shell = "/bin/sh"

			out, err := clitest.Run(t, st, newCmd(), tc.args...)
			assert.Equal(t, tc.wantCode, clitest.ExitCode(err))

			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)

				return
			}

			assert.Contains(t, out.Stdout, tc.wantStdout)

			if tc.wantStderr == nil {
				assert.Empty(t, out.Stderr)
			}

			for _, want := range tc.wantStderr {
				assert.Contains(t, out.Stderr, want)
			}
		})
	}
}
