// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBaseCommand_GetLabel(t *testing.T) {
	var nilBase *BaseCommand

	assert.Equal(t, "Command", nilBase.GetLabel())
	assert.Equal(t, "Command", NewBaseCommand("", "", nil).GetLabel())
	assert.Equal(t, "build", NewBaseCommand("build", "", nil).GetLabel())
}

func TestBaseCommand_InheritEnv(t *testing.T) {
	tests := []struct {
		name    string
		initial map[string]string
		inherit map[string]string
		want    map[string]string
	}{
		{
			name:    "empty takes a copy",
			initial: nil,
			inherit: map[string]string{"A": "1"},
			want:    map[string]string{"A": "1"},
		},
		{
			name:    "existing values win",
			initial: map[string]string{"A": "mine"},
			inherit: map[string]string{"A": "theirs", "B": "2"},
			want:    map[string]string{"A": "mine", "B": "2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &BaseCommand{Env: tt.initial}
			c.InheritEnv(tt.inherit)
			assert.Equal(t, tt.want, c.Env)
		})
	}
}

func TestBaseCommand_Environ(t *testing.T) {
	t.Setenv("CMDSHELF_TEST_INHERITED", "yes")

	c := NewBaseCommand("", "", map[string]string{"Z_LAST": "z", "A_FIRST": "a"})
	env := c.environ()

	assert.Contains(t, env, "CMDSHELF_TEST_INHERITED=yes")
	assert.Equal(t, []string{"A_FIRST=a", "Z_LAST=z"}, env[len(env)-2:])
}
