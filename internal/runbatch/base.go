// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"maps"
	"os"
	"slices"
)

// BaseCommand holds the settings shared by every command type.
type BaseCommand struct {
	Label string            // Optional label for the command
	Cwd   string            // The working directory for the command, empty means the current one
	Env   map[string]string // Environment variables added to the inherited environment
}

// NewBaseCommand creates a new BaseCommand with the specified parameters.
func NewBaseCommand(label, cwd string, env map[string]string) *BaseCommand {
	if env == nil {
		env = make(map[string]string)
	}

	return &BaseCommand{
		Label: label,
		Cwd:   cwd,
		Env:   env,
	}
}

// GetLabel returns the label of the command.
func (c *BaseCommand) GetLabel() string {
	if c == nil || c.Label == "" {
		return "Command"
	}

	return c.Label
}

// InheritEnv adds environment variables that are not already set on the command.
func (c *BaseCommand) InheritEnv(env map[string]string) {
	if len(c.Env) == 0 {
		c.Env = maps.Clone(env)
		return
	}

	for k, v := range maps.All(env) {
		if _, ok := c.Env[k]; !ok {
			c.Env[k] = v
		}
	}
}

// environ returns the process environment with the command's variables appended in key order.
func (c *BaseCommand) environ() []string {
	env := os.Environ()
	if c == nil {
		return env
	}

	for _, k := range slices.Sorted(maps.Keys(c.Env)) {
		env = append(env, k+"="+c.Env[k])
	}

	return env
}
