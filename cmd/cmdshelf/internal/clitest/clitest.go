// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package clitest runs subcommands against an in-memory command store.
package clitest

import (
	"bytes"
	"context"
	"testing"

	"github.com/matt-FFFFFF/cmdshelf/cmd/cmdshelf/cmdstate"
	"github.com/matt-FFFFFF/cmdshelf/internal/color"
	"github.com/matt-FFFFFF/cmdshelf/internal/config"
	"github.com/matt-FFFFFF/cmdshelf/internal/store"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

// Output holds what a command wrote.
type Output struct {
	Stdout string
	Stderr string
}

// NewState returns a state over a MemoryBackend holding records.
func NewState(t *testing.T, records ...store.Record) *cmdstate.State {
	t.Helper()

	cfg := &config.Config{
		StoreFormat: config.FormatJSON,
		LogFormat:   config.LogPretty,
	}

	st, err := cmdstate.OpenBackend(context.Background(), cfg, store.NewMemoryBackend(), store.JSONCodec{})
	require.NoError(t, err)

	for _, r := range records {
		_, err := st.FS.AddCommandItem(context.Background(), r)
		require.NoError(t, err)
	}

	t.Cleanup(st.Close)

	return st
}

// Run runs cmd as the root command with args, with colour disabled and exit
// errors returned rather than ending the process.
func Run(t *testing.T, st *cmdstate.State, cmd *cli.Command, args ...string) (Output, error) {
	t.Helper()

	prev := color.SetEnabled(false)
	t.Cleanup(func() { color.SetEnabled(prev) })

	var stdout, stderr bytes.Buffer

	cmd.Writer = &stdout
	cmd.ErrWriter = &stderr
	cmd.ExitErrHandler = func(context.Context, *cli.Command, error) {}

	ctx := context.Background()
	if st != nil {
		ctx = cmdstate.With(ctx, st)
	}

	err := cmd.Run(ctx, append([]string{"cmdshelf"}, args...))

	return Output{Stdout: stdout.String(), Stderr: stderr.String()}, err
}

// ExitCode returns the exit code carried by err, 0 for nil and 1 for errors without one.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	if ec, ok := err.(cli.ExitCoder); ok { //nolint:errorlint
		return ec.ExitCode()
	}

	return 1
}
