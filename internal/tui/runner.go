// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/matt-FFFFFF/cmdshelf/internal/ctxlog"
	"github.com/matt-FFFFFF/cmdshelf/internal/notify"
)

// eventBuffer is the number of change batches queued for the program.
// Overflowing batches are dropped; any later batch reloads the full list.
const eventBuffer = 64

// Runner owns the bubbletea program and its subscription to the filesystem.
type Runner struct {
	model   *Model
	program *tea.Program
}

// NewRunner creates a new TUI runner. Extra program options, such as input
// and output for tests, are passed to tea.NewProgram.
func NewRunner(ctx context.Context, opts Options, programOpts ...tea.ProgramOption) *Runner {
	model := NewModel(ctx, opts)

	return &Runner{
		model:   model,
		program: tea.NewProgram(model, append([]tea.ProgramOption{tea.WithContext(ctx)}, programOpts...)...),
	}
}

// Run shows the list until the user quits.
func (r *Runner) Run(ctx context.Context) error {
	listener := notify.NewChannelListener(ctx, eventBuffer)
	sub := r.model.fs.OnDidChangeFile(listener)

	listener.Forward(func(events []notify.Event) {
		r.program.Send(StoreChangedMsg{Events: events})
	})

	defer func() {
		sub.Dispose()
		listener.Close()
	}()

	ctxlog.Debug(ctx, "starting list view")

	_, err := r.program.Run()

	return err
}

// Quit asks the program to exit.
func (r *Runner) Quit() {
	r.program.Quit()
}
