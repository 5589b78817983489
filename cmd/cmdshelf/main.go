// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main contains the cmdshelf command-line interface (CLI).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/matt-FFFFFF/cmdshelf"
	"github.com/matt-FFFFFF/cmdshelf/cmd/cmdshelf/add"
	"github.com/matt-FFFFFF/cmdshelf/cmd/cmdshelf/cmdstate"
	"github.com/matt-FFFFFF/cmdshelf/cmd/cmdshelf/edit"
	"github.com/matt-FFFFFF/cmdshelf/cmd/cmdshelf/exchange"
	"github.com/matt-FFFFFF/cmdshelf/cmd/cmdshelf/list"
	"github.com/matt-FFFFFF/cmdshelf/cmd/cmdshelf/move"
	"github.com/matt-FFFFFF/cmdshelf/cmd/cmdshelf/remove"
	"github.com/matt-FFFFFF/cmdshelf/cmd/cmdshelf/run"
	"github.com/matt-FFFFFF/cmdshelf/cmd/cmdshelf/show"
	"github.com/matt-FFFFFF/cmdshelf/cmd/cmdshelf/ui"
	"github.com/matt-FFFFFF/cmdshelf/internal/color"
	"github.com/matt-FFFFFF/cmdshelf/internal/config"
	"github.com/matt-FFFFFF/cmdshelf/internal/ctxlog"
	"github.com/matt-FFFFFF/cmdshelf/internal/signalbroker"
	"github.com/urfave/cli/v3"
)

const (
	configFlag    = "config"
	dataDirFlag   = "data-dir"
	ephemeralFlag = "ephemeral"
	logLevelFlag  = "log-level"
	noColorFlag   = "no-color"
)

func newRootCmd() *cli.Command {
	return &cli.Command{
		Commands: []*cli.Command{
			list.ListCmd,
			add.AddCmd,
			show.ShowCmd,
			edit.EditCmd,
			remove.RemoveCmd,
			move.MoveCmd,
			run.RunCmd,
			exchange.ImportCmd,
			exchange.ExportCmd,
			ui.UICmd,
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:      configFlag,
				Usage:     "Configuration file, defaults to config.hcl in the user config directory",
				TakesFile: true,
			},
			&cli.StringFlag{
				Name:      dataDirFlag,
				Usage:     "Directory holding the command store",
				TakesFile: true,
			},
			&cli.BoolFlag{
				Name:  ephemeralFlag,
				Usage: "Keep commands in memory only, nothing is read from or written to disk",
			},
			&cli.StringFlag{
				Name:  logLevelFlag,
				Usage: "Log level: debug, info, warn or error",
			},
			&cli.BoolFlag{
				Name:  noColorFlag,
				Usage: "Disable coloured output",
			},
		},
		Before:    before,
		After:     after,
		Action:    ui.Action,
		Writer:    os.Stdout,
		ErrWriter: os.Stderr,
		Name:      "cmdshelf",
		Version:   fmt.Sprintf("%s (commit: %s)", cmdshelf.Version, cmdshelf.Commit),
		Description: `cmdshelf keeps the shell commands you run often. Each command is shown as a
.cmd file in a flat virtual directory, so it can be listed, edited, renamed,
deleted and run by name. Without a subcommand an interactive list is shown.`,
		Usage:     "cmdshelf add git log --oneline --graph",
		Copyright: "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
		Authors: []any{
			"Matt White (matt-FFFFFF)",
		},
		EnableShellCompletion: true,
	}
}

// before loads the configuration and opens the command store for the subcommand.
func before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if cmd.Bool(noColorFlag) {
		color.SetEnabled(false)
	}

	if lvl := cmd.String(logLevelFlag); lvl != "" {
		ctxlog.LevelVar.Set(ctxlog.ParseLevel(lvl))
	}

	cfg, err := config.Load(ctx, cmd.String(configFlag))
	if err != nil {
		return ctx, cli.Exit(err.Error(), 1)
	}

	if dir := cmd.String(dataDirFlag); dir != "" {
		cfg.DataDir = dir
	}

	if cfg.LogFormat == config.LogJSON {
		ctx = ctxlog.New(ctx, ctxlog.JSONLogger)
	}

	st, err := cmdstate.Open(ctx, cfg, cmd.Bool(ephemeralFlag))
	if err != nil {
		return ctx, cli.Exit(err.Error(), 1)
	}

	return cmdstate.With(ctx, st), nil
}

func after(ctx context.Context, _ *cli.Command) error {
	if st, err := cmdstate.From(ctx); err == nil {
		st.Close()
	}

	return nil
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	ctx = ctxlog.New(ctx, ctxlog.DefaultLogger)
	defer cancel()

	sigCh := signalbroker.New(ctx)

	go signalbroker.Watch(ctx, sigCh, cancel, nil)

	err := newRootCmd().Run(ctx, os.Args) // Exit errors are handled by the cli framework

	// Check if the context was cancelled (e.g., due to signals)
	if ctx.Err() != nil {
		ctxlog.Logger(ctx).Error("command terminated due to cancellation", "error", ctx.Err())
		os.Exit(1)
	}

	if err != nil {
		ctxlog.Logger(ctx).Error("command execution failed", "error", err)
		os.Exit(1)
	}

	ctxlog.Debug(ctx, "command completed successfully")
}
