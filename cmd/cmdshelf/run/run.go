// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package run

import (
	"context"
	"fmt"

	"github.com/matt-FFFFFF/cmdshelf/cmd/cmdshelf/cmdstate"
	"github.com/matt-FFFFFF/cmdshelf/internal/runbatch"
	"github.com/matt-FFFFFF/cmdshelf/internal/shellcommand"
	"github.com/matt-FFFFFF/cmdshelf/internal/store"
	"github.com/urfave/cli/v3"
)

const (
	keyArg    = "key"
	dirFlag   = "dir"
	envFlag   = "env"
	quietFlag = "quiet"
	shellFlag = "shell"
)

// RunCmd runs a stored command with the configured shell.
var RunCmd = newCmd()

func newCmd() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Run a stored command",
		Description: `Run the command stored under KEY with the configured shell. Output is
streamed as it is produced and a summary is printed to stderr when the command
finishes. The exit code of the command becomes the exit code of cmdshelf.`,
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name:      keyArg,
				UsageText: "KEY",
				Config: cli.StringConfig{
					TrimSpace: true,
				},
			},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    dirFlag,
				Aliases: []string{"C"},
				Usage:   "Working directory for the command",
			},
			&cli.StringMapFlag{
				Name:    envFlag,
				Aliases: []string{"e"},
				Usage:   "Extra environment variable as NAME=VALUE, may be repeated",
			},
			&cli.StringFlag{
				Name:  shellFlag,
				Usage: "Shell to run the command with",
			},
			&cli.BoolFlag{
				Name:    quietFlag,
				Aliases: []string{"q"},
				Usage:   "Only print the summary when the command fails",
			},
		},
		Action: actionFunc,
	}
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	st, err := cmdstate.From(ctx)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	arg := cmd.StringArg(keyArg)
	if arg == "" {
		return cli.Exit("Please provide the key of a command", 1)
	}

	key, err := st.Resolve(arg)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	r, _ := st.FS.Get(key)

	shell := cmd.String(shellFlag)
	if shell == "" {
		shell = st.Config.Shell
	}

	base := runbatch.NewBaseCommand(store.Label(r), cmd.String(dirFlag), cmd.StringMap(envFlag))

	osCmd, err := shellcommand.New(ctx, base, shell, r.Command)
	if err != nil {
		return cli.Exit(fmt.Sprintf("cannot run %s: %s", key, err.Error()), 1)
	}

	root := cmd.Root()
	osCmd.Stdout = root.Writer
	osCmd.Stderr = root.ErrWriter

	res := osCmd.Run(ctx)

	if !cmd.Bool(quietFlag) || res.HasError() {
		opts := runbatch.DefaultOutputOptions()
		opts.IncludeStdErr = false
		opts.ShowDuration = true

		if err := res.WriteText(root.ErrWriter, opts); err != nil {
			return cli.Exit("failed to write results: "+err.Error(), 1)
		}
	}

	if res.HasError() {
		code := res.ExitCode()
		if code <= 0 {
			code = 1
		}

		return cli.Exit("", code)
	}

	return nil
}
