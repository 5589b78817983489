// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package edit

import (
	"context"
	"fmt"

	"github.com/matt-FFFFFF/cmdshelf/cmd/cmdshelf/cmdstate"
	"github.com/matt-FFFFFF/cmdshelf/internal/cmdfs"
	"github.com/matt-FFFFFF/cmdshelf/internal/color"
	"github.com/matt-FFFFFF/cmdshelf/internal/editor"
	"github.com/urfave/cli/v3"
)

const (
	keyArg     = "key"
	editorFlag = "editor"
)

// EditCmd opens a stored command in an editor.
var EditCmd = newCmd()

func newCmd() *cli.Command {
	return &cli.Command{
		Name:  "edit",
		Usage: "Edit a stored command in your editor",
		Description: `Open the command stored under KEY in an editor and store the result when
the editor exits successfully. The editor is taken from --editor, the
configuration, $VISUAL or $EDITOR, in that order.`,
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
				Name:  editorFlag,
				Usage: "Editor command line to use",
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

	configured := cmd.String(editorFlag)
	if configured == "" {
		configured = st.Config.Editor
	}

	argv, err := editor.Resolve(configured)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	sess, err := editor.Open(ctx, cmdfs.NewAfero(ctx, st.FS), cmdfs.PathFor(key), argv)
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to open %s: %s", key, err.Error()), 1)
	}

	changed, err := sess.Run(ctx)
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to edit %s: %s", key, err.Error()), 1)
	}

	w := cmd.Root().Writer

	if !changed {
		_, _ = fmt.Fprintf(w, "No changes to %s\n", color.Key(key))
		return nil
	}

	_, _ = fmt.Fprintf(w, "Updated %s\n", color.Key(key))

	return nil
}
