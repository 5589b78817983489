// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package move

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/matt-FFFFFF/cmdshelf/cmd/cmdshelf/cmdstate"
	"github.com/matt-FFFFFF/cmdshelf/internal/cmdfs"
	"github.com/matt-FFFFFF/cmdshelf/internal/color"
	"github.com/matt-FFFFFF/cmdshelf/internal/store"
	"github.com/urfave/cli/v3"
)

const (
	oldArg    = "old"
	newArg    = "new"
	forceFlag = "force"
)

// MoveCmd renames a stored command.
var MoveCmd = newCmd()

func newCmd() *cli.Command {
	return &cli.Command{
		Name:    "mv",
		Aliases: []string{"rename"},
		Usage:   "Rename a stored command",
		Description: `Move the command stored under OLD to NEW. The .cmd suffix is added to NEW
when missing. A new file name that is not a derived slug becomes the display name.`,
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name:      oldArg,
				UsageText: "OLD",
				Config: cli.StringConfig{
					TrimSpace: true,
				},
			},
			&cli.StringArg{
				Name:      newArg,
				UsageText: " NEW",
				Config: cli.StringConfig{
					TrimSpace: true,
				},
			},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    forceFlag,
				Aliases: []string{"f"},
				Usage:   "Replace NEW if it already exists",
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

	oldName, newName := cmd.StringArg(oldArg), cmd.StringArg(newArg)
	if oldName == "" || newName == "" {
		return cli.Exit("Please provide the old and new keys", 1)
	}

	oldKey, err := st.Resolve(oldName)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	newKey := cmdfs.KeyFromPath(newName)
	if !strings.HasSuffix(newKey, store.KeySuffix) {
		newKey += store.KeySuffix
	}

	err = st.FS.Rename(ctx, cmdfs.PathFor(oldKey), cmdfs.PathFor(newKey), cmdfs.RenameOptions{
		Overwrite: cmd.Bool(forceFlag),
	})

	switch {
	case errors.Is(err, cmdfs.ErrAlreadyExists):
		return cli.Exit(fmt.Sprintf("%s already exists, use --%s to replace it", newKey, forceFlag), 1)
	case err != nil:
		return cli.Exit(fmt.Sprintf("failed to rename %s: %s", oldKey, err.Error()), 1)
	}

	_, _ = fmt.Fprintf(cmd.Root().Writer, "Renamed %s to %s\n", color.Key(oldKey), color.Key(newKey))

	return nil
}
