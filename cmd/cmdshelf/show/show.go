// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package show

import (
	"context"
	"fmt"

	"github.com/matt-FFFFFF/cmdshelf/cmd/cmdshelf/cmdstate"
	"github.com/matt-FFFFFF/cmdshelf/internal/color"
	"github.com/matt-FFFFFF/cmdshelf/internal/store"
	"github.com/urfave/cli/v3"
)

const (
	keyArg      = "key"
	verboseFlag = "verbose"
)

// ShowCmd prints the text of a stored command.
var ShowCmd = newCmd()

func newCmd() *cli.Command {
	return &cli.Command{
		Name:        "show",
		Aliases:     []string{"cat"},
		Usage:       "Print a stored command",
		Description: "Print the command text stored under KEY. The .cmd suffix may be omitted.",
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
			&cli.BoolFlag{
				Name:    verboseFlag,
				Aliases: []string{"v"},
				Usage:   "Print the key and label before the command",
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
	w := cmd.Root().Writer

	if cmd.Bool(verboseFlag) {
		_, _ = fmt.Fprintf(w, "%s %s\n", color.Key(key), color.Dim("("+store.Label(r)+")"))
	}

	_, _ = fmt.Fprintln(w, r.Command)

	return nil
}
