// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package remove

import (
	"context"
	"errors"
	"fmt"

	"github.com/matt-FFFFFF/cmdshelf/cmd/cmdshelf/cmdstate"
	"github.com/matt-FFFFFF/cmdshelf/internal/cmdfs"
	"github.com/matt-FFFFFF/cmdshelf/internal/color"
	"github.com/matt-FFFFFF/cmdshelf/internal/prompt"
	"github.com/matt-FFFFFF/cmdshelf/internal/store"
	"github.com/urfave/cli/v3"
)

const (
	keyArg    = "key"
	forceFlag = "force"
)

var newPrompter = func() prompt.Prompter {
	return prompt.NewLine()
}

// RemoveCmd deletes a stored command.
var RemoveCmd = newCmd()

func newCmd() *cli.Command {
	return &cli.Command{
		Name:        "rm",
		Aliases:     []string{"remove", "delete"},
		Usage:       "Delete a stored command",
		Description: "Delete the command stored under KEY after confirmation.",
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
				Name:    forceFlag,
				Aliases: []string{"f"},
				Usage:   "Do not ask for confirmation",
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

	w := cmd.Root().Writer

	if !cmd.Bool(forceFlag) {
		r, _ := st.FS.Get(key)

		ok, err := confirm(fmt.Sprintf("Delete %q?", store.Label(r)))
		if err != nil && !errors.Is(err, prompt.ErrAborted) {
			return cli.Exit("failed to read answer: "+err.Error(), 1)
		}

		if !ok {
			_, _ = fmt.Fprintln(w, "Nothing deleted.")
			return nil
		}
	}

	if err := st.FS.Delete(ctx, cmdfs.PathFor(key), cmdfs.DeleteOptions{}); err != nil {
		return cli.Exit(fmt.Sprintf("failed to delete %s: %s", key, err.Error()), 1)
	}

	_, _ = fmt.Fprintf(w, "Deleted %s\n", color.Key(key))

	return nil
}

func confirm(question string) (bool, error) {
	p := newPrompter()
	defer p.Close() //nolint:errcheck

	return p.Confirm(question)
}
