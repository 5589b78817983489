// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package add

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/matt-FFFFFF/cmdshelf/cmd/cmdshelf/cmdstate"
	"github.com/matt-FFFFFF/cmdshelf/internal/color"
	"github.com/matt-FFFFFF/cmdshelf/internal/prompt"
	"github.com/matt-FFFFFF/cmdshelf/internal/store"
	"github.com/urfave/cli/v3"
)

const (
	commandArg = "command"
	nameFlag   = "name"
)

// newPrompter opens the interactive prompt used when no command is given.
var newPrompter = func() prompt.Prompter {
	return prompt.NewLine()
}

// AddCmd stores a new command.
var AddCmd = newCmd()

func newCmd() *cli.Command {
	return &cli.Command{
		Name:  "add",
		Usage: "Store a new command",
		Description: `Store the given command text. Without arguments the command and an
optional name are asked for interactively.`,
		Arguments: []cli.Argument{
			&cli.StringArgs{
				Name:      commandArg,
				UsageText: "[COMMAND...]",
				Min:       0,
				Max:       -1,
			},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    nameFlag,
				Aliases: []string{"n"},
				Usage:   "Display name, also used for the file name",
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

	r := store.Record{
		Name:    cmd.String(nameFlag),
		Command: strings.Join(cmd.StringArgs(commandArg), " "),
	}

	if r.Command == "" {
		r, err = ask(r)
		if errors.Is(err, prompt.ErrAborted) {
			return cli.Exit("aborted", 1)
		}

		if err != nil {
			return cli.Exit("failed to read command: "+err.Error(), 1)
		}
	}

	key, err := st.FS.AddCommandItem(ctx, r)
	if err != nil {
		return cli.Exit("failed to add command: "+err.Error(), 1)
	}

	_, _ = fmt.Fprintf(cmd.Root().Writer, "Added %s\n", color.Key(key))

	return nil
}

func ask(r store.Record) (store.Record, error) {
	p := newPrompter()
	defer p.Close() //nolint:errcheck

	command, err := p.Prompt("Command: ", "")
	if err != nil {
		return r, err
	}

	r.Command = command

	if r.Name != "" {
		return r, nil
	}

	name, err := p.Prompt("Name (optional): ", "")
	if err != nil {
		return r, err
	}

	r.Name = name

	return r, nil
}
