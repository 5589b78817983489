// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ui

import (
	"context"

	"github.com/matt-FFFFFF/cmdshelf/cmd/cmdshelf/cmdstate"
	"github.com/matt-FFFFFF/cmdshelf/internal/editor"
	"github.com/matt-FFFFFF/cmdshelf/internal/tui"
	"github.com/urfave/cli/v3"
)

// runList shows the list. Tests replace it to avoid needing a terminal.
var runList = func(ctx context.Context, opts tui.Options) error {
	return tui.NewRunner(ctx, opts).Run(ctx)
}

// UICmd opens the interactive list. It is also the root command's default action.
var UICmd = &cli.Command{
	Name:  "ui",
	Usage: "Browse, run and edit commands interactively",
	Description: `Show the stored commands in an interactive list. Press enter to run the
selected command, e to edit it, n to add one and q to quit.`,
	Action: Action,
}

// Action runs the interactive list until the user quits.
func Action(ctx context.Context, _ *cli.Command) error {
	st, err := cmdstate.From(ctx)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	argv, err := editor.Resolve(st.Config.Editor)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	err = runList(ctx, tui.Options{
		FS:     st.FS,
		Shell:  st.Config.Shell,
		Editor: argv,
	})
	if err != nil {
		return cli.Exit("interactive session failed: "+err.Error(), 1)
	}

	return nil
}
