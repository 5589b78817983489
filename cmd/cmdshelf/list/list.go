// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package list

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/TylerBrock/colorjson"
	"github.com/matt-FFFFFF/cmdshelf/cmd/cmdshelf/cmdstate"
	"github.com/matt-FFFFFF/cmdshelf/internal/color"
	"github.com/matt-FFFFFF/cmdshelf/internal/store"
	"github.com/urfave/cli/v3"
)

const (
	jsonFlag   = "json"
	jsonIndent = 2
)

// ListCmd prints the stored commands.
var ListCmd = newCmd()

func newCmd() *cli.Command {
	return &cli.Command{
		Name:        "list",
		Aliases:     []string{"ls"},
		Usage:       "List the stored commands",
		Description: "List every stored command by key, with its display label.",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  jsonFlag,
				Usage: "Print the commands as a JSON array",
			},
		},
		Action: actionFunc,
	}
}

type listing struct {
	Key     string `json:"key"`
	Name    string `json:"name,omitempty"`
	Command string `json:"command"`
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	st, err := cmdstate.From(ctx)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	entries := st.FS.Entries()
	w := cmd.Root().Writer

	if cmd.Bool(jsonFlag) {
		if err := writeJSON(w, entries); err != nil {
			return cli.Exit("failed to write listing: "+err.Error(), 1)
		}

		return nil
	}

	if len(entries) == 0 {
		_, _ = fmt.Fprintln(w, "No commands stored.")
		return nil
	}

	width := 0
	for _, e := range entries {
		width = max(width, len(e.Key))
	}

	for _, e := range entries {
		pad := strings.Repeat(" ", width-len(e.Key))
		_, _ = fmt.Fprintf(w, "%s%s  %s\n", color.Key(e.Key), pad, store.Label(e.Record))
	}

	return nil
}

// writeJSON prints entries through colorjson, which works on decoded values.
func writeJSON(w io.Writer, entries []store.Entry) error {
	out := make([]listing, len(entries))
	for i, e := range entries {
		out[i] = listing{Key: e.Key, Name: e.Name, Command: e.Command}
	}

	raw, err := json.Marshal(out)
	if err != nil {
		return err
	}

	var generic []any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return err
	}

	f := colorjson.NewFormatter()
	f.Indent = jsonIndent
	f.DisabledColor = !color.Enabled()

	data, err := f.Marshal(generic)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}
