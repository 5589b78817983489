// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package exchange holds the import and export commands.
package exchange

import (
	"context"
	"errors"
	"fmt"

	"github.com/matt-FFFFFF/cmdshelf/cmd/cmdshelf/cmdstate"
	"github.com/matt-FFFFFF/cmdshelf/internal/fetch"
	"github.com/matt-FFFFFF/cmdshelf/internal/transfer"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"
)

const (
	sourceArg  = "source"
	fileArg    = "file"
	dryRunFlag = "dry-run"
)

// FsFactory returns the filesystem exports are written to.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}

// ImportCmd adds the commands from an exported file or URL.
var ImportCmd = newImportCmd()

// ExportCmd writes every stored command to a file.
var ExportCmd = newExportCmd()

func newImportCmd() *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Import commands from a file or URL",
		Description: `Add the commands in SOURCE, a JSON array of {"name", "command"} objects as
written by export. SOURCE is a local path or any address go-getter understands,
such as https:// or git:: URLs. Commands already stored with the same name and
text are skipped.`,
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name:      sourceArg,
				UsageText: "SOURCE",
				Config: cli.StringConfig{
					TrimSpace: true,
				},
			},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  dryRunFlag,
				Usage: "Validate SOURCE without storing anything",
			},
		},
		Action: importAction,
	}
}

func newExportCmd() *cli.Command {
	return &cli.Command{
		Name:        "export",
		Usage:       "Export every command to a JSON file",
		Description: "Write every stored command to FILE as a JSON array that import accepts.",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name:      fileArg,
				UsageText: "FILE",
				Config: cli.StringConfig{
					TrimSpace: true,
				},
			},
		},
		Action: exportAction,
	}
}

func importAction(ctx context.Context, cmd *cli.Command) error {
	st, err := cmdstate.From(ctx)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	src := cmd.StringArg(sourceArg)
	if src == "" {
		return cli.Exit("Please provide a file or URL to import", 1)
	}

	data, err := fetch.Fetch(ctx, src)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	records, err := transfer.Parse(data)
	if err != nil {
		return cli.Exit(fmt.Sprintf("%s is not a valid export: %s", src, err.Error()), 1)
	}

	w := cmd.Root().Writer

	if cmd.Bool(dryRunFlag) {
		_, _ = fmt.Fprintf(w, "%s holds %d valid commands\n", src, len(records))
		return nil
	}

	sum, err := transfer.Import(ctx, st.FS, records)
	if err != nil {
		return cli.Exit(fmt.Sprintf("import stopped after %d commands: %s", sum.Added, err.Error()), 1)
	}

	_, _ = fmt.Fprintf(w, "Imported %d commands, skipped %d already stored\n", sum.Added, sum.Skipped)

	return nil
}

func exportAction(ctx context.Context, cmd *cli.Command) error {
	st, err := cmdstate.From(ctx)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	path := cmd.StringArg(fileArg)
	if path == "" {
		return cli.Exit("Please provide the file to export to", 1)
	}

	n, err := transfer.Export(ctx, st.FS, FsFactory(), path)

	switch {
	case errors.Is(err, transfer.ErrNothingToExport):
		return cli.Exit("There are no commands to export", 1)
	case err != nil:
		return cli.Exit(fmt.Sprintf("failed to export to %s: %s", path, err.Error()), 1)
	}

	_, _ = fmt.Fprintf(cmd.Root().Writer, "Exported %d commands to %s\n", n, path)

	return nil
}
