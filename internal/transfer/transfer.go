// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package transfer

import (
	"context"
	"errors"

	"github.com/matt-FFFFFF/cmdshelf/internal/cmdfs"
	"github.com/matt-FFFFFF/cmdshelf/internal/ctxlog"
	"github.com/matt-FFFFFF/cmdshelf/internal/store"
	"github.com/spf13/afero"
)

const exportPerm = 0o644

// ErrNothingToExport is returned by Export when the store is empty. No file is written.
var ErrNothingToExport = errors.New("no commands to export")

// Summary reports the outcome of an import.
type Summary struct {
	Added   int
	Skipped int
	// Keys lists the keys of the added records, in import order.
	Keys []string
}

// Import adds every record that is not already stored with the same name and
// command. Duplicates within records are skipped too, since each record is
// compared with the store as it stands after the previous one was added.
// It stops at the first error; records added before it stay added.
func Import(ctx context.Context, f *cmdfs.FS, records []store.Record) (Summary, error) {
	var sum Summary

	for _, r := range records {
		if contains(f.Entries(), r) {
			sum.Skipped++
			continue
		}

		key, err := f.AddCommandItem(ctx, r)
		if err != nil {
			return sum, err
		}

		sum.Added++
		sum.Keys = append(sum.Keys, key)
	}

	ctxlog.Info(ctx, "imported commands", "added", sum.Added, "skipped", sum.Skipped)

	return sum, nil
}

// Encode renders records in the exchange format.
func Encode(records []store.Record) ([]byte, error) {
	return store.JSONCodec{}.Marshal(records)
}

// Export writes every stored record to path on out and returns how many were written.
func Export(ctx context.Context, f *cmdfs.FS, out afero.Fs, path string) (int, error) {
	entries := f.Entries()
	if len(entries) == 0 {
		return 0, ErrNothingToExport
	}

	records := make([]store.Record, len(entries))
	for i, e := range entries {
		records[i] = e.Record
	}

	data, err := Encode(records)
	if err != nil {
		return 0, err
	}

	if err := afero.WriteFile(out, path, append(data, '\n'), exportPerm); err != nil {
		return 0, err
	}

	ctxlog.Info(ctx, "exported commands", "path", path, "count", len(records))

	return len(records), nil
}

func contains(entries []store.Entry, r store.Record) bool {
	for _, e := range entries {
		if store.Equal(e.Record, r) {
			return true
		}
	}

	return false
}
