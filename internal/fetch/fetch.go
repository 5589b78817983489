// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package fetch retrieves import documents from local paths or any source
// understood by Hashicorp's go-getter (https, git, s3, forced `file::` and so on).
package fetch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-getter/v2"
	"github.com/matt-FFFFFF/cmdshelf/internal/ctxlog"
	"github.com/spf13/afero"
)

// ErrFetch is returned, joined with the cause, when a source cannot be retrieved.
var ErrFetch = errors.New("failed to fetch import source")

// FsFactory returns the filesystem local paths are read from.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}

// Fetch returns the content of src. A path that exists on the local filesystem
// is read directly; anything else is downloaded with go-getter into a
// temporary directory that is removed before returning.
func Fetch(ctx context.Context, src string) ([]byte, error) {
	if src == "" {
		return nil, fmt.Errorf("%w: empty source", ErrFetch)
	}

	local := FsFactory()
	if ok, _ := afero.Exists(local, src); ok {
		data, err := afero.ReadFile(local, src)
		if err != nil {
			return nil, errors.Join(ErrFetch, err)
		}

		return data, nil
	}

	return download(ctx, src)
}

func download(ctx context.Context, src string) ([]byte, error) {
	tmpDir, err := os.MkdirTemp("", "cmdshelf-getter-*")
	if err != nil {
		return nil, errors.Join(ErrFetch, err)
	}

	defer os.RemoveAll(tmpDir) //nolint:errcheck

	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.Join(ErrFetch, err)
	}

	client := getter.Client{
		DisableSymlinks: true,
	}

	req := &getter.Request{
		Src:     src,
		Dst:     filepath.Join(tmpDir, "import"),
		Pwd:     wd,
		GetMode: getter.ModeFile,
		Copy:    true,
	}

	ctxlog.Debug(ctx, "downloading import source", "src", src)

	res, err := client.Get(ctx, req)
	if err != nil {
		return nil, errors.Join(ErrFetch, err)
	}

	data, err := os.ReadFile(res.Dst)
	if err != nil {
		return nil, errors.Join(ErrFetch, err)
	}

	return data, nil
}
