// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package editor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path"

	"github.com/google/shlex"
	"github.com/matt-FFFFFF/cmdshelf/internal/ctxlog"
	"github.com/spf13/afero"
)

const (
	// DefaultEditor is used when neither the configuration nor the environment names one.
	DefaultEditor = "vi"

	visualEnv = "VISUAL"
	editorEnv = "EDITOR"
	filePerm  = 0o644
)

var (
	// ErrInvalidEditor is returned when the editor command line cannot be parsed.
	ErrInvalidEditor = errors.New("invalid editor command")
	// ErrEditorFailed is returned when the editor exits unsuccessfully. Nothing is written back.
	ErrEditorFailed = errors.New("editor failed")
)

// TempFs returns the filesystem holding temporary files. It must be backed by
// the OS for an external editor to see the files.
var TempFs = afero.NewOsFs

// TempDir is the directory for temporary files. Empty means os.TempDir.
var TempDir = ""

// Resolve splits the editor command line. The configured value wins,
// then $VISUAL, then $EDITOR, then DefaultEditor.
func Resolve(configured string) ([]string, error) {
	line := configured
	for _, env := range []string{visualEnv, editorEnv} {
		if line != "" {
			break
		}

		line = os.Getenv(env)
	}

	if line == "" {
		line = DefaultEditor
	}

	argv, err := shlex.Split(line)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("%w: %q", ErrInvalidEditor, line), err)
	}

	if len(argv) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEditor, line)
	}

	return argv, nil
}

// Session is one edit of one file.
type Session struct {
	fs       afero.Fs
	path     string
	argv     []string
	tempFs   afero.Fs
	tempPath string
	original []byte
}

// Open copies name from fsys into a new temporary file and prepares argv to edit it.
func Open(ctx context.Context, fsys afero.Fs, name string, argv []string) (*Session, error) {
	if len(argv) == 0 {
		return nil, ErrInvalidEditor
	}

	content, err := afero.ReadFile(fsys, name)
	if err != nil {
		return nil, err
	}

	tempFs := TempFs()

	tmp, err := afero.TempFile(tempFs, TempDir, "cmdshelf-*-"+path.Base(name))
	if err != nil {
		return nil, err
	}

	_, werr := tmp.Write(content)
	if cerr := tmp.Close(); werr == nil {
		werr = cerr
	}

	if werr != nil {
		_ = tempFs.Remove(tmp.Name())
		return nil, werr
	}

	ctxlog.Debug(ctx, "editor session opened", "path", name, "temp", tmp.Name())

	return &Session{
		fs:       fsys,
		path:     name,
		argv:     argv,
		tempFs:   tempFs,
		tempPath: tmp.Name(),
		original: content,
	}, nil
}

// TempPath returns the path of the temporary file.
func (s *Session) TempPath() string {
	return s.tempPath
}

// Cmd returns the editor command for the temporary file with the standard streams attached.
func (s *Session) Cmd(ctx context.Context) *exec.Cmd {
	args := append(s.argv[1:len(s.argv):len(s.argv)], s.tempPath)

	cmd := exec.CommandContext(ctx, s.argv[0], args...) //nolint:gosec
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd
}

// Finish reads the temporary file back, writes it to the virtual filesystem
// when it changed and removes the temporary file. runErr is the editor's exit
// error; when it is not nil nothing is written.
func (s *Session) Finish(ctx context.Context, runErr error) (bool, error) {
	defer func() {
		if err := s.tempFs.Remove(s.tempPath); err != nil {
			ctxlog.Debug(ctx, "could not remove temp file", "temp", s.tempPath, "error", err)
		}
	}()

	if runErr != nil {
		return false, errors.Join(ErrEditorFailed, runErr)
	}

	edited, err := afero.ReadFile(s.tempFs, s.tempPath)
	if err != nil {
		return false, err
	}

	// Editors append a final newline the command never had.
	if !bytes.HasSuffix(s.original, []byte("\n")) {
		edited = bytes.TrimSuffix(edited, []byte("\n"))
		edited = bytes.TrimSuffix(edited, []byte("\r"))
	}

	if bytes.Equal(edited, s.original) {
		ctxlog.Debug(ctx, "command unchanged", "path", s.path)
		return false, nil
	}

	if err := afero.WriteFile(s.fs, s.path, edited, filePerm); err != nil {
		return false, err
	}

	ctxlog.Info(ctx, "command updated", "path", s.path)

	return true, nil
}

// Run runs the editor in the foreground and finishes the session.
func (s *Session) Run(ctx context.Context) (bool, error) {
	return s.Finish(ctx, s.Cmd(ctx).Run())
}
