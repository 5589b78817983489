// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package shellcommand runs stored command text through the user's shell.
package shellcommand

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/matt-FFFFFF/cmdshelf/internal/ctxlog"
	"github.com/matt-FFFFFF/cmdshelf/internal/runbatch"
)

const (
	// GOOSWindows is the string constant for Windows OS from the runtime package.
	GOOSWindows          = "windows"
	commandSwitchWindows = "/C"         // Command switch for Windows cmd.exe
	commandSwitchUnix    = "-c"         // Command switch for Unix-like shells
	winSystem32          = "System32"   // System32 is the directory where cmd.exe is located on Windows.
	cmdExe               = "cmd.exe"    // cmdExe is the name of the command interpreter executable on Windows.
	binSh                = "/bin/sh"    // Default shell for Unix-like systems.
	winSystemRootEnv     = "SystemRoot" // Environment variable for Windows system root directory.
	shellEnv             = "SHELL"
)

var (
	// ErrEmptyCommand is returned when the command text is empty.
	ErrEmptyCommand = errors.New("command is empty")
	// ErrShellNotFound is returned when the configured shell cannot be found.
	ErrShellNotFound = errors.New("shell not found")
)

// lookPath is replaced in tests.
var lookPath = exec.LookPath

// New returns an OSCommand that runs command with shell.
// An empty shell selects the default, see Resolve.
func New(ctx context.Context, base *runbatch.BaseCommand, shell, command string) (*runbatch.OSCommand, error) {
	if command == "" {
		return nil, ErrEmptyCommand
	}

	path, err := Resolve(ctx, shell)
	if err != nil {
		return nil, err
	}

	return &runbatch.OSCommand{
		BaseCommand: base,
		Path:        path,
		Args:        []string{commandSwitch(), command},
	}, nil
}

// Exec returns an unstarted *exec.Cmd running command with shell, for callers
// that hand the terminal to the command.
func Exec(ctx context.Context, shell, command string) (*exec.Cmd, error) {
	if command == "" {
		return nil, ErrEmptyCommand
	}

	path, err := Resolve(ctx, shell)
	if err != nil {
		return nil, err
	}

	return exec.CommandContext(ctx, path, commandSwitch(), command), nil //nolint:gosec
}

// Resolve returns the absolute path of the shell to use.
// A configured shell wins, then $SHELL, then the platform default.
// Names without a path separator are looked up in PATH.
func Resolve(ctx context.Context, configured string) (string, error) {
	shell := configured
	if shell == "" {
		shell = defaultShell(ctx)
	}

	if filepath.IsAbs(shell) {
		return shell, nil
	}

	path, err := lookPath(shell)
	if err != nil {
		return "", errors.Join(fmt.Errorf("%w: %s", ErrShellNotFound, shell), err)
	}

	ctxlog.Debug(ctx, "resolved shell", "shell", shell, "path", path)

	return path, nil
}

func commandSwitch() string {
	if runtime.GOOS == GOOSWindows {
		return commandSwitchWindows
	}

	return commandSwitchUnix
}

func defaultShell(ctx context.Context) string {
	if runtime.GOOS == GOOSWindows {
		systemRoot := os.Getenv(winSystemRootEnv)
		if systemRoot == "" {
			systemRoot = `C:\Windows`
		}

		return fmt.Sprintf(`%s\%s\%s`, systemRoot, winSystem32, cmdExe)
	}

	if shell := os.Getenv(shellEnv); shell != "" {
		ctxlog.Debug(ctx, "Using SHELL environment variable", "shell", shell)
		return shell
	}

	return binSh
}
