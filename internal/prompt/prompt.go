// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package prompt asks the user for a line of input on the terminal.
package prompt

import (
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/peterh/liner"
)

// ErrAborted is returned when the user cancels a prompt with Ctrl+C or end of input.
var ErrAborted = errors.New("prompt aborted")

// Prompter reads answers from the user.
type Prompter interface {
	// Prompt asks for a line of text, pre-filled with initial.
	// An empty answer returns initial.
	Prompt(question, initial string) (string, error)
	// Confirm asks a yes/no question. Only y and yes are a yes.
	Confirm(question string) (bool, error)
	// Close restores the terminal.
	Close() error
}

var _ Prompter = (*Line)(nil)

// Line is a Prompter on a liner line editor with in-session history.
type Line struct {
	state *liner.State
	once  sync.Once
}

// NewLine puts the terminal into line editing mode. Call Close when done.
func NewLine() *Line {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)

	return &Line{state: state}
}

// Prompt implements Prompter.
func (l *Line) Prompt(question, initial string) (string, error) {
	var (
		input string
		err   error
	)

	if initial == "" {
		input, err = l.state.Prompt(question)
	} else {
		input, err = l.state.PromptWithSuggestion(question, initial, -1)
	}

	if err != nil {
		return "", translate(err)
	}

	if input == "" {
		return initial, nil
	}

	l.state.AppendHistory(input)

	return input, nil
}

// Confirm implements Prompter.
func (l *Line) Confirm(question string) (bool, error) {
	answer, err := l.state.Prompt(question + " [y/N] ")
	if err != nil {
		return false, translate(err)
	}

	return IsYes(answer), nil
}

// Close implements Prompter. It is safe to call more than once.
func (l *Line) Close() error {
	var err error

	l.once.Do(func() { err = l.state.Close() })

	return err
}

// IsYes reports whether answer means yes.
func IsYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

func translate(err error) error {
	if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
		return ErrAborted
	}

	return err
}
