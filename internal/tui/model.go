// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/matt-FFFFFF/cmdshelf/internal/cmdfs"
	"github.com/matt-FFFFFF/cmdshelf/internal/store"
	"github.com/spf13/afero"
)

const footerHeight = 2

type mode int

const (
	modeBrowse mode = iota
	modeInput
	modeConfirm
)

type inputAction int

const (
	actionNew inputAction = iota
	actionRename
)

var _ list.DefaultItem = Item{}

// Item is a stored command in the list.
type Item struct {
	Key    string
	Record store.Record
}

// Title implements list.DefaultItem.
func (i Item) Title() string { return store.Label(i.Record) }

// Description implements list.DefaultItem.
func (i Item) Description() string { return i.Key }

// FilterValue implements list.Item. Filtering matches the label and the command text.
func (i Item) FilterValue() string { return i.Title() + " " + i.Record.Command }

// Styles contains all the styling for the TUI.
type Styles struct {
	Title   lipgloss.Style
	Success lipgloss.Style
	Failed  lipgloss.Style
	Prompt  lipgloss.Style
	Status  lipgloss.Style
}

// NewStyles creates the default styling for the TUI.
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")),
		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")),
		Failed: lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")),
		Prompt: lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")).
			Bold(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")),
	}
}

// Options configures a Model.
type Options struct {
	FS     *cmdfs.FS
	Shell  string   // Shell for running commands, empty for the default.
	Editor []string // Editor command line, already split.
}

// Model represents the TUI application state.
type Model struct {
	ctx    context.Context
	fs     *cmdfs.FS
	afs    afero.Fs
	shell  string
	editor []string

	list   list.Model
	input  textinput.Model
	mode   mode
	action inputAction
	target Item

	status   string
	quitting bool
	styles   *Styles
}

// NewModel creates a new TUI model listing the commands in opts.FS.
func NewModel(ctx context.Context, opts Options) *Model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = "cmdshelf"
	l.SetStatusBarItemName("command", "commands")
	l.DisableQuitKeybindings()
	l.AdditionalShortHelpKeys = keys.ShortHelp
	l.AdditionalFullHelpKeys = keys.FullHelp

	in := textinput.New()

	m := &Model{
		ctx:    ctx,
		fs:     opts.FS,
		afs:    cmdfs.NewAfero(ctx, opts.FS),
		shell:  opts.Shell,
		editor: opts.Editor,
		list:   l,
		input:  in,
		styles: NewStyles(),
	}

	m.reload()

	return m
}

// Items returns the items currently listed.
func (m *Model) Items() []Item {
	items := m.list.Items()

	out := make([]Item, 0, len(items))
	for _, it := range items {
		if item, ok := it.(Item); ok {
			out = append(out, item)
		}
	}

	return out
}

// Status returns the last status line.
func (m *Model) Status() string {
	return m.status
}

// selected returns the highlighted item.
func (m *Model) selected() (Item, bool) {
	it, ok := m.list.SelectedItem().(Item)
	return it, ok
}

// reload replaces the items with the current store contents, keeping the
// selection on the same key when it still exists.
func (m *Model) reload() tea.Cmd {
	current, hadSelection := m.selected()

	entries := m.fs.Entries()

	items := make([]list.Item, len(entries))
	index := 0

	for i, e := range entries {
		items[i] = Item{Key: e.Key, Record: e.Record}
		if hadSelection && e.Key == current.Key {
			index = i
		}
	}

	cmd := m.list.SetItems(items)
	if len(items) > 0 {
		m.list.Select(min(index, len(items)-1))
	}

	return cmd
}

// View implements bubbletea.Model.View.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder

	sb.WriteString(m.list.View())
	sb.WriteString("\n")

	switch m.mode {
	case modeInput:
		sb.WriteString(m.input.View())
	case modeConfirm:
		sb.WriteString(m.styles.Prompt.Render(fmt.Sprintf("Delete %q? [y/N]", m.target.Title())))
	default:
		sb.WriteString(m.status)
	}

	return sb.String()
}
