// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/matt-FFFFFF/cmdshelf/internal/cmdfs"
	"github.com/matt-FFFFFF/cmdshelf/internal/editor"
	"github.com/matt-FFFFFF/cmdshelf/internal/notify"
	"github.com/matt-FFFFFF/cmdshelf/internal/prompt"
	"github.com/matt-FFFFFF/cmdshelf/internal/shellcommand"
	"github.com/matt-FFFFFF/cmdshelf/internal/store"
)

// StoreChangedMsg carries a batch of change notifications. The model reloads
// its items on every such message.
type StoreChangedMsg struct {
	Events []notify.Event
}

// opDoneMsg reports the outcome of an action.
type opDoneMsg struct {
	text string
	err  error
}

// Init implements bubbletea.Model.Init.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements bubbletea.Model.Update.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, max(msg.Height-footerHeight, 1))
		m.input.Width = max(msg.Width-len(m.input.Prompt)-1, 1)

		return m, nil

	case StoreChangedMsg:
		return m, m.reload()

	case opDoneMsg:
		if msg.err != nil {
			m.status = m.styles.Failed.Render("✗ " + msg.err.Error())
		} else {
			m.status = m.styles.Success.Render("✓ " + msg.text)
		}

		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeInput:
			return m.updateInput(msg)
		case modeConfirm:
			return m.updateConfirm(msg)
		}

		if m.list.FilterState() != list.Filtering {
			if cmd, handled := m.handleKey(msg); handled {
				return m, cmd
			}
		}
	}

	var cmd tea.Cmd

	if m.mode == modeInput {
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

// handleKey processes the action keys while browsing.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if key.Matches(msg, keys.Quit) {
		m.quitting = true
		return tea.Quit, true
	}

	if key.Matches(msg, keys.New) {
		return m.startInput(actionNew, Item{}, "command> ", ""), true
	}

	it, ok := m.selected()
	if !ok {
		return nil, false
	}

	switch {
	case key.Matches(msg, keys.Run):
		return m.runCmd(it), true
	case key.Matches(msg, keys.Edit):
		return m.editCmd(it), true
	case key.Matches(msg, keys.Duplicate):
		return m.addCmd(it.Record), true
	case key.Matches(msg, keys.Rename):
		return m.startInput(actionRename, it, "rename> ", store.BaseName(it.Key)), true
	case key.Matches(msg, keys.Delete):
		m.mode = modeConfirm
		m.target = it

		return nil, true
	}

	return nil, false
}

func (m *Model) startInput(action inputAction, target Item, promptText, initial string) tea.Cmd {
	m.mode = modeInput
	m.action = action
	m.target = target
	m.input.Prompt = promptText
	m.input.SetValue(initial)
	m.input.CursorEnd()

	return m.input.Focus()
}

func (m *Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Cancel):
		m.endInput()
		m.status = m.styles.Status.Render("cancelled")

		return m, nil

	case key.Matches(msg, keys.Submit):
		value := strings.TrimSpace(m.input.Value())
		action, target := m.action, m.target
		m.endInput()

		if value == "" {
			m.status = m.styles.Status.Render("cancelled")
			return m, nil
		}

		if action == actionRename {
			return m, m.renameCmd(target, value)
		}

		return m, m.addCmd(store.Record{Command: value})
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m *Model) endInput() {
	m.mode = modeBrowse
	m.input.Blur()
	m.input.Reset()
}

func (m *Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	target := m.target
	m.mode = modeBrowse

	if !prompt.IsYes(msg.String()) {
		m.status = m.styles.Status.Render("cancelled")
		return m, nil
	}

	return m, m.deleteCmd(target)
}

func (m *Model) addCmd(r store.Record) tea.Cmd {
	return func() tea.Msg {
		added, err := m.fs.AddCommandItem(m.ctx, r)
		if err != nil {
			return opDoneMsg{err: err}
		}

		return opDoneMsg{text: "added " + added}
	}
}

func (m *Model) renameCmd(it Item, newBase string) tea.Cmd {
	newKey := newBase
	if !strings.HasSuffix(newKey, store.KeySuffix) {
		newKey += store.KeySuffix
	}

	if newKey == it.Key {
		return nil
	}

	return func() tea.Msg {
		err := m.fs.Rename(m.ctx, cmdfs.PathFor(it.Key), cmdfs.PathFor(newKey), cmdfs.RenameOptions{})
		if err != nil {
			return opDoneMsg{err: err}
		}

		return opDoneMsg{text: fmt.Sprintf("renamed %s to %s", it.Key, newKey)}
	}
}

func (m *Model) deleteCmd(it Item) tea.Cmd {
	return func() tea.Msg {
		if err := m.fs.Delete(m.ctx, cmdfs.PathFor(it.Key), cmdfs.DeleteOptions{}); err != nil {
			return opDoneMsg{err: err}
		}

		return opDoneMsg{text: "deleted " + it.Key}
	}
}

// runCmd hands the terminal to the command until it exits.
func (m *Model) runCmd(it Item) tea.Cmd {
	c, err := shellcommand.Exec(m.ctx, m.shell, it.Record.Command)
	if err != nil {
		return opErr(err)
	}

	return tea.ExecProcess(c, func(err error) tea.Msg {
		if err != nil {
			return opDoneMsg{err: fmt.Errorf("%s: %w", it.Key, err)}
		}

		return opDoneMsg{text: "ran " + it.Key}
	})
}

// editCmd hands the terminal to the editor and writes the result back.
func (m *Model) editCmd(it Item) tea.Cmd {
	s, err := editor.Open(m.ctx, m.afs, cmdfs.PathFor(it.Key), m.editor)
	if err != nil {
		return opErr(err)
	}

	return tea.ExecProcess(s.Cmd(m.ctx), func(err error) tea.Msg {
		changed, err := s.Finish(m.ctx, err)

		switch {
		case err != nil:
			return opDoneMsg{err: err}
		case changed:
			return opDoneMsg{text: "saved " + it.Key}
		default:
			return opDoneMsg{text: "no changes to " + it.Key}
		}
	})
}

func opErr(err error) tea.Cmd {
	return func() tea.Msg { return opDoneMsg{err: err} }
}
