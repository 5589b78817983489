// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package tui provides the interactive command list.
//
// The list shows every stored command with its label and key. Commands can be
// run, edited in the user's editor, added, duplicated, renamed and deleted.
// The view never tracks changes itself: the Runner subscribes to the virtual
// filesystem and every change notification makes the model reload its items.
package tui
