// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package notify delivers file change events from the virtual filesystem to
// interested views.
//
// Events are advisory. A listener is told that something changed and which
// path, and is expected to re-read whatever state it displays rather than
// apply the event as a delta.
package notify
