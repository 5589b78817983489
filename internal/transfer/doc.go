// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package transfer imports and exports commands as a JSON array of
// `{"name": "...", "command": "..."}` objects. Keys are never part of the
// exchange format; they are derived again on import.
package transfer
