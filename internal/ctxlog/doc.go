// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ctxlog carries a *slog.Logger in a context.Context.
//
// The default logger is a pretty console handler writing to stderr. The level
// is read once at start-up from CMDSHELF_LOG_LEVEL and can be changed later
// through LevelVar.
package ctxlog
