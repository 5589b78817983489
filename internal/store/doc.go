// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package store holds the canonical set of command records and persists them.
//
// Every record lives under a key (a slug such as `git_status.cmd`) derived
// deterministically from the record itself. The whole set is persisted as a
// single snapshot in one named slot of a Backend: Load replaces the in-memory
// mapping with the snapshot, Save writes every record back, dropping the keys.
//
// Keys are recomputed on Load, so two records that slug to the same key
// collapse into one (the last one wins). Callers that insert records
// interactively use FreeKey to find a unique `-n` suffixed key instead.
package store
