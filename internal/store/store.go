// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package store

import (
	"bytes"
	"context"
	"errors"
	"maps"
	"slices"
	"sync"

	"github.com/matt-FFFFFF/cmdshelf/internal/ctxlog"
)

// DefaultSlot is the backend slot that holds the command snapshot.
const DefaultSlot = "commands"

var (
	// ErrDecodeSnapshot is returned when the persisted snapshot cannot be decoded.
	ErrDecodeSnapshot = errors.New("failed to decode command snapshot")
	// ErrEncodeSnapshot is returned when the records cannot be encoded for persistence.
	ErrEncodeSnapshot = errors.New("failed to encode command snapshot")
)

// Entry is a record together with the key it is stored under.
type Entry struct {
	Key string
	Record
}

// Store is the in-memory mapping from key to record, backed by a snapshot slot.
// The mapping is authoritative: a failed Save leaves it untouched.
type Store struct {
	backend Backend
	codec   Codec
	slot    string

	mu      sync.RWMutex
	entries map[string]Record
}

// Option configures a Store.
type Option func(*Store)

// WithCodec sets the snapshot encoding. The default is JSON.
func WithCodec(c Codec) Option {
	return func(s *Store) {
		s.codec = c
	}
}

// WithSlot sets the backend slot. The default is DefaultSlot.
func WithSlot(slot string) Option {
	return func(s *Store) {
		s.slot = slot
	}
}

// New creates an empty store. Call Load to populate it from the backend.
func New(backend Backend, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		codec:   JSONCodec{},
		slot:    DefaultSlot,
		entries: make(map[string]Record),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Load replaces the mapping with the persisted snapshot.
// Keys are recomputed from each record and later records overwrite earlier ones.
// A slot that was never written yields an empty store.
func (s *Store) Load(ctx context.Context) error {
	blob, err := s.backend.Get(ctx, s.slot)
	if err != nil {
		return err
	}

	entries := make(map[string]Record)

	if len(bytes.TrimSpace(blob)) > 0 {
		records, err := s.codec.Unmarshal(blob)
		if err != nil {
			return errors.Join(ErrDecodeSnapshot, err)
		}

		for _, r := range records {
			r = Normalize(r)
			entries[KeyFor(r)] = r
		}
	}

	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()

	ctxlog.Debug(ctx, "loaded command snapshot", "slot", s.slot, "count", len(entries))

	return nil
}

// Save writes every record to the backend slot. Backend errors are returned as is.
func (s *Store) Save(ctx context.Context) error {
	records := s.Records()

	blob, err := s.codec.Marshal(records)
	if err != nil {
		return errors.Join(ErrEncodeSnapshot, err)
	}

	if err := s.backend.Update(ctx, s.slot, blob); err != nil {
		ctxlog.Debug(ctx, "failed to save command snapshot", "slot", s.slot, "error", err)
		return err
	}

	ctxlog.Debug(ctx, "saved command snapshot", "slot", s.slot, "count", len(records))

	return nil
}

// Get returns the record stored under key.
func (s *Store) Get(key string) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.entries[key]

	return r, ok
}

// Has reports whether key is present.
func (s *Store) Has(key string) bool {
	_, ok := s.Get(key)
	return ok
}

// Put stores the record under key, replacing any existing record.
func (s *Store) Put(key string, r Record) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = Normalize(r)
}

// Remove deletes key and reports whether it was present.
func (s *Store) Remove(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[key]; !ok {
		return false
	}

	delete(s.entries, key)

	return true
}

// Len returns the number of records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}

// Keys returns every key in lexical order.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Sorted(maps.Keys(s.entries))
}

// Entries returns every key and record, ordered by key.
func (s *Store) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Entry, 0, len(s.entries))
	for _, k := range slices.Sorted(maps.Keys(s.entries)) {
		out = append(out, Entry{Key: k, Record: s.entries[k]})
	}

	return out
}

// Records returns every record, ordered by key.
func (s *Store) Records() []Record {
	entries := s.Entries()

	out := make([]Record, len(entries))
	for i, e := range entries {
		out[i] = e.Record
	}

	return out
}

// FreeKey returns KeyFor(r) if it is unused, otherwise the first unused
// SuffixedKey(r, n) for n = 1, 2, ...
func (s *Store) FreeKey(r Record) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	key := KeyFor(r)
	for n := 1; ; n++ {
		if _, taken := s.entries[key]; !taken {
			return key
		}

		key = SuffixedKey(r, n)
	}
}
