// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package cmdfs

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/matt-FFFFFF/cmdshelf/internal/ctxlog"
	"github.com/matt-FFFFFF/cmdshelf/internal/notify"
	"github.com/matt-FFFFFF/cmdshelf/internal/store"
)

// Root is the path of the only directory.
const Root = "/"

// FS maps the command store onto file and directory operations.
// It is safe for concurrent use; mutating calls run one at a time.
type FS struct {
	store   *store.Store
	mu      sync.Mutex
	emitter notify.Emitter
}

// New returns an FS over s. The store should already be loaded.
func New(s *store.Store) *FS {
	return &FS{store: s}
}

// CleanPath returns name as an absolute slash separated path. Segments are
// kept as they are: a key such as `a//b.cmd` is a single file in the root.
func CleanPath(name string) string {
	name = filepath.ToSlash(name)

	switch {
	case name == "" || name == ".":
		return Root
	case strings.HasPrefix(name, Root):
		return name
	default:
		return Root + name
	}
}

// KeyFromPath returns the store key a path refers to: everything after the
// leading separator. The root maps to "".
func KeyFromPath(name string) string {
	return strings.TrimPrefix(CleanPath(name), Root)
}

// PathFor returns the path of a store key.
func PathFor(key string) string {
	return Root + key
}

// OnDidChangeFile subscribes l to change notifications.
func (f *FS) OnDidChangeFile(l notify.Listener) notify.Disposable {
	return f.emitter.Subscribe(l)
}

// ListenerCount returns the number of active change subscriptions.
func (f *FS) ListenerCount() int {
	return f.emitter.Len()
}

// Watch is accepted for interface compatibility. Every change is already
// reported to OnDidChangeFile subscribers, so nothing is registered.
func (f *FS) Watch(string, WatchOptions) notify.Disposable {
	return notify.Nop
}

// Entries returns every key and record ordered by key.
func (f *FS) Entries() []store.Entry {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.store.Entries()
}

// Get returns the record stored under key.
func (f *FS) Get(key string) (store.Record, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.store.Get(key)
}

// Stat describes the root directory or a command file.
func (f *FS) Stat(name string) (FileStat, error) {
	now := time.Now()

	key := KeyFromPath(name)
	if key == "" {
		return FileStat{Type: TypeDirectory, Ctime: now, Mtime: now}, nil
	}

	r, ok := f.Get(key)
	if !ok {
		return FileStat{}, pathError("stat", CleanPath(name), ErrNotFound)
	}

	return FileStat{Type: TypeFile, Size: int64(len(r.Command)), Ctime: now, Mtime: now}, nil
}

// ReadDirectory lists the root. Any other path is not a directory.
func (f *FS) ReadDirectory(name string) ([]DirEntry, error) {
	if KeyFromPath(name) != "" {
		return nil, pathError("readdir", CleanPath(name), ErrNotADirectory)
	}

	entries := f.Entries()

	out := make([]DirEntry, len(entries))
	for i, e := range entries {
		out[i] = DirEntry{Name: e.Key, Type: TypeFile}
	}

	return out, nil
}

// ReadFile returns the command text of a file.
func (f *FS) ReadFile(name string) ([]byte, error) {
	key := KeyFromPath(name)
	if key == "" {
		return nil, pathError("read", Root, ErrIsADirectory)
	}

	r, ok := f.Get(key)
	if !ok {
		return nil, pathError("read", CleanPath(name), ErrNotFound)
	}

	return []byte(r.Command), nil
}

// WriteFile stores content as the command text of a file.
//
// A missing file needs opts.Create. An existing file with opts.Create needs
// opts.Overwrite. Invalid UTF-8 is replaced with U+FFFD.
//
// The record name follows the file name: when the base name (file name
// without `.cmd`) does not look like a derived slug and the content does not
// start with it, the base name becomes the record name. Otherwise an existing
// record keeps its name, and a new record has none.
func (f *FS) WriteFile(ctx context.Context, name string, content []byte, opts WriteOptions) error {
	p := CleanPath(name)

	key := KeyFromPath(p)
	if key == "" {
		return pathError("write", p, ErrIsADirectory)
	}

	return f.apply(ctx, "write", func() ([]notify.Event, error) {
		existing, exists := f.store.Get(key)

		switch {
		case !exists && !opts.Create:
			return nil, pathError("write", p, ErrNotFound)
		case exists && opts.Create && !opts.Overwrite:
			return nil, pathError("write", p, ErrAlreadyExists)
		}

		text := strings.ToValidUTF8(string(content), "\uFFFD")
		base := store.BaseName(key)

		var recordName string

		switch {
		case store.IsExplicitName(base, text):
			recordName = base
		case exists:
			recordName = existing.Name
		}

		f.store.Put(key, store.Record{Name: recordName, Command: text})

		return []notify.Event{{Type: notify.Changed, Path: p}}, nil
	})
}

// Delete removes a file. Recursive is ignored.
func (f *FS) Delete(ctx context.Context, name string, _ DeleteOptions) error {
	p := CleanPath(name)

	key := KeyFromPath(p)
	if key == "" {
		return pathError("delete", p, ErrNoPermissions)
	}

	return f.apply(ctx, "delete", func() ([]notify.Event, error) {
		if !f.store.Remove(key) {
			return nil, pathError("delete", p, ErrNotFound)
		}

		return []notify.Event{{Type: notify.Deleted, Path: p}}, nil
	})
}

// Rename moves a file, carrying its command text.
//
// The record keeps its name unless the base name changes. A blank new base
// clears the name; otherwise the new base becomes the name when it passes the
// explicit-name rule against the command text.
func (f *FS) Rename(ctx context.Context, oldName, newName string, opts RenameOptions) error {
	oldPath, newPath := CleanPath(oldName), CleanPath(newName)
	oldKey, newKey := KeyFromPath(oldPath), KeyFromPath(newPath)

	if oldKey == "" || newKey == "" {
		return pathError("rename", Root, ErrNoPermissions)
	}

	return f.apply(ctx, "rename", func() ([]notify.Event, error) {
		r, ok := f.store.Get(oldKey)
		if !ok {
			return nil, pathError("rename", oldPath, ErrNotFound)
		}

		if f.store.Has(newKey) && !opts.Overwrite {
			return nil, pathError("rename", newPath, ErrAlreadyExists)
		}

		recordName := r.Name

		if oldBase, newBase := store.BaseName(oldKey), store.BaseName(newKey); newBase != oldBase {
			switch {
			case strings.TrimSpace(newBase) == "":
				recordName = ""
			case store.IsExplicitName(newBase, r.Command):
				recordName = newBase
			}
		}

		f.store.Remove(oldKey)
		f.store.Put(newKey, store.Record{Name: recordName, Command: r.Command})

		return []notify.Event{
			{Type: notify.Deleted, Path: oldPath},
			{Type: notify.Created, Path: newPath},
		}, nil
	})
}

// CreateDirectory always fails: the namespace is flat.
func (f *FS) CreateDirectory(name string) error {
	return pathError("mkdir", CleanPath(name), ErrNoPermissions)
}

// AddCommandItem stores r under its derived key, appending `-1`, `-2`, ...
// to the base until the key is free. It returns the key used, also when the
// record was added but could not be saved.
func (f *FS) AddCommandItem(ctx context.Context, r store.Record) (string, error) {
	var key string

	err := f.apply(ctx, "add", func() ([]notify.Event, error) {
		r = store.Normalize(r)
		key = f.store.FreeKey(r)
		f.store.Put(key, r)

		return []notify.Event{{Type: notify.Created, Path: PathFor(key)}}, nil
	})

	return key, err
}

// apply runs mutate under the adapter lock, saves the store and then emits the
// returned events. mutate must not change the store when it returns an error.
func (f *FS) apply(ctx context.Context, op string, mutate func() ([]notify.Event, error)) error {
	f.mu.Lock()

	events, err := mutate()
	if err == nil {
		err = f.store.Save(ctx)
		if err != nil {
			ctxlog.Warn(ctx, "command store changed but could not be saved", "op", op, "error", err)
		}
	}

	f.mu.Unlock()

	if err != nil {
		return err
	}

	ctxlog.Debug(ctx, "command store changed", "op", op, "events", len(events))
	f.emitter.Emit(events...)

	return nil
}
