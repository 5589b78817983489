// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmdstate builds the application state shared by the subcommands and
// carries it in the context. The root command's Before hook opens the state;
// actions retrieve it with From.
package cmdstate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/matt-FFFFFF/cmdshelf/internal/cmdfs"
	"github.com/matt-FFFFFF/cmdshelf/internal/config"
	"github.com/matt-FFFFFF/cmdshelf/internal/ctxlog"
	"github.com/matt-FFFFFF/cmdshelf/internal/notify"
	"github.com/matt-FFFFFF/cmdshelf/internal/store"
	"github.com/spf13/afero"
)

var (
	// ErrNoState is returned when an action runs without an opened state.
	ErrNoState = errors.New("application state not found in context")
	// ErrUnknownCommand is returned when a key argument matches no stored command.
	ErrUnknownCommand = errors.New("no such command")
	// ErrOpenStore is returned when the command store cannot be loaded.
	ErrOpenStore = errors.New("failed to open command store")
)

// FsFactory returns the filesystem the store snapshot lives on.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}

type stateKey struct{}

// State is the opened command store and its filesystem view.
type State struct {
	Config *config.Config
	Store  *store.Store
	FS     *cmdfs.FS

	logSub notify.Disposable
}

// Open loads the store described by cfg. An ephemeral state keeps the store in
// memory and never touches disk.
func Open(ctx context.Context, cfg *config.Config, ephemeral bool) (*State, error) {
	codec, err := store.CodecFor(cfg.StoreFormat)
	if err != nil {
		return nil, errors.Join(ErrOpenStore, err)
	}

	var backend store.Backend

	if ephemeral {
		ctxlog.Debug(ctx, "using in-memory command store")

		backend = store.NewMemoryBackend()
	} else {
		fb := store.NewFileBackend(FsFactory(), cfg.DataDir, codec.Ext())
		ctxlog.Debug(ctx, "using file command store", "path", fb.Path(store.DefaultSlot))

		backend = fb
	}

	return OpenBackend(ctx, cfg, backend, codec)
}

// OpenBackend loads a store from backend. Tests use it with a MemoryBackend.
func OpenBackend(ctx context.Context, cfg *config.Config, backend store.Backend, codec store.Codec) (*State, error) {
	s := store.New(backend, store.WithCodec(codec))
	if err := s.Load(ctx); err != nil {
		return nil, errors.Join(ErrOpenStore, err)
	}

	f := cmdfs.New(s)

	st := &State{
		Config: cfg,
		Store:  s,
		FS:     f,
	}

	st.logSub = f.OnDidChangeFile(notify.ListenerFunc(func(events []notify.Event) {
		for _, e := range events {
			ctxlog.Debug(ctx, "command file changed", "type", e.Type.String(), "path", e.Path)
		}
	}))

	return st, nil
}

// Close releases the state's subscriptions. It is safe to call more than once.
func (s *State) Close() {
	if s == nil || s.logSub == nil {
		return
	}

	s.logSub.Dispose()
}

// Resolve returns the stored key an argument refers to. The `.cmd` suffix may be
// left off.
func (s *State) Resolve(arg string) (string, error) {
	key := cmdfs.KeyFromPath(strings.TrimSpace(arg))

	for _, candidate := range []string{key, key + store.KeySuffix} {
		if candidate != "" && candidate != store.KeySuffix && s.Store.Has(candidate) {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownCommand, arg)
}

// With returns a context carrying s.
func With(ctx context.Context, s *State) context.Context {
	return context.WithValue(ctx, stateKey{}, s)
}

// From returns the state carried by ctx.
func From(ctx context.Context) (*State, error) {
	s, ok := ctx.Value(stateKey{}).(*State)
	if !ok || s == nil {
		return nil, ErrNoState
	}

	return s, nil
}
