// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package notify

import (
	"slices"
	"sync"
)

// Emitter fans out event batches to its subscribers in subscription order.
// The zero value is ready to use.
type Emitter struct {
	mu        sync.Mutex
	next      int
	listeners []subscription
}

type subscription struct {
	id int
	l  Listener
}

// Subscribe registers l. Disposing the returned value unregisters it; disposing twice is harmless.
func (e *Emitter) Subscribe(l Listener) Disposable {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.next++
	id := e.next
	e.listeners = append(e.listeners, subscription{id: id, l: l})

	var once sync.Once

	return DisposableFunc(func() {
		once.Do(func() { e.unsubscribe(id) })
	})
}

// Emit delivers events to every subscriber synchronously. An empty batch is not delivered.
func (e *Emitter) Emit(events ...Event) {
	if len(events) == 0 {
		return
	}

	e.mu.Lock()
	subs := slices.Clone(e.listeners)
	e.mu.Unlock()

	for _, s := range subs {
		s.l.OnChange(slices.Clone(events))
	}
}

// Len returns the number of subscribers.
func (e *Emitter) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return len(e.listeners)
}

func (e *Emitter) unsubscribe(id int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.listeners = slices.DeleteFunc(e.listeners, func(s subscription) bool {
		return s.id == id
	})
}
