// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package notify

import "fmt"

// ChangeType is the kind of change an Event describes.
type ChangeType int

const (
	// Changed means an existing file received new content.
	Changed ChangeType = iota + 1
	// Created means a file now exists that did not before.
	Created
	// Deleted means a file no longer exists.
	Deleted
)

// String implements fmt.Stringer.
func (t ChangeType) String() string {
	switch t {
	case Changed:
		return "changed"
	case Created:
		return "created"
	case Deleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// Event reports a change to a single path.
type Event struct {
	Type ChangeType
	Path string
}

// String implements fmt.Stringer.
func (e Event) String() string {
	return fmt.Sprintf("%s %s", e.Type, e.Path)
}

// Listener receives batches of events. A batch is never empty.
// Implementations must return quickly; they run on the goroutine that made the change.
type Listener interface {
	OnChange(events []Event)
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc func(events []Event)

// OnChange implements Listener.
func (f ListenerFunc) OnChange(events []Event) {
	f(events)
}

// Disposable releases a registration.
type Disposable interface {
	Dispose()
}

// DisposableFunc adapts a function to the Disposable interface.
type DisposableFunc func()

// Dispose implements Disposable.
func (f DisposableFunc) Dispose() {
	f()
}

// Nop is a Disposable that does nothing.
var Nop Disposable = DisposableFunc(func() {})
