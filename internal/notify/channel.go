// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package notify

import (
	"context"
	"sync"
)

var _ Listener = (*ChannelListener)(nil)

// ChannelListener is a Listener that queues batches on a buffered channel so
// that the emitting goroutine never waits on a slow consumer.
// Batches that arrive while the buffer is full, or after Close, are dropped.
type ChannelListener struct {
	ch     chan []Event
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once
	mu     sync.RWMutex
}

// NewChannelListener returns a ChannelListener holding up to bufferSize batches.
// It is closed when ctx is cancelled or Close is called.
func NewChannelListener(ctx context.Context, bufferSize int) *ChannelListener {
	lctx, cancel := context.WithCancel(ctx)

	return &ChannelListener{
		ch:     make(chan []Event, bufferSize),
		ctx:    lctx,
		cancel: cancel,
	}
}

// OnChange implements Listener.
func (c *ChannelListener) OnChange(events []Event) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.ctx.Err() != nil {
		return
	}

	select {
	case c.ch <- events:
	default:
	}
}

// Events returns the channel batches are delivered on. It is closed by Close.
func (c *ChannelListener) Events() <-chan []Event {
	return c.ch
}

// Forward calls fn for every batch on a new goroutine until the listener is closed.
func (c *ChannelListener) Forward(fn func([]Event)) {
	c.wg.Add(1)

	go func() {
		defer c.wg.Done()

		for {
			select {
			case events, ok := <-c.ch:
				if !ok {
					return
				}

				fn(events)
			case <-c.ctx.Done():
				return
			}
		}
	}()
}

// Close stops delivery, closes the channel and waits for Forward goroutines to exit.
// It is safe to call more than once.
func (c *ChannelListener) Close() {
	c.once.Do(func() {
		c.cancel()

		c.mu.Lock()
		close(c.ch)
		c.mu.Unlock()

		c.wg.Wait()
	})
}
