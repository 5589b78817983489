// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"os"

	"github.com/matt-FFFFFF/cmdshelf/internal/ctxlog"
)

// Watch reads sigCh until it is closed or ctx is done.
// The first signal of a kind is logged and passed to forward, if not nil.
// The second signal of the same kind cancels the context.
func Watch(ctx context.Context, sigCh <-chan os.Signal, cancel context.CancelFunc, forward func(os.Signal)) {
	seen := make(map[os.Signal]struct{})

	for {
		select {
		case <-ctx.Done():
			return
		case sig, ok := <-sigCh:
			if !ok {
				return
			}

			if _, dup := seen[sig]; dup {
				ctxlog.Info(ctx, "watchdog", "detail", "received second signal of type, terminating", "signal", sig.String())
				cancel()

				return
			}

			ctxlog.Info(ctx, "watchdog", "detail", "received first signal of type", "signal", sig.String())
			seen[sig] = struct{}{}

			if forward != nil {
				forward(sig)
			}
		}
	}
}
