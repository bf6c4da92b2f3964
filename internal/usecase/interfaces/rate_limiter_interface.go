package interfaces

import "context"

// IRateLimiter is a store-backed fixed-window counter keyed by caller. It
// replaces a per-process in-memory map so the limit holds across concurrent
// instances and cold starts.

type IRateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}
