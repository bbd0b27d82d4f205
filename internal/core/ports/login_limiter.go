package ports

import "context"

// LoginLimiter throttles repeated login attempts per account key.
type LoginLimiter interface {
	// Allow records an attempt for key and reports whether it is within the
	// limit. Implementations are expected to fail open: callers treat an
	// error as "allowed" and log it.
	Allow(ctx context.Context, key string) (bool, error)
}
