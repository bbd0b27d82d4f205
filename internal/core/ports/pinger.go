package ports

import "context"

// Pinger reports whether a backing dependency is reachable. The readiness
// probe runs one per dependency.
type Pinger interface {
	Ping(ctx context.Context) error
}
