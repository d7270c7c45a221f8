package cart

import "context"

// Store owns cart state. Snapshot returns an immutable copy; Dispatch applies a
// single intent atomically.
type Store interface {
	Snapshot(ctx context.Context) (State, error)
	Dispatch(ctx context.Context, intent Intent) error
}

// Pinger is implemented by stores backed by an external dependency.
type Pinger interface {
	Ping(ctx context.Context) error
}
