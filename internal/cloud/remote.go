package cloud

import "context"

// RemoteStore is the narrow contract a remote backend must satisfy. Any
// document database, key-value service or REST API can sit behind it; the
// data layer never sees a concrete backend.
type RemoteStore interface {
	// Init establishes connectivity and authentication. Idempotent.
	Init(ctx context.Context) error
	// Ping verifies the connection is still usable.
	Ping(ctx context.Context) error
	// Get returns the document for key, or ErrNotFound.
	Get(ctx context.Context, key string) (*Record, error)
	// Set writes the document. A record whose OpID matches the stored one
	// is a retried duplicate and must be a no-op.
	Set(ctx context.Context, key string, rec Record) error
	// Subscribe invokes handler for every remote change to key, including
	// echoes of this client's own writes. The returned func cancels the
	// subscription.
	Subscribe(ctx context.Context, key string, handler func(Record)) (func(), error)
	Close() error
}
