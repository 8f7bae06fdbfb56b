// Package ports defines interfaces (contracts) between layers.
// These interfaces enable dependency injection and testability.
// Implementations live in adapters/.
package ports

import "context"

// Transport posts a serialized wire message to the gateway and returns the
// raw response body. It blocks for the duration of the call; cancellation
// and timeouts are the transport's concern, carried on ctx and its own
// configuration. Connection failures surface as errors and are never
// retried by the core.
type Transport interface {
	Post(ctx context.Context, url string, body string) (string, error)
}

// IDGenerator generates unique transaction identifiers.
type IDGenerator interface {
	New() string
}
