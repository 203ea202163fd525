// Package delivery defines the contract every transport front end satisfies.
package delivery

import "context"

// Delivery is a long-running request-serving component (HTTP server, queue
// consumer). Implementations register their own shutdown hooks.
type Delivery interface {
	// Serve blocks, serving requests until the context is canceled or the
	// underlying transport fails.
	Serve(ctx context.Context) error
}
