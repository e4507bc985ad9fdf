// Package delivery defines the contract shared by the transports the
// application exposes (HTTP API, mail worker).
package delivery

import "context"

// Delivery is a long-running server started by main. Serve blocks until the
// server stops; shutdown happens through the fx lifecycle.
type Delivery interface {
	Serve(ctx context.Context) error
}
