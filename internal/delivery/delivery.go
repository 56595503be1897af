// Package delivery holds the entry points that drive the application.
package delivery

import "context"

// Delivery is a long-running entry point started by the application graph.
type Delivery interface {
	// Serve blocks until the delivery stops.
	Serve(ctx context.Context) error
}
