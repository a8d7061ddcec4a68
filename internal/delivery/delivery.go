// Package delivery holds the presentation front ends. Each one only talks to
// the auth and catalog usecases.
package delivery

import "context"

// Delivery is a front end the application container starts once.
type Delivery interface {
	// Serve blocks until the front end stops or fails.
	Serve(ctx context.Context) error
}
