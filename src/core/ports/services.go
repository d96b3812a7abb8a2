package ports

import (
	"context"
)

// HealthChecker is implemented by every dependency the health endpoint
// reports on. The repositories implement it by pinging their store.
type HealthChecker interface {
	// Health checks if the dependency is reachable.
	Health(ctx context.Context) error
}
