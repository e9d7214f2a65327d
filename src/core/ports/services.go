package ports

import (
	"context"
)

// HealthChecker is implemented by every dependency the detailed health
// endpoint reports on (repositories, external adapters).
type HealthChecker interface {
	// Health checks if the dependency is reachable.
	Health(ctx context.Context) error
}
