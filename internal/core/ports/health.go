package ports

import "context"

// HealthChecker is a named dependency probe reported by GET /health.
// Check returns a non-nil error when the dependency is unavailable.
type HealthChecker interface {
	Name() string
	Check(ctx context.Context) error
}
