package server

import "context"

type HealthChecker interface {
	Healthy(ctx context.Context) bool
}

// HealthCheckerFunc adapts a plain function to HealthChecker.
type HealthCheckerFunc func(ctx context.Context) bool

func (f HealthCheckerFunc) Healthy(ctx context.Context) bool {
	return f(ctx)
}

// NewOkHealthChecker always reports healthy. Used for stores without a backend.
func NewOkHealthChecker() HealthChecker {
	return HealthCheckerFunc(func(context.Context) bool { return true })
}

// AllHealthy reports healthy only when every checker does.
type AllHealthy []HealthChecker

func (a AllHealthy) Healthy(ctx context.Context) bool {
	for _, hc := range a {
		if hc == nil || !hc.Healthy(ctx) {
			return false
		}
	}
	return true
}
