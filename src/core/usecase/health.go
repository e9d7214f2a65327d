package usecase

import (
	"context"
	"log/slog"
	"sort"

	"domainguard/src/core/ports"
)

// HealthService handles health check logic across the registered components.
type HealthService struct {
	log        *slog.Logger
	components map[string]ports.HealthChecker
}

// NewHealthService creates a new HealthService. components maps a component
// name (e.g. "database") to its checker; nil checkers are ignored.
func NewHealthService(log *slog.Logger, components map[string]ports.HealthChecker) *HealthService {
	checks := make(map[string]ports.HealthChecker, len(components))
	for name, c := range components {
		if c != nil {
			checks[name] = c
		}
	}
	return &HealthService{
		log:        log,
		components: checks,
	}
}

// HealthStatus represents the health of the application.
type HealthStatus struct {
	Status     string                     `json:"status"`
	Components map[string]ComponentHealth `json:"components,omitempty"`
}

// ComponentHealth represents the health of a single component.
type ComponentHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Check performs a health check of all application components.
// Any unhealthy component degrades the overall status.
func (s *HealthService) Check(ctx context.Context) *HealthStatus {
	status := &HealthStatus{
		Status:     "ok",
		Components: make(map[string]ComponentHealth, len(s.components)),
	}

	names := make([]string, 0, len(s.components))
	for name := range s.components {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := s.components[name].Health(ctx); err != nil {
			status.Status = "degraded"
			status.Components[name] = ComponentHealth{
				Status:  "unhealthy",
				Message: err.Error(),
			}
			if s.log != nil {
				s.log.Warn("health check failed", "component", name, "error", err)
			}
			continue
		}
		status.Components[name] = ComponentHealth{Status: "healthy"}
	}

	return status
}
