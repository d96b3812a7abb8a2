package usecase

import (
	"context"
	"log/slog"
	"sort"

	"teamroster/src/core/ports"
)

// HealthService handles health check logic by probing every registered
// dependency.
type HealthService struct {
	log      *slog.Logger
	checkers map[string]ports.HealthChecker
}

// NewHealthService creates a new HealthService. checkers maps a component
// name to its probe; nil entries are skipped.
func NewHealthService(log *slog.Logger, checkers map[string]ports.HealthChecker) *HealthService {
	return &HealthService{
		log:      log,
		checkers: checkers,
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

// Healthy reports whether every component passed.
func (s *HealthStatus) Healthy() bool {
	return s.Status == "ok"
}

// Check performs a health check of all application components.
// Returns the overall health status.
func (s *HealthService) Check(ctx context.Context) *HealthStatus {
	status := &HealthStatus{
		Status:     "ok",
		Components: make(map[string]ComponentHealth, len(s.checkers)),
	}

	names := make([]string, 0, len(s.checkers))
	for name := range s.checkers {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		checker := s.checkers[name]
		if checker == nil {
			continue
		}
		if err := checker.Health(ctx); err != nil {
			status.Status = "degraded"
			status.Components[name] = ComponentHealth{
				Status:  "unhealthy",
				Message: err.Error(),
			}
			s.log.WarnContext(ctx, "health check failed", "component", name, "error", err)
			continue
		}
		status.Components[name] = ComponentHealth{Status: "healthy"}
	}

	return status
}
