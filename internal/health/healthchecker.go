package health

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// HealthChecker is implemented by component-level checkers.
type HealthChecker interface {
	Name() string
	IsHealthy() bool
	Start(ctx context.Context, interval time.Duration)
}

// HealthPinger is implemented by components that can probe themselves on
// demand. HealthPing returns nil when the component is healthy.
type HealthPinger interface {
	HealthPing(ctx context.Context) error
}

// ServiceHealthChecker aggregates component checkers into a single service health flag.
type ServiceHealthChecker struct {
	healthy   atomic.Bool
	evaluated atomic.Bool
	deps      []HealthChecker
	log       zerolog.Logger
}

func NewServiceHealthChecker(log zerolog.Logger, deps ...HealthChecker) *ServiceHealthChecker {
	return &ServiceHealthChecker{deps: deps, log: log}
}

// IsHealthy returns cached service health.
func (h *ServiceHealthChecker) IsHealthy() bool { return h.healthy.Load() }

// Components reports the cached health of each dependency by name.
func (h *ServiceHealthChecker) Components() map[string]bool {
	out := make(map[string]bool, len(h.deps))
	for _, c := range h.deps {
		out[c.Name()] = c.IsHealthy()
	}
	return out
}

// Evaluate recomputes the service flag from the cached dependency states.
func (h *ServiceHealthChecker) Evaluate() {
	all := true
	for _, c := range h.deps {
		if !c.IsHealthy() {
			all = false
		}
	}
	first := !h.evaluated.Swap(true)
	prev := h.healthy.Swap(all)
	if first || prev != all {
		if all {
			h.log.Info().Msg("service health: UP")
		} else {
			h.log.Warn().Msg("service health: DOWN")
		}
	}
}

// Start periodically evaluates dependency health and updates the service flag.
// It blocks until ctx is done.
func (h *ServiceHealthChecker) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	h.Evaluate()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.Evaluate()
		}
	}
}
