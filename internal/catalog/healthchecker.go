package catalog

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/mycelian/tool-catalog/internal/health"
	"github.com/rs/zerolog"
)

// HealthPing reports whether the document can currently be served.
func (s *FileSource) HealthPing(ctx context.Context) error {
	_, err := s.Load(ctx)
	return err
}

// HealthChecker monitors whether the source can be loaded.
type HealthChecker struct {
	src          Source
	healthy      atomic.Bool
	probed       atomic.Bool
	log          zerolog.Logger
	probeTimeout time.Duration
}

// NewHealthChecker creates a checker for src. It reports unhealthy until the first probe succeeds.
func NewHealthChecker(src Source, log zerolog.Logger, probeTimeout time.Duration) *HealthChecker {
	return &HealthChecker{src: src, log: log, probeTimeout: probeTimeout}
}

// Name returns the checker name.
func (hc *HealthChecker) Name() string { return "catalog" }

// IsHealthy returns the cached health status (non-blocking).
func (hc *HealthChecker) IsHealthy() bool { return hc.healthy.Load() }

// Check runs one probe and updates the cached status.
func (hc *HealthChecker) Check(ctx context.Context) {
	to := hc.probeTimeout
	if to <= 0 {
		to = 2 * time.Second
	}
	checkCtx, cancel := context.WithTimeout(ctx, to)
	defer cancel()

	err := hc.probe(checkCtx)
	first := !hc.probed.Swap(true)
	prev := hc.healthy.Swap(err == nil)
	switch {
	case err != nil && (first || prev):
		hc.log.Error().Stack().
			Str("checker", hc.Name()).
			Err(err).
			Msg("catalog health check failed")
	case err == nil && !prev && !first:
		hc.log.Info().Str("checker", hc.Name()).Msg("catalog health check recovered")
	}
}

// Start probes the source every interval until ctx is done.
func (hc *HealthChecker) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	hc.Check(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			hc.Check(ctx)
		}
	}
}

func (hc *HealthChecker) probe(ctx context.Context) error {
	if p, ok := hc.src.(health.HealthPinger); ok {
		return p.HealthPing(ctx)
	}
	_, err := hc.src.Load(ctx)
	return err
}
