package health

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type fakeChecker struct {
	name    string
	healthy atomic.Bool
}

func (f *fakeChecker) Name() string                               { return f.name }
func (f *fakeChecker) IsHealthy() bool                            { return f.healthy.Load() }
func (f *fakeChecker) Start(ctx context.Context, _ time.Duration) { /* no-op */ }

func TestServiceHealthChecker_Transitions(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a := &fakeChecker{name: "a"}
	b := &fakeChecker{name: "b"}
	a.healthy.Store(true)
	b.healthy.Store(true)

	svc := NewServiceHealthChecker(zerolog.Nop(), a, b)
	go svc.Start(ctx, 10*time.Millisecond)

	// Initially healthy
	waitTrue(t, func() bool { return svc.IsHealthy() })

	// Flip one to unhealthy
	b.healthy.Store(false)
	waitTrue(t, func() bool { return !svc.IsHealthy() })
	assert.Equal(t, map[string]bool{"a": true, "b": false}, svc.Components())

	// Recover
	b.healthy.Store(true)
	waitTrue(t, func() bool { return svc.IsHealthy() })
}

func TestServiceHealthChecker_EvaluateIsSynchronous(t *testing.T) {
	a := &fakeChecker{name: "a"}
	svc := NewServiceHealthChecker(zerolog.Nop(), a)

	svc.Evaluate()
	assert.False(t, svc.IsHealthy())

	a.healthy.Store(true)
	svc.Evaluate()
	assert.True(t, svc.IsHealthy())
}

func TestServiceHealthChecker_NoDepsIsHealthy(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc := NewServiceHealthChecker(zerolog.Nop())
	assert.False(t, svc.IsHealthy())
	go svc.Start(ctx, time.Hour)
	waitTrue(t, func() bool { return svc.IsHealthy() })
	assert.Empty(t, svc.Components())
}

func waitTrue(t *testing.T, pred func() bool) {
	t.Helper()
	deadline := time.Now().Add(500 * time.Millisecond)
	for time.Now().Before(deadline) {
		if pred() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("condition not met before timeout")
}
