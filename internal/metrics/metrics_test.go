package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/DMarby/visit-badge/internal/health"
	"github.com/DMarby/visit-badge/internal/logger"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"
)

func TestObserveBadge(t *testing.T) {
	before := testutil.ToFloat64(badgesTotal.WithLabelValues("count"))

	ObserveBadge("count")
	ObserveBadge("count")

	if got := testutil.ToFloat64(badgesTotal.WithLabelValues("count")); got != before+2 {
		t.Errorf("wrong badge count, expected %v, got %v", before+2, got)
	}
}

func TestObserveUpstream(t *testing.T) {
	ObserveUpstream("counter", 200, 15*time.Millisecond)
	ObserveUpstream("counter", 0, time.Second)

	if count := testutil.CollectAndCount(upstreamRequestDuration); count < 2 {
		t.Errorf("expected at least 2 upstream series, got %d", count)
	}
}

func TestServe(t *testing.T) {
	log := logger.New(zap.ErrorLevel)
	defer log.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	checker := &health.Checker{Ctx: ctx, Log: log}

	errs := make(chan error, 1)
	go func() {
		errs <- Serve(ctx, log, checker, "127.0.0.1:0")
	}()

	cancel()

	select {
	case err := <-errs:
		if err != nil {
			t.Errorf("unexpected error: %s", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after the context was canceled")
	}
}
