package metrics

import (
	"context"
	"net/http"
	"net/http/pprof"
	"strconv"
	"time"

	"github.com/DMarby/visit-badge/internal/handler"
	"github.com/DMarby/visit-badge/internal/health"
	"github.com/DMarby/visit-badge/internal/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "visit_badge"

var (
	badgesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "badges_total",
		Help:      "Number of badges served, by outcome.",
	}, []string{"outcome"})

	upstreamRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of requests to the counter and badge services.",
		Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 5, 10},
	}, []string{"upstream", "code"})
)

// ObserveBadge counts a served badge
func ObserveBadge(outcome string) {
	badgesTotal.WithLabelValues(outcome).Inc()
}

// ObserveUpstream records the duration of a request to an upstream service
// A code of 0 means that the request failed before a response was received
func ObserveUpstream(upstream string, code int, duration time.Duration) {
	upstreamRequestDuration.WithLabelValues(upstream, strconv.Itoa(code)).Observe(duration.Seconds())
}

// Serve starts an http server for metrics and healthchecks, and blocks until the context is canceled
func Serve(ctx context.Context, log *logger.Logger, healthChecker *health.Checker, listenAddress string) error {
	router := http.NewServeMux()
	router.Handle("/metrics", promhttp.Handler())
	router.Handle("/health", handler.Health(healthChecker))

	router.HandleFunc("/debug/pprof/", pprof.Index)
	router.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	router.HandleFunc("/debug/pprof/profile", pprof.Profile)
	router.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	router.HandleFunc("/debug/pprof/trace", pprof.Trace)

	server := &http.Server{
		Addr:              listenAddress,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ErrorLog:          logger.NewHTTPErrorLog(log),
	}

	errs := make(chan error, 1)
	go func() {
		errs <- server.ListenAndServe()
	}()

	log.Infof("metrics http server listening on %s", listenAddress)

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	if err := server.Close(); err != nil {
		log.Warnf("error shutting down metrics http server: %s", err)
	}

	return nil
}
