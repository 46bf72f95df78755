package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"

	"github.com/DMarby/visit-badge/internal/api"
	"github.com/DMarby/visit-badge/internal/badge"
	"github.com/DMarby/visit-badge/internal/cmd"
	"github.com/DMarby/visit-badge/internal/config"
	"github.com/DMarby/visit-badge/internal/counter"
	"github.com/DMarby/visit-badge/internal/hash"
	"github.com/DMarby/visit-badge/internal/health"
	"github.com/DMarby/visit-badge/internal/logger"
	"github.com/DMarby/visit-badge/internal/metrics"
	"github.com/DMarby/visit-badge/internal/tracing"
	"github.com/DMarby/visit-badge/internal/upstream"

	"github.com/jamiealquiza/envy"
	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Comandline flags
var (
	// Global
	listen        = flag.String("listen", ":8080", "listen address")
	metricsListen = flag.String("metrics-listen", ":8082", "metrics listen address")
	loglevel      = zap.LevelFlag("log-level", zap.InfoLevel, "log level (default \"info\") (debug, info, warn, error, dpanic, panic, fatal)")
	tracingExport = flag.Bool("tracing-export", false, "export traces over OTLP/gRPC, configured with the OTEL_EXPORTER_OTLP_* environment variables")

	// Redirect
	repositoryURL = flag.String("repository-url", "", "url to redirect / to")

	// Badges
	hashKey      = flag.String("hash-key", "", "secret key to salt page hashes with")
	counterURL   = flag.String("counter-url", "", "base url of the counter service, e.g. https://api.countapi.xyz/hit/{namespace}")
	badgeURL     = flag.String("badge-url", "", "base url of the badge service, e.g. https://img.shields.io/badge")
	defaultLabel = flag.String("default-label", "", "badge label used when the label query parameter isn't set")
	defaultColor = flag.String("default-color", "", "badge color used when the color query parameter isn't set")

	// Cron
	cronTemplate = flag.String("cron-template", "", "path to the html template for the cron page, uses the built in page if not set")
)

func main() {
	// Parse environment variables
	envy.Parse("VISIT_BADGE")

	// Parse commandline flags
	flag.Parse()

	// Initialize the logger
	log := logger.New(*loglevel)
	defer log.Sync()

	// Set GOMAXPROCS
	maxprocs.Set(maxprocs.Logger(log.Infof))

	// Validate the configuration before doing anything else
	cfg := config.Config{
		RepositoryURL: *repositoryURL,
		HashKey:       *hashKey,
		CounterURL:    *counterURL,
		BadgeURL:      *badgeURL,
		DefaultLabel:  *defaultLabel,
		DefaultColor:  *defaultColor,
		CronTemplate:  *cronTemplate,
	}.Normalize()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %s", err)
	}

	cron, err := cfg.LoadCronTemplate()
	if err != nil {
		log.Fatalf("error loading the cron template: %s", err)
	}

	// Set up context for shutting down
	shutdownCtx, shutdown := context.WithCancel(context.Background())
	defer shutdown()

	// Initialize tracing
	tracer, err := tracing.New(shutdownCtx, log, "visit-badge", *tracingExport)
	if err != nil {
		log.Fatalf("error initializing tracing: %s", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), cmd.ShutdownTimeout)
		defer cancel()
		tracer.Shutdown(ctx)
	}()

	// Initialize the upstream clients
	httpClient := upstream.NewHTTPClient(tracer)

	compiler, err := badge.NewCompiler(cfg.BadgeURL)
	if err != nil {
		log.Fatalf("error parsing the badge url: %s", err)
	}

	counterClient := counter.New(cfg.CounterURL, httpClient, log)
	badgeClient := badge.NewClient(compiler, httpClient)

	// Initialize and start the health checker
	checker := &health.Checker{
		Ctx:     shutdownCtx,
		Counter: counterClient,
		Badges:  badgeClient,
		Log:     log,
	}
	go checker.Run()

	// Start and listen on http
	api := &api.API{
		Resolver: &badge.Resolver{
			Hasher:       &hash.Hasher{Key: []byte(cfg.HashKey)},
			Counter:      counterClient,
			DefaultLabel: cfg.DefaultLabel,
			DefaultColor: cfg.DefaultColor,
		},
		Badges:         badgeClient,
		HealthChecker:  checker,
		Log:            log,
		Tracer:         tracer,
		RepositoryURL:  cfg.RepositoryURL,
		CronTemplate:   cron,
		HandlerTimeout: cmd.HandlerTimeout,
	}
	server := &http.Server{
		Addr:         *listen,
		Handler:      api.Router(),
		ReadTimeout:  cmd.ReadTimeout,
		WriteTimeout: cmd.WriteTimeout,
		ErrorLog:     logger.NewHTTPErrorLog(log),
	}

	g, ctx := errgroup.WithContext(shutdownCtx)

	g.Go(func() error {
		log.Infof("http server listening on %s", *listen)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		if err := metrics.Serve(ctx, log, checker, *metricsListen); err != nil {
			return fmt.Errorf("metrics http server: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		// Wait for shutdown or error
		err := cmd.WaitForInterrupt(ctx)
		log.Infof("shutting down: %s", err)
		shutdown()

		// Shut down http server
		serverCtx, serverCancel := context.WithTimeout(context.Background(), cmd.ShutdownTimeout)
		defer serverCancel()
		if err := server.Shutdown(serverCtx); err != nil {
			log.Warnf("error shutting down: %s", err)
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		log.Errorf("error running: %s", err)
	}
}
