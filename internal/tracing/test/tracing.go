package test

import (
	"context"

	"github.com/DMarby/visit-badge/internal/logger"
	"github.com/DMarby/visit-badge/internal/tracing"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace/noop"
)

// Tracer returns a tracer that records nothing, for use in tests
func Tracer(log *logger.Logger) *tracing.Tracer {
	tp := noop.NewTracerProvider()
	return &tracing.Tracer{
		ServiceName:    "test",
		Log:            log,
		TracerProvider: tp,
		Propagator:     propagation.TraceContext{},
		ShutdownFunc: func(context.Context) error {
			return nil
		},
		TracerInstance: tp.Tracer("test"),
	}
}
