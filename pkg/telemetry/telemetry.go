// Package telemetry wires the command line tools into OpenTelemetry
// tracing. Configuration comes from the standard OTEL_* environment
// variables; when tracing is disabled the global TracerProvider stays the
// default no-op provider, so instrumented call sites cost nothing.
//
//	shutdown, err := telemetry.Init(ctx)
//	if err != nil { ... }
//	defer shutdown(ctx)
//
//	ctx, span := otel.Tracer("quadmesh").Start(ctx, "mesh.read")
//	defer span.End()
package telemetry

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/trace"
)

var (
	globalConfig *Config
	configOnce   sync.Once
)

func loadConfig() *Config {
	configOnce.Do(func() {
		globalConfig = LoadFromEnv()
	})
	return globalConfig
}

// ShutdownFunc flushes and shuts down the TracerProvider.
type ShutdownFunc func(ctx context.Context) error

func noopShutdown(_ context.Context) error {
	return nil
}

// Init initializes OpenTelemetry and installs the global TracerProvider.
// With tracing disabled it returns a no-op shutdown function.
func Init(ctx context.Context) (ShutdownFunc, error) {
	cfg := loadConfig()

	if !cfg.Enabled {
		return noopShutdown, nil
	}

	res, err := buildResource(cfg)
	if err != nil {
		return noopShutdown, err
	}

	exporter, err := createExporter(ctx, cfg)
	if err != nil {
		return noopShutdown, err
	}

	tp := trace.NewTracerProvider(
		trace.WithResource(res),
		trace.WithBatcher(exporter),
		trace.WithSampler(createSampler(cfg)),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return tp.Shutdown, nil
}

// Enabled reports whether tracing is enabled.
func Enabled() bool {
	return loadConfig().Enabled
}
