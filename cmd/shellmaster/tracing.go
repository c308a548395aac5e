package main

import (
	"context"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// enableDebugTracing installs a stdouttrace exporter as the global
// TracerProvider so every pipeline.runNode span (internal/pipeline) is
// printed to stderr; spans are exported in batches, and the returned
// shutdown flushes any still pending. Only wired when --debug is passed:
// the default run stays on otel's global no-op TracerProvider.
func enableDebugTracing() (shutdown func(context.Context) error, err error) {
	exporter, err := stdouttrace.New(
		stdouttrace.WithWriter(os.Stderr),
		stdouttrace.WithoutTimestamps(),
	)
	if err != nil {
		return nil, err
	}
	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
	otel.SetTracerProvider(tp)
	return tp.Shutdown, nil
}
