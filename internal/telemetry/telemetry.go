// Package telemetry wires the process-wide OpenTelemetry tracer provider.
// Spans are exported over OTLP/HTTP when OTEL_EXPORTER_OTLP_ENDPOINT is
// set; otherwise the default no-op provider stays in place and span
// creation costs nothing.
package telemetry

import (
	"context"
	"log"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Telemetry owns the tracer provider lifecycle for one process.
type Telemetry struct {
	provider *sdktrace.TracerProvider
}

// Setup installs a global tracer provider for serviceName. When no OTLP
// endpoint is configured the returned Telemetry is inert and Shutdown is
// a no-op.
func Setup(ctx context.Context, serviceName string) *Telemetry {
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" {
		return &Telemetry{}
	}

	exporter, err := otlptracehttp.New(ctx)
	if err != nil {
		log.Printf("telemetry disabled: otlp exporter init failed err=%v", err)
		return &Telemetry{}
	}

	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(serviceName),
	))
	if err != nil {
		log.Printf("telemetry resource merge failed err=%v", err)
		res = resource.Default()
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(provider)
	return &Telemetry{provider: provider}
}

// Shutdown flushes pending spans. Safe to call on an inert Telemetry.
func (t *Telemetry) Shutdown() {
	if t.provider == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := t.provider.Shutdown(ctx); err != nil {
		log.Printf("telemetry shutdown err=%v", err)
	}
}
