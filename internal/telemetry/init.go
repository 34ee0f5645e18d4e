// Package telemetry wires an OpenTelemetry TracerProvider for the module,
// exporting spans to stdout or to an OTLP collector when tracing is
// enabled, and installing no provider otherwise.
package telemetry

import (
	"context"
	"fmt"

	"ringquorum/internal/config"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

// InitTracer installs a TracerProvider for serviceName and returns its
// shutdown function. When cfg.Tracing.Enabled is false it installs
// nothing, leaving the global default no-op provider in place, and
// returns a shutdown func that does nothing.
func InitTracer(cfg config.TelemetryConfig, serviceName, instanceID string) func(context.Context) error {
	if !cfg.Tracing.Enabled {
		return func(context.Context) error { return nil }
	}

	res, err := resource.New(context.Background(),
		resource.WithAttributes(
			semconv.ServiceNameKey.String(serviceName),
			attribute.String("ringquorum.instance.id", instanceID),
		),
	)
	if err != nil {
		return func(context.Context) error { return fmt.Errorf("telemetry: resource init failed: %w", err) }
	}

	var tp *sdktrace.TracerProvider
	switch cfg.Tracing.Exporter {
	case "stdout":
		exp, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
		if err != nil {
			return func(context.Context) error { return fmt.Errorf("telemetry: stdout exporter init failed: %w", err) }
		}
		tp = sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exp),
			sdktrace.WithResource(res),
		)
	case "otlp":
		exp, err := otlptracegrpc.New(context.Background(),
			otlptracegrpc.WithInsecure(),
			otlptracegrpc.WithEndpoint(cfg.Tracing.Endpoint),
		)
		if err != nil {
			return func(context.Context) error { return fmt.Errorf("telemetry: otlp exporter init failed: %w", err) }
		}
		tp = sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exp),
			sdktrace.WithResource(res),
		)
	default:
		return func(context.Context) error { return fmt.Errorf("telemetry: unsupported exporter %q", cfg.Tracing.Exporter) }
	}

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		),
	)

	return tp.Shutdown
}
