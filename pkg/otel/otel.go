package otel

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/log/global"

	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.38.0"
)

const metricInterval = 10 * time.Second

// ShutdownFunc flushes pending telemetry and stops the exporters.
type ShutdownFunc func(context.Context) error

// Setup installs otlp exporters for logs, traces and metrics as the global providers.
// The exporters are configured through the standard OTEL_EXPORTER_OTLP_* variables.
// Records still reach the handler of slog.Default at the time of the call.
func Setup(ctx context.Context, serviceName string) (ShutdownFunc, error) {
	resource, err := sdkresource.New(ctx,
		sdkresource.WithFromEnv(),
		sdkresource.WithTelemetrySDK(),
		sdkresource.WithAttributes(
			semconv.ServiceName(serviceName),
		),
	)

	if err != nil && !errors.Is(err, sdkresource.ErrPartialResource) {
		return nil, err
	}

	var shutdowns []ShutdownFunc

	shutdown := func(ctx context.Context) error {
		var result error

		for i := len(shutdowns) - 1; i >= 0; i-- {
			if err := shutdowns[i](ctx); err != nil && result == nil {
				result = err
			}
		}

		return result
	}

	logExporter, err := newLogExporter(ctx)

	if err != nil {
		return nil, err
	}

	loggerProvider := sdklog.NewLoggerProvider(
		sdklog.WithProcessor(sdklog.NewBatchProcessor(logExporter)),
		sdklog.WithResource(resource),
	)

	shutdowns = append(shutdowns, loggerProvider.Shutdown)

	spanExporter, err := newSpanExporter(ctx)

	if err != nil {
		shutdown(ctx)
		return nil, err
	}

	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.AlwaysSample())),
		sdktrace.WithBatcher(spanExporter, sdktrace.WithBatchTimeout(time.Second)),
		sdktrace.WithResource(resource),
	)

	shutdowns = append(shutdowns, tracerProvider.Shutdown)

	metricExporter, err := newMetricExporter(ctx)

	if err != nil {
		shutdown(ctx)
		return nil, err
	}

	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter, sdkmetric.WithInterval(metricInterval))),
		sdkmetric.WithResource(resource),
	)

	shutdowns = append(shutdowns, meterProvider.Shutdown)

	global.SetLoggerProvider(loggerProvider)

	otel.SetTracerProvider(tracerProvider)
	otel.SetMeterProvider(meterProvider)

	slog.SetDefault(slog.New(slog.NewMultiHandler(
		slog.Default().Handler(),
		otelslog.NewHandler(instrumentationName, otelslog.WithLoggerProvider(loggerProvider)),
	)))

	return shutdown, nil
}
