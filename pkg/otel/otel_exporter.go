package otel

import (
	"context"
	"os"
	"strings"

	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
)

type signal string

const (
	signalLogs    signal = "LOGS"
	signalTraces  signal = "TRACES"
	signalMetrics signal = "METRICS"
)

// protocol resolves the otlp transport of a signal, "grpc" or "http".
// A per-signal OTEL_EXPORTER_OTLP_<SIGNAL>_PROTOCOL overrides OTEL_EXPORTER_OTLP_PROTOCOL.
func protocol(s signal) string {
	val := os.Getenv("OTEL_EXPORTER_OTLP_" + string(s) + "_PROTOCOL")

	if strings.TrimSpace(val) == "" {
		val = os.Getenv("OTEL_EXPORTER_OTLP_PROTOCOL")
	}

	if strings.EqualFold(strings.TrimSpace(val), "grpc") {
		return "grpc"
	}

	return "http"
}

func newLogExporter(ctx context.Context) (sdklog.Exporter, error) {
	if protocol(signalLogs) == "grpc" {
		return otlploggrpc.New(ctx)
	}

	return otlploghttp.New(ctx)
}

func newSpanExporter(ctx context.Context) (sdktrace.SpanExporter, error) {
	if protocol(signalTraces) == "grpc" {
		return otlptracegrpc.New(ctx)
	}

	return otlptracehttp.New(ctx)
}

func newMetricExporter(ctx context.Context) (sdkmetric.Exporter, error) {
	if protocol(signalMetrics) == "grpc" {
		return otlpmetricgrpc.New(ctx)
	}

	return otlpmetrichttp.New(ctx)
}
