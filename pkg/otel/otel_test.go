package otel

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSetupKeepsDefaultHandler(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_PROTOCOL", "http/protobuf")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "http://127.0.0.1:1")

	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	var buf bytes.Buffer
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))

	shutdown, err := Setup(context.Background(), "docparse-test")
	require.NoError(t, err)
	require.NotNil(t, shutdown)

	slog.Info("document parsed", "pages", 3)

	require.Contains(t, buf.String(), "document parsed")
	require.Contains(t, buf.String(), "pages=3")

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	// the endpoint is unreachable, only the flush attempt matters here
	_ = shutdown(ctx)
}
