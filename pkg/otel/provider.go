package otel

const instrumentationName = "github.com/adrianliechti/docparse"

type Observable interface {
	otelSetup()
}
