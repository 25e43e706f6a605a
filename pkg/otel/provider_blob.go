package otel

import (
	"context"

	"github.com/adrianliechti/docparse/pkg/blob"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

type Blob interface {
	Observable
	blob.Store
}

type observableBlob struct {
	provider string
	bucket   string

	store blob.Store
}

func NewBlob(provider, bucket string, s blob.Store) Blob {
	return &observableBlob{
		store: s,

		provider: provider,
		bucket:   bucket,
	}
}

func (b *observableBlob) otelSetup() {
}

func (b *observableBlob) Read(ctx context.Context, path string) ([]byte, error) {
	return tracedRead(ctx, b.provider, b.bucket, b.store, path)
}

func (b *observableBlob) Bucket(name string) (blob.Provider, error) {
	p, err := b.store.Bucket(name)

	if err != nil {
		return nil, err
	}

	return &observableBucket{
		provider: b.provider,
		bucket:   name,

		source: p,
	}, nil
}

type observableBucket struct {
	provider string
	bucket   string

	source blob.Provider
}

func (b *observableBucket) Read(ctx context.Context, path string) ([]byte, error) {
	return tracedRead(ctx, b.provider, b.bucket, b.source, path)
}

func tracedRead(ctx context.Context, provider, bucket string, source blob.Provider, path string) ([]byte, error) {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "read "+path,
		trace.WithAttributes(
			String("docparse.blob.provider", provider),
			String("docparse.blob.bucket", bucket),
		),
	)
	defer span.End()

	data, err := source.Read(ctx, path)

	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(Int("docparse.blob.size", len(data)))

	return data, nil
}
