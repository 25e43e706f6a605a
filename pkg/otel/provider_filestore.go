package otel

import (
	"context"

	"github.com/adrianliechti/docparse/pkg/upload"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

type FileStore interface {
	Observable
	upload.Store
	upload.Deleter
}

type observableFileStore struct {
	provider string

	store upload.Store
}

// NewFileStore traces calls to s. Delete is a no-op unless s implements upload.Deleter.
func NewFileStore(provider string, s upload.Store) FileStore {
	return &observableFileStore{
		store: s,

		provider: provider,
	}
}

func (s *observableFileStore) otelSetup() {
}

func (s *observableFileStore) Upload(ctx context.Context, path string, options *upload.UploadOptions) (*upload.Handle, error) {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "upload",
		trace.WithAttributes(String("docparse.provider", s.provider)),
	)
	defer span.End()

	if options != nil {
		span.SetAttributes(String("docparse.file.display_name", options.DisplayName))
	}

	handle, err := s.store.Upload(ctx, path, options)

	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(String("docparse.file.name", handle.Name))

	return handle, nil
}

func (s *observableFileStore) State(ctx context.Context, handle *upload.Handle) (upload.State, error) {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "state",
		trace.WithAttributes(String("docparse.file.name", handle.Name)),
	)
	defer span.End()

	state, err := s.store.State(ctx, handle)

	if err != nil {
		span.RecordError(err)
		return state, err
	}

	span.SetAttributes(String("docparse.file.state", string(state)))

	return state, nil
}

func (s *observableFileStore) Delete(ctx context.Context, handle *upload.Handle) error {
	d, ok := s.store.(upload.Deleter)

	if !ok {
		return nil
	}

	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "delete",
		trace.WithAttributes(String("docparse.file.name", handle.Name)),
	)
	defer span.End()

	if err := d.Delete(ctx, handle); err != nil {
		span.RecordError(err)
		return err
	}

	return nil
}
