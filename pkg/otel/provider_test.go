package otel_test

import (
	"context"
	"errors"
	"testing"

	"github.com/adrianliechti/docparse/pkg/auth"
	"github.com/adrianliechti/docparse/pkg/blob"
	"github.com/adrianliechti/docparse/pkg/otel"
	"github.com/adrianliechti/docparse/pkg/parser"
	"github.com/adrianliechti/docparse/pkg/upload"

	"github.com/stretchr/testify/require"
)

type staticGenerator struct {
	generation *parser.Generation
	err        error
}

func (g *staticGenerator) Generate(ctx context.Context, request *parser.GenerateRequest) (*parser.Generation, error) {
	return g.generation, g.err
}

type memoryBlob map[string][]byte

func (b memoryBlob) Read(ctx context.Context, path string) ([]byte, error) {
	data, ok := b[path]

	if !ok {
		return nil, blob.ErrNotFound
	}

	return data, nil
}

func (b memoryBlob) Bucket(name string) (blob.Provider, error) {
	return b, nil
}

type activeStore struct{}

func (activeStore) Upload(ctx context.Context, path string, options *upload.UploadOptions) (*upload.Handle, error) {
	return &upload.Handle{Name: "files/1", DisplayName: options.DisplayName}, nil
}

func (activeStore) State(ctx context.Context, handle *upload.Handle) (upload.State, error) {
	return upload.StateActive, nil
}

func TestGenerator(t *testing.T) {
	g := otel.NewGenerator("google", "gemini-2.5-flash", &staticGenerator{
		generation: &parser.Generation{
			Model: "gemini-2.5-flash-001",
			Text:  "[]",

			Usage: &parser.Usage{InputTokens: 10, OutputTokens: 2},
		},
	})

	result, err := g.Generate(otel.WithRequestID(context.Background(), "abc"), &parser.GenerateRequest{})
	require.NoError(t, err)
	require.Equal(t, "[]", result.Text)
}

func TestGeneratorError(t *testing.T) {
	expected := errors.New("quota exceeded")

	g := otel.NewGenerator("google", "gemini-2.5-flash", &staticGenerator{err: expected})

	_, err := g.Generate(context.Background(), &parser.GenerateRequest{})
	require.ErrorIs(t, err, expected)
}

func TestBlob(t *testing.T) {
	b := otel.NewBlob("fs", "default", memoryBlob{"a.pdf": []byte("pdf")})

	data, err := b.Read(context.Background(), "a.pdf")
	require.NoError(t, err)
	require.Equal(t, []byte("pdf"), data)

	other, err := b.Bucket("other")
	require.NoError(t, err)

	_, err = other.Read(context.Background(), "missing.pdf")
	require.ErrorIs(t, err, blob.ErrNotFound)
}

func TestFileStoreWithoutDeleter(t *testing.T) {
	s := otel.NewFileStore("google", activeStore{})

	handle, err := s.Upload(context.Background(), "doc.pdf", &upload.UploadOptions{DisplayName: "doc.pdf"})
	require.NoError(t, err)
	require.Equal(t, "doc.pdf", handle.DisplayName)

	state, err := s.State(context.Background(), handle)
	require.NoError(t, err)
	require.Equal(t, upload.StateActive, state)

	require.NoError(t, s.Delete(context.Background(), handle))
}

func TestRequestID(t *testing.T) {
	require.Empty(t, otel.RequestID(context.Background()))
	require.Equal(t, "abc", otel.RequestID(otel.WithRequestID(context.Background(), "abc")))
	require.Len(t, otel.RequestAttrs(otel.WithRequestID(context.Background(), "abc")), 1)
}

func TestEndUserAttrs(t *testing.T) {
	require.Empty(t, otel.EndUserAttrs(context.Background()))

	ctx := context.WithValue(context.Background(), auth.UserContextKey, "user-123")
	ctx = context.WithValue(ctx, auth.EmailContextKey, "jane@example.com")

	attrs := otel.EndUserAttrs(ctx)
	require.Len(t, attrs, 2)

	require.Equal(t, "enduser.id", string(attrs[0].Key))
	require.Equal(t, "user-123", attrs[0].Value.AsString())
	require.Equal(t, "enduser.email", string(attrs[1].Key))
	require.Equal(t, "jane@example.com", attrs[1].Value.AsString())
}
