package processor

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/adrianliechti/docparse/pkg/blob"
	"github.com/adrianliechti/docparse/pkg/document"
	"github.com/adrianliechti/docparse/pkg/merger"
	"github.com/adrianliechti/docparse/pkg/parser"
	"github.com/adrianliechti/docparse/pkg/upload"
)

const (
	DefaultDisplayName = "document.pdf"

	mimeTypePDF = "application/pdf"
)

type Uploader interface {
	UploadBytes(ctx context.Context, data []byte, displayName, mimeType string) (*upload.Handle, error)
}

type Parser interface {
	Parse(ctx context.Context, file *upload.Handle) (parser.Result, error)
}

type ImageExtractor interface {
	Extract(ctx context.Context, data []byte) document.Images
}

type Processor struct {
	source blob.Store

	images   ImageExtractor
	uploader Uploader
	parser   Parser

	cleanup upload.Deleter
}

type Option func(*Processor)

// WithCleanup deletes staged files once parsing is done.
func WithCleanup(d upload.Deleter) Option {
	return func(p *Processor) {
		p.cleanup = d
	}
}

func New(source blob.Store, images ImageExtractor, uploader Uploader, parser Parser, options ...Option) *Processor {
	p := &Processor{
		source: source,

		images:   images,
		uploader: uploader,
		parser:   parser,
	}

	for _, option := range options {
		option(p)
	}

	return p
}

// Parse reads the document at path, from bucket when set, and returns its pages.
func (p *Processor) Parse(ctx context.Context, path string, bucket string) ([]document.Page, error) {
	var source blob.Provider = p.source

	if bucket != "" {
		s, err := p.source.Bucket(bucket)

		if err != nil {
			return nil, err
		}

		source = s
	}

	slog.InfoContext(ctx, "reading document", "bucket", bucket, "path", path)

	data, err := source.Read(ctx, path)

	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	images := p.images.Extract(ctx, data)

	slog.InfoContext(ctx, "extracted embedded images", "path", path, "pages", len(images))

	handle, err := p.uploader.UploadBytes(ctx, data, DisplayName(path), mimeTypePDF)

	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", path, err)
	}

	if p.cleanup != nil {
		defer func() {
			if err := p.cleanup.Delete(context.WithoutCancel(ctx), handle); err != nil {
				slog.WarnContext(ctx, "failed to delete staged file", "name", handle.Name, "error", err)
			}
		}()
	}

	slog.InfoContext(ctx, "file ready, parsing structured content", "name", handle.Name)

	result, err := p.parser.Parse(ctx, handle)

	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if _, ok := result.(parser.Fallback); ok {
		slog.WarnContext(ctx, "structured parsing fell back to raw text", "path", path)
	}

	return merger.Merge(result.Pages(), images), nil
}

// DisplayName returns the last segment of path, or DefaultDisplayName when there is none.
func DisplayName(p string) string {
	if p == "" || strings.HasSuffix(p, "/") {
		return DefaultDisplayName
	}

	name := path.Base(p)

	if name == "." || name == "/" {
		return DefaultDisplayName
	}

	return name
}
