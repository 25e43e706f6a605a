package images

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/adrianliechti/docparse/pkg/document"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

const (
	DefaultMaxPerPage = 10
	DefaultMaxBytes   = 500 * 1024
)

var disableConfigDir sync.Once

// Extractor pulls embedded images out of PDF documents, grouped by zero-based page index.
type Extractor struct {
	maxPerPage int
	maxBytes   int
}

type Option func(*Extractor)

func WithMaxPerPage(n int) Option {
	return func(e *Extractor) {
		e.maxPerPage = n
	}
}

func WithMaxBytes(n int) Option {
	return func(e *Extractor) {
		e.maxBytes = n
	}
}

func New(options ...Option) *Extractor {
	e := &Extractor{
		maxPerPage: DefaultMaxPerPage,
		maxBytes:   DefaultMaxBytes,
	}

	for _, option := range options {
		option(e)
	}

	return e
}

// Extract never fails: unreadable documents yield an empty result.
func (e *Extractor) Extract(ctx context.Context, data []byte) (result document.Images) {
	result = document.Images{}

	if len(data) == 0 {
		return result
	}

	defer func() {
		if r := recover(); r != nil {
			slog.WarnContext(ctx, "pdf image extraction panicked", "error", fmt.Sprint(r))
			result = document.Images{}
		}
	}()

	disableConfigDir.Do(api.DisableConfigDir)

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	pages, err := api.ExtractImagesRaw(bytes.NewReader(data), nil, conf)

	if err != nil {
		slog.WarnContext(ctx, "pdf image extraction failed", "error", err)
		return result
	}

	return e.collect(ctx, pages)
}

func (e *Extractor) collect(ctx context.Context, pages []map[int]model.Image) document.Images {
	result := document.Images{}

	for _, page := range pages {
		var images []model.Image

		for _, img := range page {
			images = append(images, img)
		}

		sort.Slice(images, func(i, j int) bool {
			return images[i].ObjNr < images[j].ObjNr
		})

		if e.maxPerPage > 0 && len(images) > e.maxPerPage {
			images = images[:e.maxPerPage]
		}

		for _, img := range images {
			index := img.PageNr - 1

			if index < 0 || img.Reader == nil {
				continue
			}

			data, err := readLimited(img.Reader, e.maxBytes)

			if err != nil {
				slog.DebugContext(ctx, "skip image", "page", index, "object", img.ObjNr, "error", err)
				continue
			}

			result[index] = append(result[index], document.Image{
				Data:        base64.StdEncoding.EncodeToString(data),
				ContentType: ContentType(img.FileType),
			})
		}
	}

	return result
}

var errTooLarge = errors.New("image too large")

func readLimited(r io.Reader, max int) ([]byte, error) {
	if max <= 0 {
		return io.ReadAll(r)
	}

	data, err := io.ReadAll(io.LimitReader(r, int64(max)+1))

	if err != nil {
		return nil, err
	}

	if len(data) > max {
		return nil, errTooLarge
	}

	return data, nil
}

// ContentType maps an image file extension to its MIME type, defaulting to PNG.
func ContentType(ext string) string {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), ".")) {
	case "jpg", "jpeg":
		return "image/jpeg"

	case "png":
		return "image/png"

	case "gif":
		return "image/gif"

	case "webp":
		return "image/webp"
	}

	return "image/png"
}
