package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/adrianliechti/docparse/pkg/document"
	"github.com/adrianliechti/docparse/pkg/otel"
	"github.com/adrianliechti/docparse/pkg/upload"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
)

const maxRequestSize = 1 << 20

var (
	errInvalidBody    = errors.New("invalid request body")
	errMissingRequest = errors.New("missing bucket or blob_path")
)

func (h *Handler) handleParse(w http.ResponseWriter, r *http.Request) {
	id := r.Header.Get("X-Request-Id")

	if id == "" {
		id = uuid.NewString()
	}

	w.Header().Set("X-Request-Id", id)

	ctx := otel.WithRequestID(r.Context(), id)

	var req ParseRequest

	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestSize)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errInvalidBody)
		return
	}

	req.Bucket = strings.TrimSpace(req.Bucket)
	req.BlobPath = strings.TrimSpace(req.BlobPath)

	if req.Bucket == "" || req.BlobPath == "" {
		writeError(w, http.StatusBadRequest, errMissingRequest)
		return
	}

	slog.InfoContext(ctx, "parse request", "request_id", id, "bucket", req.Bucket, "blob_path", req.BlobPath)

	pages, err := h.parse(ctx, req)

	if err != nil {
		slog.ErrorContext(ctx, "parse failed", "request_id", id, "error", err)

		writeError(w, http.StatusInternalServerError, err)
		return
	}

	if pages == nil {
		pages = []document.Page{}
	}

	writeJson(w, &ParseResponse{
		Success: true,

		Count: len(pages),
		Pages: pages,
	})
}

// parse retries the whole pipeline on transient errors only.
func (h *Handler) parse(ctx context.Context, req ParseRequest) ([]document.Page, error) {
	attempt := 0

	operation := func() ([]document.Page, error) {
		attempt++

		pages, err := h.processor.Parse(ctx, req.BlobPath, req.Bucket)

		if err == nil {
			return pages, nil
		}

		if !upload.IsTransient(err) {
			return nil, backoff.Permanent(err)
		}

		slog.WarnContext(ctx, "parse attempt failed", "attempt", attempt, "max", h.retries, "error", err)

		return nil, err
	}

	b := &backoff.ExponentialBackOff{
		InitialInterval:     h.retryBackoff,
		RandomizationFactor: 0,
		Multiplier:          2,
		MaxInterval:         backoff.DefaultMaxInterval,
	}

	pages, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(b),
		backoff.WithMaxTries(uint(h.retries)),
		backoff.WithMaxElapsedTime(0),
	)

	var permanent *backoff.PermanentError

	if errors.As(err, &permanent) {
		return nil, permanent.Err
	}

	return pages, err
}
