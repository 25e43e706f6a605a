package api

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/adrianliechti/docparse/config"
	"github.com/adrianliechti/docparse/pkg/auth"
	"github.com/adrianliechti/docparse/pkg/document"

	"github.com/go-chi/chi/v5"
)

type Processor interface {
	Parse(ctx context.Context, path string, bucket string) ([]document.Page, error)
}

type Handler struct {
	processor Processor

	authorizers []auth.Provider

	retries      int
	retryBackoff time.Duration
}

type Option func(*Handler)

// WithRetries sets the attempt count and initial backoff of the transient retry loop.
func WithRetries(retries int, backoff time.Duration) Option {
	return func(h *Handler) {
		h.retries = retries
		h.retryBackoff = backoff
	}
}

// WithAuthorizers guards /parse. A request passes when any provider accepts it.
func WithAuthorizers(providers ...auth.Provider) Option {
	return func(h *Handler) {
		h.authorizers = append(h.authorizers, providers...)
	}
}

func New(cfg *config.Config) (*Handler, error) {
	return NewHandler(cfg.Processor,
		WithRetries(cfg.Retries, cfg.RetryBackoff),
		WithAuthorizers(cfg.Authorizers...),
	), nil
}

func NewHandler(p Processor, options ...Option) *Handler {
	h := &Handler{
		processor: p,

		retries:      config.DefaultRetries,
		retryBackoff: config.DefaultRetryBackoff,
	}

	for _, option := range options {
		option(h)
	}

	if h.retries < 1 {
		h.retries = 1
	}

	return h
}

func (h *Handler) Attach(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.authenticate)

		r.Post("/parse", h.handleParse)
	})

	r.Get("/healthz", h.handleHealth)
}

func (h *Handler) authenticate(next http.Handler) http.Handler {
	if len(h.authorizers) == 0 {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error

		for _, p := range h.authorizers {
			ctx, authErr := p.Authenticate(r.Context(), r)

			if authErr == nil {
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			err = authErr
		}

		slog.WarnContext(r.Context(), "unauthorized request", "path", r.URL.Path, "error", err)

		w.Header().Set("WWW-Authenticate", "Bearer")
		writeError(w, http.StatusUnauthorized, auth.ErrUnauthorized)
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte("ok"))
}

func writeJson(w http.ResponseWriter, v any) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)

		writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(buf.Bytes())
}

func writeError(w http.ResponseWriter, code int, err error) {
	text := http.StatusText(code)

	if err != nil {
		text = err.Error()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	enc.Encode(&ErrorResponse{
		Success: false,
		Error:   text,
	})
}
