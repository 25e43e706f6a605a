package upload

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v5"
)

type Service struct {
	store Store
	clock Clock

	pollInterval time.Duration
	readyTimeout time.Duration

	maxRetries   int
	retryBackoff time.Duration

	tempDir string
}

func New(store Store, options ...Option) *Service {
	s := &Service{
		store: store,
		clock: SystemClock(),

		pollInterval: DefaultPollInterval,
		readyTimeout: DefaultReadyTimeout,

		maxRetries:   DefaultMaxRetries,
		retryBackoff: DefaultRetryBackoff,
	}

	for _, option := range options {
		option(s)
	}

	if s.maxRetries < 1 {
		s.maxRetries = 1
	}

	return s
}

// UploadBytes stages data through a temporary file, which is removed on every return path.
func (s *Service) UploadBytes(ctx context.Context, data []byte, displayName, mimeType string) (*Handle, error) {
	ext := filepath.Ext(displayName)

	if ext == "" {
		ext = ".pdf"
	}

	f, err := os.CreateTemp(s.tempDir, "upload-*"+ext)

	if err != nil {
		return nil, err
	}

	defer os.Remove(f.Name())

	if _, err := f.Write(data); err != nil {
		f.Close()
		return nil, err
	}

	if err := f.Close(); err != nil {
		return nil, err
	}

	return s.UploadFile(ctx, f.Name(), displayName, mimeType)
}

func (s *Service) UploadFile(ctx context.Context, path, displayName, mimeType string) (*Handle, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}

		return nil, err
	}

	if displayName == "" {
		displayName = filepath.Base(path)
	}

	options := &UploadOptions{
		DisplayName: displayName,
		MIMEType:    mimeType,
	}

	b := s.newBackOff()

	attempt := 0

	operation := func() (*Handle, error) {
		attempt++

		handle, err := s.stage(ctx, path, options)

		if err == nil {
			slog.InfoContext(ctx, "file ready", "name", handle.Name, "display_name", displayName, "attempt", attempt)
			return handle, nil
		}

		if !IsTransient(err) {
			return nil, backoff.Permanent(err)
		}

		slog.WarnContext(ctx, "upload attempt failed", "display_name", displayName, "attempt", attempt, "max", s.maxRetries, "error", err)

		return nil, err
	}

	handle, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(b),
		backoff.WithMaxTries(uint(s.maxRetries)),
		backoff.WithMaxElapsedTime(0),
	)

	if err != nil {
		var perr *backoff.PermanentError

		if errors.As(err, &perr) {
			err = perr.Unwrap()
		}

		return nil, err
	}

	return handle, nil
}

// newBackOff doubles from retryBackoff without jitter, capped at backoff.DefaultMaxInterval
// unless retryBackoff itself is larger.
func (s *Service) newBackOff() *backoff.ExponentialBackOff {
	return &backoff.ExponentialBackOff{
		InitialInterval:     s.retryBackoff,
		RandomizationFactor: 0,
		Multiplier:          2,
		MaxInterval:         max(s.retryBackoff, backoff.DefaultMaxInterval),
	}
}

// stage runs one upload attempt: submit, then poll until the store reports a terminal state.
func (s *Service) stage(ctx context.Context, path string, options *UploadOptions) (*Handle, error) {
	handle, err := s.store.Upload(ctx, path, options)

	if err != nil {
		return nil, err
	}

	if handle.State == StateActive {
		return handle, nil
	}

	if handle.State == StateFailed {
		return nil, fmt.Errorf("%w: %s", ErrProcessingFailed, handle.Name)
	}

	state, err := Poll(ctx, s.clock, s.pollInterval, s.readyTimeout, func(ctx context.Context) (State, error) {
		return s.store.State(ctx, handle)
	})

	if err != nil {
		if errors.Is(err, ErrProcessingFailed) || errors.Is(err, ErrTimeout) {
			return nil, fmt.Errorf("%w: %s", err, handle.Name)
		}

		return nil, err
	}

	handle.State = state

	return handle, nil
}
