package upload

import (
	"context"
	"errors"
	"io"
	"net"
	"syscall"
)

type transientError struct {
	err error
}

func (e *transientError) Error() string {
	return e.err.Error()
}

func (e *transientError) Unwrap() error {
	return e.err
}

// Transient marks err as worth retrying.
func Transient(err error) error {
	if err == nil {
		return nil
	}

	return &transientError{err}
}

type statusCoder interface {
	StatusCode() int
}

// IsTransient reports whether err belongs to the retryable class: readiness timeouts,
// connection failures and remote errors flagged as temporary.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, ErrProcessingFailed) {
		return false
	}

	var te *transientError

	if errors.As(err, &te) {
		return true
	}

	if errors.Is(err, ErrTimeout) {
		return true
	}

	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.EPIPE) {
		return true
	}

	var netErr net.Error

	if errors.As(err, &netErr) {
		return true
	}

	var sc statusCoder

	if errors.As(err, &sc) {
		return IsTransientStatus(sc.StatusCode())
	}

	return false
}

func IsTransientStatus(code int) bool {
	switch {
	case code == 408, code == 429:
		return true

	case code >= 500:
		return true
	}

	return false
}
