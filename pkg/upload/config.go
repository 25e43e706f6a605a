package upload

import (
	"time"
)

const (
	DefaultPollInterval = 2 * time.Second
	DefaultReadyTimeout = 120 * time.Second
	DefaultMaxRetries   = 3
	DefaultRetryBackoff = 5 * time.Second
)

type Option func(*Service)

func WithPollInterval(d time.Duration) Option {
	return func(s *Service) {
		s.pollInterval = d
	}
}

func WithReadyTimeout(d time.Duration) Option {
	return func(s *Service) {
		s.readyTimeout = d
	}
}

func WithMaxRetries(n int) Option {
	return func(s *Service) {
		s.maxRetries = n
	}
}

func WithRetryBackoff(d time.Duration) Option {
	return func(s *Service) {
		s.retryBackoff = d
	}
}

func WithClock(clock Clock) Option {
	return func(s *Service) {
		s.clock = clock
	}
}

func WithTempDir(dir string) Option {
	return func(s *Service) {
		s.tempDir = dir
	}
}
