package config

import (
	"bytes"
	"context"
	"errors"
	"os"
	"time"

	"github.com/adrianliechti/docparse/pkg/auth"
	"github.com/adrianliechti/docparse/pkg/processor"

	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"
)

const (
	DefaultAddress = ":8080"

	DefaultTimeout      = 540 * time.Second
	DefaultRetries      = 2
	DefaultRetryBackoff = time.Second
)

type Config struct {
	Address string

	Timeout      time.Duration
	Retries      int
	RetryBackoff time.Duration

	Authorizers []auth.Provider

	Processor *processor.Processor

	closers []func() error
}

func Parse(ctx context.Context, path string) (*Config, error) {
	file, err := parseFile(path)

	if err != nil {
		return nil, err
	}

	c := &Config{
		Address: DefaultAddress,

		Timeout:      DefaultTimeout,
		Retries:      DefaultRetries,
		RetryBackoff: DefaultRetryBackoff,
	}

	if file.Address != "" {
		c.Address = file.Address
	}

	if err := c.registerServer(file); err != nil {
		return nil, err
	}

	if err := c.registerAuthorizers(ctx, file); err != nil {
		return nil, err
	}

	source, err := c.createBlob(ctx, file.Blob)

	if err != nil {
		return nil, err
	}

	google, err := c.createGoogle(file.Google)

	if err != nil {
		return nil, err
	}

	c.Processor = c.createProcessor(file, source, google)

	return c, nil
}

// Close releases clients opened while parsing the configuration.
func (c *Config) Close() error {
	var errs []error

	for _, fn := range c.closers {
		errs = append(errs, fn())
	}

	return errors.Join(errs...)
}

type configFile struct {
	Address string `yaml:"address"`

	Server serverConfig `yaml:"server"`

	Authorizers []authorizerConfig `yaml:"authorizers"`

	Blob   blobConfig   `yaml:"blob"`
	Google googleConfig `yaml:"google"`

	Upload uploadConfig `yaml:"upload"`
	Images imagesConfig `yaml:"images"`
	Parser parserConfig `yaml:"parser"`
}

type serverConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	Retries      *int          `yaml:"retries"`
	RetryBackoff time.Duration `yaml:"retry_backoff"`
}

func parseFile(path string) (*configFile, error) {
	data, err := os.ReadFile(path)

	if err != nil {
		return nil, err
	}

	data = []byte(os.ExpandEnv(string(data)))

	var config configFile

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) registerServer(f *configFile) error {
	cfg := f.Server

	if cfg.Timeout < 0 || cfg.RetryBackoff < 0 {
		return errors.New("server durations must not be negative")
	}

	if cfg.Timeout > 0 {
		c.Timeout = cfg.Timeout
	}

	if cfg.RetryBackoff > 0 {
		c.RetryBackoff = cfg.RetryBackoff
	}

	if cfg.Retries != nil {
		if *cfg.Retries < 1 {
			return errors.New("server retries must be at least 1")
		}

		c.Retries = *cfg.Retries
	}

	return nil
}

func createLimiter(limit *int) *rate.Limiter {
	if limit == nil {
		return nil
	}

	return rate.NewLimiter(rate.Limit(*limit), *limit)
}
