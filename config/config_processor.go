package config

import (
	"time"

	"github.com/adrianliechti/docparse/pkg/blob"
	"github.com/adrianliechti/docparse/pkg/images"
	"github.com/adrianliechti/docparse/pkg/parser"
	"github.com/adrianliechti/docparse/pkg/processor"
	"github.com/adrianliechti/docparse/pkg/upload"
)

type uploadConfig struct {
	PollInterval time.Duration `yaml:"poll_interval"`
	ReadyTimeout time.Duration `yaml:"ready_timeout"`

	MaxRetries   *int          `yaml:"max_retries"`
	RetryBackoff time.Duration `yaml:"retry_backoff"`

	Cleanup *bool `yaml:"cleanup"`
}

type imagesConfig struct {
	MaxPerPage *int `yaml:"max_per_page"`
	MaxBytes   *int `yaml:"max_bytes"`
}

type parserConfig struct {
	Instruction string `yaml:"instruction"`

	MaxFallbackLength *int `yaml:"max_fallback_length"`
}

func (c *Config) createProcessor(f *configFile, source blob.Store, google *googleClients) *processor.Processor {
	extractor := images.New(imageOptions(f.Images)...)

	uploader := upload.New(google.store, uploadOptions(f.Upload)...)

	p := parser.New(google.generator, parserOptions(f.Parser)...)

	var options []processor.Option

	if f.Upload.Cleanup == nil || *f.Upload.Cleanup {
		options = append(options, processor.WithCleanup(google.store))
	}

	return processor.New(source, extractor, uploader, p, options...)
}

func uploadOptions(cfg uploadConfig) []upload.Option {
	var options []upload.Option

	if cfg.PollInterval > 0 {
		options = append(options, upload.WithPollInterval(cfg.PollInterval))
	}

	if cfg.ReadyTimeout > 0 {
		options = append(options, upload.WithReadyTimeout(cfg.ReadyTimeout))
	}

	if cfg.MaxRetries != nil {
		options = append(options, upload.WithMaxRetries(*cfg.MaxRetries))
	}

	if cfg.RetryBackoff > 0 {
		options = append(options, upload.WithRetryBackoff(cfg.RetryBackoff))
	}

	return options
}

func imageOptions(cfg imagesConfig) []images.Option {
	var options []images.Option

	if cfg.MaxPerPage != nil {
		options = append(options, images.WithMaxPerPage(*cfg.MaxPerPage))
	}

	if cfg.MaxBytes != nil {
		options = append(options, images.WithMaxBytes(*cfg.MaxBytes))
	}

	return options
}

func parserOptions(cfg parserConfig) []parser.Option {
	var options []parser.Option

	if cfg.Instruction != "" {
		options = append(options, parser.WithInstruction(cfg.Instruction))
	}

	if cfg.MaxFallbackLength != nil {
		options = append(options, parser.WithMaxFallbackLength(*cfg.MaxFallbackLength))
	}

	return options
}
