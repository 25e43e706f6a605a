package config

import (
	"context"
	"errors"
	"strings"

	"github.com/adrianliechti/docparse/pkg/blob"
	"github.com/adrianliechti/docparse/pkg/blob/fs"
	"github.com/adrianliechti/docparse/pkg/blob/gcs"
	"github.com/adrianliechti/docparse/pkg/blob/s3"
	"github.com/adrianliechti/docparse/pkg/otel"
)

type blobConfig struct {
	Type string `yaml:"type"`

	Bucket string `yaml:"bucket"`
	Root   string `yaml:"root"`

	URL    string `yaml:"url"`
	Region string `yaml:"region"`

	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`

	Anonymous bool `yaml:"anonymous"`
}

func (c *Config) createBlob(ctx context.Context, cfg blobConfig) (blob.Store, error) {
	t := strings.ToLower(cfg.Type)

	if t == "" {
		t = "gcs"
	}

	store, err := createBlobStore(ctx, t, cfg)

	if err != nil {
		return nil, err
	}

	if closer, ok := store.(interface{ Close() error }); ok {
		c.closers = append(c.closers, closer.Close)
	}

	return otel.NewBlob(t, cfg.Bucket, store), nil
}

func createBlobStore(ctx context.Context, t string, cfg blobConfig) (blob.Store, error) {
	switch t {
	case "gcs":
		return gcsBlob(ctx, cfg)

	case "s3":
		return s3Blob(ctx, cfg)

	case "fs":
		return fsBlob(cfg)

	default:
		return nil, errors.New("invalid blob type: " + cfg.Type)
	}
}

func gcsBlob(ctx context.Context, cfg blobConfig) (blob.Store, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("blob bucket is required")
	}

	var options []gcs.Option

	if cfg.URL != "" {
		options = append(options, gcs.WithURL(cfg.URL))
	}

	if cfg.Anonymous {
		options = append(options, gcs.WithoutAuthentication())
	}

	return gcs.New(ctx, cfg.Bucket, options...)
}

func s3Blob(ctx context.Context, cfg blobConfig) (blob.Store, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("blob bucket is required")
	}

	var options []s3.Option

	if cfg.URL != "" {
		options = append(options, s3.WithURL(cfg.URL))
	}

	if cfg.Region != "" {
		options = append(options, s3.WithRegion(cfg.Region))
	}

	if cfg.AccessKey != "" {
		options = append(options, s3.WithCredentials(cfg.AccessKey, cfg.SecretKey))
	}

	return s3.New(ctx, cfg.Bucket, options...)
}

func fsBlob(cfg blobConfig) (blob.Store, error) {
	root := cfg.Root

	if root == "" {
		root = "."
	}

	return fs.New(root)
}
