package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/adrianliechti/docparse/pkg/blob"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

var _ blob.Store = (*Client)(nil)

type Client struct {
	client *storage.Client

	bucket string
}

func New(ctx context.Context, bucket string, options ...Option) (*Client, error) {
	cfg := &Config{}

	for _, option := range options {
		option(cfg)
	}

	var opts []option.ClientOption

	if cfg.url != "" {
		opts = append(opts, option.WithEndpoint(cfg.url))
	}

	if cfg.anonymous {
		opts = append(opts, option.WithoutAuthentication())
	}

	client, err := storage.NewClient(ctx, opts...)

	if err != nil {
		return nil, err
	}

	return &Client{
		client: client,
		bucket: bucket,
	}, nil
}

func (c *Client) Bucket(name string) (blob.Provider, error) {
	if name == "" {
		return nil, errors.New("bucket name is required")
	}

	return &Client{
		client: c.client,
		bucket: name,
	}, nil
}

func (c *Client) Read(ctx context.Context, path string) ([]byte, error) {
	if c.bucket == "" {
		return nil, errors.New("bucket name is required")
	}

	r, err := c.client.Bucket(c.bucket).Object(path).NewReader(ctx)

	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) || errors.Is(err, storage.ErrBucketNotExist) {
			return nil, fmt.Errorf("%w: gs://%s/%s", blob.ErrNotFound, c.bucket, path)
		}

		return nil, err
	}

	defer r.Close()

	return io.ReadAll(r)
}

func (c *Client) Close() error {
	return c.client.Close()
}
