package s3

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/adrianliechti/docparse/pkg/blob"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

var _ blob.Store = (*Client)(nil)

type Client struct {
	client *s3.Client

	bucket string
}

func New(ctx context.Context, bucket string, options ...Option) (*Client, error) {
	cfg := &Config{}

	for _, option := range options {
		option(cfg)
	}

	var opts []func(*config.LoadOptions) error

	if cfg.region != "" {
		opts = append(opts, config.WithRegion(cfg.region))
	}

	if cfg.accessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.accessKey, cfg.secretKey, "")))
	}

	awscfg, err := config.LoadDefaultConfig(ctx, opts...)

	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awscfg, func(o *s3.Options) {
		if cfg.url != "" {
			o.BaseEndpoint = aws.String(cfg.url)
			o.UsePathStyle = true
		}
	})

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

	resp, err := c.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(path),
	})

	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: s3://%s/%s", blob.ErrNotFound, c.bucket, path)
		}

		return nil, err
	}

	defer resp.Body.Close()

	return io.ReadAll(resp.Body)
}

func isNotFound(err error) bool {
	var noKey *types.NoSuchKey

	if errors.As(err, &noKey) {
		return true
	}

	var noBucket *types.NoSuchBucket

	if errors.As(err, &noBucket) {
		return true
	}

	var apiErr smithy.APIError

	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NotFound", "NoSuchKey", "NoSuchBucket":
			return true
		}
	}

	return false
}
