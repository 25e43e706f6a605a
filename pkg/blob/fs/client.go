package fs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrianliechti/docparse/pkg/blob"
)

var _ blob.Store = (*Client)(nil)

// Client reads objects from a local directory, buckets are its subdirectories.
type Client struct {
	root string
}

func New(root string) (*Client, error) {
	if root == "" {
		root = "."
	}

	root, err := filepath.Abs(root)

	if err != nil {
		return nil, err
	}

	return &Client{
		root: root,
	}, nil
}

func (c *Client) Bucket(name string) (blob.Provider, error) {
	path, err := c.resolve(name)

	if err != nil {
		return nil, err
	}

	return &Client{
		root: path,
	}, nil
}

func (c *Client) Read(ctx context.Context, path string) ([]byte, error) {
	name, err := c.resolve(path)

	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(name)

	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", blob.ErrNotFound, path)
		}

		return nil, err
	}

	return data, nil
}

func (c *Client) resolve(path string) (string, error) {
	name := filepath.Join(c.root, filepath.FromSlash(path))

	if name != c.root && !strings.HasPrefix(name, c.root+string(filepath.Separator)) {
		return "", errors.New("invalid path: " + path)
	}

	return name, nil
}
