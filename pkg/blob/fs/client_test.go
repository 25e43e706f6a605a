package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/adrianliechti/docparse/pkg/blob"
	"github.com/adrianliechti/docparse/pkg/blob/fs"

	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	root := t.TempDir()

	require.NoError(t, os.MkdirAll(filepath.Join(root, "documents", "reports"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "documents", "reports", "q1.pdf"), []byte("%PDF-1.7"), 0o600))

	c, err := fs.New(filepath.Join(root, "documents"))
	require.NoError(t, err)

	data, err := c.Read(context.Background(), "reports/q1.pdf")
	require.NoError(t, err)
	require.Equal(t, []byte("%PDF-1.7"), data)

	_, err = c.Read(context.Background(), "reports/missing.pdf")
	require.ErrorIs(t, err, blob.ErrNotFound)

	_, err = c.Read(context.Background(), "../outside.pdf")
	require.Error(t, err)
}

func TestBucket(t *testing.T) {
	root := t.TempDir()

	require.NoError(t, os.MkdirAll(filepath.Join(root, "archive"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "archive", "old.pdf"), []byte("old"), 0o600))

	c, err := fs.New(root)
	require.NoError(t, err)

	archive, err := c.Bucket("archive")
	require.NoError(t, err)

	data, err := archive.Read(context.Background(), "old.pdf")
	require.NoError(t, err)
	require.Equal(t, []byte("old"), data)

	_, err = c.Bucket("../elsewhere")
	require.Error(t, err)
}
