package google

import (
	"context"
	"errors"

	"github.com/adrianliechti/docparse/pkg/upload"

	"google.golang.org/genai"
)

var (
	_ upload.Store   = (*FileStore)(nil)
	_ upload.Deleter = (*FileStore)(nil)
)

// FileStore stages documents with the Gemini Files API.
type FileStore struct {
	*Config
}

func NewFileStore(options ...Option) (*FileStore, error) {
	cfg := &Config{}

	for _, option := range options {
		option(cfg)
	}

	return &FileStore{
		Config: cfg,
	}, nil
}

func (s *FileStore) Upload(ctx context.Context, path string, options *upload.UploadOptions) (*upload.Handle, error) {
	if options == nil {
		options = new(upload.UploadOptions)
	}

	client, err := s.newClient(ctx)

	if err != nil {
		return nil, err
	}

	file, err := client.Files.UploadFromPath(ctx, path, &genai.UploadFileConfig{
		MIMEType:    options.MIMEType,
		DisplayName: options.DisplayName,
	})

	if err != nil {
		var apiErr genai.APIError

		if errors.As(err, &apiErr) && !upload.IsTransientStatus(apiErr.Code) {
			return nil, err
		}

		return nil, upload.Transient(err)
	}

	handle := toHandle(file)

	if handle.MIMEType == "" {
		handle.MIMEType = options.MIMEType
	}

	if handle.DisplayName == "" {
		handle.DisplayName = options.DisplayName
	}

	return handle, nil
}

func (s *FileStore) State(ctx context.Context, handle *upload.Handle) (upload.State, error) {
	client, err := s.newClient(ctx)

	if err != nil {
		return upload.StateUnknown, err
	}

	file, err := client.Files.Get(ctx, handle.Name, nil)

	if err != nil {
		return upload.StateUnknown, convertError(err)
	}

	if file.URI != "" {
		handle.URI = file.URI
	}

	return toState(file.State), nil
}

func (s *FileStore) Delete(ctx context.Context, handle *upload.Handle) error {
	client, err := s.newClient(ctx)

	if err != nil {
		return err
	}

	if _, err := client.Files.Delete(ctx, handle.Name, nil); err != nil {
		return convertError(err)
	}

	return nil
}
