package upload

import (
	"context"
	"errors"
)

type Store interface {
	Upload(ctx context.Context, path string, options *UploadOptions) (*Handle, error)
	State(ctx context.Context, handle *Handle) (State, error)
}

// Deleter is implemented by stores that can drop staged files.
type Deleter interface {
	Delete(ctx context.Context, handle *Handle) error
}

var (
	ErrTimeout          = errors.New("file not ready within deadline")
	ErrProcessingFailed = errors.New("file processing failed")
	ErrFileNotFound     = errors.New("file not found")
)

type UploadOptions struct {
	DisplayName string
	MIMEType    string
}

type State string

const (
	StateUnknown    State = ""
	StateProcessing State = "PROCESSING"
	StateActive     State = "ACTIVE"
	StateFailed     State = "FAILED"
)

type Handle struct {
	Name string
	URI  string

	MIMEType    string
	DisplayName string

	State State
}
