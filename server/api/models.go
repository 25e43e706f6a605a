package api

import (
	"github.com/adrianliechti/docparse/pkg/document"
)

type ParseRequest struct {
	Bucket   string `json:"bucket"`
	BlobPath string `json:"blob_path"`
}

type ParseResponse struct {
	Success bool `json:"success"`

	Count int             `json:"count"`
	Pages []document.Page `json:"pages"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
