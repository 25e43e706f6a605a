package google

import (
	"errors"

	"github.com/adrianliechti/docparse/pkg/upload"

	"google.golang.org/genai"
)

func convertError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr genai.APIError

	if errors.As(err, &apiErr) {
		if upload.IsTransientStatus(apiErr.Code) {
			return upload.Transient(err)
		}

		return err
	}

	if upload.IsTransient(err) {
		return upload.Transient(err)
	}

	return err
}

func toState(state genai.FileState) upload.State {
	switch state {
	case genai.FileStateProcessing:
		return upload.StateProcessing

	case genai.FileStateActive:
		return upload.StateActive

	case genai.FileStateFailed:
		return upload.StateFailed
	}

	return upload.StateUnknown
}

func toHandle(file *genai.File) *upload.Handle {
	return &upload.Handle{
		Name: file.Name,
		URI:  file.URI,

		MIMEType:    file.MIMEType,
		DisplayName: file.DisplayName,

		State: toState(file.State),
	}
}
