package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/adrianliechti/docparse/pkg/document"
	"github.com/adrianliechti/docparse/server/api"
)

type Page = document.Page
type Element = document.Element

type ParseRequest = api.ParseRequest

type ParseService struct {
	Options []RequestOption
}

func NewParseService(opts ...RequestOption) ParseService {
	return ParseService{
		Options: opts,
	}
}

func (r *ParseService) New(ctx context.Context, input ParseRequest, opts ...RequestOption) ([]Page, error) {
	c := newRequestConfig(append(r.Options, opts...)...)

	body, err := json.Marshal(input)

	if err != nil {
		return nil, err
	}

	req, _ := http.NewRequestWithContext(ctx, "POST", c.URL+"/parse", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.Client.Do(req)

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var result api.ErrorResponse

		if err := json.NewDecoder(resp.Body).Decode(&result); err == nil && result.Error != "" {
			return nil, errors.New(result.Error)
		}

		return nil, errors.New(resp.Status)
	}

	var result api.ParseResponse

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	return result.Pages, nil
}
