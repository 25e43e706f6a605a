package parser

import (
	"context"

	"github.com/adrianliechti/docparse/pkg/document"
	"github.com/adrianliechti/docparse/pkg/upload"
)

type Generator interface {
	Generate(ctx context.Context, request *GenerateRequest) (*Generation, error)
}

type GenerateRequest struct {
	Instruction string

	File *upload.Handle
}

type Generation struct {
	Model string
	Text  string

	Usage *Usage
}

type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Result is either Structured or Fallback.
type Result interface {
	Pages() []document.Page

	result()
}

// Structured holds pages decoded from the model response, in response order.
type Structured []document.Page

func (s Structured) Pages() []document.Page {
	return []document.Page(s)
}

func (Structured) result() {}

// Fallback holds the raw (truncated) response text when it could not be decoded.
type Fallback struct {
	Text string
}

func (f Fallback) Pages() []document.Page {
	return []document.Page{
		{
			Page: 1,

			Elements: []document.Element{
				document.TextElement(f.Text),
			},
		},
	}
}

func (Fallback) result() {}
