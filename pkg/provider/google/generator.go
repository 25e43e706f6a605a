package google

import (
	"context"
	"errors"

	"github.com/adrianliechti/docparse/pkg/parser"

	"github.com/google/jsonschema-go/jsonschema"
	"google.golang.org/genai"
)

var _ parser.Generator = (*Generator)(nil)

type Generator struct {
	*Config
}

func NewGenerator(model string, options ...Option) (*Generator, error) {
	cfg := &Config{
		model: model,
	}

	for _, option := range options {
		option(cfg)
	}

	if cfg.model == "" {
		return nil, errors.New("model is required")
	}

	return &Generator{
		Config: cfg,
	}, nil
}

func (g *Generator) Generate(ctx context.Context, request *parser.GenerateRequest) (*parser.Generation, error) {
	if request == nil || request.File == nil {
		return nil, errors.New("missing file")
	}

	client, err := g.newClient(ctx)

	if err != nil {
		return nil, err
	}

	mimeType := request.File.MIMEType

	if mimeType == "" {
		mimeType = "application/pdf"
	}

	uri := request.File.URI

	if uri == "" {
		uri = request.File.Name
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromURI(uri, mimeType),
		}, genai.RoleUser),
	}

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0),

		ResponseMIMEType:   "application/json",
		ResponseJsonSchema: pagesSchema(),
	}

	if request.Instruction != "" {
		config.SystemInstruction = genai.NewContentFromText(request.Instruction, genai.RoleUser)
	}

	resp, err := client.Models.GenerateContent(ctx, g.model, contents, config)

	if err != nil {
		return nil, convertError(err)
	}

	result := &parser.Generation{
		Model: g.model,
		Text:  resp.Text(),

		Usage: toUsage(resp.UsageMetadata),
	}

	if resp.ModelVersion != "" {
		result.Model = resp.ModelVersion
	}

	return result, nil
}

func pagesSchema() *jsonschema.Schema {
	element := &jsonschema.Schema{
		Type: "object",

		Properties: map[string]*jsonschema.Schema{
			"type": {
				Type: "string",
				Enum: []any{"text", "image"},
			},

			"content": {
				Type:        "string",
				Description: "literal text for text blocks, empty for images",
			},

			"description": {
				Type:        "string",
				Description: "short description of an image, empty for text",
			},
		},

		Required: []string{"type", "content", "description"},
	}

	page := &jsonschema.Schema{
		Type: "object",

		Properties: map[string]*jsonschema.Schema{
			"page": {
				Type:    "integer",
				Minimum: jsonschema.Ptr(1.0),
			},

			"elements": {
				Type:  "array",
				Items: element,
			},
		},

		Required: []string{"page", "elements"},
	}

	return &jsonschema.Schema{
		Type:  "array",
		Items: page,
	}
}

func toUsage(metadata *genai.GenerateContentResponseUsageMetadata) *parser.Usage {
	if metadata == nil {
		return nil
	}

	return &parser.Usage{
		InputTokens:  int(metadata.PromptTokenCount),
		OutputTokens: int(metadata.CandidatesTokenCount),
	}
}
