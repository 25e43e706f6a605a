package parser

import (
	"context"
	"errors"
	"log/slog"

	"github.com/adrianliechti/docparse/pkg/upload"
)

const DefaultMaxFallbackLength = 5000

type Parser struct {
	generator Generator

	instruction       string
	maxFallbackLength int
}

type Option func(*Parser)

func WithInstruction(instruction string) Option {
	return func(p *Parser) {
		p.instruction = instruction
	}
}

func WithMaxFallbackLength(n int) Option {
	return func(p *Parser) {
		p.maxFallbackLength = n
	}
}

func New(generator Generator, options ...Option) *Parser {
	p := &Parser{
		generator: generator,

		instruction:       DefaultInstruction,
		maxFallbackLength: DefaultMaxFallbackLength,
	}

	for _, option := range options {
		option(p)
	}

	return p
}

// Parse runs the structured extraction against a staged file. Only generator failures are
// returned as errors, undecodable responses come back as Fallback.
func (p *Parser) Parse(ctx context.Context, file *upload.Handle) (Result, error) {
	if file == nil {
		return nil, errors.New("missing file")
	}

	generation, err := p.generator.Generate(ctx, &GenerateRequest{
		Instruction: p.instruction,

		File: file,
	})

	if err != nil {
		return nil, err
	}

	result, err := Decode(generation.Text, p.maxFallbackLength)

	if err != nil {
		slog.WarnContext(ctx, "structured response not decodable, using fallback", "file", file.Name, "length", len(generation.Text), "error", err)
	}

	return result, nil
}
