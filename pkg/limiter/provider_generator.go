package limiter

import (
	"context"

	"github.com/adrianliechti/docparse/pkg/parser"

	"golang.org/x/time/rate"
)

type Generator interface {
	Limiter
	parser.Generator
}

type limitedGenerator struct {
	limiter  *rate.Limiter
	provider parser.Generator
}

func NewGenerator(l *rate.Limiter, p parser.Generator) Generator {
	return &limitedGenerator{
		limiter:  l,
		provider: p,
	}
}

func (p *limitedGenerator) limiterSetup() {
}

func (p *limitedGenerator) Generate(ctx context.Context, request *parser.GenerateRequest) (*parser.Generation, error) {
	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	return p.provider.Generate(ctx, request)
}
