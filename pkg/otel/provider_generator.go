package otel

import (
	"context"
	"time"

	"github.com/adrianliechti/docparse/pkg/parser"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/semconv/v1.38.0/genaiconv"
)

type Generator interface {
	Observable
	parser.Generator
}

type observableGenerator struct {
	model    string
	provider string

	generator parser.Generator

	tokenUsageMetric        genaiconv.ClientTokenUsage
	operationDurationMetric genaiconv.ClientOperationDuration
}

func NewGenerator(provider, model string, p parser.Generator) Generator {
	meter := otel.Meter(instrumentationName)

	tokenUsageMetric, _ := genaiconv.NewClientTokenUsage(meter)
	operationDurationMetric, _ := genaiconv.NewClientOperationDuration(meter)

	return &observableGenerator{
		generator: p,

		model:    model,
		provider: provider,

		tokenUsageMetric:        tokenUsageMetric,
		operationDurationMetric: operationDurationMetric,
	}
}

func (p *observableGenerator) otelSetup() {
}

func (p *observableGenerator) Generate(ctx context.Context, request *parser.GenerateRequest) (*parser.Generation, error) {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "generate "+p.model)
	defer span.End()

	timestamp := time.Now()

	result, err := p.generator.Generate(ctx, request)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return nil, err
	}

	duration := time.Since(timestamp).Seconds()

	providerName := genaiconv.ProviderNameAttr(p.provider)
	providerModel := p.model

	if result.Model != "" {
		providerModel = result.Model
	}

	p.operationDurationMetric.Record(ctx, duration,
		genaiconv.OperationNameGenerateContent,
		providerName,
		KeyValues([]KeyValue{
			p.operationDurationMetric.AttrRequestModel(p.model),
			p.operationDurationMetric.AttrResponseModel(providerModel),
		}, RequestAttrs(ctx), EndUserAttrs(ctx))...,
	)

	if result.Usage != nil {
		if result.Usage.InputTokens > 0 {
			p.tokenUsageMetric.Record(ctx, int64(result.Usage.InputTokens),
				genaiconv.OperationNameGenerateContent,
				providerName,
				genaiconv.TokenTypeInput,
				KeyValues([]KeyValue{
					p.tokenUsageMetric.AttrRequestModel(p.model),
					p.tokenUsageMetric.AttrResponseModel(providerModel),
				}, RequestAttrs(ctx), EndUserAttrs(ctx))...,
			)
		}

		if result.Usage.OutputTokens > 0 {
			p.tokenUsageMetric.Record(ctx, int64(result.Usage.OutputTokens),
				genaiconv.OperationNameGenerateContent,
				providerName,
				genaiconv.TokenTypeOutput,
				KeyValues([]KeyValue{
					p.tokenUsageMetric.AttrRequestModel(p.model),
					p.tokenUsageMetric.AttrResponseModel(providerModel),
				}, RequestAttrs(ctx), EndUserAttrs(ctx))...,
			)
		}
	}

	return result, nil
}
