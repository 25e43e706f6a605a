package config

import (
	"errors"

	"github.com/adrianliechti/docparse/pkg/limiter"
	"github.com/adrianliechti/docparse/pkg/otel"
	"github.com/adrianliechti/docparse/pkg/provider/google"
)

const DefaultModel = "gemini-2.5-flash"

type googleConfig struct {
	URL   string `yaml:"url"`
	Token string `yaml:"token"`

	Model string `yaml:"model"`

	Proxy *proxyConfig `yaml:"proxy"`

	Limit *int `yaml:"limit"`
}

type googleClients struct {
	store     otel.FileStore
	generator otel.Generator
}

func (c *Config) createGoogle(cfg googleConfig) (*googleClients, error) {
	if cfg.Token == "" {
		return nil, errors.New("google token is required")
	}

	model := cfg.Model

	if model == "" {
		model = DefaultModel
	}

	options := []google.Option{
		google.WithToken(cfg.Token),
	}

	if cfg.URL != "" {
		options = append(options, google.WithURL(cfg.URL))
	}

	client, err := cfg.Proxy.proxyClient()

	if err != nil {
		return nil, err
	}

	if client != nil {
		options = append(options, google.WithClient(client))
	}

	store, err := google.NewFileStore(options...)

	if err != nil {
		return nil, err
	}

	g, err := google.NewGenerator(model, options...)

	if err != nil {
		return nil, err
	}

	l := createLimiter(cfg.Limit)

	return &googleClients{
		store:     otel.NewFileStore("google", limiter.NewFileStore(l, store)),
		generator: otel.NewGenerator("gcp.gemini", model, limiter.NewGenerator(l, g)),
	}, nil
}
