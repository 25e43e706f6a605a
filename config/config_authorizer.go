package config

import (
	"context"
	"errors"
	"strings"

	"github.com/adrianliechti/docparse/pkg/auth"
	"github.com/adrianliechti/docparse/pkg/auth/header"
	"github.com/adrianliechti/docparse/pkg/auth/oidc"
	"github.com/adrianliechti/docparse/pkg/auth/static"
)

type authorizerConfig struct {
	Type string `yaml:"type"`

	Token string `yaml:"token"`

	Issuer   string `yaml:"issuer"`
	Audience string `yaml:"audience"`

	UserHeader  string `yaml:"user_header"`
	EmailHeader string `yaml:"email_header"`
}

func (c *Config) registerAuthorizers(ctx context.Context, f *configFile) error {
	for _, a := range f.Authorizers {
		authorizer, err := createAuthorizer(ctx, a)

		if err != nil {
			return err
		}

		c.Authorizers = append(c.Authorizers, authorizer)
	}

	return nil
}

func createAuthorizer(ctx context.Context, cfg authorizerConfig) (auth.Provider, error) {
	switch strings.ToLower(cfg.Type) {
	case "header":
		return headerAuthorizer(cfg)

	case "static":
		return staticAuthorizer(cfg)

	case "oidc":
		return oidcAuthorizer(ctx, cfg)

	default:
		return nil, errors.New("invalid authorizer type: " + cfg.Type)
	}
}

func headerAuthorizer(cfg authorizerConfig) (auth.Provider, error) {
	var options []header.Option

	if cfg.UserHeader != "" {
		options = append(options, header.WithUserHeader(cfg.UserHeader))
	}

	if cfg.EmailHeader != "" {
		options = append(options, header.WithEmailHeader(cfg.EmailHeader))
	}

	return header.New(options...)
}

// static.New treats an empty token as open, configuration requires one.
func staticAuthorizer(cfg authorizerConfig) (auth.Provider, error) {
	if cfg.Token == "" {
		return nil, errors.New("static authorizer requires a token")
	}

	return static.New(cfg.Token)
}

func oidcAuthorizer(ctx context.Context, cfg authorizerConfig) (auth.Provider, error) {
	if cfg.Issuer == "" {
		return nil, errors.New("oidc authorizer requires an issuer")
	}

	return oidc.New(ctx, cfg.Issuer, cfg.Audience)
}
