package header

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/adrianliechti/docparse/pkg/auth"
)

const (
	DefaultUserHeader  = "X-Forwarded-User"
	DefaultEmailHeader = "X-Forwarded-Email"
)

var _ auth.Provider = (*Provider)(nil)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Provider trusts identity headers set by an authenticating reverse proxy.
type Provider struct {
	userHeader  string
	emailHeader string
}

type Option func(*Provider)

func New(options ...Option) (*Provider, error) {
	p := &Provider{}

	for _, option := range options {
		option(p)
	}

	if p.userHeader == "" {
		p.userHeader = DefaultUserHeader
	}

	if p.emailHeader == "" {
		p.emailHeader = DefaultEmailHeader
	}

	return p, nil
}

func (p *Provider) Authenticate(ctx context.Context, r *http.Request) (context.Context, error) {
	user := strings.TrimSpace(r.Header.Get(p.userHeader))
	email := strings.TrimSpace(r.Header.Get(p.emailHeader))

	if user == "" && email == "" {
		return ctx, fmt.Errorf("%w: missing %s or %s header", auth.ErrUnauthorized, p.userHeader, p.emailHeader)
	}

	if email == "" && emailRegex.MatchString(user) {
		email = user
	}

	if user != "" {
		ctx = context.WithValue(ctx, auth.UserContextKey, user)
	}

	if email != "" {
		ctx = context.WithValue(ctx, auth.EmailContextKey, email)
	}

	return ctx, nil
}
