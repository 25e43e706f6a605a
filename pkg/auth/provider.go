package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var ErrUnauthorized = errors.New("unauthorized")

type contextKey string

const (
	UserContextKey  contextKey = "auth.user"
	EmailContextKey contextKey = "auth.email"
)

type Provider interface {
	Authenticate(ctx context.Context, r *http.Request) (context.Context, error)
}

// BearerToken extracts the token of an "Authorization: Bearer <token>" header.
func BearerToken(r *http.Request) (string, error) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))

	if header == "" {
		return "", fmt.Errorf("%w: missing authorization header", ErrUnauthorized)
	}

	scheme, token, ok := strings.Cut(header, " ")
	token = strings.TrimSpace(token)

	if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", fmt.Errorf("%w: invalid authorization header", ErrUnauthorized)
	}

	return token, nil
}

func User(ctx context.Context) string {
	user, _ := ctx.Value(UserContextKey).(string)
	return user
}

func Email(ctx context.Context) string {
	email, _ := ctx.Value(EmailContextKey).(string)
	return email
}
