package oidc_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/adrianliechti/docparse/pkg/auth"
	"github.com/adrianliechti/docparse/pkg/auth/oidc"

	"github.com/go-jose/go-jose/v4"
	"github.com/stretchr/testify/require"
)

const audience = "docparse"

type issuer struct {
	*httptest.Server

	key *rsa.PrivateKey
}

func newIssuer(t *testing.T) *issuer {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	i := &issuer{key: key}

	mux := http.NewServeMux()

	mux.HandleFunc("/.well-known/openid-configuration", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"issuer":   i.URL,
			"jwks_uri": i.URL + "/keys",

			"id_token_signing_alg_values_supported": []string{"RS256"},
		})
	})

	mux.HandleFunc("/keys", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(jose.JSONWebKeySet{
			Keys: []jose.JSONWebKey{
				{Key: &key.PublicKey, KeyID: "test", Algorithm: string(jose.RS256), Use: "sig"},
			},
		})
	})

	i.Server = httptest.NewServer(mux)
	t.Cleanup(i.Close)

	return i
}

func (i *issuer) token(t *testing.T, claims map[string]any) string {
	t.Helper()

	signer, err := jose.NewSigner(jose.SigningKey{Algorithm: jose.RS256, Key: i.key}, (&jose.SignerOptions{}).WithType("JWT").WithHeader("kid", "test"))
	require.NoError(t, err)

	payload, err := json.Marshal(claims)
	require.NoError(t, err)

	obj, err := signer.Sign(payload)
	require.NoError(t, err)

	token, err := obj.CompactSerialize()
	require.NoError(t, err)

	return token
}

func (i *issuer) claims(aud string) map[string]any {
	now := time.Now()

	return map[string]any{
		"iss":   i.URL,
		"aud":   aud,
		"sub":   "user-123",
		"email": "jane@example.com",
		"iat":   now.Unix(),
		"exp":   now.Add(time.Hour).Unix(),
	}
}

func request(header string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/parse", nil)

	if header != "" {
		r.Header.Set("Authorization", header)
	}

	return r
}

func TestAuthenticate(t *testing.T) {
	i := newIssuer(t)

	p, err := oidc.New(context.Background(), i.URL, audience)
	require.NoError(t, err)

	ctx, err := p.Authenticate(context.Background(), request("Bearer "+i.token(t, i.claims(audience))))
	require.NoError(t, err)

	require.Equal(t, "user-123", auth.User(ctx))
	require.Equal(t, "jane@example.com", auth.Email(ctx))
}

func TestAuthenticateRejects(t *testing.T) {
	i := newIssuer(t)

	p, err := oidc.New(context.Background(), i.URL, audience)
	require.NoError(t, err)

	expired := i.claims(audience)
	expired["exp"] = time.Now().Add(-time.Hour).Unix()

	tests := map[string]string{
		"missing header": "",
		"not bearer":     "Basic dXNlcjpwYXNz",
		"garbage token":  "Bearer not-a-jwt",
		"wrong audience": "Bearer " + i.token(t, i.claims("other")),
		"expired":        "Bearer " + i.token(t, expired),
	}

	for name, header := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := p.Authenticate(context.Background(), request(header))
			require.ErrorIs(t, err, auth.ErrUnauthorized)
		})
	}
}

func TestNewUnreachableIssuer(t *testing.T) {
	s := httptest.NewServer(http.NotFoundHandler())
	s.Close()

	_, err := oidc.New(context.Background(), s.URL, audience)
	require.Error(t, err)
}
