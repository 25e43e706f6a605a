package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/adrianliechti/docparse/pkg/auth"
	"github.com/adrianliechti/docparse/pkg/auth/header"
	"github.com/adrianliechti/docparse/pkg/auth/static"
	"github.com/adrianliechti/docparse/pkg/document"
	"github.com/adrianliechti/docparse/pkg/upload"
	"github.com/adrianliechti/docparse/server/api"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

type mockProcessor struct {
	calls atomic.Int32

	errs  []error
	pages []document.Page

	mu     sync.Mutex
	bucket string
	path   string
}

func (m *mockProcessor) Parse(ctx context.Context, path string, bucket string) ([]document.Page, error) {
	n := int(m.calls.Add(1))

	m.mu.Lock()
	m.path = path
	m.bucket = bucket
	m.mu.Unlock()

	if n <= len(m.errs) && m.errs[n-1] != nil {
		return nil, m.errs[n-1]
	}

	return m.pages, nil
}

func newServer(t *testing.T, p api.Processor, options ...api.Option) *httptest.Server {
	t.Helper()

	r := chi.NewRouter()

	h := api.NewHandler(p, append([]api.Option{api.WithRetries(2, time.Millisecond)}, options...)...)
	h.Attach(r)

	s := httptest.NewServer(r)
	t.Cleanup(s.Close)

	return s
}

func post(t *testing.T, s *httptest.Server, body string) (*http.Response, map[string]any) {
	t.Helper()

	resp, err := http.Post(s.URL+"/parse", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var result map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))

	return resp, result
}

func TestParse(t *testing.T) {
	p := &mockProcessor{
		pages: []document.Page{
			{Page: 1, Elements: []document.Element{document.TextElement("hello")}},
			{Page: 2, Elements: []document.Element{document.ImageElement("data:image/png;base64,QUFB", "logo")}},
		},
	}

	s := newServer(t, p)

	resp, result := post(t, s, `{"bucket": "docs", "blob_path": "reports/q1.pdf"}`)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, resp.Header.Get("X-Request-Id"))

	require.Equal(t, true, result["success"])
	require.Equal(t, float64(2), result["count"])

	pages := result["pages"].([]any)
	require.Len(t, pages, 2)

	first := pages[0].(map[string]any)
	require.Equal(t, float64(1), first["page"])

	element := first["elements"].([]any)[0].(map[string]any)
	require.Equal(t, "text", element["type"])
	require.Equal(t, "hello", element["content"])
	require.Equal(t, "", element["description"])

	p.mu.Lock()
	defer p.mu.Unlock()

	require.Equal(t, "docs", p.bucket)
	require.Equal(t, "reports/q1.pdf", p.path)
}

func TestParseBadRequest(t *testing.T) {
	tests := map[string]string{
		"invalid json":   `{"bucket":`,
		"empty body":     ``,
		"missing bucket": `{"blob_path": "a.pdf"}`,
		"missing path":   `{"bucket": "docs"}`,
		"blank values":   `{"bucket": " ", "blob_path": " "}`,
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			p := &mockProcessor{}
			s := newServer(t, p)

			resp, result := post(t, s, body)

			require.Equal(t, http.StatusBadRequest, resp.StatusCode)
			require.Equal(t, false, result["success"])
			require.NotEmpty(t, result["error"])
			require.Zero(t, p.calls.Load())
		})
	}
}

func TestParseRetriesTransient(t *testing.T) {
	p := &mockProcessor{
		errs: []error{
			upload.Transient(errors.New("connection reset")),
		},

		pages: []document.Page{},
	}

	s := newServer(t, p)

	resp, result := post(t, s, `{"bucket": "docs", "blob_path": "a.pdf"}`)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, true, result["success"])
	require.Equal(t, float64(0), result["count"])
	require.Equal(t, int32(2), p.calls.Load())
}

func TestParseTransientExhausted(t *testing.T) {
	p := &mockProcessor{
		errs: []error{
			upload.ErrTimeout,
			upload.ErrTimeout,
			upload.ErrTimeout,
		},
	}

	s := newServer(t, p)

	resp, result := post(t, s, `{"bucket": "docs", "blob_path": "a.pdf"}`)

	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	require.Equal(t, false, result["success"])
	require.Contains(t, result["error"], upload.ErrTimeout.Error())
	require.Equal(t, int32(2), p.calls.Load())
}

func TestParsePermanentError(t *testing.T) {
	p := &mockProcessor{
		errs: []error{
			upload.ErrProcessingFailed,
		},
	}

	s := newServer(t, p)

	resp, result := post(t, s, `{"bucket": "docs", "blob_path": "a.pdf"}`)

	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	require.Equal(t, upload.ErrProcessingFailed.Error(), result["error"])
	require.Equal(t, int32(1), p.calls.Load())
}

func TestParseMethodNotAllowed(t *testing.T) {
	s := newServer(t, &mockProcessor{})

	resp, err := http.Get(s.URL + "/parse")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	s := newServer(t, &mockProcessor{})

	resp, err := http.Get(s.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestParseEncodeFailure(t *testing.T) {
	p := &mockProcessor{
		pages: []document.Page{
			{Page: 1, Elements: []document.Element{{Content: "untyped"}}},
		},
	}

	s := newServer(t, p)

	resp, result := post(t, s, `{"bucket": "docs", "blob_path": "a.pdf"}`)

	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	require.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	require.Equal(t, false, result["success"])
	require.Contains(t, result["error"], document.ErrInvalidElementType.Error())
}

type userProcessor struct {
	user chan string
}

func (p *userProcessor) Parse(ctx context.Context, path string, bucket string) ([]document.Page, error) {
	p.user <- auth.User(ctx)
	return nil, nil
}

func authorized(t *testing.T, s *httptest.Server, headers map[string]string) (*http.Response, map[string]any) {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, s.URL+"/parse", strings.NewReader(`{"bucket": "docs", "blob_path": "a.pdf"}`))
	require.NoError(t, err)

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var result map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))

	return resp, result
}

func TestParseUnauthorized(t *testing.T) {
	token, err := static.New("s3cret")
	require.NoError(t, err)

	p := &mockProcessor{}
	s := newServer(t, p, api.WithAuthorizers(token))

	tests := map[string]map[string]string{
		"missing":     nil,
		"wrong token": {"Authorization": "Bearer nope"},
	}

	for name, headers := range tests {
		t.Run(name, func(t *testing.T) {
			resp, result := authorized(t, s, headers)

			require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			require.Equal(t, "Bearer", resp.Header.Get("WWW-Authenticate"))
			require.Equal(t, false, result["success"])
			require.Equal(t, auth.ErrUnauthorized.Error(), result["error"])
		})
	}

	require.Zero(t, p.calls.Load())

	resp, result := authorized(t, s, map[string]string{"Authorization": "Bearer s3cret"})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, true, result["success"])
	require.Equal(t, int32(1), p.calls.Load())
}

func TestParseAnyAuthorizer(t *testing.T) {
	token, err := static.New("s3cret")
	require.NoError(t, err)

	proxy, err := header.New()
	require.NoError(t, err)

	p := &userProcessor{user: make(chan string, 1)}
	s := newServer(t, p, api.WithAuthorizers(token, proxy))

	resp, _ := authorized(t, s, map[string]string{"X-Forwarded-User": "jane"})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "jane", <-p.user)
}

func TestHealthOpenWithAuthorizers(t *testing.T) {
	token, err := static.New("s3cret")
	require.NoError(t, err)

	s := newServer(t, &mockProcessor{}, api.WithAuthorizers(token))

	resp, err := http.Get(s.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
}
