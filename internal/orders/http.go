package orders

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/printcal/internal/log"
	"github.com/zjrosen/printcal/internal/tracing"
)

// Source is where orders come from.
type Source interface {
	Login(ctx context.Context, username, password string) error
	FetchOrders(ctx context.Context) ([]Record, error)
}

const (
	// DefaultBaseURL is the portal root.
	DefaultBaseURL = "https://www.ybsnow.com"
	// DefaultTimeout bounds each request.
	DefaultTimeout = 10 * time.Second
	// UserAgent identifies the client to the portal.
	UserAgent = "YBS Print Calander/1.0 (+https://www.ybsnow.com/)"

	loginPath  = "/index.php"
	managePath = "/manage.html"
	maxBody    = 8 << 20
)

// HTTPSource logs in to the portal with a cookie session and scrapes the
// manage page.
type HTTPSource struct {
	base   *url.URL
	client *http.Client
	tracer trace.Tracer
}

// SourceOption configures an HTTPSource.
type SourceOption func(*HTTPSource)

// WithSourceTracer records a client span for every login and fetch.
func WithSourceTracer(t trace.Tracer) SourceOption {
	return func(s *HTTPSource) {
		if t != nil {
			s.tracer = t
		}
	}
}

// NewHTTPSource creates a source rooted at baseURL with its own cookie jar.
func NewHTTPSource(baseURL string, timeout time.Duration, opts ...SourceOption) (*HTTPSource, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing base url: %w", err)
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}
	s := &HTTPSource{
		base:   base,
		client: &http.Client{Jar: jar, Timeout: timeout},
		tracer: noop.NewTracerProvider().Tracer(tracing.DefaultServiceName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *HTTPSource) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append(attrs, attribute.String(tracing.AttrBaseURL, s.base.String()))
	return s.tracer.Start(ctx, name, trace.WithSpanKind(trace.SpanKindClient), trace.WithAttributes(attrs...))
}

// Login posts the sign-in form and confirms the session by loading the
// manage page.
func (s *HTTPSource) Login(ctx context.Context, username, password string) (err error) {
	ctx, span := s.startSpan(ctx, tracing.SpanSourceLogin, attribute.String(tracing.AttrUser, username))
	defer func() { tracing.End(span, err) }()

	form := url.Values{
		"email":    {username},
		"password": {password},
		"action":   {"signin"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url(loginPath), strings.NewReader(form.Encode()))
	if err != nil {
		return networkError("Failed to reach the YBS login page.", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if _, err := s.do(req); err != nil {
		return networkError("Failed to reach the YBS login page.", err)
	}

	page, err := s.get(ctx, managePath)
	if err != nil {
		return networkError("Failed to verify login with the manage page.", err)
	}
	if isLoginPage(page) {
		log.Info(log.CatOrders, "login rejected", "user", username)
		return authError("Login failed. Please verify your username and password.")
	}
	log.Info(log.CatOrders, "logged in", "user", username)
	return nil
}

// FetchOrders loads and parses the manage page.
func (s *HTTPSource) FetchOrders(ctx context.Context) (records []Record, err error) {
	ctx, span := s.startSpan(ctx, tracing.SpanSourceFetch)
	defer func() {
		span.SetAttributes(attribute.Int(tracing.AttrOrderCount, len(records)))
		tracing.End(span, err)
	}()

	page, err := s.get(ctx, managePath)
	if err != nil {
		return nil, networkError("Failed to retrieve the orders page.", err)
	}
	if isLoginPage(page) {
		return nil, authError("Cannot fetch orders without logging in first.")
	}
	records, err = ParseOrders(strings.NewReader(page))
	if err != nil {
		return nil, networkError("Failed to retrieve the orders page.", err)
	}
	log.Debug(log.CatOrders, "fetched orders", "count", len(records))
	return records, nil
}

func (s *HTTPSource) url(path string) string {
	return s.base.String() + path
}

func (s *HTTPSource) get(ctx context.Context, path string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url(path), nil)
	if err != nil {
		return "", err
	}
	return s.do(req)
}

func (s *HTTPSource) do(req *http.Request) (string, error) {
	req.Header.Set("User-Agent", UserAgent)
	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", req.URL.Path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%s %s: status %d", req.Method, req.URL.Path, resp.StatusCode)
	}
	return string(body), nil
}

func isLoginPage(page string) bool {
	lowered := strings.ToLower(page)
	return strings.Contains(lowered, `id="signin"`) || strings.Contains(lowered, `name="signin"`)
}
