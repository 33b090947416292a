package orders

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/printcal/internal/cachemanager"
	"github.com/zjrosen/printcal/internal/calendar"
	"github.com/zjrosen/printcal/internal/log"
	"github.com/zjrosen/printcal/internal/tracing"
)

// DefaultCredentialTTL is how long a successful login is remembered for
// silent re-authentication.
const DefaultCredentialTTL = 30 * time.Minute

const credentialsKey = "credentials"

// Credentials are the username and password of the last successful login.
type Credentials struct {
	Username string
	Password string
}

// SnapshotStore keeps the last fetched order list between runs.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, records []Record, fetchedAt time.Time) error
	LoadSnapshot(ctx context.Context) ([]Record, time.Time, error)
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithCredentialCache remembers successful logins in cache for ttl.
func WithCredentialCache(cache cachemanager.CacheManager[string, Credentials], ttl time.Duration) ServiceOption {
	return func(s *Service) {
		s.creds = cache
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithSnapshots saves every fetched list to store.
func WithSnapshots(store SnapshotStore) ServiceOption {
	return func(s *Service) {
		s.snapshots = store
	}
}

// WithClock sets the clock used for fetch timestamps.
func WithClock(c calendar.Clock) ServiceOption {
	return func(s *Service) {
		s.clock = c
	}
}

// WithTracer records spans for login, refresh and the worker operations.
func WithTracer(t trace.Tracer) ServiceOption {
	return func(s *Service) {
		if t != nil {
			s.tracer = t
		}
	}
}

// Service wraps a Source with credential reuse and snapshots. Calls are
// serialized so one session is never driven from two goroutines.
type Service struct {
	source    Source
	creds     cachemanager.CacheManager[string, Credentials]
	ttl       time.Duration
	snapshots SnapshotStore
	clock     calendar.Clock
	tracer    trace.Tracer

	mu sync.Mutex
}

// NewService creates a Service over source.
func NewService(source Source, opts ...ServiceOption) *Service {
	s := &Service{
		source: source,
		ttl:    DefaultCredentialTTL,
		clock:  calendar.RealClock{},
		tracer: noop.NewTracerProvider().Tracer(tracing.DefaultServiceName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login signs in and fetches the order list.
func (s *Service) Login(ctx context.Context, username, password string) (records []Record, err error) {
	ctx, span := s.tracer.Start(ctx, tracing.SpanServiceLogin,
		trace.WithAttributes(attribute.String(tracing.AttrUser, username)))
	defer func() {
		span.SetAttributes(attribute.Int(tracing.AttrOrderCount, len(records)))
		tracing.End(span, err)
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.source.Login(ctx, username, password); err != nil {
		s.forget(ctx)
		return nil, err
	}
	if s.creds != nil {
		s.creds.Set(ctx, credentialsKey, Credentials{Username: username, Password: password}, s.ttl)
	}
	return s.fetch(ctx)
}

// Refresh fetches the order list again. When the session has expired and a
// login is still remembered, it signs in once more and retries.
func (s *Service) Refresh(ctx context.Context) (records []Record, err error) {
	ctx, span := s.tracer.Start(ctx, tracing.SpanServiceRefresh)
	defer func() {
		span.SetAttributes(attribute.Int(tracing.AttrOrderCount, len(records)))
		tracing.End(span, err)
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err = s.fetch(ctx)
	if err == nil || !errors.Is(err, ErrAuthentication) || s.creds == nil {
		return records, err
	}

	c, ok := s.creds.GetWithRefresh(ctx, credentialsKey, s.ttl)
	if !ok {
		return nil, err
	}
	log.Info(log.CatOrders, "session expired, signing in again", "user", c.Username)
	span.SetAttributes(attribute.Bool(tracing.AttrRelogin, true), attribute.String(tracing.AttrUser, c.Username))
	if lerr := s.source.Login(ctx, c.Username, c.Password); lerr != nil {
		s.forget(ctx)
		return nil, lerr
	}
	return s.fetch(ctx)
}

// Snapshot returns the last saved order list. ok is false when there is
// none.
func (s *Service) Snapshot(ctx context.Context) ([]Record, time.Time, bool) {
	if s.snapshots == nil {
		return nil, time.Time{}, false
	}
	records, at, err := s.snapshots.LoadSnapshot(ctx)
	if err != nil {
		log.ErrorErr(log.CatOrders, "loading order snapshot failed", err)
		return nil, time.Time{}, false
	}
	if at.IsZero() {
		return nil, time.Time{}, false
	}
	return records, at, true
}

func (s *Service) fetch(ctx context.Context) ([]Record, error) {
	records, err := s.source.FetchOrders(ctx)
	if err != nil {
		return nil, err
	}
	if s.snapshots != nil {
		if serr := s.snapshots.SaveSnapshot(ctx, records, s.clock.Now()); serr != nil {
			log.ErrorErr(log.CatOrders, "saving order snapshot failed", serr)
		}
	}
	return records, nil
}

func (s *Service) forget(ctx context.Context) {
	if s.creds != nil {
		_ = s.creds.Delete(ctx, credentialsKey)
	}
}
