// Package recad composes the institution and base-year resolvers into the
// combined answer the legacy session contract expects: one login/user pair in,
// one institution list plus one base year out.
package recad

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"recadastro/internal/institution"
	"recadastro/internal/platform/metrics"
	"recadastro/pkg/platform/audit"
	"recadastro/pkg/requestcontext"
)

// InstitutionResolver is the slice of the institution package this service
// consumes.
type InstitutionResolver interface {
	Resolve(ctx context.Context, login *string) []institution.Institution
}

// BaseYearResolver is the slice of the baseyear package this service consumes.
type BaseYearResolver interface {
	ResolveForUser(ctx context.Context, codigo *int) int
	ResolveForSchool(ctx context.Context, codEscola *int) int
}

// CombinedResolution is the aggregate produced for one login/user pair. The
// institution list may be empty but is never nil; the base year is always a
// real calendar year.
type CombinedResolution struct {
	Instituicoes []institution.Institution `json:"instituicoes"`
	AnoBase      int                       `json:"anobase"`
}

// Service is the resolution facade.
type Service struct {
	institutions InstitutionResolver
	years        BaseYearResolver
	cache        *Cache
	audit        audit.Publisher
	metrics      *metrics.Metrics
	logger       *slog.Logger
	clock        func() time.Time
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

func WithCache(cache *Cache) ServiceOption {
	return func(s *Service) { s.cache = cache }
}

func WithAudit(publisher audit.Publisher) ServiceOption {
	return func(s *Service) { s.audit = publisher }
}

func WithMetrics(m *metrics.Metrics) ServiceOption {
	return func(s *Service) { s.metrics = m }
}

func WithClock(clock func() time.Time) ServiceOption {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// NewService constructs the facade.
func NewService(institutions InstitutionResolver, years BaseYearResolver, logger *slog.Logger, opts ...ServiceOption) *Service {
	s := &Service{
		institutions: institutions,
		years:        years,
		logger:       logger,
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Resolve answers the combined session contract. The two resolutions share no
// state and run concurrently; both are total, so the group never errors.
func (s *Service) Resolve(ctx context.Context, login *string, userCode *int) CombinedResolution {
	key := cacheKey(login, userCode)
	if cached, ok := s.cache.Get(ctx, key); ok {
		s.metrics.ObserveCache(true)
		s.emit(ctx, *cached, login, userCode, true)
		return *cached
	}
	if s.cache != nil {
		s.metrics.ObserveCache(false)
	}

	var res CombinedResolution
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res.Instituicoes = s.institutions.Resolve(gctx, login)
		return nil
	})
	g.Go(func() error {
		res.AnoBase = s.userYear(gctx, userCode)
		return nil
	})
	_ = g.Wait()

	if res.Instituicoes == nil {
		res.Instituicoes = []institution.Institution{}
	}

	s.cache.Set(ctx, key, res)
	s.emit(ctx, res, login, userCode, false)
	return res
}

// SchoolYear resolves the base year for a school code, with the same absolute
// safety net as the user path.
func (s *Service) SchoolYear(ctx context.Context, codEscola *int) (year int) {
	defer s.recoverYear(ctx, &year)
	return s.years.ResolveForSchool(ctx, codEscola)
}

// userYear delegates to the resolver, which already guarantees a year. The
// recover is a second, outer net: should the resolver itself become
// unreachable, the current calendar year is the answer of last resort.
func (s *Service) userYear(ctx context.Context, userCode *int) (year int) {
	defer s.recoverYear(ctx, &year)
	return s.years.ResolveForUser(ctx, userCode)
}

func (s *Service) recoverYear(ctx context.Context, year *int) {
	if rec := recover(); rec != nil {
		s.logger.ErrorContext(ctx, "base-year resolution panicked, using current year",
			"panic", fmt.Sprint(rec))
		*year = s.now(ctx).Year()
	}
}

// now prefers the injected clock, then the request-scoped time.
func (s *Service) now(ctx context.Context) time.Time {
	if s.clock != nil {
		return s.clock()
	}
	return requestcontext.Now(ctx)
}

func (s *Service) emit(ctx context.Context, res CombinedResolution, login *string, userCode *int, cacheHit bool) {
	if s.audit == nil {
		return
	}
	event := audit.Event{
		ID:               uuid.NewString(),
		Timestamp:        s.now(ctx),
		RequestID:        requestcontext.RequestID(ctx),
		UserCode:         userCode,
		AnoBase:          res.AnoBase,
		InstitutionCount: len(res.Instituicoes),
		CacheHit:         cacheHit,
	}
	if login != nil {
		event.Login = *login
	}
	s.audit.Emit(ctx, event)
}
