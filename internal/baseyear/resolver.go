// Package baseyear resolves the active "anobase" (base school year) for a
// user or a school. Both resolutions are total: every failure path ends in a
// computed calendar default, never in an error, because the legacy screens
// downstream cannot render without a year.
package baseyear

import (
	"context"
	"log/slog"
	"time"

	"recadastro/internal/legacydb"
	"recadastro/internal/platform/metrics"
	"recadastro/pkg/requestcontext"
)

const (
	userBaseYearQuery = `SELECT anobase FROM usuarios WHERE codigo = $1`
	userLoginQuery    = `SELECT login FROM usuarios WHERE codigo = $1`

	globalParamQuery = `SELECT COALESCE(par.ano_base, 0) FROM alunos.parametros_sis_digitacao par WHERE par.status = 1`

	// data_movimeto_par is misspelled in the legacy schema; keep it.
	schoolParamQuery = `
		SELECT pi.ano_base
		FROM alunos.parametros_sis_digitacao_ind pi
		WHERE pi.status = 1
		  AND pi.dt_ini_parametro <= CURRENT_DATE
		  AND pi.dt_fim_parametro >= CURRENT_DATE
		  AND pi.cod_escola = $1
		ORDER BY pi.data_movimeto_par
	`
)

// Clock abstracts time.Now for testability of the date-window defaults.
type Clock func() time.Time

// Resolver answers base-year lookups against the legacy schemas.
type Resolver struct {
	exec    legacydb.Executor
	logger  *slog.Logger
	metrics *metrics.Metrics
	clock   Clock
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithClock sets the clock function for testability.
func WithClock(clock Clock) Option {
	return func(r *Resolver) {
		if clock != nil {
			r.clock = clock
		}
	}
}

// WithMetrics attaches resolution counters.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Resolver) {
		r.metrics = m
	}
}

// New constructs a Resolver.
func New(exec legacydb.Executor, logger *slog.Logger, opts ...Option) *Resolver {
	r := &Resolver{
		exec:   exec,
		logger: logger,
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// ResolveForUser returns the stored anobase for the given user code, or the
// user-window calendar default when the code is absent, the lookup fails, or
// the stored value cannot be read as a year.
func (r *Resolver) ResolveForUser(ctx context.Context, codigo *int) int {
	if codigo != nil {
		if year, ok := r.singleInt(ctx, userBaseYearQuery, *codigo); ok {
			r.metrics.ObserveBaseYear("user", "stored")
			return year
		}
	}
	r.metrics.ObserveBaseYear("user", "fallback")
	return FallbackYear(r.now(ctx), UserWindow)
}

// ResolveForSchool runs the three-stage parameter cascade for a school code.
// Each stage is independently fault-tolerant: a failing stage logs and yields
// to the next one instead of aborting the resolution.
func (r *Resolver) ResolveForSchool(ctx context.Context, codEscola *int) int {
	anoBase := 0

	// Stage 1: globally active parameter row.
	if year, ok := r.singleInt(ctx, globalParamQuery); ok {
		anoBase = year
	}

	// Stage 2: school-specific rows valid today, in movement-date order. The
	// last row that coerces wins; unparsable rows are skipped without
	// aborting the scan. The query still runs with a nil school code, as the
	// legacy DAO did.
	var cod any
	if codEscola != nil {
		cod = *codEscola
	}
	rows, err := r.exec.Query(ctx, schoolParamQuery, cod)
	if err != nil {
		r.logger.DebugContext(ctx, "school parameter lookup failed, continuing cascade", "reason", err.Error())
	}
	for _, row := range rows {
		if year, ok := legacydb.CoerceInt(row.Get(0)); ok {
			anoBase = year
		}
	}

	// Stage 3: a remaining zero means unset. A legitimately stored year of 0
	// is indistinguishable from absence; the legacy system conflated the two
	// and we preserve that.
	if anoBase == 0 {
		r.metrics.ObserveBaseYear("school", "fallback")
		return FallbackYear(r.now(ctx), SchoolWindow)
	}
	r.metrics.ObserveBaseYear("school", "parameter")
	return anoBase
}

// FindLoginByCodigo returns the login stored for a user code, or "" when the
// code is absent, unknown, or the lookup fails.
func (r *Resolver) FindLoginByCodigo(ctx context.Context, codigo *int) string {
	if codigo == nil {
		return ""
	}
	rows, err := r.exec.Query(ctx, userLoginQuery, *codigo)
	if err != nil {
		r.logger.DebugContext(ctx, "login lookup failed", "codigo", *codigo, "reason", err.Error())
		return ""
	}
	if len(rows) != 1 {
		return ""
	}
	login, _ := legacydb.CoerceString(rows[0].Get(0))
	return login
}

// now prefers the injected clock, then the request-scoped time, so every
// stage of one request evaluates the windows against the same day.
func (r *Resolver) now(ctx context.Context) time.Time {
	if r.clock != nil {
		return r.clock()
	}
	return requestcontext.Now(ctx)
}

// singleInt runs a lookup that must yield exactly one row and coerces its
// first column. No rows, several rows, an executor failure, and an
// uncoercible value all read as absent.
func (r *Resolver) singleInt(ctx context.Context, query string, args ...any) (int, bool) {
	rows, err := r.exec.Query(ctx, query, args...)
	if err != nil {
		r.logger.DebugContext(ctx, "base-year lookup failed, treating as no value", "reason", err.Error())
		return 0, false
	}
	if len(rows) != 1 {
		return 0, false
	}
	return legacydb.CoerceInt(rows[0].Get(0))
}
