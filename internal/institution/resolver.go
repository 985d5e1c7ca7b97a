// Package institution resolves which institutions a login may see. The
// canonical instituicoes table answers when it can; an empty or failing
// primary lookup falls back, wholesale, to the legacy alunos.alu_mec_tacom
// student/title table. The resolution is total: the worst observable outcome
// is an empty list.
package institution

import (
	"context"
	"log/slog"

	"recadastro/internal/legacydb"
	"recadastro/internal/platform/metrics"
)

// Institution is one row of the resolved list. Every field may be absent;
// legacy data is sparse and a sparse record still beats no record, so rows
// are never filtered out for missing fields.
type Institution struct {
	ID        *int64  `json:"id"`
	Nome      *string `json:"nome"`
	Estado    *string `json:"estado"`
	Municipio *string `json:"municipio"`
}

// stateLevelLogin is the literal the legacy system used to mark the
// state-secretariat login; it selects the seven-digit security codes.
const stateLevelLogin = "9999"

const primaryQuery = `SELECT id, nome, estado, municipio FROM instituicoes WHERE usuario_login = $1`

const (
	legacyQueryState = `
		SELECT codigosec, nome, bairro FROM alunos.alu_mec_tacom
		WHERE length(codigosec) = 7
		  AND cod_titular IS NOT NULL
		  AND ano_base_exclusao IS NULL
		ORDER BY codigosec ASC
	`
	legacyQueryMunicipal = `
		SELECT codigosec, nome, bairro FROM alunos.alu_mec_tacom
		WHERE length(codigosec) < 7
		  AND cod_titular IS NOT NULL
		  AND ano_base_exclusao IS NULL
		ORDER BY codigosec ASC
	`
)

// Resolver answers institution lookups.
type Resolver struct {
	exec    legacydb.Executor
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithMetrics attaches resolution counters.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Resolver) {
		r.metrics = m
	}
}

// New constructs a Resolver.
func New(exec legacydb.Executor, logger *slog.Logger, opts ...Option) *Resolver {
	r := &Resolver{exec: exec, logger: logger}
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

// Resolve returns the institutions visible to a login. A nil login yields an
// empty list without touching the database. A non-empty primary result is
// returned as-is; the legacy stage is a total substitute for an empty or
// failed primary stage, never a union with it.
func (r *Resolver) Resolve(ctx context.Context, login *string) []Institution {
	if login == nil {
		r.metrics.ObserveInstitutions("skipped")
		return []Institution{}
	}

	if primary, ok := r.resolvePrimary(ctx, *login); ok {
		r.metrics.ObserveInstitutions("primary")
		return primary
	}

	if legacy, ok := r.resolveLegacy(ctx, *login); ok {
		r.metrics.ObserveInstitutions("legacy")
		return legacy
	}

	r.metrics.ObserveInstitutions("none")
	return []Institution{}
}

// resolvePrimary queries the canonical table. ok reports whether the stage
// produced at least one row; failures read as zero rows.
func (r *Resolver) resolvePrimary(ctx context.Context, login string) ([]Institution, bool) {
	rows, err := r.exec.Query(ctx, primaryQuery, login)
	if err != nil {
		r.logger.DebugContext(ctx, "primary institution lookup failed, trying legacy table",
			"login", login, "reason", err.Error())
		return nil, false
	}
	if len(rows) == 0 {
		return nil, false
	}

	out := make([]Institution, 0, len(rows))
	for _, row := range rows {
		inst := Institution{
			Nome:      stringCol(row, 1),
			Estado:    stringCol(row, 2),
			Municipio: stringCol(row, 3),
		}
		// An uncoercible id leaves the field nil; the row itself stays.
		if id, ok := legacydb.CoerceLong(row.Get(0)); ok {
			inst.ID = &id
		}
		out = append(out, inst)
	}
	return out, true
}

// resolveLegacy queries alunos.alu_mec_tacom. The "9999" login selects the
// state-level filter (security code of exactly seven digits); every other
// login gets the municipal filter. The legacy table has no state column, so
// Estado is always absent and bairro maps onto Municipio.
func (r *Resolver) resolveLegacy(ctx context.Context, login string) ([]Institution, bool) {
	query := legacyQueryMunicipal
	if login == stateLevelLogin {
		query = legacyQueryState
	}

	rows, err := r.exec.Query(ctx, query)
	if err != nil {
		r.logger.DebugContext(ctx, "legacy institution lookup failed, returning empty list",
			"login", login, "reason", err.Error())
		return nil, false
	}
	if len(rows) == 0 {
		return nil, false
	}

	out := make([]Institution, 0, len(rows))
	for _, row := range rows {
		inst := Institution{
			Nome:      stringCol(row, 1),
			Municipio: stringCol(row, 2),
		}
		if id, ok := legacydb.CoerceLong(row.Get(0)); ok {
			inst.ID = &id
		}
		out = append(out, inst)
	}
	return out, true
}

func stringCol(row legacydb.Row, i int) *string {
	if s, ok := legacydb.CoerceString(row.Get(i)); ok {
		return &s
	}
	return nil
}
