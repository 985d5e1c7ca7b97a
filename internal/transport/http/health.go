package httptransport

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"recadastro/internal/platform/redis"
)

const healthCheckTimeout = 2 * time.Second

// HealthChecker pings the server's backing stores. Any nil dependency is
// reported as skipped rather than failing the check.
type HealthChecker struct {
	canonical *sql.DB
	legacy    *sql.DB
	cache     *redis.Client
}

func NewHealthChecker(canonical, legacy *sql.DB, cache *redis.Client) *HealthChecker {
	return &HealthChecker{canonical: canonical, legacy: legacy, cache: cache}
}

func (h *HealthChecker) handle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	checks := map[string]string{
		"canonical_db": checkDB(ctx, h.canonical),
		"legacy_db":    checkDB(ctx, h.legacy),
		"redis":        checkRedis(ctx, h.cache),
	}

	status := http.StatusOK
	for _, result := range checks {
		if result != "ok" && result != "skipped" {
			status = http.StatusServiceUnavailable
			break
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(checks)
}

func checkDB(ctx context.Context, db *sql.DB) string {
	if db == nil {
		return "skipped"
	}
	if err := db.PingContext(ctx); err != nil {
		return err.Error()
	}
	return "ok"
}

func checkRedis(ctx context.Context, cache *redis.Client) string {
	if cache == nil {
		return "skipped"
	}
	if err := cache.Health(ctx); err != nil {
		return err.Error()
	}
	return "ok"
}
