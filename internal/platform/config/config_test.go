package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv_Defaults(t *testing.T) {
	cfg := FromEnv()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "postgres", cfg.CanonicalDB.Driver)
	assert.Equal(t, ResolutionCacheTTL, cfg.CacheTTL)
	assert.Equal(t, "recadastro.resolutions", cfg.AuditTopic)
	assert.Empty(t, cfg.KafkaBrokers)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("RECAD_ADDR", ":9090")
	t.Setenv("RECAD_DB_DSN", "postgres://canonical/recad")
	t.Setenv("RECAD_LEGACY_DB_DSN", "postgres://legacy/alunos")
	t.Setenv("RECAD_LEGACY_DB_DRIVER", "pgx")
	t.Setenv("RECAD_CACHE_TTL", "90s")
	t.Setenv("RECAD_KAFKA_BROKERS", "broker-a:9092, broker-b:9092,")

	cfg := FromEnv()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "postgres://legacy/alunos", cfg.LegacyDB.DSN)
	assert.Equal(t, "pgx", cfg.LegacyDB.Driver)
	assert.Equal(t, 90*time.Second, cfg.CacheTTL)
	assert.Equal(t, []string{"broker-a:9092", "broker-b:9092"}, cfg.KafkaBrokers)
}

func TestFromEnv_LegacyFallsBackToCanonical(t *testing.T) {
	t.Setenv("RECAD_DB_DSN", "postgres://canonical/recad")
	t.Setenv("RECAD_LEGACY_DB_DSN", "")

	cfg := FromEnv()

	assert.Equal(t, cfg.CanonicalDB, cfg.LegacyDB)
}
