package config

import (
	"os"
	"strings"
	"time"
)

// DB holds the settings for one database/sql connection. Driver must match a
// driver registered by cmd/server ("postgres" for lib/pq, "pgx" for the pgx
// stdlib adapter).
type DB struct {
	Driver string
	DSN    string
}

// Config captures everything the server needs from its environment. The legacy
// database is a separate connection because the alunos.* schema usually lives
// on a different instance than the canonical recadastramento tables.
type Config struct {
	Addr string

	CanonicalDB DB
	LegacyDB    DB

	RedisURL string
	CacheTTL time.Duration

	KafkaBrokers []string
	AuditTopic   string

	JWTSigningKey string
}

// ResolutionCacheTTL bounds how long a combined resolution may be served from
// cache; base-year parameters change at most daily.
var ResolutionCacheTTL = 5 * time.Minute

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() Config {
	cfg := Config{
		Addr: envOr("RECAD_ADDR", ":8080"),
		CanonicalDB: DB{
			Driver: envOr("RECAD_DB_DRIVER", "postgres"),
			DSN:    os.Getenv("RECAD_DB_DSN"),
		},
		LegacyDB: DB{
			Driver: envOr("RECAD_LEGACY_DB_DRIVER", "pgx"),
			DSN:    os.Getenv("RECAD_LEGACY_DB_DSN"),
		},
		RedisURL:      os.Getenv("RECAD_REDIS_URL"),
		CacheTTL:      ResolutionCacheTTL,
		AuditTopic:    envOr("RECAD_AUDIT_TOPIC", "recadastro.resolutions"),
		JWTSigningKey: os.Getenv("RECAD_JWT_SIGNING_KEY"),
	}

	if ttl := os.Getenv("RECAD_CACHE_TTL"); ttl != "" {
		if d, err := time.ParseDuration(ttl); err == nil && d > 0 {
			cfg.CacheTTL = d
		}
	}

	if brokers := os.Getenv("RECAD_KAFKA_BROKERS"); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}

	// The legacy schema may not have its own connection during early migration
	// stages; fall back to the canonical connection rather than failing.
	if cfg.LegacyDB.DSN == "" {
		cfg.LegacyDB = cfg.CanonicalDB
	}

	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
