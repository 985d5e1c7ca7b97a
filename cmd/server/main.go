package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"

	"recadastro/internal/arquivo"
	"recadastro/internal/baseyear"
	"recadastro/internal/institution"
	"recadastro/internal/legacydb"
	"recadastro/internal/messages"
	"recadastro/internal/platform/config"
	"recadastro/internal/platform/httpserver"
	"recadastro/internal/platform/logger"
	"recadastro/internal/platform/metrics"
	"recadastro/internal/platform/redis"
	"recadastro/internal/recad"
	"recadastro/internal/sessiontoken"
	httptransport "recadastro/internal/transport/http"
	"recadastro/pkg/platform/audit"
)

// main wires dependencies and owns the server lifecycle. Business logic lives
// in the internal packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	canonicalDB, err := openDB(cfg.CanonicalDB)
	if err != nil {
		log.Error("opening canonical database failed", "error", err)
		os.Exit(1)
	}
	defer canonicalDB.Close()

	legacyDB := canonicalDB
	if cfg.LegacyDB != cfg.CanonicalDB {
		legacyDB, err = openDB(cfg.LegacyDB)
		if err != nil {
			log.Error("opening legacy database failed", "error", err)
			os.Exit(1)
		}
		defer legacyDB.Close()
	}

	cache, err := redis.New(cfg.RedisURL)
	if err != nil {
		log.Error("connecting to redis failed", "error", err)
		os.Exit(1)
	}
	if cache != nil {
		defer cache.Close()
	}

	var publisher audit.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		kafka, err := audit.NewKafkaPublisher(cfg.KafkaBrokers, cfg.AuditTopic, log)
		if err != nil {
			log.Error("connecting to kafka failed", "error", err)
			os.Exit(1)
		}
		defer kafka.Close()
		publisher = kafka
	}

	m := metrics.New()
	exec := legacydb.NewSQLExecutor(legacyDB)

	years := baseyear.New(exec, log, baseyear.WithMetrics(m))
	institutions := institution.New(exec, log, institution.WithMetrics(m))

	serviceOpts := []recad.ServiceOption{recad.WithMetrics(m)}
	if cache != nil {
		serviceOpts = append(serviceOpts, recad.WithCache(recad.NewCache(cache, cfg.CacheTTL, log)))
	}
	if publisher != nil {
		serviceOpts = append(serviceOpts, recad.WithAudit(publisher))
	}
	resolution := recad.NewService(institutions, years, log, serviceOpts...)

	arquivos := arquivo.NewService(arquivo.NewPostgresStore(canonicalDB), log)

	deps := httptransport.Deps{
		Logger:   log,
		Metrics:  m,
		Recad:    recad.NewHandler(resolution, log),
		Arquivo:  arquivo.NewHandler(arquivos, log),
		Messages: messages.NewHandler(messages.NewBundle()),
		Health:   httptransport.NewHealthChecker(canonicalDB, legacyDB, cache),
	}
	if cfg.JWTSigningKey != "" {
		deps.SessionParser = sessiontoken.New(cfg.JWTSigningKey)
	}

	srv := httpserver.New(cfg.Addr, httptransport.NewRouter(deps))

	log.Info("starting recadastro server", "addr", cfg.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

func openDB(cfg config.DB) (*sql.DB, error) {
	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(25)
	db.SetConnMaxIdleTime(5 * time.Minute)
	return db, nil
}
