package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"canna-gate/internal/compliance"
	compliancehandler "canna-gate/internal/compliance/handler"
	compliancemetrics "canna-gate/internal/compliance/metrics"
	"canna-gate/internal/platform/config"
	"canna-gate/internal/platform/httpserver"
	"canna-gate/internal/platform/logger"
	platformredis "canna-gate/internal/platform/redis"
	"canna-gate/internal/rules"
	ruleshandler "canna-gate/internal/rules/handler"
	httptransport "canna-gate/internal/transport/http"
	"canna-gate/pkg/platform/audit"
	kafkasink "canna-gate/pkg/platform/audit/publisher/kafka"
	compliancepub "canna-gate/pkg/platform/audit/publishers/compliance"
	auditmemory "canna-gate/pkg/platform/audit/store/memory"
	auditpostgres "canna-gate/pkg/platform/audit/store/postgres"
	auditworker "canna-gate/pkg/platform/audit/worker"
	authmw "canna-gate/pkg/platform/middleware/auth"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in internal packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startupCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	// Rule table source: Postgres beats file beats built-in seed.
	var loader rules.Loader = rules.SeedLoader{}
	switch {
	case cfg.RulesPostgresDSN != "":
		db, err := rules.OpenPostgres(startupCtx, cfg.RulesPostgresDSN)
		if err != nil {
			log.Error("rules postgres unavailable", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		loader = rules.NewPostgresLoader(db)
	case cfg.RulesPath != "":
		loader = rules.FileLoader{Path: cfg.RulesPath}
	}

	if cfg.RedisURL != "" {
		redisClient, err := platformredis.New(startupCtx, cfg.RedisURL)
		if err != nil {
			log.Error("redis unavailable", "error", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		loader = rules.NewCachedLoader(loader, redisClient.Client, cfg.RulesCacheTTL, log)
	}

	provider, err := rules.NewProvider(startupCtx, loader)
	if err != nil {
		log.Error("rule table load failed", "error", err)
		os.Exit(1)
	}
	log.Info("rule table loaded",
		"version", provider.Current().Version(),
		"jurisdictions", provider.Current().Len(),
	)

	// Audit store: outbox-backed when Postgres is configured.
	var auditStore audit.Store = auditmemory.NewInMemoryStore()
	if cfg.AuditPostgresDSN != "" {
		db, err := auditpostgres.Open(startupCtx, cfg.AuditPostgresDSN)
		if err != nil {
			log.Error("audit postgres unavailable", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		auditStore = auditpostgres.New(db)
	}

	var sink audit.Sink
	if len(cfg.KafkaBrokers) > 0 {
		kafka, err := kafkasink.New(startupCtx, cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			log.Error("kafka sink unavailable", "error", err)
			os.Exit(1)
		}
		defer kafka.Close()
		sink = kafka
	}

	auditor := compliancepub.New(auditStore,
		compliancepub.WithLogger(log),
		compliancepub.WithMetrics(compliancepub.NewMetrics()),
	)

	service, err := compliance.NewService(provider, auditor, log, compliancemetrics.New())
	if err != nil {
		log.Error("compliance service wiring failed", "error", err)
		os.Exit(1)
	}

	opsInbox := make(chan audit.Event, 256)
	worker := auditworker.New(auditStore, sink, opsInbox, log)

	validator := authmw.NewHMACValidator(cfg.AdminJWTKey)
	router := httptransport.NewRouter(
		compliancehandler.New(service, log),
		ruleshandler.New(provider, opsInbox, log),
		validator,
		opsInbox,
		log,
	)

	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("starting canna-gate", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		if err := worker.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}
