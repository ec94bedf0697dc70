package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"golang.org/x/sync/errgroup"

	audithandler "fairlens/internal/audit/handler"
	auditservice "fairlens/internal/audit/service"
	"fairlens/internal/audit/vocabulary"
	"fairlens/internal/platform/config"
	"fairlens/internal/platform/httpserver"
	"fairlens/internal/platform/logger"
	"fairlens/internal/platform/metrics"
	reviewhandler "fairlens/internal/review/handler"
	reviewservice "fairlens/internal/review/service"
	reviewstore "fairlens/internal/review/store"
	httptransport "fairlens/internal/transport/http"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	vocab := vocabulary.Default()
	if cfg.RulesFile != "" {
		loaded, err := vocabulary.LoadFile(cfg.RulesFile)
		if err != nil {
			log.Error("failed to load rules file", "path", cfg.RulesFile, "error", err.Error())
			os.Exit(1)
		}
		vocab = loaded
		log.Info("loaded vocabulary override", "path", cfg.RulesFile, "rules", vocab.Len())
	}

	store := reviewstore.NewInMemory()
	if cfg.Seed {
		if err := reviewstore.Seed(store); err != nil {
			log.Error("failed to seed demo data", "error", err.Error())
			os.Exit(1)
		}
	}

	m := metrics.New()
	reviews := reviewservice.NewService(store, log, m)
	audits := auditservice.NewService(store, vocab, log, m)

	router := httptransport.NewRouter(log,
		reviewhandler.New(reviews, log),
		audithandler.New(audits, log),
	)
	srv := httpserver.New(cfg.Addr, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Info("starting fairlens", "addr", cfg.Addr, "seeded", cfg.Seed)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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
		log.Error("server error", "error", err.Error())
		os.Exit(1)
	}
}
