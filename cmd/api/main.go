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

	pg "pet-adoption-catalog/internal/adapters/storage/postgres"
	"pet-adoption-catalog/internal/platform/config"
	"pet-adoption-catalog/internal/platform/logger"
	"pet-adoption-catalog/internal/router"
)

// @title Pet Store (stand-in)
// @version 1.0
// @description Colección REST de mascotas en adopción usada para desarrollo local del catálogo.
// @BasePath /
func main() {
	if err := config.LoadDotEnv(); err != nil {
		logger.NewFromEnv().Error("load .env", map[string]any{"err": err})
		os.Exit(1)
	}

	cfg, err := config.LoadStore()
	if err != nil {
		logger.NewFromEnv().Error("load config", map[string]any{"err": err})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.Log.App,
	}).With(map[string]any{"component": "store"})

	opts := router.Options{
		Logger:    log,
		RateLimit: cfg.RateLimit,
		RateBurst: cfg.RateBurst,
	}

	var db *sql.DB
	if cfg.DSN != "" {
		db, err = pg.Open(cfg.DSN)
		if err != nil {
			log.Error("open postgres", map[string]any{"err": err})
			os.Exit(1)
		}
		defer db.Close()
		opts.DB = db
	} else {
		// Sin DB: en memoria, con datos de ejemplo.
		opts.Seed = router.DemoPets()
	}

	r, err := router.NewRouter(opts)
	if err != nil {
		log.Error("build router", map[string]any{"err": err})
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("starting server", map[string]any{"addr": srv.Addr, "postgres": db != nil})
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server error", map[string]any{"err": err})
		os.Exit(1)
	}
}
