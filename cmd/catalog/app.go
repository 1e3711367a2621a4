package main

import (
	"fmt"

	"pet-adoption-catalog/internal/adapters/petsapi"
	"pet-adoption-catalog/internal/adapters/storage/sqlite"
	"pet-adoption-catalog/internal/catalog"
	"pet-adoption-catalog/internal/platform/config"
	"pet-adoption-catalog/internal/platform/httpclient"
	"pet-adoption-catalog/internal/platform/logger"
	"pet-adoption-catalog/internal/platform/metrics"
)

// app agrupa las dependencias compartidas por los comandos.
type app struct {
	cfg     config.Catalog
	log     logger.Logger
	metrics *metrics.Metrics
	store   *catalog.Store
	local   *sqlite.KV
}

func newApp() (*app, error) {
	if err := config.LoadDotEnv(envFile); err != nil {
		return nil, err
	}
	cfg, err := config.LoadCatalog()
	if err != nil {
		return nil, err
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.Log.App,
	})

	hc, err := httpclient.New(cfg.APIURL, cfg.APITimeout)
	if err != nil {
		return nil, fmt.Errorf("remote api: %w", err)
	}

	local, err := sqlite.Open(cfg.LocalDB)
	if err != nil {
		return nil, fmt.Errorf("local storage: %w", err)
	}

	m := metrics.New()
	return &app{
		cfg:     cfg,
		log:     log,
		metrics: m,
		store:   catalog.New(petsapi.NewClient(hc), catalog.Options{Logger: log, Metrics: m}),
		local:   local,
	}, nil
}

func (a *app) Close() error {
	return a.local.Close()
}
