package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"pet-adoption-catalog/internal/favorites"
	"pet-adoption-catalog/internal/preferences"
	"pet-adoption-catalog/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Sirve las vistas del catálogo",
	Long: `Carga la colección completa una vez y sirve las vistas en CATALOG_ADDR.

Examples:
  # Contra el stand-in local
  CATALOG_API_URL=http://localhost:8080 catalog serve`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Una carga fallida no impide arrancar: la vista muestra el error.
	if err := a.store.Load(ctx); err != nil {
		a.log.Warn("initial load failed", map[string]any{"err": err})
	}

	srv := web.NewServer(web.Options{
		Store:     a.store,
		Favorites: favorites.New(ctx, a.local, a.log),
		Themes:    preferences.NewThemes(a.local, a.cfg.DefaultTheme),
		Logger:    a.log,
		Metrics:   a.metrics,
		PageSize:  a.cfg.PageSize,
		HomeBatch: a.cfg.HomeBatch,
	})

	httpSrv := &http.Server{
		Addr:         a.cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	a.log.Info("starting catalog", map[string]any{"addr": a.cfg.Addr, "api": a.cfg.APIURL})
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
