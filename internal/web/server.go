// Package web expone las vistas del catálogo como JSON: cada ruta devuelve
// el view model que la pantalla correspondiente renderiza.
package web

import (
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"pet-adoption-catalog/internal/catalog"
	"pet-adoption-catalog/internal/favorites"
	"pet-adoption-catalog/internal/listing"
	"pet-adoption-catalog/internal/middleware"
	"pet-adoption-catalog/internal/platform/logger"
	"pet-adoption-catalog/internal/platform/metrics"
	"pet-adoption-catalog/internal/preferences"
)

type Options struct {
	Store     *catalog.Store
	Favorites *favorites.Registry
	Themes    *preferences.Themes

	Logger  logger.Logger
	Metrics *metrics.Metrics // opcional: sin esto no se monta /metrics

	PageSize  int
	HomeBatch int
}

// Server guarda el único estado de vista que vive del lado servidor:
// la multi-selección del listado de gestión (un usuario activo).
type Server struct {
	store   *catalog.Store
	favs    *favorites.Registry
	themes  *preferences.Themes
	log     logger.Logger
	metrics *metrics.Metrics

	pageSize  int
	homeBatch int

	mu        sync.Mutex
	selection *listing.Selection
}

func NewServer(opts Options) *Server {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = listing.DefaultPageSize
	}
	batch := opts.HomeBatch
	if batch <= 0 {
		batch = listing.DefaultBatch
	}
	return &Server{
		store:     opts.Store,
		favs:      opts.Favorites,
		themes:    opts.Themes,
		log:       log.With(map[string]any{"component": "web"}),
		metrics:   opts.Metrics,
		pageSize:  pageSize,
		homeBatch: batch,
		selection: listing.NewSelection(),
	}
}

// Routes arma el router con todas las vistas.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(s.log))
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics.Handler())
	}

	r.Get("/", homeHandler(s))
	r.Post("/reload", reloadHandler(s))
	r.Delete("/error", dismissErrorHandler(s))

	r.Route("/favoritos", func(fr chi.Router) {
		fr.Get("/", favoritesHandler(s))
		fr.Delete("/", clearFavoritesHandler(s))
		fr.Post("/{petID}/toggle", toggleFavoriteHandler(s))
	})

	r.Route("/items", func(ir chi.Router) {
		ir.Get("/", listHandler(s))
		ir.Post("/", createHandler(s))
		ir.Get("/create", createFormHandler(s))
		ir.Post("/validate", validateHandler())
		ir.Post("/selection", selectionHandler(s))
		ir.Post("/delete-selected", deleteSelectedHandler(s))

		ir.Get("/{petID}", detailHandler(s))
		ir.Get("/{petID}/edit", editFormHandler(s))
		ir.Put("/{petID}", updateHandler(s))
		ir.Delete("/{petID}", deleteHandler(s))
	})

	r.Get("/theme", themeHandler(s))
	r.Post("/theme/toggle", toggleThemeHandler(s))

	r.NotFound(notFoundHandler())

	return r
}
