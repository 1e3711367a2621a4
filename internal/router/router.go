// Package router arma el stand-in del store remoto de mascotas.
package router

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	mem "pet-adoption-catalog/internal/adapters/storage/memory"
	pg "pet-adoption-catalog/internal/adapters/storage/postgres"
	_ "pet-adoption-catalog/internal/docs"
	"pet-adoption-catalog/internal/domain/pets"
	"pet-adoption-catalog/internal/middleware"
	"pet-adoption-catalog/internal/platform/logger"
)

type Options struct {
	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	Logger logger.Logger

	// Token bucket de GET /pets/{id}. RateLimit <= 0 lo desactiva.
	RateLimit float64
	RateBurst int

	// Seed se inserta al arrancar (útil en dev y tests).
	Seed []pets.Pet
}

func NewRouter(opts Options) (http.Handler, error) {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(log))
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	var petRepo pets.Repository
	if opts.DB != nil {
		petRepo = pg.NewPetsRepo(opts.DB)
	} else {
		petRepo = mem.NewPetRepo()
	}

	petsSvc := pets.NewService(petRepo)
	if err := seed(petsSvc, opts.Seed); err != nil {
		return nil, err
	}

	pets.RegisterRoutes(r, petsSvc, middleware.RateLimit(opts.RateLimit, opts.RateBurst))

	return r, nil
}
