package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Log agrupa las variables del logger (ver platform/logger).
type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"text"`
	App    string `env:"APP_NAME" envDefault:"pet-adoption-catalog"`
}

// Catalog es la config del proceso cliente (vistas + CLI).
type Catalog struct {
	APIURL     string        `env:"CATALOG_API_URL" envDefault:"http://localhost:8080"`
	APITimeout time.Duration `env:"CATALOG_API_TIMEOUT" envDefault:"10s"`

	// Archivo SQLite con favoritos y tema. Vacío => memoria (se pierde al salir).
	LocalDB string `env:"CATALOG_LOCAL_DB" envDefault:"catalog-local.db"`

	Addr         string `env:"CATALOG_ADDR" envDefault:":3000"`
	PageSize     int    `env:"CATALOG_PAGE_SIZE" envDefault:"8"`
	HomeBatch    int    `env:"CATALOG_HOME_BATCH" envDefault:"6"`
	DefaultTheme string `env:"CATALOG_DEFAULT_THEME" envDefault:"light"`

	Log Log
}

// Store es la config del stand-in del API remoto (cmd/api).
type Store struct {
	Port string `env:"PORT" envDefault:"8080"`

	// DB_DSN vacío => repositorio en memoria.
	DSN string `env:"DB_DSN"`

	// Requests por segundo permitidos en GET /pets/{id}. 0 desactiva el límite.
	RateLimit float64 `env:"STORE_RATE_LIMIT" envDefault:"5"`
	RateBurst int     `env:"STORE_RATE_BURST" envDefault:"10"`

	Log Log
}

// LoadDotEnv carga .env si existe. Un archivo ausente no es error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	present := make([]string, 0, len(files))
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		}
	}
	if len(present) == 0 {
		return nil
	}
	if err := godotenv.Load(present...); err != nil {
		return fmt.Errorf("load dotenv: %w", err)
	}
	return nil
}

// ParseEnv carga configuración desde variables de entorno.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func LoadCatalog() (Catalog, error) {
	var c Catalog
	if err := ParseEnv(&c); err != nil {
		return Catalog{}, err
	}
	return c, c.Validate()
}

func LoadStore() (Store, error) {
	var s Store
	if err := ParseEnv(&s); err != nil {
		return Store{}, err
	}
	return s, nil
}

func (c Catalog) Validate() error {
	if strings.TrimSpace(c.APIURL) == "" {
		return errors.New("CATALOG_API_URL is required")
	}
	if c.PageSize <= 0 {
		return errors.New("CATALOG_PAGE_SIZE must be > 0")
	}
	if c.HomeBatch <= 0 {
		return errors.New("CATALOG_HOME_BATCH must be > 0")
	}
	switch c.DefaultTheme {
	case "dark", "light":
	default:
		return fmt.Errorf("CATALOG_DEFAULT_THEME must be dark or light, got %q", c.DefaultTheme)
	}
	return nil
}
