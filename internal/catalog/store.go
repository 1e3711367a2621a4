// Package catalog es el record store del cliente: media todas las lecturas y
// escrituras contra el store remoto y mantiene la copia en memoria sobre la
// que trabajan las vistas.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"pet-adoption-catalog/internal/domain/pets"
	"pet-adoption-catalog/internal/platform/logger"
	"pet-adoption-catalog/internal/platform/metrics"
	"pet-adoption-catalog/internal/ports/petstore"
)

var (
	ErrNotFound    = petstore.ErrNotFound
	ErrRateLimited = petstore.ErrRateLimited
	// ErrUnavailable envuelve cualquier otra falla de red/transporte.
	ErrUnavailable = errors.New("pet store unavailable")
	ErrInvalidID   = errors.New("pet id required")
)

// Mensajes para el usuario.
const (
	MsgRateLimited = "Demasiadas peticiones a la API. Espera unos minutos e intenta de nuevo."
	MsgNotFound    = "Mascota no encontrada."
	MsgUnavailable = "No se pudo completar la operación. Intenta más tarde."
)

// UserMessage traduce un error del store al texto que ve el usuario.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrRateLimited):
		return MsgRateLimited
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrInvalidID):
		return MsgNotFound
	default:
		return MsgUnavailable
	}
}

type Options struct {
	Logger  logger.Logger
	Metrics *metrics.Metrics
}

// Store mantiene la caché de registros, el flag busy y el slot de error
// compartido. Cada operación además devuelve su propio error.
type Store struct {
	remote  petstore.Remote
	log     logger.Logger
	metrics *metrics.Metrics

	mu       sync.RWMutex
	pets     []pets.Pet
	lastErr  error
	inflight int
}

func New(remote petstore.Remote, opts Options) *Store {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &Store{
		remote:  remote,
		log:     log.With(map[string]any{"component": "catalog"}),
		metrics: opts.Metrics,
	}
}

// Pets devuelve una copia de la caché en el orden del servidor.
func (s *Store) Pets() []pets.Pet {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]pets.Pet, len(s.pets))
	copy(out, s.pets)
	return out
}

// Find busca solo en la caché.
func (s *Store) Find(id string) (pets.Pet, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.pets {
		if p.ID == id {
			return p, true
		}
	}
	return pets.Pet{}, false
}

// Busy es true mientras haya alguna request pendiente. No dice cuál.
func (s *Store) Busy() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inflight > 0
}

// Err devuelve el último error registrado en el slot compartido.
func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// ClearErr descarta el error registrado (el usuario cerró el aviso).
func (s *Store) ClearErr() {
	s.mu.Lock()
	s.lastErr = nil
	s.mu.Unlock()
}

// Load trae la colección completa y reemplaza la caché.
// Si falla, registra el error y deja la caché anterior intacta.
func (s *Store) Load(ctx context.Context) error {
	done := s.begin("list")
	items, err := s.remote.List(ctx)
	done(err)
	if err != nil {
		return s.fail("list", err)
	}

	s.mu.Lock()
	s.pets = append(make([]pets.Pet, 0, len(items)), items...)
	s.lastErr = nil
	n := len(s.pets)
	s.mu.Unlock()

	s.metrics.SetCached(n)
	s.log.Debug("catalog loaded", map[string]any{"count": n})
	return nil
}

// Get devuelve el registro cacheado o, si no está, lo pide al remoto.
// El resultado del fallback no se agrega a la caché compartida.
func (s *Store) Get(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, ErrInvalidID
	}
	if p, ok := s.Find(id); ok {
		return p, nil
	}

	done := s.begin("get")
	p, err := s.remote.Get(ctx, id)
	done(err)
	if err != nil {
		return pets.Pet{}, s.fail("get", err)
	}
	return p, nil
}

// Create calcula la clasificación, envía el registro y antepone la
// respuesta del servidor a la caché.
func (s *Store) Create(ctx context.Context, p pets.Pet) (pets.Pet, error) {
	p.ID = ""
	p.Classification = pets.Classify(p.Age)

	// Una vez emitida, la escritura no se cancela: si el llamador se va,
	// la caché igual tiene que reflejar lo que quedó en el servidor.
	wctx := context.WithoutCancel(ctx)

	done := s.begin("create")
	created, err := s.remote.Create(wctx, p)
	done(err)
	if err != nil {
		return pets.Pet{}, s.fail("create", err)
	}
	created = authoritative(created)

	s.mu.Lock()
	s.pets = append([]pets.Pet{created}, s.pets...)
	n := len(s.pets)
	s.mu.Unlock()

	s.metrics.SetCached(n)
	s.log.Info("pet created", map[string]any{"id": created.ID})
	return created, nil
}

// Update reemplaza todos los campos mutables del registro id.
func (s *Store) Update(ctx context.Context, id string, p pets.Pet) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, ErrInvalidID
	}
	p.ID = id
	p.Classification = pets.Classify(p.Age)

	wctx := context.WithoutCancel(ctx)

	done := s.begin("update")
	updated, err := s.remote.Update(wctx, id, p)
	done(err)
	if err != nil {
		return pets.Pet{}, s.fail("update", err)
	}
	updated = authoritative(updated)

	s.mu.Lock()
	for i := range s.pets {
		if s.pets[i].ID == id {
			s.pets[i] = updated
			break
		}
	}
	s.mu.Unlock()

	s.log.Info("pet updated", map[string]any{"id": id})
	return updated, nil
}

// Delete quita el registro de la caché solo después de que el remoto confirme.
func (s *Store) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidID
	}

	wctx := context.WithoutCancel(ctx)

	done := s.begin("delete")
	err := s.remote.Delete(wctx, id)
	done(err)
	if err != nil {
		return s.fail("delete", err)
	}

	s.mu.Lock()
	kept := s.pets[:0:0]
	for _, p := range s.pets {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.pets = kept
	n := len(s.pets)
	s.mu.Unlock()

	s.metrics.SetCached(n)
	s.log.Info("pet deleted", map[string]any{"id": id})
	return nil
}

// BulkFailure es un id que no se pudo borrar.
type BulkFailure struct {
	ID  string
	Err error
}

type BulkDeleteResult struct {
	Deleted []string
	Failed  []BulkFailure
}

func (r BulkDeleteResult) Err() error {
	if len(r.Failed) == 0 {
		return nil
	}
	errs := make([]error, 0, len(r.Failed))
	for _, f := range r.Failed {
		errs = append(errs, fmt.Errorf("delete %s: %w", f.ID, f.Err))
	}
	return errors.Join(errs...)
}

// DeleteMany borra de a uno, esperando cada respuesta. Una falla no corta
// la secuencia ni revierte lo ya borrado.
func (s *Store) DeleteMany(ctx context.Context, ids []string) BulkDeleteResult {
	var res BulkDeleteResult
	for _, id := range ids {
		if err := s.Delete(ctx, id); err != nil {
			res.Failed = append(res.Failed, BulkFailure{ID: id, Err: err})
			continue
		}
		res.Deleted = append(res.Deleted, id)
	}
	if len(res.Failed) > 0 {
		s.log.Warn("bulk delete partially failed", map[string]any{
			"deleted": len(res.Deleted),
			"failed":  len(res.Failed),
		})
	}
	return res
}

// begin marca una request en vuelo y devuelve el cierre que la descuenta.
func (s *Store) begin(op string) func(error) {
	start := time.Now()

	s.mu.Lock()
	s.inflight++
	s.mu.Unlock()
	s.metrics.SetBusy(true)

	return func(err error) {
		s.mu.Lock()
		s.inflight--
		busy := s.inflight > 0
		s.mu.Unlock()

		s.metrics.SetBusy(busy)
		s.metrics.ObserveRemote(op, outcome(err), time.Since(start))
	}
}

// fail registra el error en el slot compartido y lo devuelve clasificado.
// "no encontrado" se devuelve pero no se registra: se muestra inline.
func (s *Store) fail(op string, err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		s.log.Debug("pet not found", map[string]any{"op": op, "err": err})
		return fmt.Errorf("%s: %w", op, err)
	case errors.Is(err, ErrRateLimited):
		err = fmt.Errorf("%s: %w", op, err)
	default:
		err = fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
	}

	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()

	s.log.Warn("remote operation failed", map[string]any{"op": op, "err": err})
	return err
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrRateLimited):
		return "rate_limited"
	default:
		return "error"
	}
}

// authoritative completa la clasificación si el servidor no la devolvió.
func authoritative(p pets.Pet) pets.Pet {
	if p.Classification == "" {
		p.Classification = pets.Classify(p.Age)
	}
	return p
}
