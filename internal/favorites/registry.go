// Package favorites mantiene el conjunto de ids marcados como favoritos,
// persistido en el almacenamiento local bajo la clave "favorites".
package favorites

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"pet-adoption-catalog/internal/domain/pets"
	"pet-adoption-catalog/internal/platform/localstore"
	"pet-adoption-catalog/internal/platform/logger"
)

// StorageKey es la clave del arreglo JSON de ids.
const StorageKey = "favorites"

var ErrInvalidID = errors.New("favorite id required")

// Registry es un set de ids. Puede contener ids que ya no existen en el
// catálogo; se filtran al leer (Resolve), nunca se purgan.
type Registry struct {
	kv  localstore.KV
	log logger.Logger

	mu  sync.RWMutex
	ids []string // orden de alta, sin duplicados
}

// New lee el set persistido. Un valor ausente o corrupto es un set vacío.
func New(ctx context.Context, kv localstore.KV, log logger.Logger) *Registry {
	if log == nil {
		log = logger.Nop()
	}
	r := &Registry{
		kv:  kv,
		log: log.With(map[string]any{"component": "favorites"}),
	}
	r.ids = r.read(ctx)
	return r
}

func (r *Registry) read(ctx context.Context) []string {
	raw, err := r.kv.Get(ctx, StorageKey)
	if err != nil {
		if !errors.Is(err, localstore.ErrNotFound) {
			r.log.Warn("favorites unreadable, starting empty", map[string]any{"err": err})
		}
		return nil
	}

	var stored []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		r.log.Warn("favorites corrupt, starting empty", map[string]any{"err": err})
		return nil
	}

	out := make([]string, 0, len(stored))
	seen := make(map[string]struct{}, len(stored))
	for _, item := range stored {
		var id pets.LooseString
		if err := json.Unmarshal(item, &id); err != nil {
			continue
		}
		s := strings.TrimSpace(string(id))
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// Toggle agrega o quita id y persiste el set completo.
// Devuelve true si id quedó como favorito.
func (r *Registry) Toggle(ctx context.Context, id string) (bool, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return false, ErrInvalidID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	next := make([]string, 0, len(r.ids)+1)
	removed := false
	for _, cur := range r.ids {
		if cur == id {
			removed = true
			continue
		}
		next = append(next, cur)
	}
	if !removed {
		next = append(next, id)
	}

	if err := r.write(ctx, next); err != nil {
		return removed, err
	}
	r.ids = next
	return !removed, nil
}

func (r *Registry) write(ctx context.Context, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	b, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("marshal favorites: %w", err)
	}
	if err := r.kv.Set(ctx, StorageKey, string(b)); err != nil {
		return fmt.Errorf("persist favorites: %w", err)
	}
	return nil
}

func (r *Registry) IsFavorite(id string) bool {
	id = strings.TrimSpace(id)
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, cur := range r.ids {
		if cur == id {
			return true
		}
	}
	return false
}

// IDs devuelve una copia del set, incluidos ids obsoletos.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.ids...)
}

// Set devuelve el set como mapa, listo para listing.Criteria.
func (r *Registry) Set() map[string]struct{} {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]struct{}, len(r.ids))
	for _, id := range r.ids {
		out[id] = struct{}{}
	}
	return out
}

// ClearAll borra la clave persistida y vacía el set en memoria.
// No relee del almacenamiento.
func (r *Registry) ClearAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.kv.Delete(ctx, StorageKey); err != nil {
		return fmt.Errorf("clear favorites: %w", err)
	}
	r.ids = nil
	return nil
}

// Resolve devuelve los registros favoritos en el orden de records.
// Los ids sin registro se ignoran en silencio.
func (r *Registry) Resolve(records []pets.Pet) []pets.Pet {
	set := r.Set()
	out := make([]pets.Pet, 0, len(set))
	for _, p := range records {
		if _, ok := set[p.ID]; ok {
			out = append(out, p)
		}
	}
	return out
}
