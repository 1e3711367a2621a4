// Package listing es el pipeline de listas del catálogo: filtrar, paginar y
// seleccionar sobre el conjunto completo en memoria. Todo es puro y nunca
// reordena: el orden es el del servidor.
package listing

import (
	"strings"

	"golang.org/x/text/cases"

	"pet-adoption-catalog/internal/domain/pets"
)

// All es el valor de filtro que deja pasar todo.
const All = "Todos"

// Criteria son los predicados elegidos por el usuario. Un campo vacío o
// igual a All no filtra.
type Criteria struct {
	Species string
	Gender  string
	Search  string

	// FavoritesOnly restringe a ids presentes en Favorites.
	FavoritesOnly bool
	Favorites     map[string]struct{}
}

func passThrough(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || v == All
}

// Filter aplica especie AND género AND nombre AND favoritos.
func Filter(records []pets.Pet, c Criteria) []pets.Pet {
	m := newMatcher(c)
	out := make([]pets.Pet, 0, len(records))
	for _, p := range records {
		if m.match(p) {
			out = append(out, p)
		}
	}
	return out
}

type matcher struct {
	c      Criteria
	fold   cases.Caser
	needle string
}

func newMatcher(c Criteria) matcher {
	m := matcher{c: c, fold: cases.Fold()}
	if s := strings.TrimSpace(c.Search); s != "" {
		m.needle = m.fold.String(s)
	}
	return m
}

func (m matcher) match(p pets.Pet) bool {
	if !passThrough(m.c.Species) && string(p.Species) != strings.TrimSpace(m.c.Species) {
		return false
	}
	if !passThrough(m.c.Gender) && string(p.Gender) != strings.TrimSpace(m.c.Gender) {
		return false
	}
	if m.needle != "" && !strings.Contains(m.fold.String(p.Name), m.needle) {
		return false
	}
	if m.c.FavoritesOnly {
		if _, ok := m.c.Favorites[p.ID]; !ok {
			return false
		}
	}
	return true
}
