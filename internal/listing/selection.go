package listing

import "pet-adoption-catalog/internal/domain/pets"

// Selection es la multi-selección del listado de gestión. Cambiar filtros no
// la limpia: los ids que no están visibles quedan inertes (se ignoran, no se
// quitan) hasta volver a verse.
type Selection struct {
	ids   map[string]struct{}
	order []string
}

func NewSelection(ids ...string) *Selection {
	s := &Selection{}
	for _, id := range ids {
		s.add(id)
	}
	return s
}

func (s *Selection) add(id string) {
	if s.ids == nil {
		s.ids = make(map[string]struct{})
	}
	if _, ok := s.ids[id]; ok {
		return
	}
	s.ids[id] = struct{}{}
	s.order = append(s.order, id)
}

func (s *Selection) Has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Toggle agrega o quita id; devuelve true si quedó seleccionado.
func (s *Selection) Toggle(id string) bool {
	if s.Has(id) {
		delete(s.ids, id)
		for i, cur := range s.order {
			if cur == id {
				s.order = append(s.order[:i:i], s.order[i+1:]...)
				break
			}
		}
		return false
	}
	s.add(id)
	return true
}

// SelectAll reemplaza la selección por exactamente la página visible.
func (s *Selection) SelectAll(visible []pets.Pet) {
	s.Clear()
	for _, p := range visible {
		s.add(p.ID)
	}
}

func (s *Selection) Clear() {
	s.ids = nil
	s.order = nil
}

// IDs devuelve todo lo seleccionado, incluidos ids inertes, en orden de selección.
func (s *Selection) IDs() []string {
	return append([]string(nil), s.order...)
}

func (s *Selection) Len() int { return len(s.order) }

// Active devuelve los ids seleccionados que están visibles, en orden visible.
func (s *Selection) Active(visible []pets.Pet) []string {
	var out []string
	for _, p := range visible {
		if s.Has(p.ID) {
			out = append(out, p.ID)
		}
	}
	return out
}

// AllSelected es true si hay algo visible y todo lo visible está seleccionado.
func (s *Selection) AllSelected(visible []pets.Pet) bool {
	if len(visible) == 0 {
		return false
	}
	for _, p := range visible {
		if !s.Has(p.ID) {
			return false
		}
	}
	return true
}
