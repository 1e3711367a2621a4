package listing

import "pet-adoption-catalog/internal/domain/pets"

// Query es el estado de un listado: criterios más página actual.
// Cualquier cambio de filtro vuelve a la página 1.
type Query struct {
	Criteria Criteria
	Page     int
	Size     int
}

func NewQuery(size int) Query {
	if size <= 0 {
		size = DefaultPageSize
	}
	return Query{
		Criteria: Criteria{Species: All, Gender: All},
		Page:     1,
		Size:     size,
	}
}

func (q Query) WithSpecies(v string) Query {
	q.Criteria.Species = v
	q.Page = 1
	return q
}

func (q Query) WithGender(v string) Query {
	q.Criteria.Gender = v
	q.Page = 1
	return q
}

func (q Query) WithSearch(v string) Query {
	q.Criteria.Search = v
	q.Page = 1
	return q
}

func (q Query) WithFavorites(only bool, favs map[string]struct{}) Query {
	q.Criteria.FavoritesOnly = only
	q.Criteria.Favorites = favs
	q.Page = 1
	return q
}

// Next avanza una página sin pasar de total.
func (q Query) Next(total int) Query {
	q.Page = ClampPage(q.Page+1, total)
	return q
}

func (q Query) Prev() Query {
	q.Page = max(1, q.Page-1)
	return q
}

type Result struct {
	Page Page
	// Matched es el conjunto filtrado completo (antes de paginar).
	Matched []pets.Pet
}

// Run filtra y pagina. Mismo input, mismo output.
func Run(records []pets.Pet, q Query) Result {
	matched := Filter(records, q.Criteria)
	return Result{
		Page:    Paginate(matched, q.Size, q.Page),
		Matched: matched,
	}
}
