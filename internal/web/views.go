package web

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"pet-adoption-catalog/internal/catalog"
	"pet-adoption-catalog/internal/domain/pets"
	"pet-adoption-catalog/internal/listing"
)

// PetCard es un registro tal como lo muestran las tarjetas y el detalle.
type PetCard struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Type           string  `json:"type"`
	Gender         string  `json:"gender"`
	Age            float64 `json:"age"`
	Photo          string  `json:"photo"`
	Description    string  `json:"description,omitempty"`
	Classification string  `json:"classification"`
	Favorite       bool    `json:"favorite"`
	Selected       bool    `json:"selected,omitempty"`
}

// Chrome son los datos comunes a todas las pantallas (navbar).
type Chrome struct {
	Theme     string `json:"theme"`
	Loading   bool   `json:"loading"`
	Error     string `json:"error,omitempty"`
	Favorites int    `json:"favorites"`
}

type Filters struct {
	Type   string `json:"type,omitempty"`
	Gender string `json:"gender"`
	Search string `json:"search"`
}

type HomeView struct {
	Chrome
	Filters     Filters   `json:"filters"`
	Pets        []PetCard `json:"pets"`
	Matched     int       `json:"matched"`
	HasMore     bool      `json:"hasMore"`
	NextVisible int       `json:"nextVisible,omitempty"`
}

type FavoritesView struct {
	Chrome
	Filters Filters   `json:"filters"`
	Pets    []PetCard `json:"pets"`
	Empty   bool      `json:"empty"`
	Message string    `json:"message,omitempty"`
}

type ListView struct {
	Chrome
	Filters       Filters   `json:"filters"`
	Pets          []PetCard `json:"pets"`
	Page          int       `json:"page"`
	TotalPages    int       `json:"totalPages"`
	PageSize      int       `json:"pageSize"`
	Count         int       `json:"count"`
	HasPrev       bool      `json:"hasPrev"`
	HasNext       bool      `json:"hasNext"`
	Selected      []string  `json:"selected"`
	AllSelected   bool      `json:"allSelected"`
	SelectedTotal int       `json:"selectedTotal"`
}

type DetailView struct {
	Chrome
	Pet PetCard `json:"pet"`
}

type FormView struct {
	Chrome
	Mode    string             `json:"mode"` // create | edit
	ID      string             `json:"id,omitempty"`
	Form    pets.Draft         `json:"form"`
	Errors  pets.FieldErrors   `json:"errors"`
	Valid   bool               `json:"valid"`
	Types   []string           `json:"types"`
	Genders []string           `json:"genders"`
	MaxAge  map[string]float64 `json:"maxAge"`
}

type MessageView struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

type BulkDeleteView struct {
	Deleted []string          `json:"deleted"`
	Failed  map[string]string `json:"failed,omitempty"`
	Message string            `json:"message,omitempty"`
}

const (
	msgPageNotFound  = "Página no encontrada"
	msgNoFavorites   = "No tienes mascotas favoritas."
	msgInvalidJSON   = "Solicitud inválida."
	msgPhotoTooLarge = "La foto es demasiado grande."
	msgPhotoNotImage = "El archivo no es una imagen."
)

func (s *Server) chrome(ctx context.Context) Chrome {
	c := Chrome{
		Loading:   s.store.Busy(),
		Error:     catalog.UserMessage(s.store.Err()),
		Favorites: len(s.favs.Resolve(s.store.Pets())),
	}
	if s.themes != nil {
		c.Theme = string(s.themes.Get(ctx))
	}
	return c
}

func (s *Server) cards(items []pets.Pet, sel *listing.Selection) []PetCard {
	out := make([]PetCard, 0, len(items))
	for _, p := range items {
		card := cardFrom(p, s.favs.IsFavorite(p.ID))
		if sel != nil {
			card.Selected = sel.Has(p.ID)
		}
		out = append(out, card)
	}
	return out
}

func cardFrom(p pets.Pet, favorite bool) PetCard {
	return PetCard{
		ID:             p.ID,
		Name:           p.Name,
		Type:           string(p.Species),
		Gender:         string(p.Gender),
		Age:            p.Age,
		Photo:          p.PhotoOrDefault(),
		Description:    p.Description,
		Classification: string(p.EffectiveClassification()),
		Favorite:       favorite,
	}
}

func formView(c Chrome, mode, id string, d pets.Draft, errs pets.FieldErrors) FormView {
	if errs == nil {
		errs = pets.FieldErrors{}
	}
	maxAge := make(map[string]float64, 2)
	for _, sp := range []pets.Species{pets.SpeciesDog, pets.SpeciesCat} {
		if v, ok := pets.MaxAge(sp); ok {
			maxAge[string(sp)] = v
		}
	}
	return FormView{
		Chrome:  c,
		Mode:    mode,
		ID:      id,
		Form:    d,
		Errors:  errs,
		Valid:   errs.Valid(),
		Types:   []string{string(pets.SpeciesDog), string(pets.SpeciesCat)},
		Genders: []string{string(pets.GenderMale), string(pets.GenderFemale)},
		MaxAge:  maxAge,
	}
}

// queryFrom lee ?type=&gender=&search=&page= (todos opcionales).
func queryFrom(r *http.Request, size int) listing.Query {
	q := listing.NewQuery(size)
	v := r.URL.Query()

	if t := strings.TrimSpace(v.Get("type")); t != "" {
		q = q.WithSpecies(t)
	}
	if g := strings.TrimSpace(v.Get("gender")); g != "" {
		q = q.WithGender(g)
	}
	if sr := v.Get("search"); sr != "" {
		q = q.WithSearch(sr)
	}
	if p, err := strconv.Atoi(v.Get("page")); err == nil {
		q.Page = p
	}
	return q
}

func filtersFrom(c listing.Criteria) Filters {
	f := Filters{Type: c.Species, Gender: c.Gender, Search: c.Search}
	if f.Gender == "" {
		f.Gender = listing.All
	}
	return f
}
