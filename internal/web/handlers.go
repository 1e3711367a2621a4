package web

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"pet-adoption-catalog/internal/catalog"
	"pet-adoption-catalog/internal/domain/pets"
	"pet-adoption-catalog/internal/listing"
)

func homeHandler(s *Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := queryFrom(r, s.pageSize)

		visible := s.homeBatch
		if v, ok := intParam(r, "visible"); ok && v > 0 {
			visible = v
		}

		matched := listing.Filter(s.store.Pets(), q.Criteria)
		shown, more := listing.Window(matched, visible)

		view := HomeView{
			Chrome:  s.chrome(r.Context()),
			Filters: filtersFrom(q.Criteria),
			Pets:    s.cards(shown, nil),
			Matched: len(matched),
			HasMore: more,
		}
		if more {
			view.NextVisible = visible + s.homeBatch
		}
		writeJSON(w, http.StatusOK, view)
	}
}

func reloadHandler(s *Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.store.Load(r.Context()); err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]int{"count": len(s.store.Pets())})
	}
}

// dismissErrorHandler descarta el aviso de error remoto de la cabecera.
func dismissErrorHandler(s *Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.store.ClearErr()
		writeJSON(w, http.StatusOK, s.chrome(r.Context()))
	}
}

func favoritesHandler(s *Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := queryFrom(r, s.pageSize)
		// Favoritos filtra solo por género y nombre.
		c := listing.Criteria{
			Gender:        q.Criteria.Gender,
			Search:        q.Criteria.Search,
			FavoritesOnly: true,
			Favorites:     s.favs.Set(),
		}

		items := listing.Filter(s.store.Pets(), c)
		view := FavoritesView{
			Chrome:  s.chrome(r.Context()),
			Filters: filtersFrom(c),
			Pets:    s.cards(items, nil),
			Empty:   len(items) == 0,
		}
		if view.Empty {
			view.Message = msgNoFavorites
		}
		writeJSON(w, http.StatusOK, view)
	}
}

func clearFavoritesHandler(s *Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.favs.ClearAll(r.Context()); err != nil {
			s.log.Error("clear favorites failed", map[string]any{"err": err})
			writeMessage(w, http.StatusInternalServerError, catalog.MsgUnavailable)
			return
		}
		writeJSON(w, http.StatusOK, FavoritesView{
			Chrome:  s.chrome(r.Context()),
			Pets:    []PetCard{},
			Empty:   true,
			Message: msgNoFavorites,
		})
	}
}

func toggleFavoriteHandler(s *Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "petID")

		on, err := s.favs.Toggle(r.Context(), id)
		if err != nil {
			s.log.Error("toggle favorite failed", map[string]any{"id": id, "err": err})
			writeMessage(w, http.StatusInternalServerError, catalog.MsgUnavailable)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"id": id, "favorite": on})
	}
}

func listHandler(s *Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.listView(r))
	}
}

func (s *Server) listView(r *http.Request) ListView {
	q := queryFrom(r, s.pageSize)
	res := listing.Run(s.store.Pets(), q)
	page := res.Page

	s.mu.Lock()
	cards := s.cards(page.Items, s.selection)
	active := s.selection.Active(page.Items)
	all := s.selection.AllSelected(page.Items)
	total := s.selection.Len()
	s.mu.Unlock()

	if active == nil {
		active = []string{}
	}
	return ListView{
		Chrome:        s.chrome(r.Context()),
		Filters:       filtersFrom(q.Criteria),
		Pets:          cards,
		Page:          page.Number,
		TotalPages:    page.Total,
		PageSize:      page.Size,
		Count:         page.Count,
		HasPrev:       page.HasPrev(),
		HasNext:       page.HasNext(),
		Selected:      active,
		AllSelected:   all,
		SelectedTotal: total,
	}
}

type selectionRequest struct {
	Action string `json:"action"` // toggle | all | none
	ID     string `json:"id"`
}

// selectionHandler modifica la selección. "all" toma la página definida
// por los query params (type, gender, search, page).
func selectionHandler(s *Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req selectionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, msgInvalidJSON)
			return
		}

		s.mu.Lock()
		switch strings.ToLower(strings.TrimSpace(req.Action)) {
		case "toggle":
			if strings.TrimSpace(req.ID) == "" {
				s.mu.Unlock()
				writeMessage(w, http.StatusBadRequest, "id requerido")
				return
			}
			s.selection.Toggle(strings.TrimSpace(req.ID))
		case "all":
			page := listing.Run(s.store.Pets(), queryFrom(r, s.pageSize)).Page
			s.selection.SelectAll(page.Items)
		case "none":
			s.selection.Clear()
		default:
			s.mu.Unlock()
			writeMessage(w, http.StatusBadRequest, "acción inválida")
			return
		}
		s.mu.Unlock()

		writeJSON(w, http.StatusOK, s.listView(r))
	}
}

// deleteSelectedHandler borra, de a uno, los seleccionados visibles en la
// página pedida. Los ids inertes no se tocan. Sin rollback.
func deleteSelectedHandler(s *Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := listing.Run(s.store.Pets(), queryFrom(r, s.pageSize)).Page

		s.mu.Lock()
		ids := s.selection.Active(page.Items)
		s.mu.Unlock()

		if len(ids) == 0 {
			writeJSON(w, http.StatusOK, BulkDeleteView{Deleted: []string{}})
			return
		}

		res := s.store.DeleteMany(r.Context(), ids)

		s.mu.Lock()
		s.selection.Clear()
		s.mu.Unlock()

		view := BulkDeleteView{Deleted: res.Deleted}
		if view.Deleted == nil {
			view.Deleted = []string{}
		}
		if err := res.Err(); err != nil {
			view.Failed = make(map[string]string, len(res.Failed))
			for _, f := range res.Failed {
				view.Failed[f.ID] = catalog.UserMessage(f.Err)
			}
			view.Message = catalog.UserMessage(res.Failed[0].Err)
			writeJSON(w, statusFor(res.Failed[0].Err), view)
			return
		}
		writeJSON(w, http.StatusOK, view)
	}
}

func createFormHandler(s *Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, formView(s.chrome(r.Context()), "create", "", pets.Draft{}, nil))
	}
}

// validateHandler corre la validación en vivo sobre el formulario parcial.
func validateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, photoErrs, err := decodeDraft(r)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, msgInvalidJSON)
			return
		}
		errs := pets.Validate(d)
		for k, v := range photoErrs {
			errs[k] = v
		}
		writeJSON(w, http.StatusOK, formView(Chrome{}, "validate", "", d, errs))
	}
}

func createHandler(s *Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, photoErrs, err := decodeDraft(r)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, msgInvalidJSON)
			return
		}

		p, errs := d.Pet()
		if !errs.Valid() || !photoErrs.Valid() {
			writeJSON(w, http.StatusUnprocessableEntity, formView(s.chrome(r.Context()), "create", "", d, merge(errs, photoErrs)))
			return
		}

		created, err := s.store.Create(r.Context(), p)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, DetailView{
			Chrome: s.chrome(r.Context()),
			Pet:    cardFrom(created, s.favs.IsFavorite(created.ID)),
		})
	}
}

func detailHandler(s *Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := s.store.Get(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, DetailView{
			Chrome: s.chrome(r.Context()),
			Pet:    cardFrom(p, s.favs.IsFavorite(p.ID)),
		})
	}
}

func editFormHandler(s *Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "petID")
		p, err := s.store.Get(r.Context(), id)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, formView(s.chrome(r.Context()), "edit", p.ID, pets.DraftFrom(p), nil))
	}
}

func updateHandler(s *Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "petID")

		d, photoErrs, err := decodeDraft(r)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, msgInvalidJSON)
			return
		}

		p, errs := d.Pet()
		if !errs.Valid() || !photoErrs.Valid() {
			writeJSON(w, http.StatusUnprocessableEntity, formView(s.chrome(r.Context()), "edit", id, d, merge(errs, photoErrs)))
			return
		}

		updated, err := s.store.Update(r.Context(), id, p)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, DetailView{
			Chrome: s.chrome(r.Context()),
			Pet:    cardFrom(updated, s.favs.IsFavorite(updated.ID)),
		})
	}
}

func deleteHandler(s *Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.store.Delete(r.Context(), chi.URLParam(r, "petID")); err != nil {
			writeStoreError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func themeHandler(s *Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"theme": string(s.themes.Get(r.Context()))})
	}
}

func toggleThemeHandler(s *Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, err := s.themes.Toggle(r.Context())
		if err != nil {
			s.log.Error("toggle theme failed", map[string]any{"err": err})
			writeMessage(w, http.StatusInternalServerError, catalog.MsgUnavailable)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"theme": string(t)})
	}
}

func notFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeMessage(w, http.StatusNotFound, msgPageNotFound)
	}
}

// draftRequest acepta la edad como número o texto.
type draftRequest struct {
	Name        string           `json:"name"`
	Type        string           `json:"type"`
	Gender      string           `json:"gender"`
	Age         pets.LooseString `json:"age"`
	Photo       string           `json:"photo"`
	Description string           `json:"description"`
}

// decodeDraft lee JSON o un formulario (multipart con archivo "photo").
// Los problemas con el archivo vuelven como errores de campo.
func decodeDraft(r *http.Request) (pets.Draft, pets.FieldErrors, error) {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch ct {
	case "multipart/form-data", "application/x-www-form-urlencoded":
		return decodeForm(r, ct)
	default:
		var req draftRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return pets.Draft{}, nil, err
		}
		return pets.Draft{
			Name:        req.Name,
			Species:     req.Type,
			Gender:      req.Gender,
			Age:         string(req.Age),
			Photo:       req.Photo,
			Description: req.Description,
		}, pets.FieldErrors{}, nil
	}
}

func decodeForm(r *http.Request, ct string) (pets.Draft, pets.FieldErrors, error) {
	if ct == "multipart/form-data" {
		if err := r.ParseMultipartForm(pets.MaxPhotoBytes + 1<<20); err != nil {
			return pets.Draft{}, nil, err
		}
	} else if err := r.ParseForm(); err != nil {
		return pets.Draft{}, nil, err
	}

	d := pets.Draft{
		Name:        r.FormValue("name"),
		Species:     r.FormValue("type"),
		Gender:      r.FormValue("gender"),
		Age:         pets.SanitizeAge(r.FormValue("age")),
		Photo:       r.FormValue("photo"),
		Description: r.FormValue("description"),
	}
	errs := pets.FieldErrors{}

	if ct != "multipart/form-data" {
		return d, errs, nil
	}
	f, _, err := r.FormFile("photo")
	if errors.Is(err, http.ErrMissingFile) {
		return d, errs, nil
	}
	if err != nil {
		return pets.Draft{}, nil, err
	}
	defer f.Close()

	uri, err := pets.EncodePhoto(f, pets.MaxPhotoBytes)
	switch {
	case errors.Is(err, pets.ErrPhotoTooLarge):
		errs["photo"] = msgPhotoTooLarge
	case errors.Is(err, pets.ErrPhotoNotImage):
		errs["photo"] = msgPhotoNotImage
	case err != nil:
		return pets.Draft{}, nil, err
	default:
		d.Photo = uri
	}
	return d, errs, nil
}

func merge(a, b pets.FieldErrors) pets.FieldErrors {
	out := pets.FieldErrors{}
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}

func intParam(r *http.Request, name string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(r.URL.Query().Get(name)))
	if err != nil {
		return 0, false
	}
	return n, true
}

// statusFor mapea errores del store a status HTTP.
func statusFor(err error) int {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, catalog.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, catalog.ErrInvalidID):
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}

func writeStoreError(w http.ResponseWriter, err error) {
	writeMessage(w, statusFor(err), catalog.UserMessage(err))
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageView{Status: status, Message: msg})
}

// writeJSON está duplicado intencionalmente (ver internal/domain/pets).
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
