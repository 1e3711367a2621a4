package pets

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta la colección /pets del stand-in.
// detailLimit envuelve solo GET /pets/{petID} (puede ser nil).
func RegisterRoutes(r chi.Router, svc *Service, detailLimit func(http.Handler) http.Handler) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Get("/", listPetsHandler(svc))
		pr.Post("/", createPetHandler(svc))

		pr.Group(func(gr chi.Router) {
			if detailLimit != nil {
				gr.Use(detailLimit)
			}
			gr.Get("/{petID}", getPetHandler(svc))
		})

		pr.Put("/{petID}", updatePetHandler(svc))
		pr.Delete("/{petID}", deletePetHandler(svc))
	})
}

// listPetsHandler godoc
// @Summary Listar mascotas
// @Description Devuelve la colección completa, en orden de alta. No hay paginación del lado servidor.
// @Tags pets
// @Produce json
// @Success 200 {array} Record
// @Failure 500 {string} string "internal error"
// @Router /pets [get]
func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]Record, 0, len(items))
		for _, p := range items {
			out = append(out, RecordFrom(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// createPetHandler godoc
// @Summary Crear mascota
// @Description Crea un registro. El servidor asigna el id y recalcula la clasificación a partir de la edad.
// @Tags pets
// @Accept json
// @Produce json
// @Param payload body Record true "Registro sin id"
// @Success 201 {object} Record
// @Failure 400 {string} string "invalid json"
// @Router /pets [post]
func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req Record
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.Create(r.Context(), req.Pet())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusCreated, RecordFrom(p))
	}
}

// getPetHandler godoc
// @Summary Obtener mascota
// @Description Devuelve un registro. Responde 429 si se supera el límite de peticiones.
// @Tags pets
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Success 200 {object} Record
// @Failure 404 {string} string "pet not found"
// @Failure 429 {string} string "too many requests"
// @Router /pets/{petID} [get]
func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, RecordFrom(p))
	}
}

// updatePetHandler godoc
// @Summary Reemplazar mascota
// @Description Reemplazo completo de los campos mutables. La clasificación se recalcula.
// @Tags pets
// @Accept json
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param payload body Record true "Registro completo"
// @Success 200 {object} Record
// @Failure 400 {string} string "invalid json"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID} [put]
func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req Record
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		updated, err := svc.Update(r.Context(), chi.URLParam(r, "petID"), req.Pet())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, RecordFrom(updated))
	}
}

// deletePetHandler godoc
// @Summary Eliminar mascota
// @Tags pets
// @Param petID path string true "ID de la mascota"
// @Success 204
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID} [delete]
func deletePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "petID")); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		http.Error(w, "pet not found", http.StatusNotFound)
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// writeJSON está duplicado intencionalmente en los handlers del stand-in y
// en las vistas (internal/web) para no crear un paquete de helpers solo por esto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
