package web_test

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"pet-adoption-catalog/internal/adapters/petsapi"
	"pet-adoption-catalog/internal/adapters/storage/memory"
	"pet-adoption-catalog/internal/catalog"
	"pet-adoption-catalog/internal/domain/pets"
	"pet-adoption-catalog/internal/favorites"
	"pet-adoption-catalog/internal/platform/httpclient"
	"pet-adoption-catalog/internal/platform/metrics"
	"pet-adoption-catalog/internal/preferences"
	"pet-adoption-catalog/internal/router"
	"pet-adoption-catalog/internal/web"
)

type env struct {
	views *httptest.Server
	store *catalog.Store
}

// newEnv levanta el stand-in como API remoto y las vistas encima.
func newEnv(t *testing.T, opts router.Options) env {
	t.Helper()
	return newEnvWith(t, opts, nil)
}

// newEnvWith permite envolver el stand-in para simular fallos del remoto.
func newEnvWith(t *testing.T, opts router.Options, wrap func(http.Handler) http.Handler) env {
	t.Helper()

	remote, err := router.NewRouter(opts)
	require.NoError(t, err)
	if wrap != nil {
		remote = wrap(remote)
	}
	api := httptest.NewServer(remote)
	t.Cleanup(api.Close)

	hc, err := httpclient.New(api.URL, 0)
	require.NoError(t, err)

	m := metrics.New()
	store := catalog.New(petsapi.NewClient(hc), catalog.Options{Metrics: m})
	require.NoError(t, store.Load(context.Background()))

	kv := memory.NewKV()
	srv := web.NewServer(web.Options{
		Store:     store,
		Favorites: favorites.New(context.Background(), kv, nil),
		Themes:    preferences.NewThemes(kv, "light"),
		Metrics:   m,
		PageSize:  2,
		HomeBatch: 2,
	})
	views := httptest.NewServer(srv.Routes())
	t.Cleanup(views.Close)

	return env{views: views, store: store}
}

func seedPets() []pets.Pet {
	return []pets.Pet{
		{Name: "Rex", Species: pets.SpeciesDog, Gender: pets.GenderMale, Age: 3},
		{Name: "Michi", Species: pets.SpeciesCat, Gender: pets.GenderFemale, Age: 0.5},
		{Name: "Roxy", Species: pets.SpeciesDog, Gender: pets.GenderFemale, Age: 9},
	}
}

func do(t *testing.T, method, url string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, url, rdr)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	out, _ := io.ReadAll(res.Body)
	return res.StatusCode, out
}

func decode[T any](t *testing.T, b []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(b, &v), string(b))
	return v
}

func TestHome_LoadMoreAndFilters(t *testing.T) {
	e := newEnv(t, router.Options{Seed: seedPets()})

	st, body := do(t, "GET", e.views.URL+"/", nil)
	require.Equal(t, http.StatusOK, st)
	home := decode[web.HomeView](t, body)
	require.Len(t, home.Pets, 2)
	require.True(t, home.HasMore)
	require.Equal(t, 4, home.NextVisible)
	require.Equal(t, "light", home.Theme)
	require.Equal(t, "/default-pet.jpg", home.Pets[0].Photo)

	_, body = do(t, "GET", e.views.URL+"/?visible=4", nil)
	home = decode[web.HomeView](t, body)
	require.Len(t, home.Pets, 3)
	require.False(t, home.HasMore)

	_, body = do(t, "GET", e.views.URL+"/?type=Perro&search=ROX", nil)
	home = decode[web.HomeView](t, body)
	require.Len(t, home.Pets, 1)
	require.Equal(t, "Roxy", home.Pets[0].Name)
}

func TestItems_PaginationClampsAndSelection(t *testing.T) {
	e := newEnv(t, router.Options{Seed: seedPets()})

	_, body := do(t, "GET", e.views.URL+"/items?page=99", nil)
	list := decode[web.ListView](t, body)
	require.Equal(t, 2, list.Page)
	require.Equal(t, 2, list.TotalPages)
	require.Len(t, list.Pets, 1)

	// Seleccionar todo = solo la página visible.
	_, body = do(t, "POST", e.views.URL+"/items/selection?page=1", map[string]string{"action": "all"})
	list = decode[web.ListView](t, body)
	require.True(t, list.AllSelected)
	require.Len(t, list.Selected, 2)
	require.Equal(t, 2, list.SelectedTotal)

	// Con otro filtro los ids quedan inertes pero no se pierden.
	_, body = do(t, "GET", e.views.URL+"/items?type=Gato", nil)
	list = decode[web.ListView](t, body)
	require.Len(t, list.Selected, 1)
	require.Equal(t, 2, list.SelectedTotal)

	st, body := do(t, "POST", e.views.URL+"/items/delete-selected?page=1", nil)
	require.Equal(t, http.StatusOK, st)
	bulk := decode[web.BulkDeleteView](t, body)
	require.Len(t, bulk.Deleted, 2)
	require.Len(t, e.store.Pets(), 1)
	require.Equal(t, "Roxy", e.store.Pets()[0].Name)
}

func TestItems_CreateValidatesAndPrepends(t *testing.T) {
	e := newEnv(t, router.Options{Seed: seedPets()})

	st, body := do(t, "POST", e.views.URL+"/items", map[string]any{
		"name": "Rex", "type": "Perro", "gender": "Macho", "age": 25,
	})
	require.Equal(t, http.StatusUnprocessableEntity, st)
	form := decode[web.FormView](t, body)
	require.Equal(t, pets.FieldErrors{"age": "La edad máxima para un perro es 20 años."}, form.Errors)
	require.Len(t, e.store.Pets(), 3)

	st, body = do(t, "POST", e.views.URL+"/items", map[string]any{
		"name": "Luna", "type": "Gato", "gender": "Hembra", "age": "0.5",
	})
	require.Equal(t, http.StatusCreated, st)
	detail := decode[web.DetailView](t, body)
	require.Equal(t, "Cachorro", detail.Pet.Classification)
	require.NotEmpty(t, detail.Pet.ID)
	require.Equal(t, "Luna", e.store.Pets()[0].Name)
}

func TestItems_CreateMultipartEmbedsPhoto(t *testing.T) {
	e := newEnv(t, router.Options{})

	var img bytes.Buffer
	m := image.NewRGBA(image.Rect(0, 0, 2, 2))
	m.Set(0, 0, color.RGBA{R: 255, A: 255})
	require.NoError(t, png.Encode(&img, m))

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range map[string]string{"name": "Toby", "type": "Perro", "gender": "Macho", "age": "2 años"} {
		require.NoError(t, mw.WriteField(k, v))
	}
	fw, err := mw.CreateFormFile("photo", "toby.png")
	require.NoError(t, err)
	_, _ = fw.Write(img.Bytes())
	require.NoError(t, mw.Close())

	req, _ := http.NewRequest("POST", e.views.URL+"/items", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)

	require.Equal(t, http.StatusCreated, res.StatusCode, string(body))
	detail := decode[web.DetailView](t, body)
	require.True(t, strings.HasPrefix(detail.Pet.Photo, "data:image/png;base64,"))
	require.Equal(t, float64(2), detail.Pet.Age)
}

func TestItems_ValidateLive(t *testing.T) {
	e := newEnv(t, router.Options{})

	_, body := do(t, "POST", e.views.URL+"/items/validate", map[string]any{
		"name": "", "type": "Perro", "gender": "Macho", "age": 5,
	})
	form := decode[web.FormView](t, body)
	require.False(t, form.Valid)
	require.Equal(t, pets.FieldErrors{"name": "El nombre es obligatorio."}, form.Errors)
}

func TestItems_DetailEditDelete(t *testing.T) {
	e := newEnv(t, router.Options{Seed: seedPets()})
	id := e.store.Pets()[0].ID

	st, body := do(t, "GET", e.views.URL+"/items/"+id+"/edit", nil)
	require.Equal(t, http.StatusOK, st)
	form := decode[web.FormView](t, body)
	require.Equal(t, "3", form.Form.Age)

	st, body = do(t, "PUT", e.views.URL+"/items/"+id, map[string]any{
		"name": "Rex", "type": "Perro", "gender": "Macho", "age": 12,
	})
	require.Equal(t, http.StatusOK, st)
	require.Equal(t, "Senior", decode[web.DetailView](t, body).Pet.Classification)

	st, _ = do(t, "DELETE", e.views.URL+"/items/"+id, nil)
	require.Equal(t, http.StatusNoContent, st)

	st, body = do(t, "GET", e.views.URL+"/items/"+id, nil)
	require.Equal(t, http.StatusNotFound, st)
	require.Equal(t, catalog.MsgNotFound, decode[web.MessageView](t, body).Message)
}

func TestItems_DetailRateLimited(t *testing.T) {
	e := newEnv(t, router.Options{RateLimit: 0.001, RateBurst: 1})

	// Ninguno está en caché: cada detalle va al remoto.
	st, _ := do(t, "GET", e.views.URL+"/items/a", nil)
	require.Equal(t, http.StatusNotFound, st)

	st, body := do(t, "GET", e.views.URL+"/items/b", nil)
	require.Equal(t, http.StatusTooManyRequests, st)
	require.Equal(t, catalog.MsgRateLimited, decode[web.MessageView](t, body).Message)
}

func TestFavorites_ToggleFilterAndClear(t *testing.T) {
	e := newEnv(t, router.Options{Seed: seedPets()})
	all := e.store.Pets()

	for _, p := range all[:2] {
		st, _ := do(t, "POST", e.views.URL+"/favoritos/"+p.ID+"/toggle", nil)
		require.Equal(t, http.StatusOK, st)
	}
	_, _ = do(t, "POST", e.views.URL+"/favoritos/stale-id/toggle", nil)

	_, body := do(t, "GET", e.views.URL+"/favoritos", nil)
	fv := decode[web.FavoritesView](t, body)
	require.Len(t, fv.Pets, 2)
	require.True(t, fv.Pets[0].Favorite)

	// Favoritos ignora el filtro de tipo y usa género.
	_, body = do(t, "GET", e.views.URL+"/favoritos?type=Gato&gender=Macho", nil)
	fv = decode[web.FavoritesView](t, body)
	require.Len(t, fv.Pets, 1)
	require.Equal(t, "Rex", fv.Pets[0].Name)

	st, body := do(t, "DELETE", e.views.URL+"/favoritos", nil)
	require.Equal(t, http.StatusOK, st)
	require.True(t, decode[web.FavoritesView](t, body).Empty)
}

func TestTheme_Toggle(t *testing.T) {
	e := newEnv(t, router.Options{})

	_, body := do(t, "POST", e.views.URL+"/theme/toggle", nil)
	require.JSONEq(t, `{"theme":"dark"}`, string(body))

	_, body = do(t, "GET", e.views.URL+"/theme", nil)
	require.JSONEq(t, `{"theme":"dark"}`, string(body))
}

func TestCatchAll_NotFoundAndMetrics(t *testing.T) {
	e := newEnv(t, router.Options{})

	st, body := do(t, "GET", e.views.URL+"/no/existe", nil)
	require.Equal(t, http.StatusNotFound, st)
	require.Equal(t, "Página no encontrada", decode[web.MessageView](t, body).Message)

	st, body = do(t, "GET", e.views.URL+"/metrics", nil)
	require.Equal(t, http.StatusOK, st)
	require.Contains(t, string(body), "catalog_remote_requests_total")
}

func TestItems_UpdateMissingIsInlineOnly(t *testing.T) {
	e := newEnv(t, router.Options{Seed: seedPets()})

	st, body := do(t, "PUT", e.views.URL+"/items/ghost", map[string]any{
		"name": "Rex", "type": "Perro", "gender": "Macho", "age": 4,
	})
	require.Equal(t, http.StatusNotFound, st)
	require.Equal(t, catalog.MsgNotFound, decode[web.MessageView](t, body).Message)

	st, _ = do(t, "DELETE", e.views.URL+"/items/ghost", nil)
	require.Equal(t, http.StatusNotFound, st)

	_, body = do(t, "GET", e.views.URL+"/items", nil)
	require.Empty(t, decode[web.ListView](t, body).Error)
}

func TestDismissError_ClearsBanner(t *testing.T) {
	e := newEnv(t, router.Options{RateLimit: 0.001, RateBurst: 1})

	_, _ = do(t, "GET", e.views.URL+"/items/a", nil)
	st, _ := do(t, "GET", e.views.URL+"/items/b", nil)
	require.Equal(t, http.StatusTooManyRequests, st)

	_, body := do(t, "GET", e.views.URL+"/items", nil)
	require.Equal(t, catalog.MsgRateLimited, decode[web.ListView](t, body).Error)

	st, body = do(t, "DELETE", e.views.URL+"/error", nil)
	require.Equal(t, http.StatusOK, st)
	require.Empty(t, decode[web.Chrome](t, body).Error)

	_, body = do(t, "GET", e.views.URL+"/items", nil)
	require.Empty(t, decode[web.ListView](t, body).Error)
}

func TestFavorites_DeletedPetDisappears(t *testing.T) {
	e := newEnv(t, router.Options{})

	st, body := do(t, "POST", e.views.URL+"/items", map[string]any{
		"name": "Bobby", "type": "Perro", "gender": "Macho", "age": 0.5,
	})
	require.Equal(t, http.StatusCreated, st)
	pet := decode[web.DetailView](t, body).Pet
	require.Equal(t, "Cachorro", pet.Classification)

	st, _ = do(t, "POST", e.views.URL+"/favoritos/"+pet.ID+"/toggle", nil)
	require.Equal(t, http.StatusOK, st)

	_, body = do(t, "GET", e.views.URL+"/favoritos", nil)
	require.Equal(t, 1, decode[web.FavoritesView](t, body).Favorites)

	st, _ = do(t, "DELETE", e.views.URL+"/items/"+pet.ID, nil)
	require.Equal(t, http.StatusNoContent, st)

	_, body = do(t, "GET", e.views.URL+"/items", nil)
	list := decode[web.ListView](t, body)
	require.Empty(t, list.Pets)
	require.Equal(t, 0, list.Favorites)

	_, body = do(t, "GET", e.views.URL+"/favoritos", nil)
	fv := decode[web.FavoritesView](t, body)
	require.Empty(t, fv.Pets)
	require.True(t, fv.Empty)
	require.Equal(t, 0, fv.Favorites)
	require.Equal(t, "No tienes mascotas favoritas.", fv.Message)
}

func TestItems_DeleteSelectedPartialFailure(t *testing.T) {
	var failID string
	e := newEnvWith(t, router.Options{Seed: seedPets()}, func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodDelete && failID != "" && r.URL.Path == "/pets/"+failID {
				http.Error(w, "boom", http.StatusInternalServerError)
				return
			}
			next.ServeHTTP(w, r)
		})
	})
	all := e.store.Pets()
	rex, michi := all[0], all[1]
	failID = michi.ID

	_, _ = do(t, "POST", e.views.URL+"/items/selection?page=1", map[string]string{"action": "all"})

	st, body := do(t, "POST", e.views.URL+"/items/delete-selected?page=1", nil)
	require.Equal(t, http.StatusBadGateway, st)
	bulk := decode[web.BulkDeleteView](t, body)
	require.Equal(t, []string{rex.ID}, bulk.Deleted)
	require.Equal(t, map[string]string{michi.ID: catalog.MsgUnavailable}, bulk.Failed)
	require.Equal(t, catalog.MsgUnavailable, bulk.Message)

	// Sin rollback: lo borrado queda borrado.
	names := []string{}
	for _, p := range e.store.Pets() {
		names = append(names, p.Name)
	}
	require.Equal(t, []string{"Michi", "Roxy"}, names)
}
