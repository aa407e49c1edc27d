package kernel_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/backoffice/app/controllers"
	_ "github.com/shashiranjanraj/backoffice/database/migrations"
	"github.com/shashiranjanraj/backoffice/internal/kernel"
	"github.com/shashiranjanraj/backoffice/pkg/auth"
	"github.com/shashiranjanraj/backoffice/pkg/database"
	"github.com/shashiranjanraj/backoffice/pkg/migration"
	"github.com/shashiranjanraj/backoffice/pkg/storage"
	"github.com/shashiranjanraj/backoffice/pkg/upload/uploadtest"
)

const baseURL = "http://localhost:8080/storage"

type app struct {
	h     http.Handler
	k     *kernel.HTTPKernel
	local *storage.LocalDisk
	mem   *storage.MemoryDisk
}

// boot builds a kernel over a private in-memory database. The default disk
// is "local" unless def says otherwise.
func boot(t *testing.T, def string, tweak ...func(*kernel.Deps)) *app {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.Open("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	_, err = migration.New(db).Run()
	require.NoError(t, err)

	local, err := storage.NewLocalDisk(t.TempDir(), baseURL)
	require.NoError(t, err)
	mem := storage.NewMemoryDisk(baseURL)

	disks := storage.NewManager(def)
	disks.Register("local", local)
	disks.Register("memory", mem)

	deps := kernel.Deps{
		DB:     db,
		Disks:  disks,
		Limits: controllers.Limits{MaxBodyBytes: 8 << 20, ImageMaxKB: 2048},
	}
	for _, fn := range tweak {
		fn(&deps)
	}
	k := kernel.NewHTTPKernel(deps)
	t.Cleanup(k.Close)
	return &app{h: k.Handler(), k: k, local: local, mem: mem}
}

type envelope struct {
	Status  int               `json:"status"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

func (a *app) do(t *testing.T, method, target string, fields map[string]string, files ...uploadtest.File) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var req *http.Request
	if fields == nil && len(files) == 0 {
		req = httptest.NewRequest(method, target, nil)
	} else {
		body, ct := uploadtest.Form(fields, files...)
		req = httptest.NewRequest(method, target, body)
		req.Header.Set("Content-Type", ct)
	}
	rec := httptest.NewRecorder()
	a.h.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec, env
}

func image(name string) uploadtest.File {
	return uploadtest.File{Field: "image", Name: name, Data: uploadtest.PNG(64)}
}

type item struct {
	ID           uint    `json:"id"`
	CategoryName string  `json:"category_name"`
	ClientName   string  `json:"client_name"`
	ClientPhone  string  `json:"client_phone"`
	CategoryID   uint    `json:"category_id"`
	Name         string  `json:"name"`
	Price        string  `json:"price"`
	Image        *string `json:"image"`
	ImageURL     *string `json:"image_url"`
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

func TestCategoryLifecycleOnLocalDisk(t *testing.T) {
	a := boot(t, "local")

	rec, env := a.do(t, http.MethodPost, "/category", map[string]string{"category_name": "Shoes"}, image("shoe.png"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[item](t, env.Data)
	assert.EqualValues(t, 1, created.ID)
	assert.Equal(t, "Shoes", created.CategoryName)
	require.NotNil(t, created.Image)
	assert.True(t, strings.HasPrefix(*created.Image, "categoryImage/"))
	require.NotNil(t, created.ImageURL)
	assert.Equal(t, baseURL+"/"+*created.Image, *created.ImageURL)

	// The stored file is served back under /storage.
	rec, _ = a.do(t, http.MethodGet, "/storage/"+*created.Image, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uploadtest.PNG(64), rec.Body.Bytes())

	rec, env = a.do(t, http.MethodPut, "/category/1", map[string]string{"category_name": "Sneakers"}, image("new.png"))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[item](t, env.Data)
	assert.Equal(t, "Sneakers", updated.CategoryName)
	require.NotNil(t, updated.Image)
	assert.NotEqual(t, *created.Image, *updated.Image)
	assert.NoFileExists(t, a.local.Root()+"/"+*created.Image)
	assert.FileExists(t, a.local.Root()+"/"+*updated.Image)

	rec, env = a.do(t, http.MethodDelete, "/category/1", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"categories":[]}`, string(env.Data))
	assert.NoFileExists(t, a.local.Root()+"/"+*updated.Image)
}

func TestIndexIsNewestFirst(t *testing.T) {
	a := boot(t, "memory")
	for _, n := range []string{"Shoes", "Hats", "Bags"} {
		rec, _ := a.do(t, http.MethodPost, "/category", map[string]string{"category_name": n})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec, env := a.do(t, http.MethodGet, "/category", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[map[string][]item](t, env.Data)["categories"]
	require.Len(t, list, 3)
	assert.Equal(t, "Bags", list[0].CategoryName)
	assert.Equal(t, "Shoes", list[2].CategoryName)
	assert.Nil(t, list[0].ImageURL)
}

func TestEveryUpdateRouteReachesUpdate(t *testing.T) {
	a := boot(t, "memory")
	rec, _ := a.do(t, http.MethodPost, "/products", map[string]string{"name": "Pen", "price": "1.50"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	cases := []struct{ method, path string }{
		{http.MethodPut, "/products/1"},
		{http.MethodPatch, "/products/1"},
		{http.MethodPost, "/products/1"},
		{http.MethodPost, "/products-update/1"},
	}
	for i, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			name := fmt.Sprintf("Pen %d", i)
			rec, env := a.do(t, tc.method, tc.path, map[string]string{"name": name, "price": "19.99"})
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			p := decode[item](t, env.Data)
			assert.Equal(t, name, p.Name)
			assert.Equal(t, "19.99", p.Price)
		})
	}
}

func TestValidationFailuresAnswer422(t *testing.T) {
	a := boot(t, "memory")
	rec, _ := a.do(t, http.MethodPost, "/category", map[string]string{"category_name": "Shoes"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, env := a.do(t, http.MethodPost, "/client", map[string]string{
		"category_id":  "1",
		"client_name":  "Ada",
		"client_phone": "0123456789",
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "Validation failed", env.Message)
	assert.Equal(t, "The client_phone field must be 11 characters.", env.Errors["client_phone"])

	rec, env = a.do(t, http.MethodPost, "/products", map[string]string{"name": "Pen", "price": "abc"})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "The price field must be a number.", env.Errors["price"])

	rec, env = a.do(t, http.MethodPost, "/category", map[string]string{"category_name": "Docs"},
		uploadtest.File{Field: "image", Name: "notes.png", Data: []byte("plain text")})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "The image field must be an image.", env.Errors["image"])
	assert.Empty(t, a.mem.Paths())
}

func TestImageSizeBoundary(t *testing.T) {
	a := boot(t, "memory")

	at := uploadtest.File{Field: "image", Name: "at.png", Data: uploadtest.PNGOfSize(2048 * 1024)}
	rec, _ := a.do(t, http.MethodPost, "/category", map[string]string{"category_name": "At"}, at)
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	over := uploadtest.File{Field: "image", Name: "over.png", Data: uploadtest.PNGOfSize(2048*1024 + 1)}
	rec, env := a.do(t, http.MethodPost, "/category", map[string]string{"category_name": "Over"}, over)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "The image field must not be greater than 2048 kilobytes.", env.Errors["image"])
	assert.Len(t, a.mem.Paths(), 1)
}

func TestClientIndexCarriesCategories(t *testing.T) {
	a := boot(t, "memory")
	a.do(t, http.MethodPost, "/category", map[string]string{"category_name": "Retail"})
	rec, _ := a.do(t, http.MethodPost, "/client", map[string]string{
		"category_id":  "1",
		"client_name":  "Ada",
		"client_phone": "01234567890",
	}, image("ada.png"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec, env := a.do(t, http.MethodGet, "/client", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := decode[map[string][]item](t, env.Data)
	require.Len(t, data["clients"], 1)
	require.Len(t, data["categories"], 1)
	assert.Equal(t, "01234567890", data["clients"][0].ClientPhone)
	assert.EqualValues(t, 1, data["clients"][0].CategoryID)

	rec, env = a.do(t, http.MethodDelete, "/client/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data = decode[map[string][]item](t, env.Data)
	assert.Empty(t, data["clients"])
	assert.Len(t, data["categories"], 1)
	assert.Empty(t, a.mem.Paths())
}

func TestDestroyReturnsRemainingList(t *testing.T) {
	a := boot(t, "memory")
	a.do(t, http.MethodPost, "/products", map[string]string{"name": "Pen", "price": "1"})
	a.do(t, http.MethodPost, "/products", map[string]string{"name": "Ink", "price": "2"})

	rec, env := a.do(t, http.MethodDelete, "/products/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[map[string][]item](t, env.Data)["products"]
	require.Len(t, list, 1)
	assert.Equal(t, "Ink", list[0].Name)
	assert.Equal(t, "2.00", list[0].Price)
}

func TestMissingRowsAnswer404(t *testing.T) {
	a := boot(t, "memory")

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/category/99"},
		{http.MethodGet, "/category/abc"},
		{http.MethodDelete, "/client/7"},
		{http.MethodGet, "/nowhere"},
	} {
		rec, env := a.do(t, tc.method, tc.path, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code, tc.path)
		assert.Equal(t, "Not found", env.Message, tc.path)
	}

	rec, _ := a.do(t, http.MethodPut, "/products/5", map[string]string{"name": "Pen", "price": "1"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStorageFailureAnswers500(t *testing.T) {
	a := boot(t, "memory")
	a.mem.FailOn("put", errors.New("bucket unreachable"))

	rec, env := a.do(t, http.MethodPost, "/category", map[string]string{"category_name": "Shoes"}, image("shoe.png"))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Storage failure", env.Message)
	assert.NotContains(t, rec.Body.String(), "bucket unreachable")

	rec, env = a.do(t, http.MethodGet, "/category", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"categories":[]}`, string(env.Data))
}

func TestOversizedBodyAnswers400(t *testing.T) {
	a := boot(t, "memory", func(d *kernel.Deps) { d.Limits.MaxBodyBytes = 1024 })

	big := uploadtest.File{Field: "image", Name: "big.png", Data: uploadtest.PNGOfSize(8 * 1024)}
	rec, _ := a.do(t, http.MethodPost, "/category", map[string]string{"category_name": "Big"}, big)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, a.mem.Paths())
}

func TestAuthGuardsCatalogRoutesOnly(t *testing.T) {
	v, err := auth.NewValidator("test-secret")
	require.NoError(t, err)
	a := boot(t, "memory", func(d *kernel.Deps) { d.Auth = v })

	rec, _ := a.do(t, http.MethodGet, "/category", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = a.do(t, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	tok, err := v.Sign("admin", "admin", time.Minute)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/category", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w := httptest.NewRecorder()
	a.h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRolesNarrowTheGuard(t *testing.T) {
	v, err := auth.NewValidator("test-secret")
	require.NoError(t, err)
	a := boot(t, "memory", func(d *kernel.Deps) {
		d.Auth = v
		d.Roles = []string{"admin"}
	})

	for role, want := range map[string]int{"admin": http.StatusOK, "viewer": http.StatusForbidden} {
		tok, err := v.Sign("someone", role, time.Minute)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/products", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		w := httptest.NewRecorder()
		a.h.ServeHTTP(w, req)
		assert.Equal(t, want, w.Code, role)
	}
}

func TestOperationalEndpoints(t *testing.T) {
	a := boot(t, "memory")

	rec, env := a.do(t, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, string(env.Data))

	rec, _ = a.do(t, http.MethodGet, "/category", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec, _ = a.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), "backoffice_http_requests_total")

	rec, env = a.do(t, http.MethodDelete, "/category", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "Method not allowed", env.Message)
}

func TestNamedRoutes(t *testing.T) {
	a := boot(t, "memory")
	r := a.k.Router()

	for name, want := range map[string]string{
		"category.index":         "/category",
		"client.show":            "/client/{id}",
		"products.update":        "/products/{id}",
		"products.update.legacy": "/products-update/{id}",
		"health":                 "/healthz",
	} {
		got, ok := r.Path(name)
		require.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}

	u, err := r.URL("category.destroy", map[string]string{"id": "3"})
	require.NoError(t, err)
	assert.Equal(t, "/category/3", u)
}
