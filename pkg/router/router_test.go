package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/backoffice/pkg/router"
)

func ok(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte(body)) }
}

func serve(r *router.Router, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestVerbsAndNames(t *testing.T) {
	r := router.New()
	g := r.Group("/products")
	g.Get("/", "products.index", ok("index"))
	g.Put("/{id}", "products.update", ok("put"))
	g.Patch("/{id}", "", ok("patch"))
	g.Delete("/{id}", "products.destroy", ok("delete"))

	assert.Equal(t, "index", serve(r, http.MethodGet, "/products").Body.String())
	assert.Equal(t, "put", serve(r, http.MethodPut, "/products/3").Body.String())
	assert.Equal(t, "patch", serve(r, http.MethodPatch, "/products/3").Body.String())
	assert.Equal(t, "delete", serve(r, http.MethodDelete, "/products/3").Body.String())

	url, err := r.URL("products.update", map[string]string{"id": "9"})
	require.NoError(t, err)
	assert.Equal(t, "/products/9", url)

	_, err = r.URL("products.update", nil)
	assert.Error(t, err)

	routes := r.Routes()
	require.Len(t, routes, 4)
	assert.Equal(t, router.Route{Method: http.MethodPatch, Path: "/products/{id}"}, routes[2])
}

func TestGroupMiddlewareOrder(t *testing.T) {
	var order []string
	mw := func(tag string) router.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, tag)
				next.ServeHTTP(w, r)
			})
		}
	}

	r := router.New()
	r.Group("/a", mw("outer")).Group("/b", mw("inner")).Get("/c", "", ok("c"), mw("route"))

	assert.Equal(t, "c", serve(r, http.MethodGet, "/a/b/c").Body.String())
	assert.Equal(t, []string{"outer", "inner", "route"}, order)
}

func TestMountAndFallbacks(t *testing.T) {
	r := router.New()
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusTeapot) })
	r.Mount("/storage", "storage", http.StripPrefix("/storage", ok("file")))

	assert.Equal(t, "file", serve(r, http.MethodGet, "/storage/x/y.png").Body.String())
	assert.Equal(t, http.StatusTeapot, serve(r, http.MethodGet, "/nope").Code)

	p, found := r.Path("storage")
	assert.True(t, found)
	assert.Equal(t, "/storage/*", p)
}
