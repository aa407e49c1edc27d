package reqid_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/backoffice/pkg/reqid"
)

func serve(t *testing.T, inbound string) (seen string, rec *httptest.ResponseRecorder) {
	t.Helper()
	h := reqid.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = reqid.FromCtx(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if inbound != "" {
		req.Header.Set(reqid.Header, inbound)
	}
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return seen, rec
}

func TestGeneratesID(t *testing.T) {
	seen, rec := serve(t, "")
	assert.Len(t, seen, 32)
	assert.Equal(t, seen, rec.Header().Get(reqid.Header))
}

func TestReusesUpstreamID(t *testing.T) {
	seen, _ := serve(t, "gateway-42")
	assert.Equal(t, "gateway-42", seen)
}

func TestRejectsOversizedUpstreamID(t *testing.T) {
	seen, _ := serve(t, strings.Repeat("x", 200))
	assert.Len(t, seen, 32)
}
