package mobile

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHandlerServesAPIAndStatic(t *testing.T) {
	h := NewHandler(t.TempDir())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/ping", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("ping: %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/web/" {
		t.Fatalf("root redirect: %d %q", rec.Code, rec.Header().Get("Location"))
	}
}
