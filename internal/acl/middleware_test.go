// internal/acl/middleware_test.go
//
// Unit-tests for the RequireLogin guard.
//
// Run: go test ./internal/acl -v

package acl

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/yanizio/folio/internal/auth"
)

func TestRequireLogin_Anonymous(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true })

	for _, m := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		req := httptest.NewRequest(m, "/blogs/abc/edit", nil)
		rr := httptest.NewRecorder()

		RequireLogin("/blogs/login")(next).ServeHTTP(rr, req)

		if rr.Code != http.StatusSeeOther {
			t.Fatalf("%s status = %d, want 303", m, rr.Code)
		}
		if loc := rr.Header().Get("Location"); loc != "/blogs/login" {
			t.Fatalf("%s Location = %q", m, loc)
		}
	}
	if called {
		t.Fatal("guarded handler ran for anonymous request")
	}
}

func TestRequireLogin_Authenticated(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/blogs/abc/edit", nil)
	req = req.WithContext(auth.WithUser(req.Context(), &auth.Identity{ID: "1"}))
	rr := httptest.NewRecorder()

	RequireLogin("/blogs/login")(next).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
}
