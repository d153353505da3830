package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"crowdfund/internal/domain"
)

func TestPrincipalFromHeader(t *testing.T) {
	var got domain.Principal
	h := Principal(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = PrincipalFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(PrincipalHeader, "alice")
	h.ServeHTTP(httptest.NewRecorder(), req)

	if got != "alice" {
		t.Fatalf("principal = %q, want alice", got)
	}
}

func TestPrincipalMissingHeaderIsAnonymous(t *testing.T) {
	var got domain.Principal
	h := Principal(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = PrincipalFromContext(r.Context())
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if got != "" {
		t.Fatalf("principal = %q, want empty", got)
	}
}

func TestPrincipalFromContextWithoutMiddleware(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := PrincipalFromContext(req.Context()); got != "" {
		t.Fatalf("principal = %q, want empty", got)
	}
}
