package routing_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/km-arc/go-autowire/config"
	"github.com/km-arc/go-autowire/routing"
)

// ── helpers ──────────────────────────────────────────────────────────────────

func quietConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Debug = false
	return cfg
}

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func do(t *testing.T, router *routing.Router, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

// ── HTTP verbs ────────────────────────────────────────────────────────────────

func TestRouter_Get(t *testing.T) {
	r := routing.New(quietConfig())
	r.Get("/hello", okHandler)

	rr := do(t, r, http.MethodGet, "/hello")
	if rr.Code != http.StatusOK {
		t.Errorf("GET /hello: got %d want 200", rr.Code)
	}
}

func TestRouter_Post(t *testing.T) {
	r := routing.New(quietConfig())
	r.Post("/cars", okHandler)

	rr := do(t, r, http.MethodPost, "/cars")
	if rr.Code != http.StatusOK {
		t.Errorf("POST /cars: got %d want 200", rr.Code)
	}
}

func TestRouter_MethodNotRegistered(t *testing.T) {
	r := routing.New(quietConfig())
	r.Get("/hello", okHandler)

	rr := do(t, r, http.MethodDelete, "/hello")
	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("DELETE /hello: got %d want 405", rr.Code)
	}
}

// ── Params ────────────────────────────────────────────────────────────────────

func TestRouter_Param(t *testing.T) {
	r := routing.New(quietConfig())
	r.Get("/cars/{id}", func(w http.ResponseWriter, req *http.Request) {
		_, _ = w.Write([]byte(routing.Param(req, "id")))
	})

	rr := do(t, r, http.MethodGet, "/cars/42")
	if rr.Body.String() != "42" {
		t.Errorf("param id: got %q want %q", rr.Body.String(), "42")
	}
}

// ── Groups & Prefixes ─────────────────────────────────────────────────────────

func TestRouter_Prefix(t *testing.T) {
	r := routing.New(quietConfig())
	r.Prefix("/api/v1", func(api *routing.Router) {
		api.Get("/cars", okHandler)
	})

	if rr := do(t, r, http.MethodGet, "/api/v1/cars"); rr.Code != http.StatusOK {
		t.Errorf("GET /api/v1/cars: got %d want 200", rr.Code)
	}
	if rr := do(t, r, http.MethodGet, "/cars"); rr.Code != http.StatusNotFound {
		t.Errorf("GET /cars outside prefix: got %d want 404", rr.Code)
	}
}

func TestRouter_GroupMiddleware(t *testing.T) {
	r := routing.New(quietConfig())

	marker := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("X-Group", "yes")
			next.ServeHTTP(w, req)
		})
	}

	r.Group(func(g *routing.Router) {
		g.Middleware(marker)
		g.Get("/inside", okHandler)
	})
	r.Get("/outside", okHandler)

	if rr := do(t, r, http.MethodGet, "/inside"); rr.Header().Get("X-Group") != "yes" {
		t.Error("group middleware should apply inside the group")
	}
	if rr := do(t, r, http.MethodGet, "/outside"); rr.Header().Get("X-Group") != "" {
		t.Error("group middleware should not leak outside the group")
	}
}

// ── Recovery ──────────────────────────────────────────────────────────────────

func TestRouter_RecoversFromPanics(t *testing.T) {
	r := routing.New(quietConfig())
	r.Get("/boom", func(w http.ResponseWriter, req *http.Request) {
		panic("handler exploded")
	})

	rr := do(t, r, http.MethodGet, "/boom")
	if rr.Code != http.StatusInternalServerError {
		t.Errorf("GET /boom: got %d want 500", rr.Code)
	}
}
