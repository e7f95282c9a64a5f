package main

import (
	"log"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/km-arc/go-autowire/app"
	"github.com/km-arc/go-autowire/container"
	"github.com/km-arc/go-autowire/httpkit"
	"github.com/km-arc/go-autowire/routing"
)

func main() {
	application := app.New() // loads .env on first config resolution

	// ── Register the service graph ───────────────────────────────────────────
	//
	// Only constructors are declared here; the container works out the
	// build order. CarService needs EngineBuilder needs PartsCatalog, and
	// *config.Config comes from the kernel's ConfigProvider.

	application.MustProvide(
		NewPartsCatalog,
		NewEngineBuilder,
		NewCarService,
	)

	// Swap a dependency before anything resolves — e.g. a fixed catalog for
	// a staging environment:
	//
	//	container.Supply[*PartsCatalog](application.Container, stubCatalog)

	application.Boot()

	cars := container.MustResolve[*CarService](application.Container)

	// ── Routes ───────────────────────────────────────────────────────────────

	r := application.Router()

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		httpkit.NewResponse(w).Success(map[string]any{"status": "ok"})
	})

	r.Prefix("/api/v1", func(api *routing.Router) {

		// GET /api/v1/cars
		api.Get("/cars", func(w http.ResponseWriter, req *http.Request) {
			httpkit.NewResponse(w).Success(cars.List())
		})

		// POST /api/v1/cars/{model}
		api.Post("/cars/{model}", func(w http.ResponseWriter, req *http.Request) {
			res := httpkit.NewResponse(w)

			model := routing.Param(req, "model")
			car, err := cars.Build(model)
			if err != nil {
				res.Error(http.StatusUnprocessableEntity, err.Error())
				return
			}
			res.Created(car)
		})

		// GET /api/v1/cars/{model}
		api.Get("/cars/{model}", func(w http.ResponseWriter, req *http.Request) {
			res := httpkit.NewResponse(w)

			car, ok := cars.Find(routing.Param(req, "model"))
			if !ok {
				res.NotFound("unknown model")
				return
			}
			res.Success(car)
		})
	})

	if err := application.Run(); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// ── Demo service graph ────────────────────────────────────────────────────────

// PartsCatalog knows which parts each engine model needs. Leaf dependency.
type PartsCatalog struct {
	parts map[string][]string
}

func NewPartsCatalog() *PartsCatalog {
	return &PartsCatalog{parts: map[string][]string{
		"v6":       {"block-v6", "crankshaft", "pistons-6"},
		"v8":       {"block-v8", "crankshaft", "pistons-8"},
		"electric": {"stator", "rotor", "inverter"},
	}}
}

// For returns the parts list for a model, or nil if unknown.
func (p *PartsCatalog) For(model string) []string {
	return p.parts[strings.ToLower(model)]
}

// Models returns the known engine models, sorted.
func (p *PartsCatalog) Models() []string {
	out := make([]string, 0, len(p.parts))
	for m := range p.parts {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// Engine is an assembled engine.
type Engine struct {
	Model string   `json:"model"`
	Parts []string `json:"parts"`
}

// EngineBuilder assembles engines from catalog parts.
type EngineBuilder struct {
	catalog *PartsCatalog
}

func NewEngineBuilder(catalog *PartsCatalog) *EngineBuilder {
	return &EngineBuilder{catalog: catalog}
}

// Build assembles an engine, or reports false for an unknown model.
func (b *EngineBuilder) Build(model string) (Engine, bool) {
	parts := b.catalog.For(model)
	if parts == nil {
		return Engine{}, false
	}
	return Engine{Model: model, Parts: parts}, true
}

// Car is a built car.
type Car struct {
	Model  string `json:"model"`
	Engine Engine `json:"engine"`
}

// CarService builds and tracks cars. The container hands the same instance
// to every HTTP handler, so the built list is guarded for concurrent
// requests.
type CarService struct {
	engines *EngineBuilder
	catalog *PartsCatalog

	mu    sync.RWMutex
	built []Car
}

func NewCarService(engines *EngineBuilder, catalog *PartsCatalog) *CarService {
	return &CarService{engines: engines, catalog: catalog}
}

// Build assembles a car for the given engine model.
func (s *CarService) Build(model string) (Car, error) {
	engine, ok := s.engines.Build(model)
	if !ok {
		return Car{}, &UnknownModelError{Model: model, Known: s.catalog.Models()}
	}
	car := Car{Model: model, Engine: engine}

	s.mu.Lock()
	s.built = append(s.built, car)
	s.mu.Unlock()

	return car, nil
}

// Find returns the most recently built car for a model.
func (s *CarService) Find(model string) (Car, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := len(s.built) - 1; i >= 0; i-- {
		if s.built[i].Model == model {
			return s.built[i], true
		}
	}
	return Car{}, false
}

// List returns a snapshot of every car built so far.
func (s *CarService) List() []Car {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Car, len(s.built))
	copy(out, s.built)
	return out
}

// UnknownModelError is returned by CarService.Build for models the catalog
// does not know.
type UnknownModelError struct {
	Model string
	Known []string
}

func (e *UnknownModelError) Error() string {
	return "unknown engine model " + e.Model + " (known: " + strings.Join(e.Known, ", ") + ")"
}
