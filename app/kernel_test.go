package app_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-autowire/app"
	"github.com/km-arc/go-autowire/config"
	"github.com/km-arc/go-autowire/container"
	"github.com/km-arc/go-autowire/routing"
)

// TestNew_ConfigResolvable verifies the kernel registers the config provider.
func TestNew_ConfigResolvable(t *testing.T) {
	t.Setenv("APP_NAME", "kernel-test")
	t.Setenv("APP_DEBUG", "false")

	application := app.New("testdata/nonexistent.env")
	application.Boot()

	cfg := application.Config()
	require.NotNil(t, cfg)
	assert.Equal(t, "kernel-test", cfg.App.Name)
}

// TestNew_RouterIsDeferredSingleton verifies the router is built lazily and
// cached.
func TestNew_RouterIsDeferredSingleton(t *testing.T) {
	t.Setenv("APP_DEBUG", "false")

	application := app.New("testdata/nonexistent.env")
	application.Boot()

	routerKey := container.KeyOf[*routing.Router]()
	assert.False(t, application.Resolved(routerKey), "router should not exist before first use")

	first := application.Router()
	assert.True(t, application.Resolved(routerKey))
	assert.Same(t, first, application.Router())
}

// TestApplication_ServicesSeeKernelConfig verifies user constructors receive
// the same config singleton the kernel resolves.
func TestApplication_ServicesSeeKernelConfig(t *testing.T) {
	t.Setenv("APP_NAME", "fleet")
	t.Setenv("APP_DEBUG", "false")

	type banner struct{ text string }

	application := app.New("testdata/nonexistent.env")
	application.MustProvide(func(cfg *config.Config) *banner {
		return &banner{text: cfg.App.Name}
	})
	application.Boot()

	b := container.MustResolve[*banner](application.Container)
	assert.Equal(t, "fleet", b.text)
	assert.Same(t, application.Config(), container.MustResolve[*config.Config](application.Container))
}

// TestApplication_ConfigOverrideBeforeBoot verifies a Set override preempts
// the provider's auto-constructed config for all dependents.
func TestApplication_ConfigOverrideBeforeBoot(t *testing.T) {
	application := app.New("testdata/nonexistent.env")

	stub := &config.Config{}
	stub.App.Name = "stubbed"
	stub.App.Debug = false
	container.Supply[*config.Config](application.Container, stub)

	application.Boot()

	assert.Same(t, stub, application.Config())
}

// TestApplication_RouterServesRoutes wires a route through the kernel's
// router and exercises it end to end.
func TestApplication_RouterServesRoutes(t *testing.T) {
	t.Setenv("APP_DEBUG", "false")

	application := app.New("testdata/nonexistent.env")
	application.Boot()

	r := application.Router()
	r.Get("/ping", func(w http.ResponseWriter, req *http.Request) {
		_, _ = w.Write([]byte("pong"))
	})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "pong", rr.Body.String())
}
