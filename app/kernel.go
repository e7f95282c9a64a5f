// Package app bootstraps an application around the IoC container: core
// providers, the provider registry, and the HTTP server lifecycle.
package app

import (
	"fmt"
	"net/http"

	"github.com/km-arc/go-autowire/config"
	"github.com/km-arc/go-autowire/container"
	"github.com/km-arc/go-autowire/routing"
)

// Application is the top-level application kernel.
// It embeds the IoC Container so user code can call app.MustProvide(),
// app.Set(), app.Get() directly, and owns the ProviderRegistry.
type Application struct {
	*container.Container
	Providers *container.ProviderRegistry
}

// New creates and bootstraps the application.
//
//	application := app.New()
//	application.MustProvide(NewCarService)
//	application.Boot()
func New(envFiles ...string) *Application {
	c := container.New()
	registry := container.NewProviderRegistry(c)

	a := &Application{
		Container: c,
		Providers: registry,
	}

	// Core providers: config is eager, routing loads on first resolution.
	registry.Register(&ConfigProvider{EnvFiles: envFiles})
	registry.Register(&RoutingProvider{})

	return a
}

// Register adds a ServiceProvider to the application.
func (a *Application) Register(provider container.ServiceProvider) {
	a.Providers.Register(provider)
}

// Boot runs the Boot() phase on all eager providers.
func (a *Application) Boot() {
	a.Providers.Boot()
}

// Config resolves *config.Config from the container.
func (a *Application) Config() *config.Config {
	return container.MustResolve[*config.Config](a.Container)
}

// Router resolves *routing.Router from the container.
func (a *Application) Router() *routing.Router {
	return container.MustResolve[*routing.Router](a.Container)
}

// Run boots the application (if needed) and starts the HTTP server.
// It blocks until the server stops.
func (a *Application) Run() error {
	if !a.Providers.Booted() {
		a.Boot()
	}

	cfg := a.Config()
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      a.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	fmt.Printf("%s listening on %s [%s]\n", cfg.App.Name, srv.Addr, cfg.App.Env)
	return srv.ListenAndServe()
}
