package app

import (
	"reflect"

	"github.com/km-arc/go-autowire/config"
	"github.com/km-arc/go-autowire/container"
	"github.com/km-arc/go-autowire/routing"
)

// ── ConfigProvider ────────────────────────────────────────────────────────────

// ConfigProvider loads the application configuration from .env and the
// environment and registers it under the *config.Config key.
type ConfigProvider struct {
	container.BaseProvider
	EnvFiles []string
}

func (p *ConfigProvider) Register(app *container.Container) {
	envFiles := p.EnvFiles
	app.MustProvide(func() *config.Config {
		return config.Load(envFiles...)
	})
}

// ── RoutingProvider ───────────────────────────────────────────────────────────

// RoutingProvider registers the HTTP router. It is deferred: apps that
// never touch the router (CLI tools, tests) never construct one.
type RoutingProvider struct {
	container.BaseProvider
}

func (p *RoutingProvider) Register(app *container.Container) {
	app.MustProvide(routing.New)
}

func (p *RoutingProvider) IsDeferred() bool { return true }

func (p *RoutingProvider) Provides() []reflect.Type {
	return []reflect.Type{container.KeyOf[*routing.Router]()}
}
