package container

import "reflect"

// ── ServiceProvider interface ─────────────────────────────────────────────────

// ServiceProvider groups related constructor registrations behind a single
// bootable unit.
//
// Every provider must implement at minimum Register().
// Boot() is called after ALL providers have been registered, making it safe
// to resolve other registrations inside Boot().
//
//	type AppProvider struct{ container.BaseProvider }
//
//	func (p *AppProvider) Register(app *container.Container) {
//	    app.MustProvide(NewMailer)          // func(*config.Config) *Mailer
//	}
//
//	func (p *AppProvider) Boot(app *container.Container) {
//	    mailer := container.MustResolve[*Mailer](app)
//	    mailer.Warm()
//	}
type ServiceProvider interface {
	// Register binds constructors into the container.
	// Do NOT resolve other registrations here — use Boot() for that.
	Register(app *Container)

	// Boot is called after all providers are registered.
	// Safe to resolve and use any registration here.
	Boot(app *Container)

	// Provides returns the type keys this provider registers.
	// Used for deferred (lazy) provider loading.
	// Return nil / empty slice if the provider is always eager.
	Provides() []reflect.Type

	// IsDeferred returns true if this provider should be loaded lazily —
	// only when one of its Provides() keys is first resolved.
	IsDeferred() bool
}

// ── BaseProvider ──────────────────────────────────────────────────────────────

// BaseProvider is an embeddable struct that provides no-op implementations
// of Boot(), Provides(), and IsDeferred().
// Embed it in your provider and only override what you need.
//
//	type MyProvider struct{ container.BaseProvider }
//	func (p *MyProvider) Register(app *container.Container) { ... }
type BaseProvider struct{}

func (p *BaseProvider) Boot(_ *Container)        {}
func (p *BaseProvider) Provides() []reflect.Type { return nil }
func (p *BaseProvider) IsDeferred() bool         { return false }

// ── ProviderRegistry ──────────────────────────────────────────────────────────

// ProviderRegistry manages registration and booting of ServiceProviders,
// including deferred (lazy) providers.
//
// Deferred providers are loaded through the container's missing-type
// fallback: the first resolution of one of their Provides() keys triggers
// real registration (and Boot, if the registry is already booted). This
// keeps the container's cycle detector out of the loading path — a
// self-resolving placeholder binding would trip it.
type ProviderRegistry struct {
	app        *Container
	eager      []ServiceProvider
	deferred   map[reflect.Type]ServiceProvider
	booted     bool
	registered map[ServiceProvider]bool
}

// NewProviderRegistry creates a registry bound to app and installs its
// deferred-loading hook on the container. One registry per container.
func NewProviderRegistry(app *Container) *ProviderRegistry {
	r := &ProviderRegistry{
		app:        app,
		deferred:   make(map[reflect.Type]ServiceProvider),
		registered: make(map[ServiceProvider]bool),
	}
	app.onMissing = r.loadDeferred
	return r
}

// Register adds a provider and calls its Register() method (unless deferred).
func (r *ProviderRegistry) Register(provider ServiceProvider) {
	if r.registered[provider] {
		return
	}
	r.registered[provider] = true

	if provider.IsDeferred() {
		for _, key := range provider.Provides() {
			r.deferred[key] = provider
		}
		return
	}

	provider.Register(r.app)
	r.eager = append(r.eager, provider)

	// If already booted, boot this provider immediately
	if r.booted {
		provider.Boot(r.app)
	}
}

// loadDeferred is the container's missing-type fallback. It registers the
// deferred provider owning key, if any, and reports whether it did.
func (r *ProviderRegistry) loadDeferred(key reflect.Type) bool {
	provider, ok := r.deferred[key]
	if !ok {
		return false
	}

	for _, k := range provider.Provides() {
		delete(r.deferred, k)
	}

	provider.Register(r.app)
	r.eager = append(r.eager, provider)
	if r.booted {
		provider.Boot(r.app)
	}
	return true
}

// Boot calls Boot() on all eager providers.
// Must be called after ALL providers have been registered.
func (r *ProviderRegistry) Boot() {
	if r.booted {
		return
	}
	r.booted = true
	for _, provider := range r.eager {
		provider.Boot(r.app)
	}
}

// Booted returns true if Boot() has been called.
func (r *ProviderRegistry) Booted() bool { return r.booted }

// Providers returns all providers registered so far (deferred ones only
// once loaded).
func (r *ProviderRegistry) Providers() []ServiceProvider { return r.eager }
