// Package container provides a type-keyed IoC (Inversion of Control)
// container with constructor auto-wiring for Go.
//
// # Overview
//
// The container manages singleton instances keyed by reflect.Type. Asking
// for a type builds it — and, recursively, every type its constructor
// depends on — exactly once per container lifetime. Circular dependency
// chains are detected before they corrupt the call stack, and any cached
// entry can be overridden up front (typically with a test double).
//
// Unlike a string-keyed service locator, resolution here is keyed purely by
// type identity: two distinct types that happen to share a name can never
// collide, and there are no named or tagged bindings.
//
// # Registering constructors
//
//	// A constructor is a func whose parameters are its dependencies.
//	// The first return value is the type key it provides.
//	c := container.New()
//	c.MustProvide(NewPartsCatalog)                  // func() *PartsCatalog
//	c.MustProvide(NewEngineBuilder)                 // func(*PartsCatalog) *EngineBuilder
//	c.MustProvide(NewCarService)                    // func(*EngineBuilder, *config.Config) (*CarService, error)
//
// # Resolving
//
//	// Untyped — key is a reflect.Type
//	raw, err := c.Get(container.KeyOf[*CarService]())
//
//	// Generic (preferred — no type assertion required)
//	svc, err := container.Resolve[*CarService](c)
//
//	// Or panic on failure, for composition roots
//	svc := container.MustResolve[*CarService](c)
//
// # Overriding
//
//	// Any future resolution of *Mailer — direct or as a dependency of
//	// another constructor — now receives the stub.
//	container.Supply[*Mailer](c, stubMailer)
//
//	// The untyped form accepts any instance for the key, so a value that
//	// merely satisfies the same contract can stand in for the real type.
//	c.Set(container.KeyOf[Notifier](), &fakeNotifier{})
//
// # Leaves and fallbacks
//
// A type with a zero-parameter constructor is a leaf. A struct or
// pointer-to-struct type with no registered constructor at all is also
// treated as a leaf and built from its zero value. Every other unregistered
// kind — interfaces, primitives, slices, maps — must be supplied via Set,
// otherwise resolution fails with *UnresolvableTypeError.
//
// # Errors
//
//	*CircularDependencyError  — the requested type transitively requires
//	                            itself; carries the discovered chain.
//	*UnresolvableTypeError    — a constructor parameter (or the requested
//	                            type itself) has no constructor, no
//	                            override, and no zero-value fallback.
//	*InvalidConstructorError  — Provide was handed something that is not a
//	                            usable constructor.
//
// A non-nil error returned by a constructor itself is never masked as a
// resolution error; it propagates to the Get caller as-is.
//
// # Concurrency
//
// The instance and constructor maps are guarded for concurrent reads and
// registration, but a resolution chain runs on a single goroutine: the
// build stack is not shared state. Register and resolve from one goroutine
// during bootstrap, then share the resolved instances freely.
package container
