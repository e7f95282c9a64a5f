package container

import (
	"errors"
	"reflect"
	"sync"
)

// ── Container ─────────────────────────────────────────────────────────────────

// Container is the type-keyed IoC container.
//
// It holds exactly two pieces of resolution state:
//   - the instance cache: one singleton per type key for the container's
//     lifetime, populated by Set or by successful construction inside Get
//   - the build stack: the types currently under construction, consulted
//     only to detect circular dependency chains and empty between
//     top-level Get calls
//
// plus the constructor registry that descriptors are derived from.
type Container struct {
	mu sync.RWMutex

	// type key → constructor func (Provide)
	constructors map[reflect.Type]reflect.Value

	// type key → resolved singleton instance
	instances map[reflect.Type]any

	// types currently being constructed; membership set + ordered stack
	// so cycle errors can report the discovered chain
	building   map[reflect.Type]bool
	buildStack []reflect.Type

	// fallback consulted when no constructor is registered for a type;
	// returns true if it registered one (deferred providers)
	onMissing func(reflect.Type) bool
}

// New creates an empty container.
func New() *Container {
	c := &Container{
		constructors: make(map[reflect.Type]reflect.Value),
		instances:    make(map[reflect.Type]any),
		building:     make(map[reflect.Type]bool),
	}
	// The container resolves itself, so constructors can declare a
	// *Container parameter.
	c.instances[reflect.TypeOf(c)] = c
	return c
}

// ── Registration ──────────────────────────────────────────────────────────────

// Provide registers a constructor function.
//
// ctor must be a non-variadic func returning (T) or (T, error); its
// parameters are the dependencies resolved — recursively — when T is first
// requested. The type key is the first return type.
//
// Registering a second constructor for the same key replaces the first and
// drops any instance already cached for it, so the key is rebuilt with the
// new constructor on next Get.
func (c *Container) Provide(ctor any) error {
	v, key, err := checkConstructor(ctor)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.instances, key)
	c.constructors[key] = v
	return nil
}

// MustProvide is like Provide but panics on an invalid constructor.
// Intended for composition roots where registration failure is fatal.
func (c *Container) MustProvide(ctors ...any) {
	for _, ctor := range ctors {
		if err := c.Provide(ctor); err != nil {
			panic(err)
		}
	}
}

// Set unconditionally caches instance as the singleton for key.
//
// The instance need not be of the key's type: anything satisfying the same
// usage contract (a stub, a decorated wrapper) can stand in, which is the
// primary hook for tests. A mismatch surfaces later as
// *IncompatibleInstanceError when the entry is injected or resolved through
// a typed accessor.
//
// Set never fails. Every future Get for key returns instance until the key
// is Set again — including Gets triggered while resolving other types'
// dependencies.
func (c *Container) Set(key reflect.Type, instance any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.instances[key] = instance
}

// ── Resolution ────────────────────────────────────────────────────────────────

// Get returns the singleton instance for key, constructing it — and,
// recursively, its whole dependency graph — on first request.
//
// Errors:
//   - *CircularDependencyError if key transitively depends on itself
//     through a chain of not-yet-cached types
//   - *UnresolvableTypeError if key, or a constructor parameter reached
//     along the way, has no constructor, no override, and no zero-value
//     fallback
//   - any non-nil error returned by a constructor, unwrapped
//
// A failed build caches nothing — neither key nor its partially resolved
// ancestors — and leaves the container fully usable, so an override via
// Set followed by a retry is supported.
func (c *Container) Get(key reflect.Type) (any, error) {
	return c.get(key)
}

// get is the internal recursive resolver.
func (c *Container) get(key reflect.Type) (any, error) {
	c.mu.RLock()
	inst, ok := c.instances[key]
	c.mu.RUnlock()
	if ok {
		return inst, nil
	}

	inst, err := c.build(key)
	if err != nil {
		return nil, err
	}

	c.Set(key, inst)
	return inst, nil
}

// build constructs one instance of key.
func (c *Container) build(key reflect.Type) (any, error) {
	d, err := c.descriptorFor(key)
	if err != nil {
		return nil, err
	}

	// Zero-dependency fast path: leaves never touch the build stack.
	if d.leaf() {
		return d.construct(nil)
	}

	if c.building[key] {
		// Report the cycle from the first occurrence of key, so the chain
		// starts and ends with the same type.
		start := 0
		for i, t := range c.buildStack {
			if t == key {
				start = i
				break
			}
		}
		chain := make([]reflect.Type, 0, len(c.buildStack)-start+1)
		chain = append(chain, c.buildStack[start:]...)
		return nil, &CircularDependencyError{Chain: append(chain, key)}
	}

	c.building[key] = true
	c.buildStack = append(c.buildStack, key)
	// The marker must go away on every exit path — success, typed failure,
	// or a panicking constructor — or a later unrelated Get for this key
	// would falsely report a cycle.
	defer func() {
		delete(c.building, key)
		c.buildStack = c.buildStack[:len(c.buildStack)-1]
	}()

	args := make([]reflect.Value, len(d.params))
	for i, p := range d.params {
		dep, err := c.get(p)
		if err != nil {
			var unres *UnresolvableTypeError
			if errors.As(err, &unres) && unres.Parent == nil {
				unres.Parent = key
				unres.Param = i
			}
			return nil, err
		}

		arg, ok := argValue(dep, p)
		if !ok {
			return nil, &IncompatibleInstanceError{Type: p, Got: reflect.TypeOf(dep)}
		}
		args[i] = arg
	}

	return d.construct(args)
}

// argValue adapts a resolved instance to a constructor parameter type.
func argValue(dep any, param reflect.Type) (reflect.Value, bool) {
	if dep == nil {
		// Only nilable kinds can carry an untyped nil override.
		switch param.Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map,
			reflect.Chan, reflect.Func:
			return reflect.Zero(param), true
		}
		return reflect.Value{}, false
	}

	v := reflect.ValueOf(dep)
	if !v.Type().AssignableTo(param) {
		return reflect.Value{}, false
	}
	if v.Type() != param {
		// e.g. a concrete stub standing in for an interface parameter
		converted := reflect.New(param).Elem()
		converted.Set(v)
		return converted, true
	}
	return v, true
}

// ── Introspection & teardown ──────────────────────────────────────────────────

// Resolved reports whether an instance is cached for key.
func (c *Container) Resolved(key reflect.Type) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.instances[key]
	return ok
}

// Provided reports whether a constructor is registered for key.
func (c *Container) Provided(key reflect.Type) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.constructors[key]
	return ok
}

// Keys returns every type key with a cached instance or a registered
// constructor (for debugging).
func (c *Container) Keys() []reflect.Type {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]reflect.Type, 0, len(c.instances)+len(c.constructors))
	for k := range c.instances {
		out = append(out, k)
	}
	for k := range c.constructors {
		if _, cached := c.instances[k]; !cached {
			out = append(out, k)
		}
	}
	return out
}

// Forget removes the cached instance and constructor for key.
// Primarily useful in tests; resolved values already handed out are
// unaffected.
func (c *Container) Forget(key reflect.Type) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.instances, key)
	delete(c.constructors, key)
}

// Flush resets the container to its initial state.
func (c *Container) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.constructors = make(map[reflect.Type]reflect.Value)
	c.instances = make(map[reflect.Type]any)
	c.building = make(map[reflect.Type]bool)
	c.buildStack = nil
	c.instances[reflect.TypeOf(c)] = c
}

// ── Generics helpers ──────────────────────────────────────────────────────────

// KeyOf returns the type key for T. It works for interface type parameters
// as well as concrete ones.
//
//	key := container.KeyOf[Notifier]()
//	c.Set(key, stub)
func KeyOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Resolve resolves T from the container and type-asserts the result.
//
//	svc, err := container.Resolve[*CarService](c)
func Resolve[T any](c *Container) (T, error) {
	var zero T
	key := KeyOf[T]()

	inst, err := c.Get(key)
	if err != nil {
		return zero, err
	}

	typed, ok := inst.(T)
	if !ok {
		return zero, &IncompatibleInstanceError{Type: key, Got: reflect.TypeOf(inst)}
	}
	return typed, nil
}

// MustResolve is like Resolve but panics on failure.
func MustResolve[T any](c *Container) T {
	v, err := Resolve[T](c)
	if err != nil {
		panic(err)
	}
	return v
}

// Supply is the typed shorthand for Set: it caches v as the singleton
// for T's key.
//
//	container.Supply[*config.Config](c, cfg)
func Supply[T any](c *Container, v T) {
	c.Set(KeyOf[T](), v)
}
