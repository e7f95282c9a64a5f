package container

import (
	"reflect"
)

// errType is the reflect.Type of the error interface, used to recognize
// constructors of the form func(deps...) (T, error).
var errType = reflect.TypeOf((*error)(nil)).Elem()

// ── Constructor descriptors ───────────────────────────────────────────────────

// descriptor is the build plan for one type key: its dependency list, in
// constructor declaration order, and the means of constructing it.
//
// A descriptor with an invalid ctor describes a zero-value struct leaf.
type descriptor struct {
	typ     reflect.Type
	ctor    reflect.Value
	params  []reflect.Type
	withErr bool
}

// leaf reports whether the type constructs without any dependencies.
func (d *descriptor) leaf() bool { return len(d.params) == 0 }

// descriptorFor derives the build plan for t.
//
// Discovery order:
//  1. a constructor registered via Provide
//  2. the deferred-provider fallback hook, then the registry again
//  3. the zero-value fallback for struct and pointer-to-struct kinds
//
// Anything else is unresolvable: the caller either overrides the type via
// Set or registers a constructor.
func (c *Container) descriptorFor(t reflect.Type) (*descriptor, error) {
	c.mu.RLock()
	ctor, ok := c.constructors[t]
	c.mu.RUnlock()

	if !ok && c.onMissing != nil && c.onMissing(t) {
		c.mu.RLock()
		ctor, ok = c.constructors[t]
		c.mu.RUnlock()
	}

	if ok {
		ft := ctor.Type()
		d := &descriptor{
			typ:     t,
			ctor:    ctor,
			withErr: ft.NumOut() == 2,
		}
		if n := ft.NumIn(); n > 0 {
			d.params = make([]reflect.Type, n)
			for i := 0; i < n; i++ {
				d.params[i] = ft.In(i)
			}
		}
		return d, nil
	}

	if isStructKind(t) {
		return &descriptor{typ: t}, nil
	}

	return nil, &UnresolvableTypeError{Type: t, Param: -1}
}

// construct invokes the plan with resolved arguments.
//
// A constructor error is returned untouched so callers can distinguish a
// failing constructor from a resolution failure.
func (d *descriptor) construct(args []reflect.Value) (any, error) {
	if !d.ctor.IsValid() {
		if d.typ.Kind() == reflect.Pointer {
			return reflect.New(d.typ.Elem()).Interface(), nil
		}
		return reflect.New(d.typ).Elem().Interface(), nil
	}

	out := d.ctor.Call(args)
	if d.withErr && !out[1].IsNil() {
		return nil, out[1].Interface().(error)
	}
	return out[0].Interface(), nil
}

// isStructKind reports whether t is a composite kind eligible for the
// zero-value leaf fallback.
func isStructKind(t reflect.Type) bool {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Kind() == reflect.Struct
}

// checkConstructor validates a value passed to Provide and returns its
// reflect.Value and type key.
func checkConstructor(ctor any) (reflect.Value, reflect.Type, error) {
	if ctor == nil {
		return reflect.Value{}, nil, &InvalidConstructorError{Reason: "nil"}
	}

	v := reflect.ValueOf(ctor)
	ft := v.Type()

	if ft.Kind() != reflect.Func {
		return reflect.Value{}, nil, &InvalidConstructorError{Ctor: ft, Reason: "not a function"}
	}
	if v.IsNil() {
		return reflect.Value{}, nil, &InvalidConstructorError{Ctor: ft, Reason: "nil function"}
	}
	if ft.IsVariadic() {
		return reflect.Value{}, nil, &InvalidConstructorError{Ctor: ft, Reason: "variadic constructors are not supported"}
	}

	switch ft.NumOut() {
	case 1:
		if ft.Out(0) == errType {
			return reflect.Value{}, nil, &InvalidConstructorError{Ctor: ft, Reason: "must return a value, not only an error"}
		}
	case 2:
		if ft.Out(1) != errType {
			return reflect.Value{}, nil, &InvalidConstructorError{Ctor: ft, Reason: "second return value must be error"}
		}
	default:
		return reflect.Value{}, nil, &InvalidConstructorError{Ctor: ft, Reason: "must return (T) or (T, error)"}
	}

	return v, ft.Out(0), nil
}
