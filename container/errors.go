package container

import (
	"reflect"
	"strconv"
	"strings"
)

// ── Resolution errors ─────────────────────────────────────────────────────────

// CircularDependencyError is returned by Get when resolving a type requires,
// transitively, resolving that same type again before its first construction
// has completed.
//
// Chain holds the discovered cycle in resolution order; the first and last
// entries are the same type.
type CircularDependencyError struct {
	Chain []reflect.Type
}

// Error implements the error interface.
func (e *CircularDependencyError) Error() string {
	// Example: container: circular dependency: *main.A -> *main.B -> *main.A
	var b strings.Builder
	b.WriteString("container: circular dependency: ")
	for i, t := range e.Chain {
		if i > 0 {
			b.WriteString(" -> ")
		}
		b.WriteString(t.String())
	}
	return b.String()
}

// UnresolvableTypeError is returned by Get when a type cannot be built:
// it has no registered constructor, no override, and is not a struct kind
// eligible for the zero-value fallback.
//
// When the type was reached as a constructor parameter, Parent names the
// type whose constructor declared it and Param is the parameter position;
// otherwise Parent is nil and Param is -1.
type UnresolvableTypeError struct {
	Type   reflect.Type
	Parent reflect.Type
	Param  int
}

// Error implements the error interface.
func (e *UnresolvableTypeError) Error() string {
	// Example: container: cannot resolve int (parameter 0 of *main.Server):
	// no constructor registered and no override set
	var b strings.Builder
	b.WriteString("container: cannot resolve ")
	b.WriteString(e.Type.String())
	if e.Parent != nil {
		b.WriteString(" (parameter ")
		b.WriteString(strconv.Itoa(e.Param))
		b.WriteString(" of ")
		b.WriteString(e.Parent.String())
		b.WriteString(")")
	}
	b.WriteString(": no constructor registered and no override set")
	return b.String()
}

// IncompatibleInstanceError is returned when a cached instance — typically
// one supplied via Set — does not satisfy the type it is retrieved or
// injected as.
type IncompatibleInstanceError struct {
	// Type is the key the instance was cached under.
	Type reflect.Type

	// Got is the dynamic type of the cached instance; nil for a nil instance.
	Got reflect.Type
}

// Error implements the error interface.
func (e *IncompatibleInstanceError) Error() string {
	// Example: container: instance for main.Notifier has incompatible type *main.Logger
	got := "<nil>"
	if e.Got != nil {
		got = e.Got.String()
	}
	return "container: instance for " + e.Type.String() + " has incompatible type " + got
}

// ── Registration errors ───────────────────────────────────────────────────────

// InvalidConstructorError is returned by Provide when the given value is not
// a usable constructor function.
type InvalidConstructorError struct {
	Ctor   reflect.Type
	Reason string
}

// Error implements the error interface.
func (e *InvalidConstructorError) Error() string {
	// Example: container: invalid constructor func(int): must return a value
	got := "<nil>"
	if e.Ctor != nil {
		got = e.Ctor.String()
	}
	return "container: invalid constructor " + got + ": " + e.Reason
}
