package session

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/entrhq/pagekit/pkg/pom"
)

// UnregisteredTypeError reports a Resolve call for a page-object type that was
// never registered.
type UnregisteredTypeError struct {
	Type reflect.Type
}

func (e *UnregisteredTypeError) Error() string {
	return fmt.Sprintf("page object type %s is not registered", e.Type)
}

// Registry maps page-object types to their constructors. It replaces runtime
// type discovery with an explicit listing: adding a page object means adding
// one Register call. A registry is built once, is read-only afterwards, and
// may be shared by any number of concurrent sessions; construction always
// happens per session.
type Registry struct {
	ctors map[reflect.Type]func(*pom.Interactor) any
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{ctors: make(map[reflect.Type]func(*pom.Interactor) any)}
}

// Register adds a page-object constructor. Registering the same type twice is
// a programming error and panics, matching the build-once contract.
func Register[T any](r *Registry, ctor func(*pom.Interactor) T) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if _, exists := r.ctors[t]; exists {
		panic(fmt.Sprintf("session: page object type %s registered twice", t))
	}
	r.ctors[t] = func(ui *pom.Interactor) any { return ctor(ui) }
}

// Len returns the number of registered page-object types.
func (r *Registry) Len() int {
	return len(r.ctors)
}

// TypeNames returns the registered type names, sorted for stable output.
func (r *Registry) TypeNames() []string {
	names := make([]string, 0, len(r.ctors))
	for t := range r.ctors {
		names = append(names, t.String())
	}
	sort.Strings(names)
	return names
}

// construct builds a fresh instance for t, or fails with
// *UnregisteredTypeError.
func (r *Registry) construct(t reflect.Type, ui *pom.Interactor) (any, error) {
	ctor, ok := r.ctors[t]
	if !ok {
		return nil, &UnregisteredTypeError{Type: t}
	}
	return ctor(ui), nil
}

// typeName strips the pointer from a page-object type for logger naming:
// *pages.HomePage logs as "HomePage".
func typeName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}
