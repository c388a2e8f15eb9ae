package ffireflect

import (
	"reflect"
	"sync"

	"github.com/wippyai/ffi-reflect/decl"
	"github.com/wippyai/ffi-reflect/descriptor"
	"github.com/wippyai/ffi-reflect/resolve"
)

var (
	defaultResolver *resolve.Resolver
	defaultOnce     sync.Once
)

// Default returns the process-wide resolver used by the package functions.
func Default() *resolve.Resolver {
	defaultOnce.Do(func() {
		defaultResolver = resolve.NewWithDefaults()
	})
	return defaultResolver
}

// Register adds declarations to the default resolver.
func Register(decls ...*decl.Decl) error {
	return Default().Register(decls...)
}

// MustRegister is like Register but panics on error.
// Suited to package init functions.
func MustRegister(decls ...*decl.Decl) {
	Default().MustRegister(decls...)
}

// Reflect returns the descriptor of a type registered with the default resolver.
func Reflect(name string) (descriptor.Descriptor, error) {
	return Default().Derive(name)
}

// Of returns the descriptor of the declaration bound to T with decl.Bind.
func Of[T any]() (descriptor.Descriptor, error) {
	return Default().DeriveType(reflect.TypeFor[T]())
}

// MustOf is like Of but panics on error.
func MustOf[T any]() descriptor.Descriptor {
	d, err := Of[T]()
	if err != nil {
		panic(err)
	}
	return d
}
