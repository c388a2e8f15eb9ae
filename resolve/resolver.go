package resolve

import (
	"math"
	"reflect"
	"slices"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/wippyai/ffi-reflect/decl"
	"github.com/wippyai/ffi-reflect/descriptor"
	"github.com/wippyai/ffi-reflect/errors"
)

// Options configures resolver behavior.
type Options struct {
	// Logger receives registration and derivation events.
	// Nil falls back to the package logger.
	Logger *zap.Logger
	// Constants seeds the named constants usable in discriminant
	// and array length expressions.
	Constants map[string]int64
	// MaxArrayLen bounds declared array lengths.
	MaxArrayLen uint64
}

// DefaultOptions returns default resolver configuration.
func DefaultOptions() Options {
	return Options{
		MaxArrayLen: math.MaxUint32,
	}
}

// Resolver derives descriptors from registered declarations.
// Each type is derived at most once; the result, success or failure,
// is published to every later caller. Thread-safe.
type Resolver struct {
	logger      *zap.Logger
	decls       map[string]*decl.Decl
	byType      map[reflect.Type]string
	consts      map[string]int64
	memo        sync.Map // string -> *entry
	maxArrayLen uint64
	mu          sync.RWMutex
}

type entry struct {
	desc descriptor.Descriptor
	err  error
	once sync.Once
	done atomic.Bool
}

// New creates a resolver with the given options.
func New(opts Options) *Resolver {
	l := opts.Logger
	if l == nil {
		l = Logger()
	}
	maxLen := opts.MaxArrayLen
	if maxLen == 0 {
		maxLen = DefaultOptions().MaxArrayLen
	}
	consts := make(map[string]int64, len(opts.Constants))
	for k, v := range opts.Constants {
		consts[k] = v
	}
	return &Resolver{
		logger:      l,
		decls:       make(map[string]*decl.Decl),
		byType:      make(map[reflect.Type]string),
		consts:      consts,
		maxArrayLen: maxLen,
	}
}

// NewWithDefaults creates a resolver with default options.
func NewWithDefaults() *Resolver {
	return New(DefaultOptions())
}

// Register adds declarations. The batch is applied atomically: a name or
// Go type declared twice rejects the whole batch with duplicate_type.
// Layout problems are not checked here; they surface from Derive.
func (r *Resolver) Register(decls ...*decl.Decl) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make(map[string]bool, len(decls))
	types := make(map[reflect.Type]bool, len(decls))
	for _, d := range decls {
		if d == nil || d.Name == "" {
			return errors.New(errors.PhaseRegister, errors.KindUnsupported).
				Detail("declaration has no name").
				Build()
		}
		if _, exists := r.decls[d.Name]; exists || names[d.Name] {
			return errors.DuplicateType(d.Name)
		}
		names[d.Name] = true

		if d.GoType != nil {
			if prev, exists := r.byType[d.GoType]; exists || types[d.GoType] {
				return errors.New(errors.PhaseRegister, errors.KindDuplicateType).
					Type(d.Name).
					Detail("Go type %s is already bound to %s", d.GoType, prev).
					Build()
			}
			types[d.GoType] = true
		}
	}

	for _, d := range decls {
		r.decls[d.Name] = d
		if d.GoType != nil {
			r.byType[d.GoType] = d.Name
		}
		r.logger.Debug("registered type",
			zap.String("type", d.Name),
			zap.Stringer("category", d.Category),
			zap.String("layout", d.Layout.String()))
	}
	r.forgetFailures()
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Resolver) MustRegister(decls ...*decl.Decl) {
	if err := r.Register(decls...); err != nil {
		panic(err)
	}
}

// DefineConst adds a named constant. Redefining a constant with a
// different value is rejected so that earlier derivations stay valid.
func (r *Resolver) DefineConst(name string, value int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, exists := r.consts[name]; exists && prev != value {
		return errors.New(errors.PhaseRegister, errors.KindDuplicateType).
			Type(name).
			Detail("constant already defined as %d", prev).
			Build()
	}
	r.consts[name] = value
	r.forgetFailures()
	return nil
}

// Lookup returns the declaration registered under name.
func (r *Resolver) Lookup(name string) (*decl.Decl, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.decls[name]
	return d, ok
}

// Names returns every registered type name in sorted order.
func (r *Resolver) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.decls))
	for name := range r.decls {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Derive returns the descriptor of the named type.
func (r *Resolver) Derive(name string) (descriptor.Descriptor, error) {
	return r.derive(name)
}

// DeriveType returns the descriptor of the declaration bound to t.
func (r *Resolver) DeriveType(t reflect.Type) (descriptor.Descriptor, error) {
	if t == nil {
		return nil, errors.NotFound(errors.PhaseDefine, "<nil>")
	}
	r.mu.RLock()
	name, ok := r.byType[t]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.NotFound(errors.PhaseDefine, t.String())
	}
	return r.derive(name)
}

// MustDerive is like Derive but panics on error.
func (r *Resolver) MustDerive(name string) descriptor.Descriptor {
	d, err := r.Derive(name)
	if err != nil {
		panic(err)
	}
	return d
}

func (r *Resolver) derive(name string) (descriptor.Descriptor, error) {
	if v, ok := r.memo.Load(name); ok {
		if e := v.(*entry); e.done.Load() {
			r.logger.Debug("descriptor cache hit", zap.String("type", name))
			return e.desc, e.err
		}
	}

	d, ok := r.Lookup(name)
	if !ok {
		return nil, errors.NotFound(errors.PhaseDefine, name)
	}

	// Entering an entry that is already on the derivation stack would
	// deadlock on its sync.Once, so by-value cycles are rejected first.
	if cycle := r.findCycle(name); cycle != nil {
		err := errors.CyclicValue(name, cycle)
		r.logger.Warn("derivation failed", zap.String("type", name), zap.Error(err))
		return nil, err
	}

	v, _ := r.memo.LoadOrStore(name, &entry{})
	e := v.(*entry)
	e.once.Do(func() {
		e.desc, e.err = r.build(d)
		e.done.Store(true)
		if e.err != nil {
			r.logger.Warn("derivation failed", zap.String("type", name), zap.Error(e.err))
			return
		}
		r.logger.Debug("derived descriptor",
			zap.String("type", name),
			zap.Stringer("kind", e.desc.Kind()))
	})
	return e.desc, e.err
}

// forgetFailures drops memoized failures so they are retried against the
// updated declarations and constants. Successful entries cannot change:
// registration only adds, and constants are never redefined.
// Must be called with r.mu held.
func (r *Resolver) forgetFailures() {
	r.memo.Range(func(k, v any) bool {
		if e := v.(*entry); e.done.Load() && e.err != nil {
			r.memo.CompareAndDelete(k, v)
		}
		return true
	})
}

func (r *Resolver) constant(name string) (int64, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.consts[name]
	return v, ok
}

func (r *Resolver) build(d *decl.Decl) (descriptor.Descriptor, error) {
	if err := ValidateLayout(d); err != nil {
		return nil, err
	}

	switch {
	case d.Category == decl.CategoryEnum:
		return r.buildEnum(d)
	case d.Layout.Kind == decl.LayoutTransparent:
		return r.buildTransparent(d)
	default:
		return r.buildRecord(d)
	}
}
