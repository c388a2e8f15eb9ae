package witbridge

import (
	"math"
	"math/bits"
	"strconv"
	"strings"
	"sync"
	"unicode"
	"unsafe"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/ffi-reflect/descriptor"
	"github.com/wippyai/ffi-reflect/errors"
	"github.com/wippyai/ffi-reflect/witbridge/internal/layout"
)

// Info is the Canonical ABI size and alignment of a type.
type Info = layout.Info

// Options configures bridge behavior.
type Options struct {
	// PointerSize is the guest address width in bytes: 4 for wasm32, 8 for wasm64.
	PointerSize uint32
	// HostPointerSize is the native pointer width used for native layouts.
	HostPointerSize uint64
	// MaxTupleLen bounds the element count of arrays mapped to tuples.
	MaxTupleLen uint64
}

// DefaultOptions returns default bridge configuration: a wasm32 guest on
// the current host.
func DefaultOptions() Options {
	return Options{
		PointerSize:     4,
		HostPointerSize: uint64(unsafe.Sizeof(uintptr(0))),
		MaxTupleLen:     1 << 16,
	}
}

// Bridge maps descriptors to Component Model types. Record, enum and tuple
// mappings are shared per type name so their layouts are computed once.
// A bridge should serve descriptors from a single resolver.
// Thread-safe.
type Bridge struct {
	calc    *layout.Calculator
	typedef map[string]*wit.TypeDef
	opts    Options
	mu      sync.Mutex
}

// New creates a bridge with the given options.
func New(opts Options) *Bridge {
	def := DefaultOptions()
	if opts.PointerSize == 0 {
		opts.PointerSize = def.PointerSize
	}
	if opts.HostPointerSize == 0 {
		opts.HostPointerSize = def.HostPointerSize
	}
	if opts.MaxTupleLen == 0 {
		opts.MaxTupleLen = def.MaxTupleLen
	}
	return &Bridge{
		calc:    layout.NewCalculator(),
		typedef: make(map[string]*wit.TypeDef),
		opts:    opts,
	}
}

// NewWithDefaults creates a bridge with default options.
func NewWithDefaults() *Bridge {
	return New(DefaultOptions())
}

// Options returns the configuration.
func (b *Bridge) Options() Options {
	return b.opts
}

// ToWIT maps a descriptor to its WIT type:
//   - primitives map to the matching WIT primitive (iN to sN)
//   - structs map to records with kebab-case field names
//   - enums with discriminants 0..n-1 map to WIT enums, others to their integer
//   - arrays map to tuples of Count elements
//   - pointers map to a guest address integer
//
// Unions have no Component Model equivalent and are rejected.
func (b *Bridge) ToWIT(d descriptor.Descriptor) (wit.Type, error) {
	return b.toWIT(d, nil)
}

func (b *Bridge) toWIT(d descriptor.Descriptor, path []string) (wit.Type, error) {
	switch t := d.(type) {
	case *descriptor.PrimitiveDescriptor:
		return primitiveType(t.Primitive), nil
	case *descriptor.RecordDescriptor:
		if t.Union {
			return nil, errors.New(errors.PhaseBridge, errors.KindUnsupported).
				Path(path...).
				Type(t.TypeName).
				Detail("unions have no Component Model equivalent").
				Build()
		}
		return b.recordType(t, path)
	case *descriptor.EnumDescriptor:
		return b.enumType(t), nil
	case *descriptor.ArrayDescriptor:
		return b.tupleType(t, path)
	case *descriptor.PointerDescriptor:
		if b.opts.PointerSize == 8 {
			return wit.U64{}, nil
		}
		return wit.U32{}, nil
	default:
		return nil, errors.New(errors.PhaseBridge, errors.KindUnsupported).
			Path(path...).
			Detail("unsupported descriptor: %T", d).
			Build()
	}
}

func primitiveType(p descriptor.PrimitiveKind) wit.Type {
	switch p {
	case descriptor.Bool:
		return wit.Bool{}
	case descriptor.U8:
		return wit.U8{}
	case descriptor.U16:
		return wit.U16{}
	case descriptor.U32:
		return wit.U32{}
	case descriptor.U64:
		return wit.U64{}
	case descriptor.I8:
		return wit.S8{}
	case descriptor.I16:
		return wit.S16{}
	case descriptor.I32:
		return wit.S32{}
	case descriptor.I64:
		return wit.S64{}
	case descriptor.F32:
		return wit.F32{}
	default:
		return wit.F64{}
	}
}

func (b *Bridge) cached(name string) (*wit.TypeDef, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	td, ok := b.typedef[name]
	return td, ok
}

func (b *Bridge) store(name string, td *wit.TypeDef) *wit.TypeDef {
	b.mu.Lock()
	defer b.mu.Unlock()
	if prev, ok := b.typedef[name]; ok {
		return prev
	}
	b.typedef[name] = td
	return td
}

func (b *Bridge) recordType(r *descriptor.RecordDescriptor, path []string) (wit.Type, error) {
	if td, ok := b.cached(r.TypeName); ok {
		return td, nil
	}

	fields := make([]wit.Field, len(r.Fields))
	for i, f := range r.Fields {
		fieldPath := append(append([]string{}, path...), f.Name)
		ft, err := b.toWIT(f.Type, fieldPath)
		if err != nil {
			return nil, err
		}
		fields[i] = wit.Field{Name: toKebabCase(f.Name), Type: ft}
	}

	infos := make([]Info, len(fields))
	for i, f := range fields {
		infos[i] = b.calc.Calculate(f.Type)
	}
	if err := checkSize(path, r.TypeName, layout.Extent(infos)); err != nil {
		return nil, err
	}

	name := toKebabCase(r.TypeName)
	return b.store(r.TypeName, &wit.TypeDef{
		Name: &name,
		Kind: &wit.Record{Fields: fields},
	}), nil
}

func (b *Bridge) enumType(e *descriptor.EnumDescriptor) wit.Type {
	if !IsDense(e) {
		return primitiveType(e.Repr.Primitive())
	}
	if td, ok := b.cached(e.TypeName); ok {
		return td
	}

	cases := make([]wit.EnumCase, len(e.Values))
	for i, v := range e.Values {
		cases[i] = wit.EnumCase{Name: toKebabCase(v.Name)}
	}
	name := toKebabCase(e.TypeName)
	return b.store(e.TypeName, &wit.TypeDef{
		Name: &name,
		Kind: &wit.Enum{Cases: cases},
	})
}

// IsDense reports whether e maps to a WIT enum unchanged: an unsigned
// representation of exactly the Canonical ABI tag width, with variants
// numbered 0..n-1 in declaration order.
func IsDense(e *descriptor.EnumDescriptor) bool {
	if len(e.Values) == 0 || e.Repr.Signed() {
		return false
	}
	if uint64(layout.DiscriminantSize(len(e.Values))) != e.Repr.Primitive().Size() {
		return false
	}
	for i, v := range e.Values {
		if v.Value != strconv.Itoa(i) {
			return false
		}
	}
	return true
}

func (b *Bridge) tupleType(a *descriptor.ArrayDescriptor, path []string) (wit.Type, error) {
	if a.Count > b.opts.MaxTupleLen {
		return nil, errors.New(errors.PhaseBridge, errors.KindUnsupported).
			Path(path...).
			Type(a.TypeName).
			Detail("array of %d elements exceeds tuple limit %d", a.Count, b.opts.MaxTupleLen).
			Build()
	}

	if td, ok := b.cached(a.TypeName); ok {
		return td, nil
	}

	elemPath := append(append([]string{}, path...), "[elem]")
	elem, err := b.toWIT(a.Elem, elemPath)
	if err != nil {
		return nil, err
	}
	hi, size := bits.Mul64(uint64(b.calc.Calculate(elem).Size), a.Count)
	if hi != 0 {
		size = math.MaxUint64
	}
	if err := checkSize(path, a.TypeName, size); err != nil {
		return nil, err
	}

	types := make([]wit.Type, a.Count)
	for i := range types {
		types[i] = elem
	}
	return b.store(a.TypeName, &wit.TypeDef{Kind: &wit.Tuple{Types: types}}), nil
}

// checkSize rejects layouts the 32-bit Canonical ABI cannot address.
func checkSize(path []string, typeName string, size uint64) error {
	if size <= math.MaxUint32 {
		return nil
	}
	return errors.New(errors.PhaseBridge, errors.KindUnsupported).
		Path(path...).
		Type(typeName).
		Detail("canonical size %d exceeds the 32-bit limit", size).
		Build()
}

// Layout returns the Canonical ABI layout of the descriptor's WIT mapping.
func (b *Bridge) Layout(d descriptor.Descriptor) (Info, error) {
	t, err := b.ToWIT(d)
	if err != nil {
		return Info{}, err
	}
	return b.calc.Calculate(t), nil
}

// toKebabCase converts Go and C identifiers to WIT kebab-case:
// FooBar and foo_bar become foo-bar. Runs of separators collapse to one
// hyphen and leading or trailing separators are dropped. Digits stay
// attached to the preceding word, so item_0 becomes item0.
func toKebabCase(s string) string {
	var result strings.Builder
	prevLower := false
	pending := false
	for _, r := range s {
		switch {
		case r == '_' || r == '-':
			pending = true
			prevLower = false
		case unicode.IsUpper(r):
			if (prevLower || pending) && result.Len() > 0 {
				result.WriteByte('-')
			}
			result.WriteRune(unicode.ToLower(r))
			prevLower = false
			pending = false
		default:
			if pending && result.Len() > 0 && !unicode.IsDigit(r) {
				result.WriteByte('-')
			}
			result.WriteRune(r)
			prevLower = unicode.IsLower(r) || unicode.IsDigit(r)
			pending = false
		}
	}
	return result.String()
}
