package decl

import (
	"strconv"

	"github.com/wippyai/ffi-reflect/descriptor"
)

// Type is a member's declared type expression.
// The set is closed: Prim, Named, Array, Pointer and Dynamic.
type Type interface {
	// String renders the expression in Rust-like syntax for diagnostics.
	String() string
	sealed()
}

// Prim is one of the eleven primitive types.
type Prim struct {
	Kind descriptor.PrimitiveKind
}

// Named refers to another declared type by name.
type Named struct {
	Name string
}

// Array is a fixed-length array. Len is a constant expression:
// a literal ("10") or an expression over resolver constants ("LANES*2").
type Array struct {
	Elem Type
	Len  string
}

// Pointer is a raw pointer; Const marks a read-only target.
type Pointer struct {
	Elem  Type
	Const bool
}

// Dynamic is a type with no fixed, portable layout
// (slices, strings, maps, interfaces, trait objects).
type Dynamic struct {
	Name string
}

func (Prim) sealed()    {}
func (Named) sealed()   {}
func (Array) sealed()   {}
func (Pointer) sealed() {}
func (Dynamic) sealed() {}

func (p Prim) String() string  { return p.Kind.String() }
func (n Named) String() string { return n.Name }
func (a Array) String() string { return "[" + typeString(a.Elem) + "; " + a.Len + "]" }

func (p Pointer) String() string {
	if p.Const {
		return "*const " + typeString(p.Elem)
	}
	return "*mut " + typeString(p.Elem)
}

func typeString(t Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}

func (d Dynamic) String() string { return d.Name }

var (
	Bool = Prim{Kind: descriptor.Bool}
	U8   = Prim{Kind: descriptor.U8}
	U16  = Prim{Kind: descriptor.U16}
	U32  = Prim{Kind: descriptor.U32}
	U64  = Prim{Kind: descriptor.U64}
	I8   = Prim{Kind: descriptor.I8}
	I16  = Prim{Kind: descriptor.I16}
	I32  = Prim{Kind: descriptor.I32}
	I64  = Prim{Kind: descriptor.I64}
	F32  = Prim{Kind: descriptor.F32}
	F64  = Prim{Kind: descriptor.F64}
)

// Ref refers to the declared type name.
func Ref(name string) Named {
	return Named{Name: name}
}

// ArrayOf is a fixed array of n elements.
func ArrayOf(elem Type, n int64) Array {
	return Array{Elem: elem, Len: strconv.FormatInt(n, 10)}
}

// ArrayOfConst is a fixed array whose length is a constant expression.
func ArrayOfConst(elem Type, expr string) Array {
	return Array{Elem: elem, Len: expr}
}

func ConstPtr(elem Type) Pointer { return Pointer{Elem: elem, Const: true} }
func MutPtr(elem Type) Pointer   { return Pointer{Elem: elem} }

// SliceOf is a dynamically sized sequence; it can never be reflected.
func SliceOf(elem Type) Dynamic {
	return Dynamic{Name: "[" + elem.String() + "]"}
}

// DynamicType names a type without a fixed layout, e.g. "String".
func DynamicType(name string) Dynamic {
	return Dynamic{Name: name}
}
