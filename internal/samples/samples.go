// Package samples declares a small graph of host-laid-out types that
// exercises every descriptor kind: a transparent wrapper, structs, an enum,
// a union, arrays of each, and pointers including a self-reference.
package samples

import (
	"structs"

	"github.com/wippyai/ffi-reflect/decl"
	"github.com/wippyai/ffi-reflect/descriptor"
)

// Foo is a transparent wrapper over f32.
type Foo struct {
	V float32
}

type Bar struct {
	_  structs.HostLayout
	F1 int64
	F2 int8
}

type SomeEnum uint8

const (
	A SomeEnum = 42
	B SomeEnum = 17
)

type Vec2 struct {
	_ structs.HostLayout
	X int32
	Y int32
}

type Vec3 struct {
	_ structs.HostLayout
	A int32
	B int32
	C int32
}

// VecUnion is storage for either a Vec2 or a Vec3.
type VecUnion struct {
	_       structs.HostLayout
	storage [3]int32
}

type Baz struct {
	_ structs.HostLayout
	A Foo
	B Bar
	C SomeEnum
	D [10]SomeEnum
	E [2]Bar
	F [7]float64
	G VecUnion
	H *Bar
	I *bool
	J *Baz
	K **int64
}

// Decls returns fresh declarations for every sample type.
func Decls() []*decl.Decl {
	return []*decl.Decl{
		decl.Bind[Foo](decl.Struct("Foo", decl.Transparent(),
			decl.Item(decl.F32),
		)),
		decl.Bind[Bar](decl.Struct("Bar", decl.Host(),
			decl.Field("f1", decl.I64),
			decl.Field("f2", decl.I8),
		)),
		decl.Bind[SomeEnum](decl.Enum("SomeEnum", decl.Int(descriptor.ReprU8),
			decl.ValueOf("A", int64(A)),
			decl.ValueOf("B", int64(B)),
		)),
		decl.Bind[Vec2](decl.Struct("Vec2", decl.Host(),
			decl.Field("x", decl.I32),
			decl.Field("y", decl.I32),
		)),
		decl.Bind[Vec3](decl.Struct("Vec3", decl.Host(),
			decl.Field("a", decl.I32),
			decl.Field("b", decl.I32),
			decl.Field("c", decl.I32),
		)),
		decl.Bind[VecUnion](decl.Union("VecUnion", decl.Host(),
			decl.Field("two", decl.Ref("Vec2")),
			decl.Field("three", decl.Ref("Vec3")),
		)),
		decl.Bind[Baz](decl.Struct("Baz", decl.Host(),
			decl.Field("a", decl.Ref("Foo")),
			decl.Field("b", decl.Ref("Bar")),
			decl.Field("c", decl.Ref("SomeEnum")),
			decl.Field("d", decl.ArrayOf(decl.Ref("SomeEnum"), 10)),
			decl.Field("e", decl.ArrayOf(decl.Ref("Bar"), 2)),
			decl.Field("f", decl.ArrayOf(decl.F64, 7)),
			decl.Field("g", decl.Ref("VecUnion")),
			decl.Field("h", decl.ConstPtr(decl.Ref("Bar"))),
			decl.Field("i", decl.MutPtr(decl.Bool)),
			decl.Field("j", decl.ConstPtr(decl.Ref("Baz"))),
			decl.Field("k", decl.ConstPtr(decl.MutPtr(decl.I64))),
		)),
	}
}

// Names lists the sample type names in declaration order.
var Names = []string{"Foo", "Bar", "SomeEnum", "Vec2", "Vec3", "VecUnion", "Baz"}
