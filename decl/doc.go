// Package decl is the type declaration surface consumed by the resolver.
//
// A declaration states a type's name, its layout annotation, and its ordered
// members (structs, unions) or variants (enums). Host layout facts, the byte
// size and alignment the host computed for the type, travel with the
// declaration; the resolver never recomputes them.
//
// Go types can be bound directly. A struct with a structs.HostLayout field
// is laid out like the equivalent C struct, so its facts are taken from the
// Go toolchain:
//
//	type Bar struct {
//		_  structs.HostLayout
//		F1 int64
//		F2 int8
//	}
//
//	decl.Bind[Bar](decl.Struct("Bar", decl.Host(),
//		decl.Field("f1", decl.I64),
//		decl.Field("f2", decl.I8),
//	))
//
// Types with no Go counterpart carry explicit facts:
//
//	decl.Union("VecUnion", decl.Host(),
//		decl.Field("two", decl.Ref("Vec2")),
//		decl.Field("three", decl.Ref("Vec3")),
//	).WithFacts(12, 4)
package decl
