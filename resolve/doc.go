// Package resolve turns type declarations into descriptor trees.
//
// A Resolver holds registered declarations and derives one descriptor per
// type on demand:
//
//	r := resolve.NewWithDefaults()
//	r.MustRegister(
//		decl.Enum("SomeEnum", decl.Int(descriptor.ReprU8),
//			decl.ValueOf("A", 42),
//			decl.ValueOf("B", 17),
//		),
//		decl.Bind[Bar](decl.Struct("Bar", decl.Host(),
//			decl.Field("f1", decl.I64),
//			decl.Field("f2", decl.I8),
//		)),
//	)
//	d, err := r.Derive("Bar")
//
// # Rules
//
// The layout annotation is checked first (see ValidateLayout). Then:
//   - transparent wrappers yield the descriptor of their single primitive field
//   - structs and unions yield a record whose members are derived in order;
//     positional members are named item_0, item_1, ...; size and alignment
//     are the host facts carried by the declaration
//   - arrays derive their element and take a synthesized name
//   - enums evaluate every discriminant to decimal text
//   - pointers are not followed; their descriptor derives the pointee on Deref
//
// Any failure is reported as an *errors.Error in the define phase, naming
// the type and member. Failures reached through a pointer surface from
// Deref in the resolve phase.
//
// # Memoization
//
// Each type is derived at most once per resolver. Concurrent derivations of
// the same type wait for the first; later calls return the published result
// without locking. Registering declarations or constants clears memoized
// failures so they can be retried.
package resolve
