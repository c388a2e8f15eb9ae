// Package descriptor defines the read-only layout descriptors produced by
// the resolver.
//
// A Descriptor is one of a closed set of variants:
//
//   - PrimitiveDescriptor: bool, u8..u64, i8..i64, f32, f64
//   - RecordDescriptor: struct or union with host size/alignment and ordered fields
//   - EnumDescriptor: integer representation and ordered (name, discriminant) pairs
//   - ArrayDescriptor: element descriptor and a fixed element count
//   - PointerDescriptor: constness plus a thunk resolving the pointee
//
// Records, arrays and enums own their children. Pointers do not: they hold a
// thunk, so self-referential and mutually referential types produce finite trees.
//
// Descriptors are never mutated after construction and are safe to share
// across goroutines.
package descriptor
