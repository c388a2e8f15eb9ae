// Package witbridge maps descriptors onto the WebAssembly Component Model.
//
// A native type described by a descriptor often needs to cross into a wasm
// guest. The bridge answers three questions about it:
//
//   - which WIT type represents it (ToWIT)
//   - what its Canonical ABI layout is and whether that matches the native
//     layout byte for byte (Layout, Check)
//   - which core wasm value types carry it across a call (Flatten,
//     FlattenParams, FlattenResult)
//
// # Mapping
//
//	bool, u8..u64, f32, f64   same-named WIT primitive
//	i8..i64                   s8..s64
//	struct                    record, kebab-case field names
//	enum                      enum if numbered 0..n-1, else its integer type
//	[E; N]                    tuple<E, E, ...> of N elements
//	pointer                   u32 guest address (u64 with PointerSize 8)
//	union                     unsupported
//
// # Usage
//
//	b := witbridge.NewWithDefaults()
//	report, err := b.Check(desc)
//	if err == nil && report.Compatible {
//		// copy values directly into guest memory
//	}
package witbridge
