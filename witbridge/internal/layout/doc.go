// Package layout provides Canonical ABI layout calculations for the WIT
// types produced by the bridge.
//
// # Layout Rules
//
//   - Primitives: size equals alignment (u8=1, u32=4, u64=8, etc.)
//   - Records and tuples: fields laid out sequentially with padding for alignment
//   - Enums: a discriminant sized by the number of cases
//
// # Usage
//
//	c := layout.NewCalculator()
//	info := c.Calculate(witType)
//	// info.Size and info.Align are the Canonical ABI size and alignment
//
// This package is internal to the bridge.
package layout
