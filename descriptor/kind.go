package descriptor

import "math"

// Kind discriminates the closed set of descriptor variants.
type Kind uint8

const (
	KindPrimitive Kind = iota
	KindStruct
	KindUnion
	KindEnum
	KindArray
	KindPointer
)

var kindNames = [...]string{
	KindPrimitive: "primitive",
	KindStruct:    "struct",
	KindUnion:     "union",
	KindEnum:      "enum",
	KindArray:     "array",
	KindPointer:   "pointer",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// PrimitiveKind is one of the eleven fixed-width scalar types.
type PrimitiveKind uint8

const (
	Bool PrimitiveKind = iota
	U8
	U16
	U32
	U64
	I8
	I16
	I32
	I64
	F32
	F64
)

var primitiveNames = [...]string{
	Bool: "bool",
	U8:   "u8",
	U16:  "u16",
	U32:  "u32",
	U64:  "u64",
	I8:   "i8",
	I16:  "i16",
	I32:  "i32",
	I64:  "i64",
	F32:  "f32",
	F64:  "f64",
}

var primitiveSizes = [...]uint64{
	Bool: 1,
	U8:   1,
	U16:  2,
	U32:  4,
	U64:  8,
	I8:   1,
	I16:  2,
	I32:  4,
	I64:  8,
	F32:  4,
	F64:  8,
}

// Primitives lists every primitive kind in declaration order.
var Primitives = []PrimitiveKind{Bool, U8, U16, U32, U64, I8, I16, I32, I64, F32, F64}

func (p PrimitiveKind) String() string {
	if int(p) < len(primitiveNames) {
		return primitiveNames[p]
	}
	return "unknown"
}

// Size returns the byte width of the primitive.
func (p PrimitiveKind) Size() uint64 {
	if int(p) < len(primitiveSizes) {
		return primitiveSizes[p]
	}
	return 0
}

func (p PrimitiveKind) IsInteger() bool {
	return p >= U8 && p <= I64
}

func (p PrimitiveKind) IsFloat() bool {
	return p == F32 || p == F64
}

func (p PrimitiveKind) valid() bool {
	return int(p) < len(primitiveNames)
}

// ParsePrimitive maps a primitive spelling ("u8", "f64", ...) to its kind.
func ParsePrimitive(name string) (PrimitiveKind, bool) {
	for i, n := range primitiveNames {
		if n == name {
			return PrimitiveKind(i), true
		}
	}
	return 0, false
}

// EnumRepr is the fixed-width integer representation backing an enumeration.
type EnumRepr uint8

const (
	ReprU8 EnumRepr = iota
	ReprU16
	ReprU32
	ReprU64
	ReprI8
	ReprI16
	ReprI32
	ReprI64
)

var reprPrimitives = [...]PrimitiveKind{
	ReprU8:  U8,
	ReprU16: U16,
	ReprU32: U32,
	ReprU64: U64,
	ReprI8:  I8,
	ReprI16: I16,
	ReprI32: I32,
	ReprI64: I64,
}

// Reprs lists every enum representation in declaration order.
var Reprs = []EnumRepr{ReprU8, ReprU16, ReprU32, ReprU64, ReprI8, ReprI16, ReprI32, ReprI64}

// Primitive returns the integer primitive the representation is stored as.
func (r EnumRepr) Primitive() PrimitiveKind {
	if int(r) < len(reprPrimitives) {
		return reprPrimitives[r]
	}
	return U8
}

func (r EnumRepr) String() string {
	if int(r) < len(reprPrimitives) {
		return r.Primitive().String()
	}
	return "unknown"
}

// Valid reports whether r is one of the eight integer widths.
func (r EnumRepr) Valid() bool {
	return int(r) < len(reprPrimitives)
}

func (r EnumRepr) Bits() int {
	return int(r.Primitive().Size() * 8)
}

func (r EnumRepr) Signed() bool {
	return r >= ReprI8 && r <= ReprI64
}

// Min returns the smallest representable value.
// Unsigned representations return 0.
func (r EnumRepr) Min() int64 {
	if !r.Signed() {
		return 0
	}
	return -1 << (r.Bits() - 1)
}

// Max returns the largest representable value.
func (r EnumRepr) Max() uint64 {
	if r.Signed() {
		return 1<<(r.Bits()-1) - 1
	}
	if r.Bits() == 64 {
		return math.MaxUint64
	}
	return 1<<r.Bits() - 1
}

// ParseEnumRepr maps an integer spelling ("u8" ... "i64") to its representation.
func ParseEnumRepr(name string) (EnumRepr, bool) {
	p, ok := ParsePrimitive(name)
	if !ok {
		return 0, false
	}
	for i, rp := range reprPrimitives {
		if rp == p {
			return EnumRepr(i), true
		}
	}
	return 0, false
}
