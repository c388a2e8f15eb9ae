package descriptor

// Descriptor is the structural description of one type's layout.
// The variant set is closed: only types in this package implement it.
type Descriptor interface {
	// Kind returns the descriptor kind for type switching.
	Kind() Kind

	// Name returns the type's name. Primitives return their spelling,
	// arrays and pointers a synthesized name.
	Name() string

	sealed()
}

// Thunk lazily resolves a pointee descriptor.
// Implementations must be stateless: every call returns an equivalent result.
type Thunk func() (Descriptor, error)

// PrimitiveDescriptor describes one of the eleven scalar types.
type PrimitiveDescriptor struct {
	Primitive PrimitiveKind
}

var primitives = func() [len(primitiveNames)]*PrimitiveDescriptor {
	var out [len(primitiveNames)]*PrimitiveDescriptor
	for i := range out {
		out[i] = &PrimitiveDescriptor{Primitive: PrimitiveKind(i)}
	}
	return out
}()

// Primitive returns the shared descriptor for p.
func Primitive(p PrimitiveKind) *PrimitiveDescriptor {
	if p.valid() {
		return primitives[p]
	}
	return &PrimitiveDescriptor{Primitive: p}
}

func (d *PrimitiveDescriptor) Kind() Kind   { return KindPrimitive }
func (d *PrimitiveDescriptor) Name() string { return d.Primitive.String() }
func (*PrimitiveDescriptor) sealed()        {}

// RecordDescriptor describes a sequential struct or an overlapping-storage union.
// Size and Align are the host's layout facts for the type, never recomputed.
type RecordDescriptor struct {
	TypeName string
	Fields   []Field
	Size     uint64
	Align    uint64
	Union    bool
}

// Field is one named member of a record.
type Field struct {
	Type Descriptor
	Name string
}

func (d *RecordDescriptor) Kind() Kind {
	if d.Union {
		return KindUnion
	}
	return KindStruct
}

func (d *RecordDescriptor) Name() string { return d.TypeName }
func (*RecordDescriptor) sealed()        {}

// Field returns the member with the given name.
func (d *RecordDescriptor) Field(name string) (Field, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// EnumDescriptor describes an enumeration with explicit discriminants.
type EnumDescriptor struct {
	TypeName string
	Values   []EnumValue
	Repr     EnumRepr
}

// EnumValue pairs a variant name with its discriminant rendered as decimal text.
type EnumValue struct {
	Name  string
	Value string
}

func (d *EnumDescriptor) Kind() Kind   { return KindEnum }
func (d *EnumDescriptor) Name() string { return d.TypeName }
func (*EnumDescriptor) sealed()        {}

// ArrayDescriptor describes a fixed-length array.
type ArrayDescriptor struct {
	Elem     Descriptor
	TypeName string
	Count    uint64
}

// NewArray builds an array descriptor with a synthesized name.
func NewArray(elem Descriptor, count uint64) *ArrayDescriptor {
	return &ArrayDescriptor{
		TypeName: ArrayName(elem, count),
		Elem:     elem,
		Count:    count,
	}
}

func (d *ArrayDescriptor) Kind() Kind   { return KindArray }
func (d *ArrayDescriptor) Name() string { return d.TypeName }
func (*ArrayDescriptor) sealed()        {}

// PointerDescriptor describes a pointer. The pointee is not embedded:
// it is looked up through a thunk, which is what lets type graphs be cyclic.
type PointerDescriptor struct {
	resolve Thunk
	Pointee string
	Const   bool
}

// NewPointer builds a pointer descriptor. pointee names the target type
// for diagnostics; resolve produces its descriptor on demand.
func NewPointer(pointee string, isConst bool, resolve Thunk) *PointerDescriptor {
	return &PointerDescriptor{
		Pointee: pointee,
		Const:   isConst,
		resolve: resolve,
	}
}

func (d *PointerDescriptor) Kind() Kind   { return KindPointer }
func (d *PointerDescriptor) Name() string { return PointerName(d.Pointee, d.Const) }
func (*PointerDescriptor) sealed()        {}

// Deref resolves the pointee descriptor. Errors in the pointee's
// declaration surface here, not when the pointer itself was derived.
func (d *PointerDescriptor) Deref() (Descriptor, error) {
	if d.resolve == nil {
		return nil, errNoThunk(d.Pointee)
	}
	return d.resolve()
}
