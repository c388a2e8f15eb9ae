package resolve

import (
	stderrors "errors"
	"reflect"

	"github.com/wippyai/ffi-reflect/decl"
	"github.com/wippyai/ffi-reflect/descriptor"
	"github.com/wippyai/ffi-reflect/errors"
	"github.com/wippyai/ffi-reflect/resolve/internal/constexpr"
)

func (r *Resolver) buildTransparent(d *decl.Decl) (descriptor.Descriptor, error) {
	if len(d.Members) != 1 {
		return nil, errors.New(errors.PhaseDefine, errors.KindInvalidTransparentWrapper).
			Type(d.Name).
			Detail("transparent wrapper must have exactly one member, has %d", len(d.Members)).
			Build()
	}

	member := d.MemberName(0)
	prim, ok := d.Members[0].Type.(decl.Prim)
	if !ok {
		return nil, errors.New(errors.PhaseDefine, errors.KindInvalidTransparentWrapper).
			Type(d.Name).
			Member(member).
			Detail("transparent wrapper must wrap a primitive, wraps %s", d.Members[0].Type).
			Build()
	}

	if err := checkGoFields(d); err != nil {
		return nil, err
	}
	if d.Facts != nil && d.Facts.Size != prim.Kind.Size() {
		return nil, errors.New(errors.PhaseDefine, errors.KindLayoutMismatch).
			Type(d.Name).
			Detail("wrapper size %d differs from %s size %d", d.Facts.Size, prim.Kind, prim.Kind.Size()).
			Build()
	}
	return descriptor.Primitive(prim.Kind), nil
}

func (r *Resolver) buildRecord(d *decl.Decl) (descriptor.Descriptor, error) {
	if len(d.Members) == 0 {
		return nil, errors.EmptyComposite(d.Name, d.Category.String())
	}
	if d.Facts == nil {
		return nil, errors.MissingLayoutFacts(d.Name)
	}
	if err := checkGoFields(d); err != nil {
		return nil, err
	}

	fields := make([]descriptor.Field, len(d.Members))
	for i, m := range d.Members {
		name := d.MemberName(i)
		t, err := r.memberType(d.Name, name, m.Type)
		if err != nil {
			return nil, err
		}
		fields[i] = descriptor.Field{Name: name, Type: t}
	}

	return &descriptor.RecordDescriptor{
		TypeName: d.Name,
		Fields:   fields,
		Size:     d.Facts.Size,
		Align:    d.Facts.Align,
		Union:    d.Category == decl.CategoryUnion,
	}, nil
}

// checkGoFields compares a struct's member list against the bound Go struct.
// Unions are exempt: Go models them as opaque storage.
func checkGoFields(d *decl.Decl) error {
	if d.Category != decl.CategoryStruct || d.GoType == nil || d.GoType.Kind() != reflect.Struct {
		return nil
	}
	if n := decl.DataFields(d.GoType); n != len(d.Members) {
		return errors.New(errors.PhaseDefine, errors.KindLayoutMismatch).
			Type(d.Name).
			Detail("declares %d members but Go type %s has %d fields", len(d.Members), d.GoType, n).
			Build()
	}
	return nil
}

func (r *Resolver) buildEnum(d *decl.Decl) (descriptor.Descriptor, error) {
	repr := d.Layout.Repr
	if len(d.Variants) == 0 {
		return nil, errors.EmptyComposite(d.Name, d.Category.String())
	}
	if d.Facts != nil && d.Facts.Size != repr.Primitive().Size() {
		return nil, errors.New(errors.PhaseDefine, errors.KindLayoutMismatch).
			Type(d.Name).
			Detail("enum size %d differs from %s size %d", d.Facts.Size, repr, repr.Primitive().Size()).
			Build()
	}
	if d.GoType != nil {
		if goLayout := decl.LayoutOf(d.GoType); goLayout.Kind == decl.LayoutInt && goLayout != d.Layout {
			return nil, errors.New(errors.PhaseDefine, errors.KindLayoutMismatch).
				Type(d.Name).
				Detail("declared as %s but Go type %s is %s", repr, d.GoType, goLayout).
				Build()
		}
	}

	values := make([]descriptor.EnumValue, len(d.Variants))
	seen := make(map[string]string, len(d.Variants))
	for i, v := range d.Variants {
		if v.Discriminant == "" {
			return nil, errors.MissingDiscriminant(d.Name, v.Name)
		}

		val, err := constexpr.Eval(v.Discriminant, r.constant)
		if err != nil {
			return nil, errors.New(errors.PhaseDefine, errors.KindInvalidDiscriminant).
				Type(d.Name).
				Member(v.Name).
				Cause(err).
				Detail("discriminant %q is not an integer constant", v.Discriminant).
				Build()
		}
		if !constexpr.InRange(val, repr.Min(), repr.Max()) {
			return nil, errors.New(errors.PhaseDefine, errors.KindInvalidDiscriminant).
				Type(d.Name).
				Member(v.Name).
				Detail("discriminant %s does not fit %s", constexpr.Render(val), repr).
				Build()
		}

		text := constexpr.Render(val)
		if prev, dup := seen[text]; dup {
			return nil, errors.New(errors.PhaseDefine, errors.KindInvalidDiscriminant).
				Type(d.Name).
				Member(v.Name).
				Detail("discriminant %s already used by %s", text, prev).
				Build()
		}
		seen[text] = v.Name
		values[i] = descriptor.EnumValue{Name: v.Name, Value: text}
	}

	return &descriptor.EnumDescriptor{
		TypeName: d.Name,
		Values:   values,
		Repr:     repr,
	}, nil
}

// memberType derives the descriptor of one member's declared type.
// owner and member locate the member for diagnostics.
func (r *Resolver) memberType(owner, member string, t decl.Type) (descriptor.Descriptor, error) {
	switch t := t.(type) {
	case decl.Prim:
		return descriptor.Primitive(t.Kind), nil
	case decl.Named:
		d, err := r.derive(t.Name)
		if err != nil {
			return nil, nest(err, owner, member)
		}
		return d, nil
	case decl.Array:
		return r.arrayType(owner, member, t)
	case decl.Pointer:
		return r.pointerType(owner, member, t)
	case decl.Dynamic:
		return nil, errors.New(errors.PhaseDefine, errors.KindUnsupportedMemberType).
			Type(owner).
			Member(member).
			Detail("%s has no fixed layout", t).
			Build()
	default:
		return nil, errors.New(errors.PhaseDefine, errors.KindUnsupportedMemberType).
			Type(owner).
			Member(member).
			Detail("unsupported type expression %T", t).
			Build()
	}
}

func (r *Resolver) arrayType(owner, member string, t decl.Array) (descriptor.Descriptor, error) {
	count, err := r.arrayLen(owner, member, t.Len)
	if err != nil {
		return nil, err
	}
	elem, err := r.memberType(owner, member, t.Elem)
	if err != nil {
		return nil, err
	}
	return descriptor.NewArray(elem, count), nil
}

func (r *Resolver) arrayLen(owner, member, expr string) (uint64, error) {
	val, err := constexpr.Eval(expr, r.constant)
	if err != nil {
		return 0, errors.New(errors.PhaseDefine, errors.KindMalformedArrayLength).
			Type(owner).
			Member(member).
			Cause(err).
			Detail("array length %q is not an integer constant", expr).
			Build()
	}
	n, ok := constexpr.Uint64(val, r.maxArrayLen)
	if !ok {
		return 0, errors.New(errors.PhaseDefine, errors.KindMalformedArrayLength).
			Type(owner).
			Member(member).
			Detail("array length %s must be between 0 and %d", constexpr.Render(val), r.maxArrayLen).
			Build()
	}
	return n, nil
}

// pointerType records the pointee without deriving it. Problems in the
// pointee surface from Deref, in the resolve phase.
func (r *Resolver) pointerType(owner, member string, t decl.Pointer) (descriptor.Descriptor, error) {
	if dyn, ok := t.Elem.(decl.Dynamic); ok {
		return nil, errors.New(errors.PhaseDefine, errors.KindUnsupportedMemberType).
			Type(owner).
			Member(member).
			Detail("pointer to %s is not a thin pointer", dyn).
			Build()
	}

	if incomplete(t.Elem) {
		return nil, errors.New(errors.PhaseDefine, errors.KindUnsupportedMemberType).
			Type(owner).
			Member(member).
			Detail("pointer has no target type").
			Build()
	}

	pointee := r.pointeeName(t.Elem)
	elem := t.Elem
	return descriptor.NewPointer(pointee, t.Const, func() (descriptor.Descriptor, error) {
		d, err := r.memberType(owner, member, elem)
		if err != nil {
			return nil, errors.Wrap(errors.PhaseResolve, errors.KindOf(err), err, "dereferencing pointer to "+pointee)
		}
		return d, nil
	}), nil
}

// pointeeName names a pointer target without deriving it. Array lengths
// are evaluated so the name matches the one Deref produces.
func (r *Resolver) pointeeName(t decl.Type) string {
	switch t := t.(type) {
	case decl.Pointer:
		return descriptor.PointerName(r.pointeeName(t.Elem), t.Const)
	case decl.Array:
		if v, err := constexpr.Eval(t.Len, r.constant); err == nil {
			return "ArrayOf" + constexpr.Render(v) + r.pointeeName(t.Elem)
		}
		return "ArrayOf" + t.Len + r.pointeeName(t.Elem)
	default:
		return t.String()
	}
}

// incomplete reports whether t or any pointer or array element under it is nil.
func incomplete(t decl.Type) bool {
	switch t := t.(type) {
	case nil:
		return true
	case decl.Pointer:
		return incomplete(t.Elem)
	case decl.Array:
		return incomplete(t.Elem)
	default:
		return false
	}
}

// nest re-surfaces a nested type's failure at the member that reached it.
// The path starts at the outermost type; the cached error is not modified.
func nest(err error, owner, member string) error {
	var e *errors.Error
	if !stderrors.As(err, &e) {
		return err
	}
	inner := *e
	if len(inner.Path) > 0 {
		inner.Path = inner.Path[1:]
	}
	return inner.WithPrefix(owner, member)
}
