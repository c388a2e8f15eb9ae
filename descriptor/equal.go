package descriptor

import "github.com/wippyai/ffi-reflect/errors"

// Equal reports whether a and b are structurally equal in every field.
// Pointer edges compare by constness and pointee name; thunks are not invoked.
func Equal(a, b Descriptor) bool {
	return equal(a, b, nil)
}

// DeepEqual is Equal that also follows pointer thunks. Pointee pairs already
// under comparison are assumed equal, so cyclic graphs terminate.
func DeepEqual(a, b Descriptor) bool {
	return equal(a, b, make(map[[2]string]bool))
}

func equal(a, b Descriptor, seen map[[2]string]bool) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}

	switch x := a.(type) {
	case *PrimitiveDescriptor:
		y := b.(*PrimitiveDescriptor)
		return x.Primitive == y.Primitive

	case *RecordDescriptor:
		y := b.(*RecordDescriptor)
		if x.TypeName != y.TypeName || x.Size != y.Size || x.Align != y.Align ||
			x.Union != y.Union || len(x.Fields) != len(y.Fields) {
			return false
		}
		for i := range x.Fields {
			if x.Fields[i].Name != y.Fields[i].Name {
				return false
			}
			if !equal(x.Fields[i].Type, y.Fields[i].Type, seen) {
				return false
			}
		}
		return true

	case *EnumDescriptor:
		y := b.(*EnumDescriptor)
		if x.TypeName != y.TypeName || x.Repr != y.Repr || len(x.Values) != len(y.Values) {
			return false
		}
		for i := range x.Values {
			if x.Values[i] != y.Values[i] {
				return false
			}
		}
		return true

	case *ArrayDescriptor:
		y := b.(*ArrayDescriptor)
		return x.TypeName == y.TypeName && x.Count == y.Count && equal(x.Elem, y.Elem, seen)

	case *PointerDescriptor:
		y := b.(*PointerDescriptor)
		if x.Const != y.Const || x.Pointee != y.Pointee {
			return false
		}
		if seen == nil {
			return true
		}
		key := [2]string{x.Pointee, y.Pointee}
		if seen[key] {
			return true
		}
		seen[key] = true

		xt, xerr := x.Deref()
		yt, yerr := y.Deref()
		if xerr != nil || yerr != nil {
			return xerr != nil && yerr != nil && errors.KindOf(xerr) == errors.KindOf(yerr)
		}
		return equal(xt, yt, seen)
	}

	return false
}
