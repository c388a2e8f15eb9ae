package descriptor

import (
	"strconv"
	"strings"
)

// Child is one labelled edge of the descriptor tree.
type Child struct {
	Type  Descriptor
	Label string
}

// Children returns the owned children of d in declaration order.
// Pointers own nothing; use Deref to follow them.
func Children(d Descriptor) []Child {
	switch x := d.(type) {
	case *RecordDescriptor:
		out := make([]Child, len(x.Fields))
		for i, f := range x.Fields {
			out[i] = Child{Label: f.Name, Type: f.Type}
		}
		return out
	case *ArrayDescriptor:
		return []Child{{Label: "[" + strconv.FormatUint(x.Count, 10) + "]", Type: x.Elem}}
	default:
		return nil
	}
}

// Summary renders the one-line header of d:
//
//	f32
//	Bar struct size=16 align=8
//	SomeEnum enum(u8)
//	ArrayOf10SomeEnum [10]SomeEnum
//	*const Bar
func Summary(d Descriptor) string {
	switch x := d.(type) {
	case *PrimitiveDescriptor:
		return x.Name()
	case *RecordDescriptor:
		return x.TypeName + " " + x.Kind().String() +
			" size=" + strconv.FormatUint(x.Size, 10) +
			" align=" + strconv.FormatUint(x.Align, 10)
	case *EnumDescriptor:
		return x.TypeName + " enum(" + x.Repr.String() + ")"
	case *ArrayDescriptor:
		return x.TypeName + " [" + strconv.FormatUint(x.Count, 10) + "]" + x.Elem.Name()
	case *PointerDescriptor:
		if x.Const {
			return "*const " + x.Pointee
		}
		return "*mut " + x.Pointee
	case nil:
		return "<nil>"
	default:
		return d.Name()
	}
}

// Format renders d as an indented tree. Pointers are printed, never followed.
func Format(d Descriptor) string {
	var b strings.Builder
	b.WriteString(Summary(d))
	b.WriteByte('\n')
	formatBody(&b, d, 1)
	return b.String()
}

func formatBody(b *strings.Builder, d Descriptor, depth int) {
	indent := strings.Repeat("  ", depth)

	if e, ok := d.(*EnumDescriptor); ok {
		for _, v := range e.Values {
			b.WriteString(indent)
			b.WriteString(v.Name)
			b.WriteString(" = ")
			b.WriteString(v.Value)
			b.WriteByte('\n')
		}
		return
	}

	for _, c := range Children(d) {
		b.WriteString(indent)
		b.WriteString(c.Label)
		b.WriteString(": ")
		b.WriteString(Summary(c.Type))
		b.WriteByte('\n')
		formatBody(b, c.Type, depth+1)
	}
}
