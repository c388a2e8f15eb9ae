package witbridge

import (
	"strings"

	"github.com/wippyai/ffi-reflect/descriptor"
	"github.com/wippyai/ffi-reflect/errors"
)

// Native is a type's size and alignment on the host.
type Native struct {
	Size  uint64
	Align uint64
}

// Report compares a type's native layout with its Canonical ABI layout.
type Report struct {
	// Mismatches lists the member paths whose layouts differ, outermost last.
	Mismatches []string
	Canonical  Info
	Native     Native
	// Compatible is set when every member has the same size and alignment
	// on both sides, so values can be copied between them without conversion.
	Compatible bool
}

// NativeLayout returns the host layout implied by a descriptor. Records
// carry their own facts; arrays and pointers are derived from their
// element and the configured host pointer width.
func (b *Bridge) NativeLayout(d descriptor.Descriptor) Native {
	switch t := d.(type) {
	case *descriptor.PrimitiveDescriptor:
		s := t.Primitive.Size()
		return Native{Size: s, Align: s}
	case *descriptor.RecordDescriptor:
		return Native{Size: t.Size, Align: t.Align}
	case *descriptor.EnumDescriptor:
		s := t.Repr.Primitive().Size()
		return Native{Size: s, Align: s}
	case *descriptor.ArrayDescriptor:
		elem := b.NativeLayout(t.Elem)
		return Native{Size: elem.Size * t.Count, Align: elem.Align}
	case *descriptor.PointerDescriptor:
		return Native{Size: b.opts.HostPointerSize, Align: b.opts.HostPointerSize}
	default:
		return Native{Align: 1}
	}
}

// Check reports whether the descriptor's native layout matches the
// Canonical ABI layout of its WIT mapping.
func (b *Bridge) Check(d descriptor.Descriptor) (Report, error) {
	canonical, err := b.Layout(d)
	if err != nil {
		return Report{}, err
	}

	r := Report{
		Native:    b.NativeLayout(d),
		Canonical: canonical,
	}
	if err := b.collectMismatches(d, nil, &r.Mismatches); err != nil {
		return Report{}, errors.Wrap(errors.PhaseBridge, errors.KindOf(err), err, "checking "+d.Name())
	}
	r.Compatible = len(r.Mismatches) == 0
	return r, nil
}

func (b *Bridge) collectMismatches(d descriptor.Descriptor, path []string, out *[]string) error {
	switch t := d.(type) {
	case *descriptor.RecordDescriptor:
		for _, f := range t.Fields {
			fieldPath := append(append([]string{}, path...), f.Name)
			if err := b.collectMismatches(f.Type, fieldPath, out); err != nil {
				return err
			}
		}
	case *descriptor.ArrayDescriptor:
		if err := b.collectMismatches(t.Elem, append(append([]string{}, path...), "[elem]"), out); err != nil {
			return err
		}
	}

	canonical, err := b.Layout(d)
	if err != nil {
		return err
	}
	native := b.NativeLayout(d)
	if native.Size != uint64(canonical.Size) || native.Align != uint64(canonical.Align) {
		name := strings.Join(path, ".")
		if name == "" {
			name = d.Name()
		}
		*out = append(*out, name)
	}
	return nil
}
