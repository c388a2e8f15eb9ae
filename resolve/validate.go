package resolve

import (
	"github.com/wippyai/ffi-reflect/decl"
	"github.com/wippyai/ffi-reflect/errors"
)

// ValidateLayout decides whether a declaration's layout annotation is
// reflectable. Structs must be host-laid-out or transparent, unions
// host-laid-out, and enums backed by one of the eight integer widths.
// Field order, padding or representation left to the compiler is rejected.
func ValidateLayout(d *decl.Decl) error {
	ok := false
	switch d.Category {
	case decl.CategoryStruct:
		ok = d.Layout.Kind == decl.LayoutHost || d.Layout.Kind == decl.LayoutTransparent
	case decl.CategoryUnion:
		ok = d.Layout.Kind == decl.LayoutHost
	case decl.CategoryEnum:
		ok = d.Layout.Kind == decl.LayoutInt && d.Layout.Repr.Valid()
	}
	if ok {
		return nil
	}
	return errors.UnreflectableLayout(d.Name, d.Category.String(), d.Layout.String())
}
