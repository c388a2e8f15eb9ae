package decl

import (
	"reflect"
	"structs"

	"github.com/wippyai/ffi-reflect/descriptor"
)

// LayoutKind is a type's declared layout annotation.
type LayoutKind uint8

const (
	// LayoutUnspecified means no annotation was given.
	LayoutUnspecified LayoutKind = iota
	// LayoutHost stores fields in declaration order following the host's
	// standard composite layout rules (C repr, Go structs.HostLayout).
	LayoutHost
	// LayoutTransparent makes a single-field wrapper share its field's layout.
	LayoutTransparent
	// LayoutInt backs an enumeration with a fixed-width integer.
	LayoutInt
	// LayoutGo leaves field order, padding and alignment to the Go compiler.
	LayoutGo
	// LayoutPacked removes inter-field padding.
	LayoutPacked
)

var layoutKindNames = [...]string{
	LayoutUnspecified: "unspecified",
	LayoutHost:        "C",
	LayoutTransparent: "transparent",
	LayoutInt:         "int",
	LayoutGo:          "go",
	LayoutPacked:      "packed",
}

func (k LayoutKind) String() string {
	if int(k) < len(layoutKindNames) {
		return layoutKindNames[k]
	}
	return "unknown"
}

// Layout is a layout annotation. Repr is meaningful only for LayoutInt.
type Layout struct {
	Kind LayoutKind
	Repr descriptor.EnumRepr
}

func Host() Layout        { return Layout{Kind: LayoutHost} }
func Transparent() Layout { return Layout{Kind: LayoutTransparent} }
func GoDefault() Layout   { return Layout{Kind: LayoutGo} }
func Packed() Layout      { return Layout{Kind: LayoutPacked} }

// Int returns a fixed-width integer representation annotation.
func Int(repr descriptor.EnumRepr) Layout {
	return Layout{Kind: LayoutInt, Repr: repr}
}

func (l Layout) String() string {
	if l.Kind == LayoutInt {
		return l.Repr.String()
	}
	if l.Kind == LayoutUnspecified {
		return ""
	}
	return l.Kind.String()
}

// ParseLayout parses an annotation in repr-attribute spelling:
// "C", "transparent", "u8" ... "i64", "packed", "go", or "" for none.
func ParseLayout(s string) (Layout, bool) {
	switch s {
	case "":
		return Layout{}, true
	case "C":
		return Host(), true
	case "transparent":
		return Transparent(), true
	case "go":
		return GoDefault(), true
	case "packed":
		return Packed(), true
	}
	if repr, ok := descriptor.ParseEnumRepr(s); ok {
		return Int(repr), true
	}
	return Layout{}, false
}

var hostLayoutType = reflect.TypeFor[structs.HostLayout]()

// LayoutOf infers the annotation carried by a Go type. Structs with a
// structs.HostLayout field are host-laid-out; other structs use Go's layout.
// Fixed-width integer kinds map to the matching representation.
func LayoutOf(t reflect.Type) Layout {
	if t == nil {
		return Layout{}
	}

	switch t.Kind() {
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if t.Field(i).Type == hostLayoutType {
				return Host()
			}
		}
		return GoDefault()
	case reflect.Uint8:
		return Int(descriptor.ReprU8)
	case reflect.Uint16:
		return Int(descriptor.ReprU16)
	case reflect.Uint32:
		return Int(descriptor.ReprU32)
	case reflect.Uint64:
		return Int(descriptor.ReprU64)
	case reflect.Int8:
		return Int(descriptor.ReprI8)
	case reflect.Int16:
		return Int(descriptor.ReprI16)
	case reflect.Int32:
		return Int(descriptor.ReprI32)
	case reflect.Int64:
		return Int(descriptor.ReprI64)
	default:
		return Layout{}
	}
}

// DataFields counts the fields of a Go struct that carry data,
// skipping layout markers.
func DataFields(t reflect.Type) int {
	n := 0
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).Type == hostLayoutType {
			continue
		}
		n++
	}
	return n
}
