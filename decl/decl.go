package decl

import (
	"reflect"
	"strconv"
)

// Category is the declared shape of a type.
type Category uint8

const (
	CategoryStruct Category = iota
	CategoryUnion
	CategoryEnum
)

var categoryNames = [...]string{
	CategoryStruct: "struct",
	CategoryUnion:  "union",
	CategoryEnum:   "enum",
}

func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return "unknown"
}

// Member is one field of a struct or union. An empty Name marks a
// positional field.
type Member struct {
	Type Type
	Name string
}

// Variant is one enumeration variant. An empty Discriminant means the
// value was left for the host to assign.
type Variant struct {
	Name         string
	Discriminant string
}

// Facts are the host's computed size and alignment for a type.
type Facts struct {
	Size  uint64
	Align uint64
}

// Decl is everything the caller states about one type: its identity,
// layout annotation, and ordered members or variants.
type Decl struct {
	Facts    *Facts
	GoType   reflect.Type
	Name     string
	Members  []Member
	Variants []Variant
	Layout   Layout
	Category Category
}

// Struct declares a struct with members in declaration order.
func Struct(name string, layout Layout, members ...Member) *Decl {
	return &Decl{Name: name, Category: CategoryStruct, Layout: layout, Members: members}
}

// Union declares an overlapping-storage union.
func Union(name string, layout Layout, members ...Member) *Decl {
	return &Decl{Name: name, Category: CategoryUnion, Layout: layout, Members: members}
}

// Enum declares an enumeration with variants in declaration order.
func Enum(name string, layout Layout, variants ...Variant) *Decl {
	return &Decl{Name: name, Category: CategoryEnum, Layout: layout, Variants: variants}
}

// Field is a named member.
func Field(name string, t Type) Member {
	return Member{Name: name, Type: t}
}

// Item is a positional member.
func Item(t Type) Member {
	return Member{Type: t}
}

// Value is a variant with a constant-expression discriminant.
func Value(name, discriminant string) Variant {
	return Variant{Name: name, Discriminant: discriminant}
}

// ValueOf is a variant with a literal discriminant.
func ValueOf(name string, v int64) Variant {
	return Variant{Name: name, Discriminant: strconv.FormatInt(v, 10)}
}

// Implicit is a variant without a discriminant. Reflection rejects it;
// it exists so such declarations can be expressed and diagnosed.
func Implicit(name string) Variant {
	return Variant{Name: name}
}

// WithFacts records host layout facts supplied by the caller,
// e.g. from a C header or a foreign toolchain.
func (d *Decl) WithFacts(size, align uint64) *Decl {
	d.Facts = &Facts{Size: size, Align: align}
	return d
}

// MemberName returns the reflected name of the i-th member:
// its declared name, or item_<i> for positional members.
func (d *Decl) MemberName(i int) string {
	if name := d.Members[i].Name; name != "" {
		return name
	}
	return "item_" + strconv.Itoa(i)
}

// FactsOf reads the host layout facts of T from the Go toolchain.
func FactsOf[T any]() Facts {
	t := reflect.TypeFor[T]()
	return Facts{Size: uint64(t.Size()), Align: uint64(t.Align())}
}

// Bind attaches the Go type T to d: its facts come from Go's layout of T,
// an unset layout annotation is inferred from T, and the resolver can be
// queried by T.
func Bind[T any](d *Decl) *Decl {
	facts := FactsOf[T]()
	d.Facts = &facts
	d.GoType = reflect.TypeFor[T]()
	if d.Layout.Kind == LayoutUnspecified {
		d.Layout = LayoutOf(d.GoType)
	}
	return d
}
