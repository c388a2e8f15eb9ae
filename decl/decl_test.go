package decl

import (
	"reflect"
	"structs"
	"testing"
	"unsafe"

	"github.com/wippyai/ffi-reflect/descriptor"
)

type hostPair struct {
	_  structs.HostLayout
	F1 int64
	F2 int8
}

type goPair struct {
	F1 int64
	F2 int8
}

type wrapped struct {
	V float32
}

type level uint16

func TestCategoryString(t *testing.T) {
	tests := []struct {
		c    Category
		want string
	}{
		{CategoryStruct, "struct"},
		{CategoryUnion, "union"},
		{CategoryEnum, "enum"},
		{Category(99), "unknown"},
	}
	for _, tc := range tests {
		if got := tc.c.String(); got != tc.want {
			t.Errorf("Category(%d).String(): got %q, want %q", tc.c, got, tc.want)
		}
	}
}

func TestParseLayout(t *testing.T) {
	tests := []struct {
		in   string
		want Layout
		ok   bool
	}{
		{"", Layout{}, true},
		{"C", Host(), true},
		{"transparent", Transparent(), true},
		{"go", GoDefault(), true},
		{"packed", Packed(), true},
		{"u8", Int(descriptor.ReprU8), true},
		{"i64", Int(descriptor.ReprI64), true},
		{"usize", Layout{}, false},
		{"c", Layout{}, false},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := ParseLayout(tc.in)
			if ok != tc.ok || got != tc.want {
				t.Errorf("ParseLayout(%q): got %v, %v, want %v, %v", tc.in, got, ok, tc.want, tc.ok)
			}
			if ok && got.String() != tc.in {
				t.Errorf("String(): got %q, want %q", got.String(), tc.in)
			}
		})
	}
}

func TestLayoutOf(t *testing.T) {
	tests := []struct {
		name string
		typ  reflect.Type
		want Layout
	}{
		{"host_struct", reflect.TypeFor[hostPair](), Host()},
		{"go_struct", reflect.TypeFor[goPair](), GoDefault()},
		{"single_field", reflect.TypeFor[wrapped](), GoDefault()},
		{"uint16", reflect.TypeFor[level](), Int(descriptor.ReprU16)},
		{"int8", reflect.TypeFor[int8](), Int(descriptor.ReprI8)},
		{"string", reflect.TypeFor[string](), Layout{}},
		{"nil", nil, Layout{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := LayoutOf(tc.typ); got != tc.want {
				t.Errorf("LayoutOf: got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestDataFields(t *testing.T) {
	if got := DataFields(reflect.TypeFor[hostPair]()); got != 2 {
		t.Errorf("DataFields(hostPair): got %d, want 2", got)
	}
	if got := DataFields(reflect.TypeFor[goPair]()); got != 2 {
		t.Errorf("DataFields(goPair): got %d, want 2", got)
	}
}

func TestTypeString(t *testing.T) {
	tests := []struct {
		typ  Type
		want string
	}{
		{F32, "f32"},
		{Ref("Bar"), "Bar"},
		{ArrayOf(Ref("SomeEnum"), 10), "[SomeEnum; 10]"},
		{ArrayOfConst(U8, "N*2"), "[u8; N*2]"},
		{ConstPtr(Ref("Bar")), "*const Bar"},
		{MutPtr(Bool), "*mut bool"},
		{MutPtr(ConstPtr(I64)), "*mut *const i64"},
		{SliceOf(U8), "[u8]"},
		{DynamicType("String"), "String"},
		{Pointer{}, "*mut <nil>"},
		{Array{Len: "3"}, "[<nil>; 3]"},
	}
	for _, tc := range tests {
		if got := tc.typ.String(); got != tc.want {
			t.Errorf("String(): got %q, want %q", got, tc.want)
		}
	}
}

func TestBuilders(t *testing.T) {
	d := Struct("Tuple", Host(), Item(U8), Field("named", U16), Item(U32)).WithFacts(8, 4)

	if d.Category != CategoryStruct || d.Name != "Tuple" {
		t.Fatalf("unexpected decl %+v", d)
	}
	names := []string{d.MemberName(0), d.MemberName(1), d.MemberName(2)}
	want := []string{"item_0", "named", "item_2"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("member names: got %v, want %v", names, want)
	}
	if d.Facts == nil || d.Facts.Size != 8 || d.Facts.Align != 4 {
		t.Errorf("facts: got %+v", d.Facts)
	}

	u := Union("U", Host(), Field("a", U8))
	if u.Category != CategoryUnion {
		t.Errorf("union category: got %v", u.Category)
	}

	e := Enum("E", Int(descriptor.ReprU8), ValueOf("A", 42), Value("B", "0x11"), Implicit("C"))
	if e.Category != CategoryEnum || len(e.Variants) != 3 {
		t.Fatalf("unexpected enum %+v", e)
	}
	if e.Variants[0].Discriminant != "42" || e.Variants[1].Discriminant != "0x11" || e.Variants[2].Discriminant != "" {
		t.Errorf("discriminants: got %+v", e.Variants)
	}
}

func TestBind(t *testing.T) {
	d := Bind[hostPair](Struct("Bar", Layout{}, Field("f1", I64), Field("f2", I8)))

	if d.Layout != Host() {
		t.Errorf("inferred layout: got %v, want C", d.Layout)
	}
	if d.GoType != reflect.TypeFor[hostPair]() {
		t.Errorf("GoType: got %v", d.GoType)
	}
	var v hostPair
	if d.Facts.Size != uint64(unsafe.Sizeof(v)) || d.Facts.Align != uint64(unsafe.Alignof(v)) {
		t.Errorf("facts: got %+v, want size=%d align=%d", d.Facts, unsafe.Sizeof(v), unsafe.Alignof(v))
	}

	explicit := Bind[wrapped](Struct("Foo", Transparent(), Item(F32)))
	if explicit.Layout != Transparent() {
		t.Errorf("explicit layout should be kept: got %v", explicit.Layout)
	}
}

func TestFactsOf(t *testing.T) {
	f := FactsOf[[3]uint16]()
	if f.Size != 6 || f.Align != 2 {
		t.Errorf("FactsOf([3]uint16): got %+v, want size=6 align=2", f)
	}
}
