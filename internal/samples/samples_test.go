package samples

import (
	"testing"
	"unsafe"
)

func TestDecls(t *testing.T) {
	decls := Decls()
	if len(decls) != len(Names) {
		t.Fatalf("decls: got %d, want %d", len(decls), len(Names))
	}
	for i, d := range decls {
		if d.Name != Names[i] {
			t.Errorf("decl %d: got %s, want %s", i, d.Name, Names[i])
		}
		if d.Facts == nil || d.GoType == nil {
			t.Errorf("%s should be bound to its Go type", d.Name)
		}
	}

	if Decls()[0] == decls[0] {
		t.Error("Decls should return fresh declarations")
	}
}

func TestUnionStorage(t *testing.T) {
	var u VecUnion
	if unsafe.Sizeof(u) != unsafe.Sizeof(Vec3{}) || unsafe.Alignof(u) != unsafe.Alignof(Vec2{}) {
		t.Errorf("VecUnion storage: size=%d align=%d", unsafe.Sizeof(u), unsafe.Alignof(u))
	}
}
