package ffireflect

import (
	"structs"
	"sync"
	"testing"

	"github.com/wippyai/ffi-reflect/decl"
	"github.com/wippyai/ffi-reflect/descriptor"
	"github.com/wippyai/ffi-reflect/errors"
)

type point struct {
	_ structs.HostLayout
	X int32
	Y int32
}

type segment struct {
	_    structs.HostLayout
	From point
	To   point
	Next *segment
}

type unbound struct {
	V int32
}

var registerOnce sync.Once

func registerGeometry(t *testing.T) {
	t.Helper()
	registerOnce.Do(func() {
		MustRegister(
			decl.Bind[point](decl.Struct("Point", decl.Host(),
				decl.Field("x", decl.I32),
				decl.Field("y", decl.I32),
			)),
			decl.Bind[segment](decl.Struct("Segment", decl.Host(),
				decl.Field("from", decl.Ref("Point")),
				decl.Field("to", decl.Ref("Point")),
				decl.Field("next", decl.MutPtr(decl.Ref("Segment"))),
			)),
		)
	})
}

func TestOf(t *testing.T) {
	registerGeometry(t)

	d, err := Of[segment]()
	if err != nil {
		t.Fatalf("Of[segment]: %v", err)
	}
	byName, err := Reflect("Segment")
	if err != nil {
		t.Fatalf("Reflect: %v", err)
	}
	if d != byName {
		t.Error("Of and Reflect should share the memoized descriptor")
	}

	rec := d.(*descriptor.RecordDescriptor)
	if rec.Size != 24 || rec.Align != 8 {
		t.Errorf("layout: got size=%d align=%d", rec.Size, rec.Align)
	}
	if rec.Fields[0].Type != MustOf[point]() {
		t.Error("from should be the Point descriptor")
	}

	next := rec.Fields[2].Type.(*descriptor.PointerDescriptor)
	target, err := next.Deref()
	if err != nil {
		t.Fatalf("Deref: %v", err)
	}
	if target != d {
		t.Error("next should point back to Segment")
	}
}

func TestOfUnbound(t *testing.T) {
	if _, err := Of[unbound](); !errors.IsKind(err, errors.KindNotFound) {
		t.Errorf("got %v, want not_found", err)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	registerGeometry(t)

	err := Register(decl.Struct("Point", decl.Host(), decl.Field("x", decl.I32)).WithFacts(4, 4))
	if !errors.IsKind(err, errors.KindDuplicateType) {
		t.Errorf("got %v, want duplicate_type", err)
	}
}

func TestDefaultShared(t *testing.T) {
	if Default() != Default() {
		t.Error("Default should return one resolver")
	}
}
