package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseDefine,
				Kind:   KindUnsupportedMemberType,
				Path:   []string{"Baz", "names"},
				Type:   "Baz",
				Member: "names",
				Detail: "slice has no fixed layout",
			},
			contains: []string{"[define]", "unsupported_member_type", "Baz.names", "type Baz", "member names", "slice has no fixed layout"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseResolve,
				Kind:  KindNotFound,
			},
			contains: []string{"[resolve]", "not_found"},
		},
		{
			name: "detail without type",
			err: &Error{
				Phase:  PhaseBridge,
				Kind:   KindUnsupported,
				Detail: "unions",
			},
			contains: []string{"[bridge] unsupported: unions"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseDefine,
				Kind:   KindInvalidDiscriminant,
				Detail: "bad literal",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[define]", "invalid_discriminant", "bad literal", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseDefine,
		Kind:  KindMalformedArrayLength,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}

	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseDefine,
		Kind:  KindEmptyComposite,
		Type:  "Unit",
	}

	if !err.Is(&Error{Phase: PhaseDefine, Kind: KindEmptyComposite}) {
		t.Error("Is should match same phase and kind")
	}

	if err.Is(&Error{Phase: PhaseResolve, Kind: KindEmptyComposite}) {
		t.Error("Is should not match different phase")
	}

	if err.Is(&Error{Phase: PhaseDefine, Kind: KindNotFound}) {
		t.Error("Is should not match different kind")
	}

	if !err.Is(&Error{Kind: KindEmptyComposite}) {
		t.Error("Is should match kind alone when target phase is empty")
	}

	wrapped := fmt.Errorf("outer: %w", err)
	if !errors.Is(wrapped, &Error{Kind: KindEmptyComposite}) {
		t.Error("errors.Is should see through wrapping")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseDefine, KindInvalidDiscriminant).
		Type("Color").
		Member("Red").
		Path("Palette", "primary").
		Cause(cause).
		Detail("value %d overflows %s", 300, "u8").
		Build()

	if err.Phase != PhaseDefine {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseDefine)
	}
	if err.Kind != KindInvalidDiscriminant {
		t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidDiscriminant)
	}
	if err.Type != "Color" || err.Member != "Red" {
		t.Errorf("Type = %q Member = %q", err.Type, err.Member)
	}
	if len(err.Path) != 2 || err.Path[0] != "Palette" || err.Path[1] != "primary" {
		t.Errorf("Path = %v, want [Palette primary]", err.Path)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "value 300 overflows u8" {
		t.Errorf("Detail = %q", err.Detail)
	}
}

func TestWithPrefix(t *testing.T) {
	inner := &Error{Phase: PhaseDefine, Kind: KindEmptyComposite, Type: "Unit", Path: []string{"Unit"}}
	outer := inner.WithPrefix("Baz", "u")

	if got := strings.Join(outer.Path, "."); got != "Baz.u.Unit" {
		t.Errorf("Path = %q, want Baz.u.Unit", got)
	}
	if got := strings.Join(inner.Path, "."); got != "Unit" {
		t.Errorf("inner Path mutated: %q", got)
	}
	if outer.Kind != inner.Kind || outer.Type != inner.Type {
		t.Error("WithPrefix should preserve kind and type")
	}
}

func TestKindOf(t *testing.T) {
	if got := KindOf(EmptyComposite("Unit", "struct")); got != KindEmptyComposite {
		t.Errorf("KindOf = %q", got)
	}
	if got := KindOf(fmt.Errorf("wrap: %w", MissingDiscriminant("E", "A"))); got != KindMissingDiscriminant {
		t.Errorf("KindOf wrapped = %q", got)
	}
	if got := KindOf(errors.New("plain")); got != "" {
		t.Errorf("KindOf plain = %q, want empty", got)
	}
	if !IsKind(NotFound(PhaseResolve, "X"), KindNotFound) {
		t.Error("IsKind should match")
	}
}

func TestConvenienceConstructors(t *testing.T) {
	tests := []struct {
		name  string
		err   *Error
		kind  Kind
		phase Phase
	}{
		{"UnreflectableLayout", UnreflectableLayout("T", "struct", "go"), KindUnreflectableLayout, PhaseDefine},
		{"EmptyComposite", EmptyComposite("T", "union"), KindEmptyComposite, PhaseDefine},
		{"MissingDiscriminant", MissingDiscriminant("T", "A"), KindMissingDiscriminant, PhaseDefine},
		{"MissingLayoutFacts", MissingLayoutFacts("T"), KindMissingLayoutFacts, PhaseDefine},
		{"NotFound", NotFound(PhaseResolve, "T"), KindNotFound, PhaseResolve},
		{"DuplicateType", DuplicateType("T"), KindDuplicateType, PhaseRegister},
		{"CyclicValue", CyclicValue("T", []string{"T", "U", "T"}), KindCyclicValue, PhaseDefine},
		{"Unsupported", Unsupported(PhaseBridge, "unions"), KindUnsupported, PhaseBridge},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err.Kind != tc.kind {
				t.Errorf("Kind = %v, want %v", tc.err.Kind, tc.kind)
			}
			if tc.err.Phase != tc.phase {
				t.Errorf("Phase = %v, want %v", tc.err.Phase, tc.phase)
			}
		})
	}

	if msg := CyclicValue("T", []string{"T", "U", "T"}).Error(); !strings.Contains(msg, "T -> U -> T") {
		t.Errorf("cycle message %q should list the cycle", msg)
	}
	if msg := UnreflectableLayout("T", "struct", "go").Error(); !strings.Contains(msg, `"go"`) {
		t.Errorf("layout message %q should name the annotation", msg)
	}
}
