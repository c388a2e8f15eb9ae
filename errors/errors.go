package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseRegister Phase = "register" // declaration registration
	PhaseDefine   Phase = "define"   // layout validation and derivation
	PhaseResolve  Phase = "resolve"  // lazy pointer dereference
	PhaseBridge   Phase = "bridge"   // WIT / core wasm bridging
)

// Kind categorizes the error
type Kind string

const (
	KindUnreflectableLayout       Kind = "unreflectable_layout"
	KindInvalidTransparentWrapper Kind = "invalid_transparent_wrapper"
	KindEmptyComposite            Kind = "empty_composite"
	KindMissingDiscriminant       Kind = "missing_discriminant"
	KindInvalidDiscriminant       Kind = "invalid_discriminant"
	KindUnsupportedMemberType     Kind = "unsupported_member_type"
	KindMalformedArrayLength      Kind = "malformed_array_length"
	KindMissingLayoutFacts        Kind = "missing_layout_facts"
	KindLayoutMismatch            Kind = "layout_mismatch"
	KindCyclicValue               Kind = "cyclic_value"
	KindDuplicateType             Kind = "duplicate_type"
	KindNotFound                  Kind = "not_found"
	KindUnsupported               Kind = "unsupported"
)

// Error is the structured error type used throughout the module
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	Type   string
	Member string
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Type != "" {
		b.WriteString(": type ")
		b.WriteString(e.Type)
		if e.Member != "" {
			b.WriteString(", member ")
			b.WriteString(e.Member)
		}
	}

	if e.Detail != "" {
		if e.Type != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error.
// A target with an empty Phase matches on Kind alone.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Phase == "" {
		return e.Kind == t.Kind
	}
	return e.Phase == t.Phase && e.Kind == t.Kind
}

// WithPrefix returns a copy of e with path prepended to its Path.
// The receiver is left untouched so memoized errors stay stable.
func (e *Error) WithPrefix(path ...string) *Error {
	cp := *e
	cp.Path = make([]string, 0, len(path)+len(e.Path))
	cp.Path = append(cp.Path, path...)
	cp.Path = append(cp.Path, e.Path...)
	return &cp
}

// KindOf returns the Kind of the first *Error in err's chain, or "".
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err carries an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	return errors.Is(err, &Error{Kind: kind})
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the member path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Type sets the offending type name
func (b *Builder) Type(name string) *Builder {
	b.err.Type = name
	return b
}

// Member sets the offending member or variant name
func (b *Builder) Member(name string) *Builder {
	b.err.Member = name
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// UnreflectableLayout creates an error for a rejected layout annotation
func UnreflectableLayout(typeName, category, layout string) *Error {
	return &Error{
		Phase:  PhaseDefine,
		Kind:   KindUnreflectableLayout,
		Type:   typeName,
		Detail: fmt.Sprintf("%s with layout %q has no portable memory layout", category, layout),
	}
}

// EmptyComposite creates an error for a composite with no members
func EmptyComposite(typeName, category string) *Error {
	return &Error{
		Phase:  PhaseDefine,
		Kind:   KindEmptyComposite,
		Type:   typeName,
		Detail: fmt.Sprintf("%s declares no members", category),
	}
}

// MissingDiscriminant creates an error for an enum variant left implicit
func MissingDiscriminant(typeName, variant string) *Error {
	return &Error{
		Phase:  PhaseDefine,
		Kind:   KindMissingDiscriminant,
		Type:   typeName,
		Member: variant,
		Detail: "every variant must carry an explicit discriminant",
	}
}

// MissingLayoutFacts creates an error for a composite without host size/align
func MissingLayoutFacts(typeName string) *Error {
	return &Error{
		Phase:  PhaseDefine,
		Kind:   KindMissingLayoutFacts,
		Type:   typeName,
		Detail: "host size and alignment were not supplied",
	}
}

// NotFound creates a not-found error for an undeclared type
func NotFound(phase Phase, typeName string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Type:   typeName,
		Detail: "type is not declared",
	}
}

// DuplicateType creates an error for a second declaration under the same name
func DuplicateType(typeName string) *Error {
	return &Error{
		Phase:  PhaseRegister,
		Kind:   KindDuplicateType,
		Type:   typeName,
		Detail: "type is already declared",
	}
}

// CyclicValue creates an error for a by-value containment cycle
func CyclicValue(typeName string, cycle []string) *Error {
	return &Error{
		Phase:  PhaseDefine,
		Kind:   KindCyclicValue,
		Type:   typeName,
		Detail: fmt.Sprintf("type contains itself by value: %s", strings.Join(cycle, " -> ")),
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
