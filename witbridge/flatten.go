package witbridge

import (
	"github.com/tetratelabs/wazero/api"
	"go.bytecodealliance.org/wit"

	"github.com/wippyai/ffi-reflect/descriptor"
)

// Canonical ABI flattening limits
const (
	MaxFlatParams  = 16
	MaxFlatResults = 1
)

// CoreValType is a core wasm value type
type CoreValType = api.ValueType

// Flatten returns the core wasm value types that carry the described
// value when passed by value.
func (b *Bridge) Flatten(d descriptor.Descriptor) ([]CoreValType, error) {
	t, err := b.ToWIT(d)
	if err != nil {
		return nil, err
	}
	return FlattenType(t), nil
}

// FlattenParams flattens a parameter list. Lists longer than
// MaxFlatParams are passed as a single pointer into linear memory.
func (b *Bridge) FlattenParams(params ...descriptor.Descriptor) ([]CoreValType, error) {
	var flat []CoreValType
	for _, p := range params {
		f, err := b.Flatten(p)
		if err != nil {
			return nil, err
		}
		flat = append(flat, f...)
	}
	if len(flat) > MaxFlatParams {
		return []CoreValType{api.ValueTypeI32}, nil
	}
	return flat, nil
}

// FlattenResult flattens a return value. Results wider than
// MaxFlatResults are returned through a pointer.
func (b *Bridge) FlattenResult(result descriptor.Descriptor) ([]CoreValType, error) {
	flat, err := b.Flatten(result)
	if err != nil {
		return nil, err
	}
	if len(flat) > MaxFlatResults {
		return []CoreValType{api.ValueTypeI32}, nil
	}
	return flat, nil
}

// FlattenType flattens a WIT type to core wasm types
func FlattenType(t wit.Type) []CoreValType {
	if t == nil {
		return nil
	}

	switch v := t.(type) {
	case wit.Bool, wit.U8, wit.U16, wit.U32, wit.S8, wit.S16, wit.S32, wit.Char:
		return []CoreValType{api.ValueTypeI32}
	case wit.U64, wit.S64:
		return []CoreValType{api.ValueTypeI64}
	case wit.F32:
		return []CoreValType{api.ValueTypeF32}
	case wit.F64:
		return []CoreValType{api.ValueTypeF64}
	case *wit.TypeDef:
		return flattenTypeDef(v)
	default:
		return []CoreValType{api.ValueTypeI32}
	}
}

func flattenTypeDef(td *wit.TypeDef) []CoreValType {
	if td == nil || td.Kind == nil {
		return []CoreValType{api.ValueTypeI32}
	}

	switch kind := td.Kind.(type) {
	case *wit.Record:
		var flat []CoreValType
		for _, field := range kind.Fields {
			flat = append(flat, FlattenType(field.Type)...)
		}
		return flat
	case *wit.Tuple:
		var flat []CoreValType
		for _, elem := range kind.Types {
			flat = append(flat, FlattenType(elem)...)
		}
		return flat
	case *wit.Enum:
		return []CoreValType{api.ValueTypeI32} // discriminant only
	case wit.Type:
		return FlattenType(kind)
	default:
		return []CoreValType{api.ValueTypeI32}
	}
}

// TypeNames renders core value types as wasm text names (i32, f64, ...).
func TypeNames(types []CoreValType) []string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = api.ValueTypeName(t)
	}
	return names
}
