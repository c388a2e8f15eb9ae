package layout

import (
	"sync"

	"go.bytecodealliance.org/wit"
)

// Info is the Canonical ABI size and alignment of a type.
type Info struct {
	Size  uint32
	Align uint32
}

// Calculator memoizes layouts per type definition. Thread-safe.
type Calculator struct {
	cache map[*wit.TypeDef]Info
	mu    sync.Mutex
}

func NewCalculator() *Calculator {
	return &Calculator{
		cache: make(map[*wit.TypeDef]Info),
	}
}

func (c *Calculator) Calculate(t wit.Type) Info {
	switch typ := t.(type) {
	case wit.U8, wit.S8, wit.Bool:
		return Info{Size: 1, Align: 1}
	case wit.U16, wit.S16:
		return Info{Size: 2, Align: 2}
	case wit.U32, wit.S32, wit.F32, wit.Char:
		return Info{Size: 4, Align: 4}
	case wit.U64, wit.S64, wit.F64:
		return Info{Size: 8, Align: 8}
	case *wit.TypeDef:
		return c.calculateTypeDef(typ)
	default:
		return Info{Size: 0, Align: 1}
	}
}

func (c *Calculator) calculateTypeDef(t *wit.TypeDef) Info {
	c.mu.Lock()
	cached, ok := c.cache[t]
	c.mu.Unlock()
	if ok {
		return cached
	}

	var info Info

	switch kind := t.Kind.(type) {
	case *wit.Record:
		info = c.calculateRecord(kind)
	case *wit.Enum:
		info = c.calculateEnum(kind)
	case *wit.Tuple:
		info = c.calculateTuple(kind)
	case wit.Type:
		info = c.Calculate(kind)
	default:
		info = Info{Size: 0, Align: 1}
	}

	c.mu.Lock()
	c.cache[t] = info
	c.mu.Unlock()
	return info
}

func (c *Calculator) calculateRecord(r *wit.Record) Info {
	if len(r.Fields) == 0 {
		return Info{Size: 0, Align: 1}
	}

	maxAlign := uint32(1)
	offset := uint32(0)

	for _, field := range r.Fields {
		fieldLayout := c.Calculate(field.Type)

		offset = AlignTo(offset, fieldLayout.Align)

		if fieldLayout.Align > maxAlign {
			maxAlign = fieldLayout.Align
		}

		offset += fieldLayout.Size
	}

	return Info{
		Size:  AlignTo(offset, maxAlign),
		Align: maxAlign,
	}
}

func (c *Calculator) calculateEnum(e *wit.Enum) Info {
	size := DiscriminantSize(len(e.Cases))
	return Info{Size: size, Align: size}
}

func (c *Calculator) calculateTuple(t *wit.Tuple) Info {
	if len(t.Types) == 0 {
		return Info{Size: 0, Align: 1}
	}

	maxAlign := uint32(1)
	offset := uint32(0)

	for _, typ := range t.Types {
		elemLayout := c.Calculate(typ)
		offset = AlignTo(offset, elemLayout.Align)

		if elemLayout.Align > maxAlign {
			maxAlign = elemLayout.Align
		}

		offset += elemLayout.Size
	}

	return Info{
		Size:  AlignTo(offset, maxAlign),
		Align: maxAlign,
	}
}

// Extent returns the size of members laid out in sequence, computed in
// 64 bits so callers can detect layouts that overflow Info.Size.
func Extent(members []Info) uint64 {
	var offset uint64
	maxAlign := uint64(1)
	for _, m := range members {
		align := uint64(max(m.Align, 1))
		offset = alignTo64(offset, align) + uint64(m.Size)
		maxAlign = max(maxAlign, align)
	}
	return alignTo64(offset, maxAlign)
}

func alignTo64(offset, align uint64) uint64 {
	return (offset + align - 1) &^ (align - 1)
}

func AlignTo(offset, align uint32) uint32 {
	if align == 0 {
		return offset
	}
	return (offset + align - 1) &^ (align - 1)
}

// DiscriminantSize returns the byte width of an enum or variant tag.
func DiscriminantSize(numCases int) uint32 {
	if numCases <= 256 {
		return 1
	} else if numCases <= 65536 {
		return 2
	}
	return 4
}
