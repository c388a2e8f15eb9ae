package layout

import (
	"sync"
	"testing"

	"go.bytecodealliance.org/wit"
)

func TestCalculatePrimitives(t *testing.T) {
	c := NewCalculator()

	tests := []struct {
		typ   wit.Type
		name  string
		size  uint32
		align uint32
	}{
		{wit.Bool{}, "bool", 1, 1},
		{wit.U8{}, "u8", 1, 1},
		{wit.S8{}, "s8", 1, 1},
		{wit.U16{}, "u16", 2, 2},
		{wit.S16{}, "s16", 2, 2},
		{wit.U32{}, "u32", 4, 4},
		{wit.S32{}, "s32", 4, 4},
		{wit.U64{}, "u64", 8, 8},
		{wit.S64{}, "s64", 8, 8},
		{wit.F32{}, "f32", 4, 4},
		{wit.F64{}, "f64", 8, 8},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			info := c.Calculate(tc.typ)
			if info.Size != tc.size {
				t.Errorf("size: got %d, want %d", info.Size, tc.size)
			}
			if info.Align != tc.align {
				t.Errorf("align: got %d, want %d", info.Align, tc.align)
			}
		})
	}
}

func TestCalculateRecord(t *testing.T) {
	c := NewCalculator()

	t.Run("empty", func(t *testing.T) {
		info := c.Calculate(&wit.TypeDef{Kind: &wit.Record{}})
		if info.Size != 0 || info.Align != 1 {
			t.Errorf("got size=%d align=%d, want size=0 align=1", info.Size, info.Align)
		}
	})

	t.Run("mixed_alignment", func(t *testing.T) {
		record := &wit.Record{
			Fields: []wit.Field{
				{Name: "a", Type: wit.U8{}},
				{Name: "b", Type: wit.U32{}},
				{Name: "c", Type: wit.U8{}},
			},
		}
		info := c.Calculate(&wit.TypeDef{Kind: record})

		if info.Size != 12 {
			t.Errorf("size: got %d, want 12", info.Size)
		}
		if info.Align != 4 {
			t.Errorf("align: got %d, want 4", info.Align)
		}
	})

	t.Run("nested", func(t *testing.T) {
		inner := &wit.TypeDef{Kind: &wit.Record{Fields: []wit.Field{
			{Name: "f1", Type: wit.S64{}},
			{Name: "f2", Type: wit.S8{}},
		}}}
		outer := &wit.TypeDef{Kind: &wit.Record{Fields: []wit.Field{
			{Name: "x", Type: wit.U8{}},
			{Name: "bar", Type: inner},
		}}}
		info := c.Calculate(outer)
		if info.Size != 24 || info.Align != 8 {
			t.Errorf("got size=%d align=%d, want size=24 align=8", info.Size, info.Align)
		}
	})
}

func TestCalculateTuple(t *testing.T) {
	c := NewCalculator()

	t.Run("empty", func(t *testing.T) {
		info := c.Calculate(&wit.TypeDef{Kind: &wit.Tuple{}})
		if info.Size != 0 {
			t.Errorf("size: got %d, want 0", info.Size)
		}
	})

	t.Run("mixed", func(t *testing.T) {
		tuple := &wit.Tuple{Types: []wit.Type{wit.U8{}, wit.U64{}, wit.U8{}}}
		info := c.Calculate(&wit.TypeDef{Kind: tuple})
		if info.Size != 24 {
			t.Errorf("size: got %d, want 24", info.Size)
		}
		if info.Align != 8 {
			t.Errorf("align: got %d, want 8", info.Align)
		}
	})

	t.Run("repeated", func(t *testing.T) {
		types := make([]wit.Type, 10)
		for i := range types {
			types[i] = wit.U8{}
		}
		info := c.Calculate(&wit.TypeDef{Kind: &wit.Tuple{Types: types}})
		if info.Size != 10 || info.Align != 1 {
			t.Errorf("got size=%d align=%d, want size=10 align=1", info.Size, info.Align)
		}
	})
}

func TestCalculateEnum(t *testing.T) {
	c := NewCalculator()

	tests := []struct {
		name      string
		numCases  int
		wantSize  uint32
		wantAlign uint32
	}{
		{"1_case", 1, 1, 1},
		{"256_cases", 256, 1, 1},
		{"257_cases", 257, 2, 2},
		{"65536_cases", 65536, 2, 2},
		{"65537_cases", 65537, 4, 4},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cases := make([]wit.EnumCase, tc.numCases)
			info := c.Calculate(&wit.TypeDef{Kind: &wit.Enum{Cases: cases}})
			if info.Size != tc.wantSize {
				t.Errorf("size: got %d, want %d", info.Size, tc.wantSize)
			}
			if info.Align != tc.wantAlign {
				t.Errorf("align: got %d, want %d", info.Align, tc.wantAlign)
			}
		})
	}
}

func TestCalculateCached(t *testing.T) {
	c := NewCalculator()
	td := &wit.TypeDef{Kind: &wit.Record{Fields: []wit.Field{{Name: "x", Type: wit.U32{}}}}}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if info := c.Calculate(td); info.Size != 4 {
				t.Errorf("size: got %d, want 4", info.Size)
			}
		}()
	}
	wg.Wait()

	if len(c.cache) != 1 {
		t.Errorf("cache entries: got %d, want 1", len(c.cache))
	}
}

func TestAlignTo(t *testing.T) {
	tests := []struct {
		offset, align, want uint32
	}{
		{0, 4, 0},
		{1, 4, 4},
		{4, 4, 4},
		{5, 8, 8},
		{7, 0, 7},
	}
	for _, tc := range tests {
		if got := AlignTo(tc.offset, tc.align); got != tc.want {
			t.Errorf("AlignTo(%d, %d): got %d, want %d", tc.offset, tc.align, got, tc.want)
		}
	}
}

func TestExtent(t *testing.T) {
	tests := []struct {
		name    string
		members []Info
		want    uint64
	}{
		{"empty", nil, 0},
		{"mixed_alignment", []Info{{Size: 1, Align: 1}, {Size: 4, Align: 4}, {Size: 1, Align: 1}}, 12},
		{"trailing_padding", []Info{{Size: 8, Align: 8}, {Size: 1, Align: 1}}, 16},
		{"zero_align", []Info{{Size: 3}}, 3},
		{"beyond_32_bits", []Info{{Size: 1 << 31, Align: 1}, {Size: 1 << 31, Align: 1}, {Size: 1, Align: 1}}, 1<<32 + 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Extent(tt.members); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}
