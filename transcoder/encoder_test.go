package transcoder

import (
	"encoding/binary"
	"encoding/hex"
	"strings"
	"sync"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/sway-abi/errors"
	"github.com/wippyai/sway-abi/types"
	"github.com/wippyai/sway-abi/value"
)

func word(x uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], x)
	return b[:]
}

func words(xs ...uint64) []byte {
	var out []byte
	for _, x := range xs {
		out = append(out, word(x)...)
	}
	return out
}

func wordAt(t *testing.T, data []byte, off uint64) uint64 {
	t.Helper()
	require.LessOrEqual(t, off+8, uint64(len(data)))
	return binary.BigEndian.Uint64(data[off : off+8])
}

func TestEncodePrimitives(t *testing.T) {
	enc := NewEncoder()
	u256 := new(uint256.Int).Lsh(uint256.NewInt(1), 255)

	tests := []struct {
		name string
		typ  *types.Descriptor
		v    value.Value
		want string
	}{
		{"bool true", types.Bool(), value.Bool(true), "0000000000000001"},
		{"bool false", types.Bool(), value.Bool(false), "0000000000000000"},
		{"u8", types.U8(), value.U64(255), "00000000000000ff"},
		{"u16", types.U16(), value.U64(0x1234), "0000000000001234"},
		{"u32", types.U32(), value.U64(0xdeadbeef), "00000000deadbeef"},
		{"u64", types.U64(), value.U64(1 << 63), "8000000000000000"},
		{"u256", types.U256(), value.U256(u256), "80" + strings.Repeat("00", 31)},
		{"b256", types.B256(), value.B256{0: 0xaa, 31: 0xbb}, "aa" + strings.Repeat("00", 30) + "bb"},
		{"str[3]", types.Str(3), value.Str("abc"), "6162630000000000"},
		{"str[8]", types.Str(8), value.Str("abcdefgh"), "6162636465666768"},
		{"unit", types.Unit(), value.Unit, ""},
		{"tuple", types.Tuple(types.U8(), types.Bool()), value.Tuple{value.U64(1), value.Bool(true)}, "0000000000000001" + "0000000000000001"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, err := enc.Encode(tc.v, tc.typ)
			require.NoError(t, err)
			assert.Equal(t, tc.want, hex.EncodeToString(p.Inline))
			assert.Empty(t, p.Heap)
			assert.Empty(t, p.Slots)
		})
	}
}

func TestEncodeOverflow(t *testing.T) {
	enc := NewEncoder()
	tests := []struct {
		name string
		typ  *types.Descriptor
		v    value.Value
	}{
		{"u8", types.U8(), value.U64(256)},
		{"u16", types.U16(), value.U64(1 << 16)},
		{"u32", types.U32(), value.U64(1 << 32)},
		{"u64", types.U64(), value.U256(new(uint256.Int).Lsh(uint256.NewInt(1), 64))},
		{"nested", types.Vector(types.U8()), value.Vector{value.U64(1), value.U64(1000)}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := enc.Encode(tc.v, tc.typ)
			require.Error(t, err)
			assert.True(t, errors.IsKind(err, errors.KindOverflow), err.Error())
		})
	}
}

func TestEncodeVector(t *testing.T) {
	p, err := NewEncoder().Encode(value.Vector{value.U64(7), value.U64(9)}, types.Vector(types.U64()))
	require.NoError(t, err)

	assert.Equal(t, words(24, 2, 2), p.Inline)
	assert.Equal(t, words(7, 9), p.Heap)
	require.Len(t, p.Slots, 1)
	assert.Equal(t, Slot{Offset: 0, Heap: 24, Size: 16, Len: 2}, p.Slots[0])
	assert.Equal(t, uint64(24), p.Pointer(0))
}

func TestEncodeBase(t *testing.T) {
	enc := NewEncoder(WithBase(0x1000))
	p, err := enc.Encode(value.String("hi"), types.String())
	require.NoError(t, err)

	assert.Equal(t, words(0x1000+24, 2, 2), p.Inline)
	assert.Equal(t, []byte{'h', 'i', 0, 0, 0, 0, 0, 0}, p.Heap)
	assert.Equal(t, uint64(0x1000), p.Base)
}

func TestEncodeBytesPadding(t *testing.T) {
	p, err := NewEncoder().Encode(value.Bytes{1, 2, 3, 4, 5, 6, 7, 8, 9}, types.Bytes())
	require.NoError(t, err)
	assert.Len(t, p.Heap, 16)
	assert.Equal(t, uint64(9), wordAt(t, p.Inline, 8))
	assert.Equal(t, uint64(16), p.Slots[0].Size)
}

func TestEncodeEmptyVector(t *testing.T) {
	p, err := NewEncoder().Encode(value.Vector{}, types.Vector(types.U64()))
	require.NoError(t, err)
	assert.Equal(t, words(24, 0, 0), p.Inline)
	assert.Empty(t, p.Heap)
}

func TestEncodeEnumInlineWidth(t *testing.T) {
	e := types.MustEnum("Shape",
		types.F("Empty", types.Unit()),
		types.F("Small", types.U8()),
		types.F("Large", types.Tuple(types.B256(), types.U64())),
	)
	variants := []value.Enum{
		value.Variant("Empty", nil),
		value.Variant("Small", value.U64(3)),
		value.Variant("Large", value.Tuple{value.B256{31: 1}, value.U64(4)}),
	}

	enc := NewEncoder()
	for i, v := range variants {
		t.Run(v.Variant, func(t *testing.T) {
			p, err := enc.Encode(v, e)
			require.NoError(t, err)
			assert.Len(t, p.Inline, 48)
			assert.Equal(t, uint64(i), wordAt(t, p.Inline, 0))
		})
	}

	p, err := enc.Encode(variants[1], e)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), wordAt(t, p.Inline, 8))
	assert.Equal(t, make([]byte, 32), p.Inline[16:], "unused payload bytes must be zero")
}

func TestEncodeTypeMismatch(t *testing.T) {
	order := types.MustStruct("Order", types.F("qty", types.U8()), types.F("note", types.Str(2)))
	book := types.MustStruct("Book", types.F("orders", types.Vector(order)))
	state := types.MustEnum("State", types.F("Open", types.Unit()))

	tests := []struct {
		name string
		typ  *types.Descriptor
		v    value.Value
		path string
	}{
		{"wrong kind", types.U64(), value.Bool(true), ""},
		{"array length", types.Array(types.U8(), 3), value.Array{value.U64(1)}, ""},
		{"str length", types.Str(2), value.Str("abc"), ""},
		{"unknown variant", state, value.Variant("Closed", nil), ""},
		{"missing field", order, value.Struct{{Name: "qty", Value: value.U64(1)}}, ""},
		{"unknown field", order, value.Struct{
			{Name: "qty", Value: value.U64(1)},
			{Name: "note", Value: value.Str("ab")},
			{Name: "extra", Value: value.U64(1)},
		}, ""},
		{"tuple arity", types.Tuple(types.U8()), value.Tuple{}, ""},
		{"nested path", book, value.Struct{{Name: "orders", Value: value.Vector{
			value.Struct{{Name: "qty", Value: value.U64(1)}, {Name: "note", Value: value.Str("ok")}},
			value.Struct{{Name: "qty", Value: value.String("x")}, {Name: "note", Value: value.Str("ok")}},
		}}}, "orders[1].qty"},
	}

	enc := NewEncoder()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := enc.Encode(tc.v, tc.typ)
			require.Error(t, err)
			assert.True(t, errors.IsKind(err, errors.KindTypeMismatch), err.Error())
			if tc.path != "" {
				var e *errors.Error
				require.ErrorAs(t, err, &e)
				assert.Equal(t, tc.path, errors.JoinPath(e.Path))
			}
		})
	}
}

func TestEncodeInvalidUTF8(t *testing.T) {
	_, err := NewEncoder().Encode(value.String(string([]byte{0xff})), types.String())
	assert.True(t, errors.IsKind(err, errors.KindInvalidUTF8))
}

func TestEncodeRejectsRecursiveDescriptor(t *testing.T) {
	loop := &types.Descriptor{Kind: types.KindStruct, Name: "Loop"}
	loop.Fields = []types.Field{types.F("next", loop)}

	_, err := NewEncoder().Encode(value.Struct{}, loop)
	assert.True(t, errors.IsKind(err, errors.KindRecursiveType))
}

func TestEncodeHeapLimit(t *testing.T) {
	enc := NewEncoder(WithMaxHeapSize(16))
	_, err := enc.Encode(value.Bytes(make([]byte, 17)), types.Bytes())
	assert.True(t, errors.IsKind(err, errors.KindOverflow))

	_, err = enc.Encode(value.Bytes(make([]byte, 16)), types.Bytes())
	assert.NoError(t, err)
}

func TestEncodeVectorLengthLimit(t *testing.T) {
	enc := NewEncoder(WithMaxVectorLength(2))
	_, err := enc.Encode(value.Vector{value.U64(1), value.U64(2), value.U64(3)}, types.Vector(types.U64()))
	assert.True(t, errors.IsKind(err, errors.KindOverflow))
}

func TestEncodeArgs(t *testing.T) {
	params := []types.Field{types.F("amount", types.U64()), types.F("memo", types.String())}
	p, err := NewEncoder().EncodeArgs(params, []value.Value{value.U64(5), value.String("x")})
	require.NoError(t, err)
	assert.Len(t, p.Inline, 32)
	assert.Equal(t, uint64(5), wordAt(t, p.Inline, 0))
	assert.Equal(t, uint64(32), wordAt(t, p.Inline, 8))

	_, err = NewEncoder().EncodeArgs(params, []value.Value{value.U64(5)})
	assert.True(t, errors.IsKind(err, errors.KindTypeMismatch))

	_, err = NewEncoder().EncodeArgs(params, []value.Value{value.U64(1 << 40), value.U64(1)})
	var e *errors.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, []string{"memo"}, e.Path)
}

func TestEncodeCall(t *testing.T) {
	fn := &types.Function{
		Name:   "deposit",
		Inputs: []types.Field{types.F("data", types.Bytes())},
		Output: types.Unit(),
	}
	data, p, err := NewEncoder().EncodeCall(fn, []value.Value{value.Bytes{0xab}})
	require.NoError(t, err)

	sel := fn.Selector()
	assert.Equal(t, sel[:], data[:8])
	// Pointer is relative to the start of the call data.
	assert.Equal(t, uint64(8+24), wordAt(t, data, 8))
	assert.Equal(t, byte(0xab), data[8+24])
	assert.Equal(t, uint64(8), p.Base)

	got, err := NewDecoder().DecodeAt(data[8:], fn.Params(), 8)
	require.NoError(t, err)
	assert.True(t, value.Equal(value.Tuple{value.Bytes{0xab}}, got))
}

func TestEncoderConcurrent(t *testing.T) {
	enc := NewEncoder()
	typ := types.Vector(types.MustStruct("Item", types.F("id", types.U64()), types.F("name", types.String())))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v := value.Vector{value.Struct{
				{Name: "id", Value: value.U64(uint64(i))},
				{Name: "name", Value: value.String(strings.Repeat("x", i))},
			}}
			p, err := enc.Encode(v, typ)
			if err != nil {
				t.Error(err)
				return
			}
			got, err := NewDecoder().Decode(p.Bytes(), typ)
			if err != nil {
				t.Error(err)
				return
			}
			if !value.Equal(v, got) {
				t.Errorf("goroutine %d: round trip mismatch", i)
			}
		}(i)
	}
	wg.Wait()
}
