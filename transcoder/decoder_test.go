package transcoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/sway-abi/errors"
	"github.com/wippyai/sway-abi/types"
	"github.com/wippyai/sway-abi/value"
)

func TestDecodePrimitives(t *testing.T) {
	dec := NewDecoder()

	tests := []struct {
		name string
		typ  *types.Descriptor
		data []byte
		want value.Value
	}{
		{"bool", types.Bool(), words(1), value.Bool(true)},
		{"u8", types.U8(), words(200), value.U64(200)},
		{"u64", types.U64(), words(1 << 62), value.U64(1 << 62)},
		{"str", types.Str(2), []byte{'o', 'k', 0, 0, 0, 0, 0, 0}, value.Str("ok")},
		{"vector", types.Vector(types.U16()), append(words(24, 2, 2), words(1, 2)...), value.Vector{value.U64(1), value.U64(2)}},
		{"string", types.String(), append(words(24, 3, 8), 'a', 'b', 'c', 0, 0, 0, 0, 0), value.String("abc")},
		{"extra trailing bytes", types.U8(), words(1, 99), value.U64(1)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := dec.Decode(tc.data, tc.typ)
			require.NoError(t, err)
			assert.True(t, value.Equal(tc.want, got), "got %s", value.Render(got))
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	state := types.MustEnum("State", types.F("A", types.Unit()), types.F("B", types.U64()), types.F("C", types.Bool()))

	tests := []struct {
		name string
		typ  *types.Descriptor
		data []byte
		kind errors.Kind
	}{
		{"empty input", types.U64(), nil, errors.KindInsufficientData},
		{"short word", types.U64(), []byte{0, 0, 1}, errors.KindInsufficientData},
		{"short struct", types.MustStruct("P", types.F("x", types.U64()), types.F("y", types.U64())), words(1), errors.KindInsufficientData},
		{"invalid discriminant", state, words(7, 0), errors.KindInvalidDiscriminant},
		{"invalid bool", types.Bool(), words(2), errors.KindInvalidData},
		{"u8 out of range", types.U8(), words(300), errors.KindInvalidData},
		{"cap below len", types.Vector(types.U64()), append(words(24, 2, 1), words(1, 2)...), errors.KindLengthMismatch},
		{"heap too short", types.Vector(types.U64()), append(words(24, 3, 3), words(1, 2)...), errors.KindInsufficientData},
		{"pointer past end", types.Bytes(), words(4096, 1, 1), errors.KindOutOfBounds},
		{"invalid utf8", types.String(), append(words(24, 1, 1), 0xff, 0, 0, 0, 0, 0, 0, 0), errors.KindInvalidUTF8},
		{"vector too long", types.Vector(types.Unit()), words(24, MaxVectorLength+1, MaxVectorLength+1), errors.KindOverflow},
	}

	dec := NewDecoder()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := dec.Decode(tc.data, tc.typ)
			require.Error(t, err)
			assert.True(t, errors.IsKind(err, tc.kind), err.Error())
		})
	}
}

func TestDecodePointerBelowBase(t *testing.T) {
	dec := NewDecoder(WithBase(100))
	_, err := dec.Decode(append(words(10, 1, 1), words(0)...), types.Bytes())
	assert.True(t, errors.IsKind(err, errors.KindOutOfBounds))
}

func TestDecodeInvalidDiscriminantPath(t *testing.T) {
	state := types.MustEnum("State", types.F("A", types.Unit()))
	holder := types.MustStruct("Holder", types.F("id", types.U64()), types.F("state", state))

	_, err := NewDecoder().Decode(words(1, 5), holder)
	var e *errors.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, errors.KindInvalidDiscriminant, e.Kind)
	assert.Equal(t, "state", errors.JoinPath(e.Path))
	assert.Equal(t, uint64(5), e.Value)
}

func TestDecodeArgs(t *testing.T) {
	params := []types.Field{types.F("a", types.U8()), types.F("b", types.Vector(types.Bool()))}
	args := []value.Value{value.U64(9), value.Vector{value.Bool(true), value.Bool(false)}}

	p, err := NewEncoder().EncodeArgs(params, args)
	require.NoError(t, err)

	got, err := NewDecoder().DecodeArgs(p.Bytes(), params)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, value.Equal(args[0], got[0]))
	assert.True(t, value.Equal(args[1], got[1]))
}

func TestDecodeRejectsSelfReference(t *testing.T) {
	node, err := types.Recursive("Node", func(self *types.Descriptor) (*types.Descriptor, error) {
		return types.Struct("Node", types.F("children", types.Vector(self)))
	})
	require.NoError(t, err)

	// The children triple points back at itself.
	_, err = NewDecoder().Decode(words(0, 1, 1), node)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindOutOfBounds), err.Error())

	// Same loop one level down: the child's triple points at the parent.
	_, err = NewDecoder().Decode(words(24, 1, 1, 0, 1, 1), node)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindOutOfBounds), err.Error())
}

func TestDecodeRejectsAliasedHeap(t *testing.T) {
	typ := types.Vector(types.Vector(types.U64()))

	// Two inner vectors sharing one region.
	data := words(24, 2, 2,
		72, 2, 2,
		72, 2, 2,
		7, 8)
	_, err := NewDecoder().Decode(data, typ)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindOutOfBounds), err.Error())

	// Distinct regions decode.
	data = words(24, 2, 2,
		72, 1, 1,
		80, 1, 1,
		7, 8)
	got, err := NewDecoder().Decode(data, typ)
	require.NoError(t, err)
	want := value.Vector{value.Vector{value.U64(7)}, value.Vector{value.U64(8)}}
	assert.True(t, value.Equal(want, got), "got %s", value.Render(got))
}

func TestDecodeHeapIntoInline(t *testing.T) {
	pair := types.Tuple(types.U64(), types.Bytes())
	_, err := NewDecoder().Decode(words(1, 0, 8, 8), pair)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindOutOfBounds), err.Error())
}

func TestDecodeZeroSizedBudget(t *testing.T) {
	typ := types.Vector(types.Vector(types.Unit()))
	data := words(24, 2, 2,
		72, 3, 3,
		72, 3, 3)

	_, err := NewDecoder(WithMaxVectorLength(4)).Decode(data, typ)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindOverflow), err.Error())

	got, err := NewDecoder(WithMaxVectorLength(6)).Decode(data, typ)
	require.NoError(t, err)
	assert.Len(t, got.(value.Vector), 2)
}

func TestDecodeMaxDepth(t *testing.T) {
	typ := types.Vector(types.Vector(types.Vector(types.U64())))
	v := value.Vector{value.Vector{value.Vector{value.U64(1)}}}

	p, err := NewEncoder().Encode(v, typ)
	require.NoError(t, err)

	_, err = NewDecoder(WithMaxDepth(2)).Decode(p.Bytes(), typ)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindOverflow), err.Error())

	got, err := NewDecoder(WithMaxDepth(3)).Decode(p.Bytes(), typ)
	require.NoError(t, err)
	assert.True(t, value.Equal(v, got))
}
