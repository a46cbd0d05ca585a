package types

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/sway-abi/errors"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		want string
		kind Kind
	}{
		{"bool", KindBool},
		{"uint", KindUint},
		{"b256", KindB256},
		{"str", KindStr},
		{"array", KindArray},
		{"vector", KindVector},
		{"struct", KindStruct},
		{"enum", KindEnum},
		{"tuple", KindTuple},
		{"bytes", KindBytes},
		{"string", KindString},
		{"unknown", Kind(255)},
	}

	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.kind.String())
		})
	}
}

func TestKindClassification(t *testing.T) {
	for _, k := range []Kind{KindBool, KindUint, KindB256} {
		assert.True(t, k.IsPrimitive(), k.String())
		assert.False(t, k.IsDynamic(), k.String())
	}
	for _, k := range []Kind{KindVector, KindBytes, KindString} {
		assert.True(t, k.IsDynamic(), k.String())
		assert.False(t, k.IsPrimitive(), k.String())
	}
	assert.False(t, KindArray.IsDynamic())
	assert.False(t, KindStr.IsDynamic())
}

func TestUintWidths(t *testing.T) {
	for _, w := range []int{8, 16, 32, 64, 256} {
		d, err := Uint(w)
		require.NoError(t, err)
		assert.Equal(t, uint16(w), d.Width)
	}

	_, err := Uint(128)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindUnsupported))
}

func TestPrimitive(t *testing.T) {
	d, err := Primitive("b256")
	require.NoError(t, err)
	assert.Same(t, B256(), d)

	_, err = Primitive("i32")
	assert.True(t, errors.IsKind(err, errors.KindUnsupported))
}

func TestStructDuplicateField(t *testing.T) {
	_, err := Struct("Point", F("x", U64()), F("x", U32()))
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindDuplicateMember))
	assert.Contains(t, err.Error(), `"x"`)
}

func TestEnumDuplicateVariant(t *testing.T) {
	_, err := Enum("State", F("Open", Unit()), F("Open", U8()))
	assert.True(t, errors.IsKind(err, errors.KindDuplicateMember))
}

func TestEnumTagWidth(t *testing.T) {
	variants := make([]Field, 257)
	for i := range variants {
		variants[i] = F("V"+strings.Repeat("x", i), Unit())
	}

	_, err := EnumWithTag("Wide", 8, variants...)
	assert.True(t, errors.IsKind(err, errors.KindUnsupported))

	d, err := EnumWithTag("Wide", 16, variants...)
	require.NoError(t, err)
	assert.Equal(t, uint16(16), d.Width)

	_, err = EnumWithTag("Odd", 12, F("A", Unit()))
	assert.True(t, errors.IsKind(err, errors.KindUnsupported))
}

func TestMemberWithoutType(t *testing.T) {
	_, err := Struct("Bad", F("x", nil))
	assert.True(t, errors.IsKind(err, errors.KindInvalidInput))
}

func TestDescriptorString(t *testing.T) {
	point := MustStruct("Point", F("x", U64()), F("y", U64()))
	state := MustEnum("State", F("Open", Unit()), F("Closed", U64()))

	tests := []struct {
		want string
		d    *Descriptor
	}{
		{"bool", Bool()},
		{"u8", U8()},
		{"u256", U256()},
		{"b256", B256()},
		{"str[5]", Str(5)},
		{"[u8; 3]", Array(U8(), 3)},
		{"Vec<struct Point>", Vector(point)},
		{"enum State", state},
		{"(u64, bool)", Tuple(U64(), Bool())},
		{"()", Unit()},
		{"Bytes", Bytes()},
		{"String", String()},
	}
	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.d.String())
		})
	}
}

func TestSignature(t *testing.T) {
	point := MustStruct("Point", F("x", U64()), F("y", U64()))
	assert.Equal(t, "s(u64,u64)", point.Signature())
	assert.Equal(t, "a[u8;3]", Array(U8(), 3).Signature())
	assert.Equal(t, "s<u8>(s<u8>(rawptr,u64),u64)", Vector(U8()).Signature())
	assert.Equal(t, "e((),u64)", MustEnum("E", F("A", Unit()), F("B", U64())).Signature())
}

func TestRecursiveThroughVector(t *testing.T) {
	node, err := Recursive("Node", func(self *Descriptor) (*Descriptor, error) {
		return Struct("Node", F("value", U64()), F("children", Vector(self)))
	})
	require.NoError(t, err)
	children, ok := node.Field("children")
	require.True(t, ok)
	assert.Same(t, node, children.Elem)
	assert.Equal(t, "s(u64,s<s>(s<s>(rawptr,u64),u64))", node.Signature())
	assert.Contains(t, node.Tree(), "(recursive)")
}

func TestRecursiveWithoutIndirection(t *testing.T) {
	tests := []struct {
		name  string
		build func(self *Descriptor) (*Descriptor, error)
	}{
		{"direct field", func(self *Descriptor) (*Descriptor, error) {
			return Struct("Node", F("next", self))
		}},
		{"array field", func(self *Descriptor) (*Descriptor, error) {
			return Struct("Node", F("next", Array(self, 2)))
		}},
		{"tuple field", func(self *Descriptor) (*Descriptor, error) {
			return Struct("Node", F("pair", Tuple(U8(), self)))
		}},
		{"enum variant", func(self *Descriptor) (*Descriptor, error) {
			return Enum("List", F("Nil", Unit()), F("Cons", Tuple(U64(), self)))
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Recursive("Node", tc.build)
			require.Error(t, err)
			assert.True(t, errors.IsKind(err, errors.KindRecursiveType), err.Error())
		})
	}
}

func TestValidateAllowsSharedSubtrees(t *testing.T) {
	point := MustStruct("Point", F("x", U64()), F("y", U64()))
	line := MustStruct("Line", F("from", point), F("to", point))
	require.NoError(t, Validate(line))
	require.NoError(t, Validate(Array(line, 4)))
}

func TestValidateRejectsBadWidth(t *testing.T) {
	err := Validate(&Descriptor{Kind: KindUint, Width: 12})
	assert.True(t, errors.IsKind(err, errors.KindUnsupported))

	err = Validate(&Descriptor{Kind: KindVector})
	assert.True(t, errors.IsKind(err, errors.KindInvalidData))
}

func TestTree(t *testing.T) {
	point := MustStruct("Point", F("x", U64()), F("y", U64()))
	shape := MustStruct("Shape", F("points", Vector(point)), F("closed", Bool()))

	out := shape.Tree()
	for _, want := range []string{"struct Shape", "points", "Vec<struct Point>", "x", "u64", "closed", "bool"} {
		assert.Contains(t, out, want)
	}
}

func TestTupleFieldNames(t *testing.T) {
	tup := Tuple(U8(), Bool())
	require.Len(t, tup.Fields, 2)
	assert.Equal(t, "0", tup.Fields[0].Name)
	assert.Equal(t, "1", tup.Fields[1].Name)
	assert.True(t, Unit().IsUnit())
	assert.False(t, tup.IsUnit())
}

func TestVariantLookup(t *testing.T) {
	state := MustEnum("State", F("Open", Unit()), F("Closed", U64()))
	idx, typ, ok := state.Variant("Closed")
	require.True(t, ok)
	assert.Equal(t, 1, idx)
	assert.Same(t, U64(), typ)

	_, _, ok = state.Variant("Missing")
	assert.False(t, ok)
}
