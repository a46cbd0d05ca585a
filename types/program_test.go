package types

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/sway-abi/errors"
)

const marketABI = `{
  "types": [
    {"typeId": 0, "type": "()", "components": null, "typeParameters": null},
    {"typeId": 1, "type": "u64", "components": null, "typeParameters": null},
    {"typeId": 2, "type": "str[3]", "components": null, "typeParameters": null},
    {"typeId": 3, "type": "struct Order", "components": [
      {"name": "id", "type": 1, "typeArguments": null},
      {"name": "tags", "type": 5, "typeArguments": [{"name": "", "type": 2, "typeArguments": null}]},
      {"name": "side", "type": 7, "typeArguments": null}
    ], "typeParameters": null},
    {"typeId": 4, "type": "generic T", "components": null, "typeParameters": null},
    {"typeId": 5, "type": "struct std::vec::Vec", "components": [
      {"name": "buf", "type": 6, "typeArguments": [{"name": "", "type": 4, "typeArguments": null}]},
      {"name": "len", "type": 1, "typeArguments": null}
    ], "typeParameters": [4]},
    {"typeId": 6, "type": "struct std::vec::RawVec", "components": [
      {"name": "ptr", "type": 9, "typeArguments": null},
      {"name": "cap", "type": 1, "typeArguments": null}
    ], "typeParameters": [4]},
    {"typeId": 7, "type": "enum Side", "components": [
      {"name": "Buy", "type": 0, "typeArguments": null},
      {"name": "Sell", "type": 0, "typeArguments": null}
    ], "typeParameters": null},
    {"typeId": 8, "type": "[_; 2]", "components": [{"name": "__array_element", "type": 1, "typeArguments": null}], "typeParameters": null},
    {"typeId": 9, "type": "raw untyped ptr", "components": null, "typeParameters": null},
    {"typeId": 10, "type": "(_, _)", "components": [
      {"name": "__tuple_element", "type": 1, "typeArguments": null},
      {"name": "__tuple_element", "type": 13, "typeArguments": null}
    ], "typeParameters": null},
    {"typeId": 11, "type": "enum std::option::Option", "components": [
      {"name": "None", "type": 0, "typeArguments": null},
      {"name": "Some", "type": 4, "typeArguments": null}
    ], "typeParameters": [4]},
    {"typeId": 12, "type": "struct Node", "components": [
      {"name": "value", "type": 1, "typeArguments": null},
      {"name": "children", "type": 5, "typeArguments": [{"name": "", "type": 12, "typeArguments": null}]}
    ], "typeParameters": null},
    {"typeId": 13, "type": "bool", "components": null, "typeParameters": null},
    {"typeId": 14, "type": "struct std::string::String", "components": [
      {"name": "bytes", "type": 15, "typeArguments": null}
    ], "typeParameters": null},
    {"typeId": 15, "type": "struct std::bytes::Bytes", "components": null, "typeParameters": null}
  ],
  "functions": [
    {"name": "place", "inputs": [
      {"name": "order", "type": 3, "typeArguments": null},
      {"name": "limits", "type": 8, "typeArguments": null}
    ], "output": {"name": "", "type": 11, "typeArguments": [{"name": "", "type": 1, "typeArguments": null}]}},
    {"name": "tree", "inputs": [], "output": {"name": "", "type": 12, "typeArguments": null}},
    {"name": "pair", "inputs": [{"name": "p", "type": 10, "typeArguments": null}], "output": {"name": "", "type": 14, "typeArguments": null}}
  ],
  "loggedTypes": [
    {"logId": 0, "loggedType": {"name": "", "type": 3, "typeArguments": []}},
    {"logId": "1515152261580153489", "loggedType": {"name": "", "type": 1, "typeArguments": null}},
    {"logId": 2, "loggedType": {"name": "", "type": 15, "typeArguments": null}}
  ],
  "configurables": [
    {"name": "FEE", "configurableType": {"name": "", "type": 1, "typeArguments": null}, "offset": 4096}
  ]
}`

func TestParseProgram(t *testing.T) {
	p, err := ParseProgram([]byte(marketABI))
	require.NoError(t, err)

	place, ok := p.Function("place")
	require.True(t, ok)
	require.Len(t, place.Inputs, 2)

	order := place.Inputs[0].Type
	assert.Equal(t, KindStruct, order.Kind)
	assert.Equal(t, "Order", order.Name)
	tags, ok := order.Field("tags")
	require.True(t, ok)
	assert.Equal(t, "Vec<str[3]>", tags.String())

	assert.Equal(t, "[u64; 2]", place.Inputs[1].Type.String())

	out := place.Output
	require.Equal(t, KindEnum, out.Kind)
	_, some, ok := out.Variant("Some")
	require.True(t, ok)
	assert.Same(t, U64(), some)

	side, ok := p.Type("Side")
	require.True(t, ok)
	assert.Len(t, side.Variants, 2)

	opt, ok := p.Type("Option")
	require.True(t, ok)
	assert.Same(t, out, opt)
	_, ok = p.Type("std::option::Option")
	assert.True(t, ok)
}

func TestParseProgramRecursion(t *testing.T) {
	p, err := ParseProgram([]byte(marketABI))
	require.NoError(t, err)

	tree, ok := p.Function("tree")
	require.True(t, ok)
	node := tree.Output
	children, ok := node.Field("children")
	require.True(t, ok)
	assert.Equal(t, KindVector, children.Kind)
	assert.Same(t, node, children.Elem)
}

func TestParseProgramDynamicKinds(t *testing.T) {
	p, err := ParseProgram([]byte(marketABI))
	require.NoError(t, err)

	pair, ok := p.Function("pair")
	require.True(t, ok)
	assert.Equal(t, "(u64, bool)", pair.Inputs[0].Type.String())
	assert.Equal(t, KindString, pair.Output.Kind)

	bytesLog, ok := p.LogType(2)
	require.True(t, ok)
	assert.Equal(t, KindBytes, bytesLog.Kind)
}

func TestParseProgramLogsAndConfigurables(t *testing.T) {
	p, err := ParseProgram([]byte(marketABI))
	require.NoError(t, err)

	assert.Equal(t, []uint64{0, 2, 1515152261580153489}, p.LogIDs)

	d, ok := p.LogType(1515152261580153489)
	require.True(t, ok)
	assert.Same(t, U64(), d)

	_, ok = p.LogType(99)
	assert.False(t, ok)

	require.Len(t, p.Configurables, 1)
	assert.Equal(t, "FEE", p.Configurables[0].Name)
	assert.Equal(t, uint64(4096), p.Configurables[0].Offset)
}

func TestParseProgramErrors(t *testing.T) {
	tests := []struct {
		name string
		abi  string
		kind errors.Kind
	}{
		{"malformed json", `{"types": [`, errors.KindInvalidData},
		{"undeclared type", `{"types": [], "functions": [{"name": "f", "inputs": [], "output": {"type": 3}}]}`, errors.KindNotFound},
		{"unknown type", `{"types": [{"typeId": 0, "type": "i32"}], "functions": [{"name": "f", "inputs": [], "output": {"type": 0}}]}`, errors.KindUnsupported},
		{"duplicate field", `{"types": [
			{"typeId": 0, "type": "u8"},
			{"typeId": 1, "type": "struct P", "components": [{"name": "x", "type": 0}, {"name": "x", "type": 0}]}
		]}`, errors.KindDuplicateMember},
		{"direct recursion", `{"types": [
			{"typeId": 0, "type": "struct Loop", "components": [{"name": "next", "type": 0}]}
		]}`, errors.KindRecursiveType},
		{"bad log id", `{"types": [{"typeId": 0, "type": "u8"}], "loggedTypes": [{"logId": "abc", "loggedType": {"type": 0}}]}`, errors.KindInvalidData},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseProgram([]byte(tc.abi))
			require.Error(t, err)
			assert.True(t, errors.IsKind(err, tc.kind), err.Error())
		})
	}
}

func TestFunctionSelector(t *testing.T) {
	fn := &Function{Name: "transfer", Inputs: []Field{F("amount", U64()), F("to", B256())}}
	assert.Equal(t, "transfer(u64,b256)", fn.Signature())

	sum := sha256.Sum256([]byte("transfer(u64,b256)"))
	sel := fn.Selector()
	assert.Equal(t, []byte{0, 0, 0, 0}, sel[:4])
	assert.Equal(t, sum[:4], sel[4:])

	params := fn.Params()
	assert.Equal(t, "(u64, b256)", params.String())
}

func TestNewProgramDuplicateFunction(t *testing.T) {
	fn := &Function{Name: "f", Output: Unit()}
	_, err := NewProgram([]*Function{fn, fn}, nil)
	assert.True(t, errors.IsKind(err, errors.KindDuplicateMember))
}
