package logs

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/sway-abi/errors"
	"github.com/wippyai/sway-abi/receipt"
	"github.com/wippyai/sway-abi/transcoder"
	"github.com/wippyai/sway-abi/types"
	"github.com/wippyai/sway-abi/value"
)

var (
	c1 = receipt.ContractID{31: 1}
	c2 = receipt.ContractID{31: 2}
)

const (
	l1 = 11
	l2 = 22
	l3 = 33
)

func program(t *testing.T, logs map[uint64]*types.Descriptor) *types.Program {
	t.Helper()
	p, err := types.NewProgram(nil, logs)
	require.NoError(t, err)
	return p
}

func logData(t *testing.T, contract receipt.ContractID, logID uint64, typ *types.Descriptor, v value.Value) *receipt.LogData {
	t.Helper()
	const ptr = 0x2800
	p, err := transcoder.NewEncoder(transcoder.WithBase(ptr)).Encode(v, typ)
	require.NoError(t, err)
	data := p.Bytes()
	return &receipt.LogData{ID: contract, RB: logID, Ptr: ptr, Len: uint64(len(data)), Data: data}
}

func testRegistry(t *testing.T) *Registry {
	return NewRegistry(map[receipt.ContractID]*types.Program{
		c1: program(t, map[uint64]*types.Descriptor{l1: types.String(), l3: types.U64()}),
		c2: program(t, map[uint64]*types.Descriptor{l2: types.String()}),
	})
}

func TestDecodeGroupsByContract(t *testing.T) {
	receipts := []receipt.Receipt{
		&receipt.Call{ID: c1},
		logData(t, c1, l1, types.String(), value.String("FOO")),
		logData(t, c2, l2, types.String(), value.String("BAR")),
		&receipt.Log{ID: c1, RA: 99, RB: l3},
		&receipt.Return{ID: c1},
	}

	res := Decode(receipts, testRegistry(t))
	require.Empty(t, res.Failures)

	assert.Equal(t, []value.Value{value.String("FOO"), value.String("BAR"), value.U64(99)}, res.Logs)
	assert.Equal(t, []value.Value{value.String("FOO"), value.U64(99)}, res.Group(c1))
	assert.Equal(t, []value.Value{value.String("BAR")}, res.Group(c2))
	assert.Equal(t, []receipt.ContractID{c1, c2}, res.Contracts)

	require.Len(t, res.Entries, 3)
	assert.Equal(t, 1, res.Entries[0].Index)
	assert.Equal(t, uint64(l3), res.Entries[2].LogID)
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 99}, res.Entries[2].Payload)
}

func TestDecodeSkipsFailures(t *testing.T) {
	unknownContract := receipt.ContractID{31: 9}
	receipts := []receipt.Receipt{
		&receipt.Log{ID: c1, RA: 1, RB: 404},
		&receipt.Log{ID: unknownContract, RA: 1, RB: l1},
		&receipt.LogData{ID: c2, RB: l2, Data: []byte{1, 2}},
		&receipt.Log{ID: c1, RA: 7, RB: l3},
	}

	res := Decode(receipts, testRegistry(t))
	require.Len(t, res.Failures, 3)
	assert.True(t, errors.IsKind(res.Failures[0].Err, errors.KindUnknownLogID))
	assert.Equal(t, uint64(404), res.Failures[0].LogID)
	assert.True(t, errors.IsKind(res.Failures[1].Err, errors.KindNotFound))
	assert.True(t, errors.IsKind(res.Failures[2].Err, errors.KindInsufficientData))
	assert.Equal(t, 2, res.Failures[2].Index)

	assert.Equal(t, []value.Value{value.U64(7)}, res.Logs)
}

func TestDecodeScriptLogs(t *testing.T) {
	reg := NewRegistry(map[receipt.ContractID]*types.Program{
		{}: program(t, map[uint64]*types.Descriptor{0: types.Bool()}),
	})
	res := Decode([]receipt.Receipt{&receipt.Log{RA: 1}}, reg)
	require.Empty(t, res.Failures)
	assert.Equal(t, []value.Value{value.Bool(true)}, res.Group(receipt.ContractID{}))
}

func TestDecodeNilRegistry(t *testing.T) {
	res := Decode([]receipt.Receipt{&receipt.Log{ID: c1, RB: l3}}, nil)
	assert.Empty(t, res.Logs)
	require.Len(t, res.Failures, 1)
	assert.Equal(t, 0, NewRegistry(nil).Len())
}

func TestDecodeSelfReferencingLogData(t *testing.T) {
	const ptr = 0x2800
	// String triple whose data pointer is the triple itself.
	data := make([]byte, 24)
	binary.BigEndian.PutUint64(data[0:], ptr)
	binary.BigEndian.PutUint64(data[8:], 3)
	binary.BigEndian.PutUint64(data[16:], 3)

	receipts := []receipt.Receipt{
		&receipt.LogData{ID: c1, RB: l1, Ptr: ptr, Len: 24, Data: data},
		&receipt.Log{ID: c1, RA: 7, RB: l3},
	}

	res := Decode(receipts, testRegistry(t))
	require.Len(t, res.Failures, 1)
	assert.True(t, errors.IsKind(res.Failures[0].Err, errors.KindOutOfBounds), res.Failures[0].Err.Error())
	assert.Equal(t, []value.Value{value.U64(7)}, res.Logs)
}
