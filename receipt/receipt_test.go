package receipt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/sway-abi/errors"
)

func TestTypeNames(t *testing.T) {
	for i := TypeCall; i <= TypeBurn; i++ {
		got, ok := ParseType(i.String())
		require.True(t, ok, i.String())
		assert.Equal(t, i, got)
	}
	assert.Equal(t, "LOG_DATA", TypeLogData.String())
	assert.Equal(t, "UNKNOWN", Type(99).String())
	_, ok := ParseType("NOPE")
	assert.False(t, ok)
}

func TestContractOf(t *testing.T) {
	id := B256{31: 7}

	c, ok := ContractOf(&LogData{ID: id})
	assert.True(t, ok)
	assert.Equal(t, id, c)

	c, ok = ContractOf(&Mint{ContractID: id})
	assert.True(t, ok)
	assert.Equal(t, id, c)

	_, ok = ContractOf(&ScriptResult{})
	assert.False(t, ok)
}

func TestParseB256(t *testing.T) {
	h, err := ParseB256("0x00000000000000000000000000000000000000000000000000000000000000ff")
	require.NoError(t, err)
	assert.Equal(t, byte(0xff), h[31])
	assert.Equal(t, "0x00000000000000000000000000000000000000000000000000000000000000ff", h.String())
	assert.False(t, h.IsZero())

	_, err = ParseB256("0x1234")
	assert.Error(t, err)
}

func TestJSONRoundTrip(t *testing.T) {
	id := B256{0: 0xaa, 31: 0x01}
	other := B256{0: 0xbb}
	panicCtx := B256{1: 2}

	rs := []Receipt{
		&Call{ID: id, To: other, AssetID: other, Amount: 5, Gas: 100, Param1: 1, Param2: 2, PC: 3, IS: 4},
		&Return{ID: id, Val: 1, PC: 2, IS: 3},
		&ReturnData{ID: id, Digest: other, Ptr: 10240, Len: 3, Data: []byte{1, 2, 3}, PC: 1, IS: 2},
		&Panic{ID: id, ContractID: &panicCtx, Reason: 0x25, PC: 9, IS: 8},
		&Revert{ID: id, Val: 0xffff_ffff_ffff_0000},
		&Log{ID: id, RA: 42, RB: 7, RC: 1, RD: 2},
		&LogData{ID: id, RA: 0, RB: 1515152261580153489, Ptr: 100, Len: 2, Data: []byte{9, 9}},
		&Transfer{ID: id, To: other, AssetID: other, Amount: 12},
		&TransferOut{ID: id, To: other, AssetID: other, Amount: 13},
		&ScriptResult{Result: 1, GasUsed: 5000},
		&MessageOut{Sender: id, Recipient: other, Nonce: other, Digest: id, Amount: 1, Len: 1, Data: []byte{7}},
		&Mint{SubID: other, ContractID: id, AssetID: other, Val: 100},
		&Burn{SubID: other, ContractID: id, AssetID: other, Val: 50},
	}

	data, err := MarshalList(rs)
	require.NoError(t, err)

	got, err := UnmarshalList(data)
	require.NoError(t, err)
	assert.Equal(t, rs, got)
}

func TestUnmarshalWordForms(t *testing.T) {
	tests := []struct {
		name string
		json string
		want uint64
	}{
		{"number", `{"type":"REVERT","val":5}`, 5},
		{"decimal string", `{"type":"REVERT","val":"18446744073709486080"}`, 0xffff_ffff_ffff_0000},
		{"hex string", `{"type":"REVERT","val":"0xffffffffffff0003"}`, 0xffff_ffff_ffff_0003},
		{"missing", `{"type":"REVERT"}`, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, err := Unmarshal([]byte(tc.json))
			require.NoError(t, err)
			rev, ok := r.(*Revert)
			require.True(t, ok)
			assert.Equal(t, tc.want, rev.Val)
		})
	}
}

func TestUnmarshalLengthDefaultsToData(t *testing.T) {
	r, err := Unmarshal([]byte(`{"type":"LOG_DATA","rb":3,"data":"0x0102"}`))
	require.NoError(t, err)
	ld := r.(*LogData)
	assert.Equal(t, uint64(2), ld.Len)
	assert.Equal(t, uint64(3), ld.RB)
}

func TestUnmarshalErrors(t *testing.T) {
	_, err := Unmarshal([]byte(`{"type":"BOGUS"}`))
	assert.True(t, errors.IsKind(err, errors.KindInvalidData))

	_, err = Unmarshal([]byte(`{"type":"REVERT","val":-1}`))
	assert.Error(t, err)

	_, err = Unmarshal([]byte(`{"type":"REVERT","val":"18446744073709551616"}`))
	assert.Error(t, err)

	_, err = UnmarshalList([]byte(`{`))
	assert.Error(t, err)
}
