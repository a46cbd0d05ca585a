package receipt

import (
	"bytes"
	"encoding/json"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/wippyai/sway-abi/errors"
	"github.com/wippyai/sway-abi/internal/abi"
)

// word is a u64 on the wire. It encodes as 0x-hex and decodes from a JSON
// number, a decimal string or a 0x-hex string.
type word uint64

func (w word) MarshalJSON() ([]byte, error) {
	return json.Marshal(hexutil.Uint64(w))
}

func (w *word) UnmarshalJSON(data []byte) error {
	var x any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&x); err != nil {
		return err
	}
	n, ok := abi.CoerceToUint256(x)
	if !ok || !n.IsUint64() {
		return errors.InvalidData(errors.PhaseParse, nil, "invalid word "+string(data))
	}
	*w = word(n.Uint64())
	return nil
}

type wireReceipt struct {
	Type       string        `json:"type"`
	ID         *B256         `json:"id,omitempty"`
	To         *B256         `json:"to,omitempty"`
	ContractID *B256         `json:"contractId,omitempty"`
	AssetID    *B256         `json:"assetId,omitempty"`
	SubID      *B256         `json:"subId,omitempty"`
	Digest     *B256         `json:"digest,omitempty"`
	Sender     *B256         `json:"sender,omitempty"`
	Recipient  *B256         `json:"recipient,omitempty"`
	Nonce      *B256         `json:"nonce,omitempty"`
	Amount     *word         `json:"amount,omitempty"`
	Gas        *word         `json:"gas,omitempty"`
	Param1     *word         `json:"param1,omitempty"`
	Param2     *word         `json:"param2,omitempty"`
	Val        *word         `json:"val,omitempty"`
	Reason     *word         `json:"reason,omitempty"`
	RA         *word         `json:"ra,omitempty"`
	RB         *word         `json:"rb,omitempty"`
	RC         *word         `json:"rc,omitempty"`
	RD         *word         `json:"rd,omitempty"`
	Ptr        *word         `json:"ptr,omitempty"`
	Len        *word         `json:"len,omitempty"`
	Result     *word         `json:"result,omitempty"`
	GasUsed    *word         `json:"gasUsed,omitempty"`
	PC         *word         `json:"pc,omitempty"`
	IS         *word         `json:"is,omitempty"`
	Data       hexutil.Bytes `json:"data,omitempty"`
}

func u64(x uint64) *word { v := word(x); return &v }

func idp(x B256) *B256 { return &x }

func (w *word) get() uint64 {
	if w == nil {
		return 0
	}
	return uint64(*w)
}

func idv(x *B256) B256 {
	if x == nil {
		return B256{}
	}
	return *x
}

// Marshal encodes a single receipt.
func Marshal(r Receipt) ([]byte, error) {
	wr, err := toWire(r)
	if err != nil {
		return nil, err
	}
	return json.Marshal(wr)
}

// MarshalList encodes receipts as a JSON array.
func MarshalList(rs []Receipt) ([]byte, error) {
	out := make([]*wireReceipt, len(rs))
	for i, r := range rs {
		wr, err := toWire(r)
		if err != nil {
			return nil, err
		}
		out[i] = wr
	}
	return json.Marshal(out)
}

// Unmarshal decodes a single receipt object.
func Unmarshal(data []byte) (Receipt, error) {
	var wr wireReceipt
	if err := json.Unmarshal(data, &wr); err != nil {
		return nil, errors.ParseFailed("receipt", err)
	}
	return fromWire(&wr)
}

// UnmarshalList decodes a JSON array of receipts.
func UnmarshalList(data []byte) ([]Receipt, error) {
	var wrs []*wireReceipt
	if err := json.Unmarshal(data, &wrs); err != nil {
		return nil, errors.ParseFailed("receipts", err)
	}
	out := make([]Receipt, len(wrs))
	for i, wr := range wrs {
		r, err := fromWire(wr)
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return out, nil
}

func toWire(r Receipt) (*wireReceipt, error) {
	wr := &wireReceipt{Type: r.Type().String()}
	switch r := r.(type) {
	case *Call:
		wr.ID, wr.To, wr.AssetID = idp(r.ID), idp(r.To), idp(r.AssetID)
		wr.Amount, wr.Gas, wr.Param1, wr.Param2 = u64(r.Amount), u64(r.Gas), u64(r.Param1), u64(r.Param2)
		wr.PC, wr.IS = u64(r.PC), u64(r.IS)
	case *Return:
		wr.ID, wr.Val, wr.PC, wr.IS = idp(r.ID), u64(r.Val), u64(r.PC), u64(r.IS)
	case *ReturnData:
		wr.ID, wr.Digest = idp(r.ID), idp(r.Digest)
		wr.Ptr, wr.Len, wr.PC, wr.IS = u64(r.Ptr), u64(r.Len), u64(r.PC), u64(r.IS)
		wr.Data = r.Data
	case *Panic:
		wr.ID, wr.ContractID = idp(r.ID), r.ContractID
		wr.Reason, wr.PC, wr.IS = u64(r.Reason), u64(r.PC), u64(r.IS)
	case *Revert:
		wr.ID, wr.Val, wr.PC, wr.IS = idp(r.ID), u64(r.Val), u64(r.PC), u64(r.IS)
	case *Log:
		wr.ID = idp(r.ID)
		wr.RA, wr.RB, wr.RC, wr.RD = u64(r.RA), u64(r.RB), u64(r.RC), u64(r.RD)
		wr.PC, wr.IS = u64(r.PC), u64(r.IS)
	case *LogData:
		wr.ID, wr.Digest = idp(r.ID), idp(r.Digest)
		wr.RA, wr.RB, wr.Ptr, wr.Len = u64(r.RA), u64(r.RB), u64(r.Ptr), u64(r.Len)
		wr.PC, wr.IS = u64(r.PC), u64(r.IS)
		wr.Data = r.Data
	case *Transfer:
		wr.ID, wr.To, wr.AssetID = idp(r.ID), idp(r.To), idp(r.AssetID)
		wr.Amount, wr.PC, wr.IS = u64(r.Amount), u64(r.PC), u64(r.IS)
	case *TransferOut:
		wr.ID, wr.To, wr.AssetID = idp(r.ID), idp(r.To), idp(r.AssetID)
		wr.Amount, wr.PC, wr.IS = u64(r.Amount), u64(r.PC), u64(r.IS)
	case *ScriptResult:
		wr.Result, wr.GasUsed = u64(r.Result), u64(r.GasUsed)
	case *MessageOut:
		wr.Sender, wr.Recipient, wr.Nonce, wr.Digest = idp(r.Sender), idp(r.Recipient), idp(r.Nonce), idp(r.Digest)
		wr.Amount, wr.Len = u64(r.Amount), u64(r.Len)
		wr.Data = r.Data
	case *Mint:
		wr.SubID, wr.ContractID, wr.AssetID = idp(r.SubID), idp(r.ContractID), idp(r.AssetID)
		wr.Val, wr.PC, wr.IS = u64(r.Val), u64(r.PC), u64(r.IS)
	case *Burn:
		wr.SubID, wr.ContractID, wr.AssetID = idp(r.SubID), idp(r.ContractID), idp(r.AssetID)
		wr.Val, wr.PC, wr.IS = u64(r.Val), u64(r.PC), u64(r.IS)
	default:
		return nil, errors.Unsupported(errors.PhaseParse, "receipt type "+r.Type().String())
	}
	return wr, nil
}

func fromWire(wr *wireReceipt) (Receipt, error) {
	t, ok := ParseType(wr.Type)
	if !ok {
		return nil, errors.InvalidData(errors.PhaseParse, nil, "unknown receipt type "+wr.Type)
	}
	switch t {
	case TypeCall:
		return &Call{
			ID: idv(wr.ID), To: idv(wr.To), AssetID: idv(wr.AssetID),
			Amount: wr.Amount.get(), Gas: wr.Gas.get(),
			Param1: wr.Param1.get(), Param2: wr.Param2.get(),
			PC: wr.PC.get(), IS: wr.IS.get(),
		}, nil
	case TypeReturn:
		return &Return{ID: idv(wr.ID), Val: wr.Val.get(), PC: wr.PC.get(), IS: wr.IS.get()}, nil
	case TypeReturnData:
		return &ReturnData{
			ID: idv(wr.ID), Digest: idv(wr.Digest), Data: wr.Data,
			Ptr: wr.Ptr.get(), Len: lenOr(wr.Len, wr.Data), PC: wr.PC.get(), IS: wr.IS.get(),
		}, nil
	case TypePanic:
		return &Panic{
			ID: idv(wr.ID), ContractID: wr.ContractID,
			Reason: wr.Reason.get(), PC: wr.PC.get(), IS: wr.IS.get(),
		}, nil
	case TypeRevert:
		return &Revert{ID: idv(wr.ID), Val: wr.Val.get(), PC: wr.PC.get(), IS: wr.IS.get()}, nil
	case TypeLog:
		return &Log{
			ID: idv(wr.ID),
			RA: wr.RA.get(), RB: wr.RB.get(), RC: wr.RC.get(), RD: wr.RD.get(),
			PC: wr.PC.get(), IS: wr.IS.get(),
		}, nil
	case TypeLogData:
		return &LogData{
			ID: idv(wr.ID), Digest: idv(wr.Digest), Data: wr.Data,
			RA: wr.RA.get(), RB: wr.RB.get(), Ptr: wr.Ptr.get(), Len: lenOr(wr.Len, wr.Data),
			PC: wr.PC.get(), IS: wr.IS.get(),
		}, nil
	case TypeTransfer:
		return &Transfer{
			ID: idv(wr.ID), To: idv(wr.To), AssetID: idv(wr.AssetID),
			Amount: wr.Amount.get(), PC: wr.PC.get(), IS: wr.IS.get(),
		}, nil
	case TypeTransferOut:
		return &TransferOut{
			ID: idv(wr.ID), To: idv(wr.To), AssetID: idv(wr.AssetID),
			Amount: wr.Amount.get(), PC: wr.PC.get(), IS: wr.IS.get(),
		}, nil
	case TypeScriptResult:
		return &ScriptResult{Result: wr.Result.get(), GasUsed: wr.GasUsed.get()}, nil
	case TypeMessageOut:
		return &MessageOut{
			Sender: idv(wr.Sender), Recipient: idv(wr.Recipient), Nonce: idv(wr.Nonce), Digest: idv(wr.Digest),
			Amount: wr.Amount.get(), Len: lenOr(wr.Len, wr.Data), Data: wr.Data,
		}, nil
	case TypeMint:
		return &Mint{
			SubID: idv(wr.SubID), ContractID: idv(wr.ContractID), AssetID: idv(wr.AssetID),
			Val: wr.Val.get(), PC: wr.PC.get(), IS: wr.IS.get(),
		}, nil
	default:
		return &Burn{
			SubID: idv(wr.SubID), ContractID: idv(wr.ContractID), AssetID: idv(wr.AssetID),
			Val: wr.Val.get(), PC: wr.PC.get(), IS: wr.IS.get(),
		}, nil
	}
}

func lenOr(n *word, data []byte) uint64 {
	if n == nil {
		return uint64(len(data))
	}
	return uint64(*n)
}
