package receipt

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Type identifies a receipt variant. Values follow the node's numbering.
type Type uint8

const (
	TypeCall Type = iota
	TypeReturn
	TypeReturnData
	TypePanic
	TypeRevert
	TypeLog
	TypeLogData
	TypeTransfer
	TypeTransferOut
	TypeScriptResult
	TypeMessageOut
	TypeMint
	TypeBurn
)

var typeNames = [...]string{
	TypeCall:         "CALL",
	TypeReturn:       "RETURN",
	TypeReturnData:   "RETURN_DATA",
	TypePanic:        "PANIC",
	TypeRevert:       "REVERT",
	TypeLog:          "LOG",
	TypeLogData:      "LOG_DATA",
	TypeTransfer:     "TRANSFER",
	TypeTransferOut:  "TRANSFER_OUT",
	TypeScriptResult: "SCRIPT_RESULT",
	TypeMessageOut:   "MESSAGE_OUT",
	TypeMint:         "MINT",
	TypeBurn:         "BURN",
}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "UNKNOWN"
}

// ParseType maps a discriminator such as "LOG_DATA" to its Type.
func ParseType(s string) (Type, bool) {
	for i, name := range typeNames {
		if name == s {
			return Type(i), true
		}
	}
	return 0, false
}

// B256 is a 32-byte identifier: contract ids, asset ids, addresses, digests.
type B256 [32]byte

// ContractID identifies a deployed contract. Scripts use the zero id.
type ContractID = B256

func (h B256) String() string { return hexutil.Encode(h[:]) }

func (h B256) IsZero() bool { return h == B256{} }

func (h B256) MarshalText() ([]byte, error) {
	return hexutil.Bytes(h[:]).MarshalText()
}

func (h *B256) UnmarshalText(input []byte) error {
	return hexutil.UnmarshalFixedText("B256", input, h[:])
}

// ParseB256 decodes a 0x-prefixed 32-byte hex string.
func ParseB256(s string) (B256, error) {
	var h B256
	err := h.UnmarshalText([]byte(s))
	return h, err
}

// Receipt is implemented by every receipt struct in this package.
type Receipt interface {
	Type() Type
}

// Contextual is implemented by receipts emitted inside a call frame.
type Contextual interface {
	Receipt
	Contract() ContractID
}

// ContractOf returns the emitting contract of r, if r carries one.
func ContractOf(r Receipt) (ContractID, bool) {
	if c, ok := r.(Contextual); ok {
		return c.Contract(), true
	}
	return ContractID{}, false
}

type Call struct {
	ID      ContractID
	To      ContractID
	AssetID B256
	Amount  uint64
	Gas     uint64
	Param1  uint64
	Param2  uint64
	PC      uint64
	IS      uint64
}

type Return struct {
	ID  ContractID
	Val uint64
	PC  uint64
	IS  uint64
}

type ReturnData struct {
	Data   []byte
	ID     ContractID
	Digest B256
	Ptr    uint64
	Len    uint64
	PC     uint64
	IS     uint64
}

// Panic carries the VM panic instruction word. The reason code is its low byte.
type Panic struct {
	ContractID *ContractID
	ID         ContractID
	Reason     uint64
	PC         uint64
	IS         uint64
}

// ReasonCode is the panic reason byte.
func (p *Panic) ReasonCode() uint8 { return uint8(p.Reason) }

type Revert struct {
	ID  ContractID
	Val uint64
	PC  uint64
	IS  uint64
}

// Log carries a single-word value in RA and the log id in RB.
type Log struct {
	ID ContractID
	RA uint64
	RB uint64
	RC uint64
	RD uint64
	PC uint64
	IS uint64
}

// LogData carries an encoded value read from memory at Ptr, with the log id in RB.
type LogData struct {
	Data   []byte
	ID     ContractID
	Digest B256
	RA     uint64
	RB     uint64
	Ptr    uint64
	Len    uint64
	PC     uint64
	IS     uint64
}

type Transfer struct {
	ID      ContractID
	To      ContractID
	AssetID B256
	Amount  uint64
	PC      uint64
	IS      uint64
}

type TransferOut struct {
	ID      ContractID
	To      B256
	AssetID B256
	Amount  uint64
	PC      uint64
	IS      uint64
}

type ScriptResult struct {
	Result  uint64
	GasUsed uint64
}

// Success reports whether the script finished without reverting or panicking.
func (s *ScriptResult) Success() bool { return s.Result == 0 }

type MessageOut struct {
	Data      []byte
	Sender    B256
	Recipient B256
	Nonce     B256
	Digest    B256
	Amount    uint64
	Len       uint64
}

type Mint struct {
	SubID      B256
	ContractID ContractID
	AssetID    B256
	Val        uint64
	PC         uint64
	IS         uint64
}

type Burn struct {
	SubID      B256
	ContractID ContractID
	AssetID    B256
	Val        uint64
	PC         uint64
	IS         uint64
}

func (*Call) Type() Type         { return TypeCall }
func (*Return) Type() Type       { return TypeReturn }
func (*ReturnData) Type() Type   { return TypeReturnData }
func (*Panic) Type() Type        { return TypePanic }
func (*Revert) Type() Type       { return TypeRevert }
func (*Log) Type() Type          { return TypeLog }
func (*LogData) Type() Type      { return TypeLogData }
func (*Transfer) Type() Type     { return TypeTransfer }
func (*TransferOut) Type() Type  { return TypeTransferOut }
func (*ScriptResult) Type() Type { return TypeScriptResult }
func (*MessageOut) Type() Type   { return TypeMessageOut }
func (*Mint) Type() Type         { return TypeMint }
func (*Burn) Type() Type         { return TypeBurn }

func (r *Call) Contract() ContractID        { return r.ID }
func (r *Return) Contract() ContractID      { return r.ID }
func (r *ReturnData) Contract() ContractID  { return r.ID }
func (r *Panic) Contract() ContractID       { return r.ID }
func (r *Revert) Contract() ContractID      { return r.ID }
func (r *Log) Contract() ContractID         { return r.ID }
func (r *LogData) Contract() ContractID     { return r.ID }
func (r *Transfer) Contract() ContractID    { return r.ID }
func (r *TransferOut) Contract() ContractID { return r.ID }
func (r *Mint) Contract() ContractID        { return r.ContractID }
func (r *Burn) Contract() ContractID        { return r.ContractID }
