package logs

import (
	"encoding/binary"

	"go.uber.org/zap"

	"github.com/wippyai/sway-abi/errors"
	"github.com/wippyai/sway-abi/receipt"
	"github.com/wippyai/sway-abi/value"
)

// Entry is one decoded log.
type Entry struct {
	Value    value.Value
	Payload  []byte
	Index    int // position in the receipt list
	LogID    uint64
	Contract receipt.ContractID
}

// Failure records a log receipt that could not be decoded.
type Failure struct {
	Err      error
	Index    int
	LogID    uint64
	Contract receipt.ContractID
}

// Result holds the decoded log stream.
type Result struct {
	Grouped   map[receipt.ContractID][]value.Value
	Entries   []Entry
	Logs      []value.Value
	Contracts []receipt.ContractID // first-seen order
	Failures  []Failure
}

// Group returns the values logged by contract id, in emission order.
func (r *Result) Group(id receipt.ContractID) []value.Value {
	return r.Grouped[id]
}

// Decode decodes every LOG and LOG_DATA receipt in order. Failures do not
// stop decoding.
func Decode(receipts []receipt.Receipt, reg *Registry) *Result {
	res := &Result{Grouped: make(map[receipt.ContractID][]value.Value)}

	for i, r := range receipts {
		var (
			contract receipt.ContractID
			logID    uint64
			payload  []byte
			base     uint64
		)
		switch r := r.(type) {
		case *receipt.Log:
			contract, logID = r.ID, r.RB
			payload = binary.BigEndian.AppendUint64(nil, r.RA)
		case *receipt.LogData:
			contract, logID, base = r.ID, r.RB, r.Ptr
			payload = r.Data
		default:
			continue
		}

		v, err := decodeOne(reg, contract, logID, payload, base)
		if err != nil {
			Logger().Warn("skipping log",
				zap.Int("index", i),
				zap.Stringer("contract", contract),
				zap.Uint64("log_id", logID),
				zap.Error(err))
			res.Failures = append(res.Failures, Failure{Err: err, Index: i, LogID: logID, Contract: contract})
			continue
		}

		res.Entries = append(res.Entries, Entry{
			Value:    v,
			Payload:  payload,
			Index:    i,
			LogID:    logID,
			Contract: contract,
		})
		res.Logs = append(res.Logs, v)
		if _, seen := res.Grouped[contract]; !seen {
			res.Contracts = append(res.Contracts, contract)
		}
		res.Grouped[contract] = append(res.Grouped[contract], v)
	}

	if ce := Logger().Check(zap.DebugLevel, "decoded logs"); ce != nil {
		ce.Write(zap.Int("entries", len(res.Entries)), zap.Int("failures", len(res.Failures)))
	}
	return res
}

func decodeOne(reg *Registry, contract receipt.ContractID, logID uint64, payload []byte, base uint64) (value.Value, error) {
	program, ok := reg.Lookup(contract)
	if !ok {
		return nil, errors.NotFound(errors.PhaseLogs, "program for contract", contract.String())
	}
	t, ok := program.LogType(logID)
	if !ok {
		return nil, errors.UnknownLogID(contract.String(), logID)
	}
	return reg.Decoder().DecodeAt(payload, t, base)
}
