package revert

import (
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/wippyai/sway-abi/logs"
	"github.com/wippyai/sway-abi/receipt"
	"github.com/wippyai/sway-abi/value"
)

// Revert sentinel words.
const (
	FailedRequireSignal     uint64 = 0xffff_ffff_ffff_0000
	FailedTransferToAddress uint64 = 0xffff_ffff_ffff_0001
	FailedSendMessageSignal uint64 = 0xffff_ffff_ffff_0002
	FailedAssertEqSignal    uint64 = 0xffff_ffff_ffff_0003
	FailedAssertSignal      uint64 = 0xffff_ffff_ffff_0004
	FailedAssertNeSignal    uint64 = 0xffff_ffff_ffff_0005
)

// Reason classifies a failure.
type Reason uint8

const (
	ReasonUnknown Reason = iota
	ReasonRequire
	ReasonAssert
	ReasonAssertEq
	ReasonAssertNe
	ReasonMissingOutputVariable
	ReasonMissingOutputMessage
	ReasonPanic
)

var reasonNames = [...]string{
	ReasonUnknown:               "unknown",
	ReasonRequire:               "require",
	ReasonAssert:                "assert",
	ReasonAssertEq:              "assert_eq",
	ReasonAssertNe:              "assert_ne",
	ReasonMissingOutputVariable: "MissingOutputVariable",
	ReasonMissingOutputMessage:  "MissingOutputMessage",
	ReasonPanic:                 "panic",
}

func (r Reason) String() string {
	if int(r) < len(reasonNames) {
		return reasonNames[r]
	}
	return "unknown"
}

// ErrorCode is the coarse error category of a failure.
type ErrorCode string

const (
	CodeScriptReverted ErrorCode = "SCRIPT_REVERTED"
	CodeUnknown        ErrorCode = "UNKNOWN"
)

const missingOperand = "<missing>"

// Failure describes why a transaction reverted. It implements error.
type Failure struct {
	// Message is the rendered, human-readable explanation.
	Message string
	// ReasonName is "require", "assert", "assert_eq", "assert_ne",
	// "MissingOutputVariable", "MissingOutputMessage", the panic variant
	// name or "unknown".
	ReasonName string
	ErrorCode  ErrorCode

	// Operands. Left is the last log, Right the one before it. Require
	// only sets Left.
	Left  value.Value
	Right value.Value

	Logs     []value.Value
	Grouped  map[receipt.ContractID][]value.Value
	Receipts []receipt.Receipt

	// Code is the revert word, or the panic reason byte for panics.
	Code     uint64
	Contract receipt.ContractID
	Index    int // position of the terminating receipt
	Reason   Reason
	Panic    bool
	Revert   bool
}

func (f *Failure) Error() string { return f.Message }

// Interpreter classifies failed receipt lists.
// It is immutable and safe for concurrent use.
type Interpreter struct {
	docsURL string
}

type Option func(*Interpreter)

// WithPanicDocsURL sets the page panic messages link to. Each message
// appends "#variant.<Name>".
func WithPanicDocsURL(url string) Option {
	return func(i *Interpreter) {
		if url != "" {
			i.docsURL = url
		}
	}
}

func New(opts ...Option) *Interpreter {
	i := &Interpreter{docsURL: DefaultPanicDocsURL}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

var defaultInterpreter = New()

// Interpret classifies receipts with the default interpreter.
func Interpret(receipts []receipt.Receipt, reg *logs.Registry) (*Failure, bool) {
	return defaultInterpreter.Interpret(receipts, reg)
}

// Interpret returns the failure described by receipts, or false when no
// PANIC or REVERT receipt is present. reg may be nil, in which case no
// operands are available.
func (in *Interpreter) Interpret(receipts []receipt.Receipt, reg *logs.Registry) (*Failure, bool) {
	idx := terminator(receipts)
	if idx < 0 {
		return nil, false
	}

	decoded := logs.Decode(receipts[:idx], reg)
	f := &Failure{
		Logs:     decoded.Logs,
		Grouped:  decoded.Grouped,
		Receipts: receipts,
		Index:    idx,
	}
	if f.Logs == nil {
		f.Logs = []value.Value{}
	}

	switch r := receipts[idx].(type) {
	case *receipt.Panic:
		in.classifyPanic(f, r)
	case *receipt.Revert:
		classifyRevert(f, r)
	}

	if ce := Logger().Check(zap.DebugLevel, "classified failure"); ce != nil {
		ce.Write(
			zap.Stringer("reason", f.Reason),
			zap.String("name", f.ReasonName),
			zap.Uint64("code", f.Code),
			zap.Int("logs", len(f.Logs)),
		)
	}
	return f, true
}

func terminator(receipts []receipt.Receipt) int {
	revertAt := -1
	for i, r := range receipts {
		switch r.(type) {
		case *receipt.Panic:
			return i
		case *receipt.Revert:
			if revertAt < 0 {
				revertAt = i
			}
		}
	}
	return revertAt
}

func (in *Interpreter) classifyPanic(f *Failure, r *receipt.Panic) {
	f.Panic = true
	f.Contract = r.ID
	code := PanicReason(r.ReasonCode())
	f.Code = uint64(code)

	name, ok := code.Name()
	if !ok {
		f.Reason = ReasonUnknown
		f.ReasonName = ReasonUnknown.String()
		f.ErrorCode = CodeUnknown
		f.Message = unknownMessage(f.Code)
		return
	}
	f.Reason = ReasonPanic
	f.ReasonName = name
	f.ErrorCode = CodeScriptReverted
	f.Message = fmt.Sprintf("The transaction reverted with reason: %q.\n\nYou can read more about this error at:\n\n%s#variant.%s",
		name, in.docsURL, name)
}

func classifyRevert(f *Failure, r *receipt.Revert) {
	f.Revert = true
	f.Contract = r.ID
	f.Code = r.Val
	f.ErrorCode = CodeScriptReverted

	switch r.Val {
	case FailedRequireSignal:
		f.Reason = ReasonRequire
		f.Left = operand(f.Logs, 1)
		f.Message = fmt.Sprintf(`The transaction reverted because a "require" statement has thrown %s.`, render(f.Left))
	case FailedTransferToAddress:
		f.Reason = ReasonMissingOutputVariable
		f.Message = `The transaction reverted because it's missing an "OutputVariable".`
	case FailedSendMessageSignal:
		f.Reason = ReasonMissingOutputMessage
		f.Message = `The transaction reverted because it's missing an "OutputMessage".`
	case FailedAssertEqSignal:
		f.Reason = ReasonAssertEq
		f.Left, f.Right = operand(f.Logs, 1), operand(f.Logs, 2)
		f.Message = fmt.Sprintf(`The transaction reverted because of an "assert_eq" statement comparing %s and %s.`,
			render(f.Left), render(f.Right))
	case FailedAssertNeSignal:
		f.Reason = ReasonAssertNe
		f.Left, f.Right = operand(f.Logs, 1), operand(f.Logs, 2)
		f.Message = fmt.Sprintf(`The transaction reverted because of an "assert_ne" statement comparing %s and %s.`,
			render(f.Left), render(f.Right))
	case FailedAssertSignal:
		f.Reason = ReasonAssert
		f.Message = `The transaction reverted because an "assert" statement failed to evaluate to true.`
	default:
		f.Reason = ReasonUnknown
		f.ErrorCode = CodeUnknown
		f.Message = unknownMessage(r.Val)
	}
	f.ReasonName = f.Reason.String()
}

// operand returns the n-th log counting back from the end.
func operand(vs []value.Value, n int) value.Value {
	if len(vs) < n {
		return nil
	}
	return vs[len(vs)-n]
}

func render(v value.Value) string {
	if v == nil {
		return missingOperand
	}
	return value.Render(v)
}

func unknownMessage(code uint64) string {
	return "The transaction reverted with an unknown reason: " + strconv.FormatUint(code, 10)
}
