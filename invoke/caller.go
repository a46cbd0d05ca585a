package invoke

import (
	"context"
	"encoding/binary"
	"strconv"

	"go.uber.org/zap"

	swayabi "github.com/wippyai/sway-abi"
	"github.com/wippyai/sway-abi/errors"
	"github.com/wippyai/sway-abi/logs"
	"github.com/wippyai/sway-abi/receipt"
	"github.com/wippyai/sway-abi/revert"
	"github.com/wippyai/sway-abi/transcoder"
	"github.com/wippyai/sway-abi/types"
	"github.com/wippyai/sway-abi/value"
)

// TxBuilder wraps call data into a signed transaction targeting contract.
type TxBuilder interface {
	Build(ctx context.Context, contract receipt.ContractID, callData []byte) ([]byte, error)
}

// TxBuilderFunc adapts a function to TxBuilder.
type TxBuilderFunc func(ctx context.Context, contract receipt.ContractID, callData []byte) ([]byte, error)

func (f TxBuilderFunc) Build(ctx context.Context, contract receipt.ContractID, callData []byte) ([]byte, error) {
	return f(ctx, contract, callData)
}

// Result is the outcome of a successful call.
type Result struct {
	Value    value.Value
	Logs     *logs.Result
	CallData []byte
	Receipts []receipt.Receipt
}

// Caller calls the functions of one deployed contract.
type Caller struct {
	transport   swayabi.Transport
	builder     TxBuilder
	program     *types.Program
	registry    *logs.Registry
	encoder     *transcoder.Encoder
	decoder     *transcoder.Decoder
	interpreter *revert.Interpreter
	contract    receipt.ContractID
}

type Option func(*Caller)

// WithRegistry sets the registry used for logs. Logs from contracts other
// than the callee only decode when their programs are registered here.
func WithRegistry(reg *logs.Registry) Option {
	return func(c *Caller) { c.registry = reg }
}

// WithCodecOptions configures the encoder and decoder.
func WithCodecOptions(opts ...transcoder.Option) Option {
	return func(c *Caller) {
		c.encoder = transcoder.NewEncoder(opts...)
		c.decoder = transcoder.NewDecoder(opts...)
	}
}

func WithInterpreter(in *revert.Interpreter) Option {
	return func(c *Caller) { c.interpreter = in }
}

// NewCaller creates a caller for contract. Without WithRegistry only the
// callee's own logs are decoded.
func NewCaller(contract receipt.ContractID, program *types.Program, transport swayabi.Transport, builder TxBuilder, opts ...Option) *Caller {
	c := &Caller{
		transport: transport,
		builder:   builder,
		program:   program,
		contract:  contract,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.encoder == nil {
		c.encoder = transcoder.NewEncoder()
	}
	if c.decoder == nil {
		c.decoder = transcoder.NewDecoder()
	}
	if c.registry == nil {
		c.registry = logs.NewRegistry(map[receipt.ContractID]*types.Program{contract: program})
	}
	if c.interpreter == nil {
		c.interpreter = revert.New()
	}
	return c
}

// Contract returns the callee id.
func (c *Caller) Contract() receipt.ContractID { return c.contract }

// CallData converts args and encodes the selector and arguments of fn.
func (c *Caller) CallData(fn string, args ...any) ([]byte, error) {
	return EncodeCall(c.encoder, c.program, fn, args...)
}

// EncodeCall looks up fn in program, converts args with value.FromAny and
// returns the selector word followed by the encoded arguments.
func EncodeCall(enc *transcoder.Encoder, program *types.Program, fn string, args ...any) ([]byte, error) {
	f, ok := program.Function(fn)
	if !ok {
		return nil, errors.NotFound(errors.PhaseInvoke, "function", fn)
	}
	if len(args) != len(f.Inputs) {
		return nil, errors.New(errors.PhaseInvoke, errors.KindInvalidInput).
			Path(fn).
			Expected(strconv.Itoa(len(f.Inputs))+" arguments").
			Actual(strconv.Itoa(len(args))).
			Detail("argument count mismatch").
			Build()
	}
	vals := make([]value.Value, len(args))
	for i, a := range args {
		v, err := value.FromAny(f.Inputs[i].Type, a)
		if err != nil {
			return nil, errors.Wrap(errors.PhaseInvoke, errors.KindInvalidInput, err, "argument "+f.Inputs[i].Name)
		}
		vals[i] = v
	}
	data, _, err := enc.EncodeCall(f, vals)
	return data, err
}

// Call invokes fn with args. A reverted transaction returns the partial
// result and a *revert.Failure error.
func (c *Caller) Call(ctx context.Context, fn string, args ...any) (*Result, error) {
	callData, err := c.CallData(fn, args...)
	if err != nil {
		return nil, err
	}
	f, _ := c.program.Function(fn)

	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(errors.PhaseInvoke, errors.KindCanceled, err, "call "+fn)
	}
	tx, err := c.builder.Build(ctx, c.contract, callData)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseInvoke, errors.KindTransport, err, "build transaction")
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(errors.PhaseInvoke, errors.KindCanceled, err, "call "+fn)
	}

	Logger().Debug("submitting call",
		zap.String("function", fn),
		zap.Stringer("contract", c.contract),
		zap.Int("call_data", len(callData)))

	receipts, err := c.transport.Submit(ctx, tx)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseInvoke, errors.KindTransport, err, "submit transaction")
	}

	res := &Result{
		Logs:     logs.Decode(receipts, c.registry),
		CallData: callData,
		Receipts: receipts,
	}

	if failure, failed := c.interpreter.Interpret(receipts, c.registry); failed {
		Logger().Info("call reverted",
			zap.String("function", fn),
			zap.String("reason", failure.ReasonName))
		return res, failure
	}

	v, err := c.returnValue(f, receipts)
	if err != nil {
		return res, err
	}
	res.Value = v
	return res, nil
}

// returnValue decodes the callee's first RETURN or RETURN_DATA receipt.
func (c *Caller) returnValue(f *types.Function, receipts []receipt.Receipt) (value.Value, error) {
	out := f.Output
	if out == nil || out.IsUnit() {
		return value.Unit, nil
	}
	for _, r := range receipts {
		switch r := r.(type) {
		case *receipt.ReturnData:
			if r.ID != c.contract {
				continue
			}
			return c.decoder.DecodeAt(r.Data, out, r.Ptr)
		case *receipt.Return:
			if r.ID != c.contract {
				continue
			}
			return c.decoder.DecodeAt(binary.BigEndian.AppendUint64(nil, r.Val), out, 0)
		}
	}
	return nil, errors.NotFound(errors.PhaseInvoke, "return receipt for contract", c.contract.String())
}
