package transcoder

import (
	"encoding/binary"
	"strconv"
	"sync"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/wippyai/sway-abi/errors"
	"github.com/wippyai/sway-abi/internal/abi"
	"github.com/wippyai/sway-abi/transcoder/internal/layout"
	"github.com/wippyai/sway-abi/types"
	"github.com/wippyai/sway-abi/value"
)

// Local wrappers for abi package functions - kept for internal use
var (
	typeName = abi.TypeName
	padWord  = abi.PadWord
)

type Encoder struct {
	layout    *layout.Calculator
	validated sync.Map // *types.Descriptor -> error
	opts      Options
}

func NewEncoder(opts ...Option) *Encoder {
	return &Encoder{
		layout: layout.NewCalculator(),
		opts:   buildOptions(opts),
	}
}

// Options returns the encoder configuration.
func (e *Encoder) Options() Options {
	return e.opts
}

// Encode writes v as a value of type t.
func (e *Encoder) Encode(v value.Value, t *types.Descriptor) (*Payload, error) {
	return e.encode(v, t, e.opts.Base, nil)
}

// EncodeArgs encodes an argument list as one tuple, the way call arguments
// are laid out. Error paths start at the parameter name.
func (e *Encoder) EncodeArgs(params []types.Field, args []value.Value) (*Payload, error) {
	if len(params) != len(args) {
		return nil, errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
			Expected(strconv.Itoa(len(params))+" arguments").
			Actual(strconv.Itoa(len(args))).
			Detail("argument count mismatch").
			Build()
	}
	t := argsDescriptor(params)
	return e.encode(value.Tuple(args), t, e.opts.Base, nil)
}

// EncodeCall builds call data: the function selector word followed by the
// encoded arguments. Pointers account for the selector word.
func (e *Encoder) EncodeCall(fn *types.Function, args []value.Value) ([]byte, *Payload, error) {
	if len(fn.Inputs) != len(args) {
		return nil, nil, errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
			Path(fn.Name).
			Expected(strconv.Itoa(len(fn.Inputs))+" arguments").
			Actual(strconv.Itoa(len(args))).
			Detail("argument count mismatch").
			Build()
	}
	sel := fn.Selector()
	payload, err := e.encode(value.Tuple(args), argsDescriptor(fn.Inputs), e.opts.Base+abi.WordSize, []string{fn.Name})
	if err != nil {
		return nil, nil, err
	}
	data := make([]byte, 0, len(sel)+payload.Len())
	data = append(data, sel[:]...)
	data = append(data, payload.Inline...)
	data = append(data, payload.Heap...)
	return data, payload, nil
}

func argsDescriptor(params []types.Field) *types.Descriptor {
	return &types.Descriptor{Kind: types.KindTuple, Fields: params}
}

func (e *Encoder) prepare(t *types.Descriptor) (uint64, error) {
	if t == nil {
		return 0, errors.InvalidInput(errors.PhaseEncode, "nil type descriptor")
	}
	if err := validateOnce(&e.validated, t); err != nil {
		return 0, err
	}
	return e.layout.Size(t)
}

// validateOnce runs types.Validate at most once per descriptor.
func validateOnce(cache *sync.Map, t *types.Descriptor) error {
	if cached, ok := cache.Load(t); ok {
		if cached == nil {
			return nil
		}
		return cached.(error)
	}
	err := types.Validate(t)
	if err != nil {
		cache.Store(t, err)
		return err
	}
	cache.Store(t, nil)
	return nil
}

func (e *Encoder) encode(v value.Value, t *types.Descriptor, base uint64, path []string) (*Payload, error) {
	inline, err := e.prepare(t)
	if err != nil {
		return nil, err
	}
	if inline > e.opts.MaxHeapSize {
		return nil, errors.New(errors.PhaseEncode, errors.KindOverflow).
			Path(path...).
			Detail("inline size %d exceeds maximum %d", inline, e.opts.MaxHeapSize).
			Build()
	}

	s := getState()
	defer putState(s)
	s.buf = grow(s.buf, int(inline))

	w := writer{enc: e, state: s, base: base, inline: inline}
	if err := w.write(0, v, t, path); err != nil {
		return nil, err
	}

	// Return copies since the scratch state goes back to the pool
	out := make([]byte, len(s.buf))
	copy(out, s.buf)
	payload := &Payload{
		Inline: out[:inline:inline],
		Heap:   out[inline:],
		Slots:  append([]Slot(nil), s.slots...),
		Base:   base,
	}

	if ce := Logger().Check(zap.DebugLevel, "encoded"); ce != nil {
		ce.Write(
			zap.Stringer("type", t),
			zap.Uint64("inline", inline),
			zap.Int("heap", len(payload.Heap)),
			zap.Int("slots", len(payload.Slots)),
		)
	}
	return payload, nil
}

// grow extends buf by n zero bytes.
func grow(buf []byte, n int) []byte {
	start := len(buf)
	if cap(buf)-start < n {
		next := make([]byte, start, 2*cap(buf)+n)
		copy(next, buf)
		buf = next
	}
	buf = buf[:start+n]
	clear(buf[start:])
	return buf
}

type writer struct {
	enc    *Encoder
	state  *encodeState
	base   uint64
	inline uint64
}

func (w *writer) putWord(off, x uint64) {
	binary.BigEndian.PutUint64(w.state.buf[off:off+abi.WordSize], x)
}

func (w *writer) write(off uint64, v value.Value, t *types.Descriptor, path []string) error {
	switch t.Kind {
	case types.KindBool:
		b, ok := v.(value.Bool)
		if !ok {
			return mismatch(t, v, path)
		}
		if b {
			w.putWord(off, 1)
		}
		return nil

	case types.KindUint:
		u, ok := v.(value.Uint)
		if !ok {
			return mismatch(t, v, path)
		}
		if !abi.FitsWidth(u.BitLen(), t.Width) {
			return errors.Overflow(errors.PhaseEncode, path, u.Dec(), t.String())
		}
		if t.Width == 256 {
			word := u.Int().Bytes32()
			copy(w.state.buf[off:off+32], word[:])
			return nil
		}
		n, _ := u.Uint64()
		w.putWord(off, n)
		return nil

	case types.KindB256:
		h, ok := v.(value.B256)
		if !ok {
			return mismatch(t, v, path)
		}
		copy(w.state.buf[off:off+32], h[:])
		return nil

	case types.KindStr:
		s, ok := v.(value.Str)
		if !ok {
			return mismatch(t, v, path)
		}
		if len(s) != t.Length {
			return errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
				Path(path...).
				Expected(t.String()).
				Actual("str[" + strconv.Itoa(len(s)) + "]").
				Build()
		}
		if !utf8.ValidString(string(s)) {
			return errors.InvalidUTF8(errors.PhaseEncode, path, []byte(s))
		}
		copy(w.state.buf[off:], s)
		return nil

	case types.KindArray:
		items, ok := v.(value.Array)
		if !ok {
			return mismatch(t, v, path)
		}
		if len(items) != t.Length {
			return errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
				Path(path...).
				Expected(t.String()).
				Actual(strconv.Itoa(len(items)) + " elements").
				Build()
		}
		return w.writeElems(off, items, t.Elem, path)

	case types.KindStruct:
		s, ok := v.(value.Struct)
		if !ok {
			return mismatch(t, v, path)
		}
		return w.writeStruct(off, s, t, path)

	case types.KindTuple:
		items, ok := v.(value.Tuple)
		if !ok {
			if v == nil && t.IsUnit() {
				return nil
			}
			return mismatch(t, v, path)
		}
		if len(items) != len(t.Fields) {
			return errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
				Path(path...).
				Expected(t.String()).
				Actual(strconv.Itoa(len(items)) + "-tuple").
				Build()
		}
		info, err := w.enc.layout.Calculate(t)
		if err != nil {
			return err
		}
		for i, f := range t.Fields {
			if err := w.write(off+info.Offsets[i], items[i], f.Type, append(path, f.Name)); err != nil {
				return err
			}
		}
		return nil

	case types.KindEnum:
		en, ok := v.(value.Enum)
		if !ok {
			return mismatch(t, v, path)
		}
		idx, vt, found := t.Variant(en.Variant)
		if !found {
			return errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
				Path(path...).
				Expected(t.String()).
				Actual("variant " + strconv.Quote(en.Variant)).
				Detail("no such variant").
				Build()
		}
		w.putWord(off, uint64(idx))
		// Remaining payload bytes stay zero
		return w.write(off+layout.TagSize, en.Value, vt, append(path, en.Variant))

	case types.KindVector:
		items, ok := v.(value.Vector)
		if !ok {
			return mismatch(t, v, path)
		}
		return w.writeVector(off, items, t, path)

	case types.KindBytes:
		b, ok := v.(value.Bytes)
		if !ok {
			return mismatch(t, v, path)
		}
		return w.writeBlob(off, b, path)

	case types.KindString:
		s, ok := v.(value.String)
		if !ok {
			return mismatch(t, v, path)
		}
		if !utf8.ValidString(string(s)) {
			return errors.InvalidUTF8(errors.PhaseEncode, path, []byte(s))
		}
		return w.writeBlob(off, []byte(s), path)

	default:
		return errors.Unsupported(errors.PhaseEncode, "type kind: "+t.Kind.String())
	}
}

func (w *writer) writeElems(off uint64, items []value.Value, elem *types.Descriptor, path []string) error {
	size, err := w.enc.layout.Size(elem)
	if err != nil {
		return err
	}
	for i, item := range items {
		if err := w.write(off+uint64(i)*size, item, elem, append(path, "["+strconv.Itoa(i)+"]")); err != nil {
			return err
		}
	}
	return nil
}

func (w *writer) writeStruct(off uint64, s value.Struct, t *types.Descriptor, path []string) error {
	info, err := w.enc.layout.Calculate(t)
	if err != nil {
		return err
	}
	for i, f := range t.Fields {
		fv, ok := s.Get(f.Name)
		if !ok {
			return errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
				Path(path...).
				Expected(t.String()).
				Detail("missing field %q", f.Name).
				Build()
		}
		if err := w.write(off+info.Offsets[i], fv, f.Type, append(path, f.Name)); err != nil {
			return err
		}
	}
	if len(s) != len(t.Fields) {
		for _, f := range s {
			if _, known := t.Field(f.Name); !known {
				return errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
					Path(path...).
					Expected(t.String()).
					Detail("unknown field %q", f.Name).
					Build()
			}
		}
		return errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
			Path(path...).
			Expected(strconv.Itoa(len(t.Fields)) + " fields").
			Actual(strconv.Itoa(len(s))).
			Detail("duplicate field").
			Build()
	}
	return nil
}

// reserve appends size zero bytes to the heap and records the slot. The
// triple at off is written immediately so that nested containers, which
// reserve after this call returns, always land at higher offsets.
func (w *writer) reserve(off, size, length uint64, path []string) (uint64, error) {
	if length > w.enc.opts.MaxVectorLength {
		return 0, errors.New(errors.PhaseEncode, errors.KindOverflow).
			Path(path...).
			Detail("length %d exceeds maximum %d", length, w.enc.opts.MaxVectorLength).
			Build()
	}
	heapOff := uint64(len(w.state.buf))
	end, ok := abi.SafeAddU64(heapOff-w.inline, size)
	if !ok || end > w.enc.opts.MaxHeapSize {
		return 0, errors.New(errors.PhaseEncode, errors.KindOverflow).
			Path(path...).
			Detail("heap size exceeds maximum %d", w.enc.opts.MaxHeapSize).
			Build()
	}
	w.state.buf = grow(w.state.buf, int(size))

	w.putWord(off, w.base+heapOff)
	w.putWord(off+abi.WordSize, length)
	w.putWord(off+2*abi.WordSize, length)

	w.state.slots = append(w.state.slots, Slot{
		Path:   errors.JoinPath(path),
		Offset: off,
		Heap:   heapOff,
		Size:   size,
		Len:    length,
	})

	if ce := Logger().Check(zap.DebugLevel, "heap reserve"); ce != nil {
		ce.Write(
			zap.Strings("path", path),
			zap.Uint64("offset", heapOff),
			zap.Uint64("size", size),
			zap.Uint64("len", length),
		)
	}
	return heapOff, nil
}

func (w *writer) writeVector(off uint64, items value.Vector, t *types.Descriptor, path []string) error {
	elemSize, err := w.enc.layout.Size(t.Elem)
	if err != nil {
		return err
	}
	size, ok := abi.SafeMulU64(uint64(len(items)), elemSize)
	if !ok {
		return errors.New(errors.PhaseEncode, errors.KindOverflow).
			Path(path...).
			Detail("vector data size overflow: %d * %d", len(items), elemSize).
			Build()
	}
	heapOff, err := w.reserve(off, size, uint64(len(items)), path)
	if err != nil {
		return err
	}
	return w.writeElems(heapOff, items, t.Elem, path)
}

func (w *writer) writeBlob(off uint64, data []byte, path []string) error {
	heapOff, err := w.reserve(off, padWord(uint64(len(data))), uint64(len(data)), path)
	if err != nil {
		return err
	}
	copy(w.state.buf[heapOff:], data)
	return nil
}

func mismatch(t *types.Descriptor, v value.Value, path []string) error {
	return errors.TypeMismatch(errors.PhaseEncode, path, t.String(), typeName(v))
}
