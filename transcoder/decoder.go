package transcoder

import (
	"encoding/binary"
	"strconv"
	"sync"
	"unicode/utf8"

	"github.com/holiman/uint256"
	"go.uber.org/zap"

	"github.com/wippyai/sway-abi/errors"
	"github.com/wippyai/sway-abi/internal/abi"
	"github.com/wippyai/sway-abi/transcoder/internal/layout"
	"github.com/wippyai/sway-abi/types"
	"github.com/wippyai/sway-abi/value"
)

type Decoder struct {
	layout    *layout.Calculator
	validated sync.Map // *types.Descriptor -> error
	opts      Options
}

func NewDecoder(opts ...Option) *Decoder {
	return &Decoder{
		layout: layout.NewCalculator(),
		opts:   buildOptions(opts),
	}
}

// Decode reads a value of type t from data, which must start at the inline
// region. Pointers inside data are resolved against the decoder's Base.
func (d *Decoder) Decode(data []byte, t *types.Descriptor) (value.Value, error) {
	return d.decode(data, t, d.opts.Base, nil)
}

// DecodeAt is Decode with an explicit pointer base.
func (d *Decoder) DecodeAt(data []byte, t *types.Descriptor, base uint64) (value.Value, error) {
	return d.decode(data, t, base, nil)
}

// DecodeArgs decodes an argument list laid out by Encoder.EncodeArgs.
func (d *Decoder) DecodeArgs(data []byte, params []types.Field) ([]value.Value, error) {
	v, err := d.decode(data, argsDescriptor(params), d.opts.Base, nil)
	if err != nil {
		return nil, err
	}
	return []value.Value(v.(value.Tuple)), nil
}

func (d *Decoder) decode(data []byte, t *types.Descriptor, base uint64, path []string) (value.Value, error) {
	if t == nil {
		return nil, errors.InvalidInput(errors.PhaseDecode, "nil type descriptor")
	}
	if err := validateOnce(&d.validated, t); err != nil {
		return nil, err
	}
	inline, err := d.layout.Size(t)
	if err != nil {
		return nil, err
	}
	if uint64(len(data)) < inline {
		return nil, errors.InsufficientData(errors.PhaseDecode, path, 0, inline, len(data))
	}

	r := reader{dec: d, data: data, base: base, heapEnd: inline}
	v, err := r.read(0, t, path)
	if err != nil {
		return nil, err
	}

	if ce := Logger().Check(zap.DebugLevel, "decoded"); ce != nil {
		ce.Write(zap.Stringer("type", t), zap.Int("bytes", len(data)))
	}
	return v, nil
}

// reader walks one payload. Heap regions must be claimed in the order the
// encoder reserves them: each starts at or after heapEnd and never overlaps
// inline data or an earlier region.
type reader struct {
	dec  *Decoder
	data []byte
	base uint64

	heapEnd uint64
	depth   int
	units   uint64 // elements of zero-sized containers, which claim no bytes
}

func (r *reader) need(off, n uint64, path []string) error {
	end, ok := abi.SafeAddU64(off, n)
	if !ok || end > uint64(len(r.data)) {
		return errors.InsufficientData(errors.PhaseDecode, path, off, n, len(r.data))
	}
	return nil
}

func (r *reader) word(off uint64, path []string) (uint64, error) {
	if err := r.need(off, abi.WordSize, path); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(r.data[off : off+abi.WordSize]), nil
}

func (r *reader) read(off uint64, t *types.Descriptor, path []string) (value.Value, error) {
	switch t.Kind {
	case types.KindBool:
		w, err := r.word(off, path)
		if err != nil {
			return nil, err
		}
		if w > 1 {
			return nil, errors.New(errors.PhaseDecode, errors.KindInvalidData).
				Path(path...).
				Expected("bool").
				Value(w).
				Detail("invalid bool word %d", w).
				Build()
		}
		return value.Bool(w == 1), nil

	case types.KindUint:
		if t.Width == 256 {
			if err := r.need(off, 32, path); err != nil {
				return nil, err
			}
			return value.U256(new(uint256.Int).SetBytes32(r.data[off : off+32])), nil
		}
		w, err := r.word(off, path)
		if err != nil {
			return nil, err
		}
		if t.Width < 64 && w>>t.Width != 0 {
			return nil, errors.New(errors.PhaseDecode, errors.KindInvalidData).
				Path(path...).
				Expected(t.String()).
				Value(w).
				Detail("value %d exceeds %s", w, t.String()).
				Build()
		}
		return value.U64(w), nil

	case types.KindB256:
		if err := r.need(off, 32, path); err != nil {
			return nil, err
		}
		var h value.B256
		copy(h[:], r.data[off:off+32])
		return h, nil

	case types.KindStr:
		n := uint64(t.Length)
		if err := r.need(off, padWord(n), path); err != nil {
			return nil, err
		}
		raw := r.data[off : off+n]
		if !utf8.Valid(raw) {
			return nil, errors.InvalidUTF8(errors.PhaseDecode, path, raw)
		}
		return value.Str(raw), nil

	case types.KindArray:
		items, err := r.readElems(off, uint64(t.Length), t.Elem, path)
		if err != nil {
			return nil, err
		}
		return value.Array(items), nil

	case types.KindStruct:
		info, err := r.dec.layout.Calculate(t)
		if err != nil {
			return nil, err
		}
		out := make(value.Struct, len(t.Fields))
		for i, f := range t.Fields {
			fv, err := r.read(off+info.Offsets[i], f.Type, append(path, f.Name))
			if err != nil {
				return nil, err
			}
			out[i] = value.Field{Name: f.Name, Value: fv}
		}
		return out, nil

	case types.KindTuple:
		info, err := r.dec.layout.Calculate(t)
		if err != nil {
			return nil, err
		}
		out := make(value.Tuple, len(t.Fields))
		for i, f := range t.Fields {
			fv, err := r.read(off+info.Offsets[i], f.Type, append(path, f.Name))
			if err != nil {
				return nil, err
			}
			out[i] = fv
		}
		return out, nil

	case types.KindEnum:
		size, err := r.dec.layout.Size(t)
		if err != nil {
			return nil, err
		}
		if err := r.need(off, size, path); err != nil {
			return nil, err
		}
		tag, err := r.word(off, path)
		if err != nil {
			return nil, err
		}
		if tag >= uint64(len(t.Variants)) {
			return nil, errors.InvalidDiscriminant(errors.PhaseDecode, path, tag, len(t.Variants))
		}
		variant := t.Variants[tag]
		payload, err := r.read(off+layout.TagSize, variant.Type, append(path, variant.Name))
		if err != nil {
			return nil, err
		}
		return value.Variant(variant.Name, payload), nil

	case types.KindVector:
		elemSize, err := r.dec.layout.Size(t.Elem)
		if err != nil {
			return nil, err
		}
		dataOff, length, err := r.triple(off, elemSize, path)
		if err != nil {
			return nil, err
		}
		if r.depth >= r.dec.opts.MaxDepth {
			return nil, errors.New(errors.PhaseDecode, errors.KindOverflow).
				Path(path...).
				Detail("nesting exceeds maximum depth %d", r.dec.opts.MaxDepth).
				Build()
		}
		r.depth++
		items, err := r.readElems(dataOff, length, t.Elem, path)
		r.depth--
		if err != nil {
			return nil, err
		}
		return value.Vector(items), nil

	case types.KindBytes:
		dataOff, length, err := r.triple(off, 1, path)
		if err != nil {
			return nil, err
		}
		out := make([]byte, length)
		copy(out, r.data[dataOff:dataOff+length])
		return value.Bytes(out), nil

	case types.KindString:
		dataOff, length, err := r.triple(off, 1, path)
		if err != nil {
			return nil, err
		}
		raw := r.data[dataOff : dataOff+length]
		if !utf8.Valid(raw) {
			return nil, errors.InvalidUTF8(errors.PhaseDecode, path, raw)
		}
		return value.String(raw), nil

	default:
		return nil, errors.Unsupported(errors.PhaseDecode, "type kind: "+t.Kind.String())
	}
}

func (r *reader) readElems(off, n uint64, elem *types.Descriptor, path []string) ([]value.Value, error) {
	size, err := r.dec.layout.Size(elem)
	if err != nil {
		return nil, err
	}
	items := make([]value.Value, n)
	for i := uint64(0); i < n; i++ {
		v, err := r.read(off+i*size, elem, append(path, "["+strconv.FormatUint(i, 10)+"]"))
		if err != nil {
			return nil, err
		}
		items[i] = v
	}
	return items, nil
}

// triple reads a (ptr, len, cap) triple and returns the payload offset of
// the data and its length. All len elements of elemSize bytes must be present.
func (r *reader) triple(off, elemSize uint64, path []string) (uint64, uint64, error) {
	if err := r.need(off, layout.TripleSize, path); err != nil {
		return 0, 0, err
	}
	ptr := binary.BigEndian.Uint64(r.data[off:])
	length := binary.BigEndian.Uint64(r.data[off+abi.WordSize:])
	capacity := binary.BigEndian.Uint64(r.data[off+2*abi.WordSize:])

	if capacity < length {
		return 0, 0, errors.LengthMismatch(errors.PhaseDecode, path, length, capacity)
	}
	if length > r.dec.opts.MaxVectorLength {
		return 0, 0, errors.New(errors.PhaseDecode, errors.KindOverflow).
			Path(path...).
			Value(length).
			Detail("length %d exceeds maximum %d", length, r.dec.opts.MaxVectorLength).
			Build()
	}
	if ptr < r.base {
		return 0, 0, errors.OutOfBounds(errors.PhaseDecode, path, ptr, len(r.data))
	}
	dataOff := ptr - r.base
	if length == 0 {
		return 0, 0, nil
	}
	if dataOff > uint64(len(r.data)) {
		return 0, 0, errors.OutOfBounds(errors.PhaseDecode, path, ptr, len(r.data))
	}
	if dataOff < r.heapEnd {
		return 0, 0, errors.New(errors.PhaseDecode, errors.KindOutOfBounds).
			Path(path...).
			Value(ptr).
			Detail("pointer %d overlaps data ending at offset %d", ptr, r.heapEnd).
			Build()
	}
	size, ok := abi.SafeMulU64(length, elemSize)
	if !ok {
		return 0, 0, errors.LengthMismatch(errors.PhaseDecode, path, length, uint64(len(r.data))-dataOff)
	}
	if err := r.need(dataOff, size, path); err != nil {
		return 0, 0, err
	}
	if size == 0 {
		r.units += length
		if r.units > r.dec.opts.MaxVectorLength {
			return 0, 0, errors.New(errors.PhaseDecode, errors.KindOverflow).
				Path(path...).
				Value(r.units).
				Detail("%d zero-sized elements exceed maximum %d", r.units, r.dec.opts.MaxVectorLength).
				Build()
		}
	}
	r.heapEnd = dataOff + size
	return dataOff, length, nil
}
