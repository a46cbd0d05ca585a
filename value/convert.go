package value

import (
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/wippyai/sway-abi/errors"
	"github.com/wippyai/sway-abi/internal/abi"
	"github.com/wippyai/sway-abi/types"
)

// FromAny converts natural Go data into a Value of the given type. It accepts
// the shapes encoding/json produces (float64, json.Number, map[string]any,
// []any) as well as typed Go slices, integers, big integers and hex strings.
// An input that already is a Value is returned unchanged.
func FromAny(t *types.Descriptor, x any) (Value, error) {
	return fromAny(t, x, nil)
}

func fromAny(t *types.Descriptor, x any, path []string) (Value, error) {
	if v, ok := x.(Value); ok {
		return v, nil
	}

	switch t.Kind {
	case types.KindBool:
		if b, ok := x.(bool); ok {
			return Bool(b), nil
		}
		return nil, mismatch(t, x, path)

	case types.KindUint:
		u, ok := abi.CoerceToUint256(x)
		if !ok {
			return nil, mismatch(t, x, path)
		}
		if !abi.FitsWidth(u.BitLen(), t.Width) {
			return nil, errors.Overflow(errors.PhaseEncode, path, u.Dec(), t.String())
		}
		return U256(u), nil

	case types.KindB256:
		raw, err := bytesFrom(x)
		if err != nil || len(raw) != 32 {
			return nil, errors.TypeMismatch(errors.PhaseEncode, path, "b256 (32 bytes)", abi.TypeName(x))
		}
		var h B256
		copy(h[:], raw)
		return h, nil

	case types.KindStr:
		if s, ok := x.(string); ok {
			return Str(s), nil
		}
		return nil, mismatch(t, x, path)

	case types.KindString:
		if s, ok := x.(string); ok {
			return String(s), nil
		}
		return nil, mismatch(t, x, path)

	case types.KindBytes:
		raw, err := bytesFrom(x)
		if err != nil {
			return nil, errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
				Path(path...).
				Expected("bytes").
				Actual(abi.TypeName(x)).
				Cause(err).
				Build()
		}
		return Bytes(raw), nil

	case types.KindArray, types.KindVector:
		items, ok := listFrom(x)
		if !ok {
			return nil, mismatch(t, x, path)
		}
		out := make([]Value, len(items))
		for i, item := range items {
			v, err := fromAny(t.Elem, item, append(path, "["+strconv.Itoa(i)+"]"))
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		if t.Kind == types.KindArray {
			return Array(out), nil
		}
		return Vector(out), nil

	case types.KindTuple:
		if t.IsUnit() && isEmpty(x) {
			return Unit, nil
		}
		items, ok := listFrom(x)
		if !ok {
			return nil, mismatch(t, x, path)
		}
		if len(items) != len(t.Fields) {
			return nil, errors.TypeMismatch(errors.PhaseEncode, path, t.String(), strconv.Itoa(len(items))+"-element list")
		}
		out := make(Tuple, len(items))
		for i, item := range items {
			v, err := fromAny(t.Fields[i].Type, item, append(path, strconv.Itoa(i)))
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil

	case types.KindStruct:
		m, ok := x.(map[string]any)
		if !ok {
			return nil, mismatch(t, x, path)
		}
		out := make(Struct, 0, len(t.Fields))
		for _, f := range t.Fields {
			raw, present := m[f.Name]
			if !present {
				return nil, errors.FieldMissing(errors.PhaseEncode, path, f.Name)
			}
			v, err := fromAny(f.Type, raw, append(path, f.Name))
			if err != nil {
				return nil, err
			}
			out = append(out, Field{Name: f.Name, Value: v})
		}
		if len(m) > len(t.Fields) {
			for _, k := range sortedKeys(m) {
				if _, known := t.Field(k); !known {
					return nil, errors.FieldUnknown(errors.PhaseEncode, path, k)
				}
			}
		}
		return out, nil

	case types.KindEnum:
		return enumFrom(t, x, path)
	}

	return nil, errors.Unsupported(errors.PhaseEncode, "type kind "+t.Kind.String())
}

// enumFrom accepts a bare variant name for unit variants or a single-key
// map {"Variant": payload}.
func enumFrom(t *types.Descriptor, x any, path []string) (Value, error) {
	var (
		name    string
		payload any
	)
	switch e := x.(type) {
	case string:
		name = e
	case map[string]any:
		if len(e) != 1 {
			return nil, errors.TypeMismatch(errors.PhaseEncode, path, "single-variant object", strconv.Itoa(len(e))+" keys")
		}
		for k, v := range e {
			name, payload = k, v
		}
	default:
		return nil, mismatch(t, x, path)
	}

	_, vt, ok := t.Variant(name)
	if !ok {
		return nil, errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
			Path(path...).
			Expected(t.String()).
			Actual("variant " + strconv.Quote(name)).
			Detail("no such variant").
			Build()
	}
	if vt.IsUnit() && payload == nil {
		return Variant(name, nil), nil
	}
	v, err := fromAny(vt, payload, append(path, name))
	if err != nil {
		return nil, err
	}
	return Variant(name, v), nil
}

func mismatch(t *types.Descriptor, x any, path []string) error {
	return errors.TypeMismatch(errors.PhaseEncode, path, t.String(), abi.TypeName(x))
}

func bytesFrom(x any) ([]byte, error) {
	switch b := x.(type) {
	case []byte:
		return b, nil
	case [32]byte:
		return b[:], nil
	case string:
		if !strings.HasPrefix(b, "0x") && !strings.HasPrefix(b, "0X") {
			return nil, hexutil.ErrMissingPrefix
		}
		if len(b)%2 == 1 {
			return nil, hexutil.ErrOddLength
		}
		return hexutil.Decode("0x" + b[2:])
	}
	items, ok := listFrom(x)
	if !ok {
		return nil, errors.InvalidInput(errors.PhaseEncode, "cannot read bytes from "+abi.TypeName(x))
	}
	out := make([]byte, len(items))
	for i, item := range items {
		u, ok := abi.CoerceToUint256(item)
		if !ok || !abi.FitsWidth(u.BitLen(), 8) {
			return nil, errors.Overflow(errors.PhaseEncode, []string{"[" + strconv.Itoa(i) + "]"}, item, "u8")
		}
		out[i] = byte(u.Uint64())
	}
	return out, nil
}

func listFrom(x any) ([]any, bool) {
	if items, ok := x.([]any); ok {
		return items, true
	}
	if x == nil {
		return nil, false
	}
	rv := reflect.ValueOf(x)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return items, true
}

func isEmpty(x any) bool {
	if x == nil {
		return true
	}
	switch e := x.(type) {
	case []any:
		return len(e) == 0
	case map[string]any:
		return len(e) == 0
	}
	return false
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ToAny converts a Value into plain Go data: bool, uint64 or decimal string
// for integers above 64 bits, hex strings for b256 and bytes, []any for
// sequences, map[string]any for structs and enums with a payload.
func ToAny(v Value) any {
	switch x := v.(type) {
	case nil:
		return nil
	case Bool:
		return bool(x)
	case Uint:
		if n, ok := x.Uint64(); ok {
			return n
		}
		return x.Dec()
	case B256:
		return hexutil.Encode(x[:])
	case Bytes:
		return hexutil.Encode(x)
	case Str:
		return string(x)
	case String:
		return string(x)
	case Array:
		return listToAny(x)
	case Vector:
		return listToAny(x)
	case Tuple:
		return listToAny(x)
	case Struct:
		m := make(map[string]any, len(x))
		for _, f := range x {
			m[f.Name] = ToAny(f.Value)
		}
		return m
	case Enum:
		if isUnit(x.Value) {
			return x.Variant
		}
		return map[string]any{x.Variant: ToAny(x.Value)}
	}
	return nil
}

func listToAny(items []Value) []any {
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = ToAny(item)
	}
	return out
}
