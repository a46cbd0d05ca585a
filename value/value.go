package value

import (
	"bytes"

	"github.com/holiman/uint256"

	"github.com/wippyai/sway-abi/types"
)

// Value is one node of a typed value tree.
type Value interface {
	Kind() types.Kind
	isValue()
}

type (
	Bool   bool
	B256   [32]byte
	Str    string // fixed-length str[N]
	String string
	Bytes  []byte
	Array  []Value
	Vector []Value
	Tuple  []Value
	Struct []Field
)

// Uint holds any unsigned integer up to 256 bits.
type Uint struct {
	v uint256.Int
}

// Field is a named struct member.
type Field struct {
	Value Value
	Name  string
}

// Enum is an instance of one enum variant.
type Enum struct {
	Value   Value
	Variant string
}

// Unit is the empty tuple.
var Unit = Tuple{}

func U64(x uint64) Uint {
	var u Uint
	u.v.SetUint64(x)
	return u
}

func U256(x *uint256.Int) Uint {
	var u Uint
	u.v.Set(x)
	return u
}

// Int returns a copy of the integer.
func (u Uint) Int() *uint256.Int {
	return new(uint256.Int).Set(&u.v)
}

// Uint64 returns the value and whether it fits in 64 bits.
func (u Uint) Uint64() (uint64, bool) {
	return u.v.Uint64(), u.v.IsUint64()
}

func (u Uint) BitLen() int {
	return u.v.BitLen()
}

func (u Uint) Dec() string {
	return u.v.Dec()
}

// Variant builds an enum instance; a nil payload means unit.
func Variant(name string, payload Value) Enum {
	if payload == nil {
		payload = Unit
	}
	return Enum{Variant: name, Value: payload}
}

// Get returns the named struct field.
func (s Struct) Get(name string) (Value, bool) {
	for _, f := range s {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

func (Bool) Kind() types.Kind   { return types.KindBool }
func (Uint) Kind() types.Kind   { return types.KindUint }
func (B256) Kind() types.Kind   { return types.KindB256 }
func (Str) Kind() types.Kind    { return types.KindStr }
func (String) Kind() types.Kind { return types.KindString }
func (Bytes) Kind() types.Kind  { return types.KindBytes }
func (Array) Kind() types.Kind  { return types.KindArray }
func (Vector) Kind() types.Kind { return types.KindVector }
func (Tuple) Kind() types.Kind  { return types.KindTuple }
func (Struct) Kind() types.Kind { return types.KindStruct }
func (Enum) Kind() types.Kind   { return types.KindEnum }

func (Bool) isValue()   {}
func (Uint) isValue()   {}
func (B256) isValue()   {}
func (Str) isValue()    {}
func (String) isValue() {}
func (Bytes) isValue()  {}
func (Array) isValue()  {}
func (Vector) isValue() {}
func (Tuple) isValue()  {}
func (Struct) isValue() {}
func (Enum) isValue()   {}

// Equal reports structural equality. A nil value and the unit tuple are equal.
func Equal(a, b Value) bool {
	if isUnit(a) || isUnit(b) {
		return isUnit(a) && isUnit(b)
	}
	switch x := a.(type) {
	case Bool:
		y, ok := b.(Bool)
		return ok && x == y
	case Uint:
		y, ok := b.(Uint)
		return ok && x.v.Eq(&y.v)
	case B256:
		y, ok := b.(B256)
		return ok && x == y
	case Str:
		y, ok := b.(Str)
		return ok && x == y
	case String:
		y, ok := b.(String)
		return ok && x == y
	case Bytes:
		y, ok := b.(Bytes)
		return ok && bytes.Equal(x, y)
	case Array:
		y, ok := b.(Array)
		return ok && equalSlices(x, y)
	case Vector:
		y, ok := b.(Vector)
		return ok && equalSlices(x, y)
	case Tuple:
		y, ok := b.(Tuple)
		return ok && equalSlices(x, y)
	case Struct:
		y, ok := b.(Struct)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if x[i].Name != y[i].Name || !Equal(x[i].Value, y[i].Value) {
				return false
			}
		}
		return true
	case Enum:
		y, ok := b.(Enum)
		return ok && x.Variant == y.Variant && Equal(x.Value, y.Value)
	default:
		return false
	}
}

func equalSlices(x, y []Value) bool {
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if !Equal(x[i], y[i]) {
			return false
		}
	}
	return true
}

func isUnit(v Value) bool {
	if v == nil {
		return true
	}
	t, ok := v.(Tuple)
	return ok && len(t) == 0
}
