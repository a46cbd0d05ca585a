package value

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Render returns the compact JSON text of v. Integers are decimal and never
// quoted, b256 and bytes are 0x-prefixed hex, struct fields keep declaration
// order, and a unit enum variant renders as its quoted name.
func Render(v Value) string {
	var b strings.Builder
	writeValue(&b, v)
	return b.String()
}

func writeValue(b *strings.Builder, v Value) {
	switch x := v.(type) {
	case nil:
		b.WriteString("[]")
	case Bool:
		if x {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case Uint:
		b.WriteString(x.v.Dec())
	case B256:
		writeString(b, hexutil.Encode(x[:]))
	case Bytes:
		writeString(b, hexutil.Encode(x))
	case Str:
		writeString(b, string(x))
	case String:
		writeString(b, string(x))
	case Array:
		writeList(b, x)
	case Vector:
		writeList(b, x)
	case Tuple:
		writeList(b, x)
	case Struct:
		b.WriteByte('{')
		for i, f := range x {
			if i > 0 {
				b.WriteByte(',')
			}
			writeString(b, f.Name)
			b.WriteByte(':')
			writeValue(b, f.Value)
		}
		b.WriteByte('}')
	case Enum:
		if isUnit(x.Value) {
			writeString(b, x.Variant)
			return
		}
		b.WriteByte('{')
		writeString(b, x.Variant)
		b.WriteByte(':')
		writeValue(b, x.Value)
		b.WriteByte('}')
	}
}

func writeList(b *strings.Builder, items []Value) {
	b.WriteByte('[')
	for i, item := range items {
		if i > 0 {
			b.WriteByte(',')
		}
		writeValue(b, item)
	}
	b.WriteByte(']')
}

func writeString(b *strings.Builder, s string) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	b.Write(bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}))
}

func (u Uint) MarshalJSON() ([]byte, error)   { return []byte(Render(u)), nil }
func (h B256) MarshalJSON() ([]byte, error)   { return []byte(Render(h)), nil }
func (p Bytes) MarshalJSON() ([]byte, error)  { return []byte(Render(p)), nil }
func (s Struct) MarshalJSON() ([]byte, error) { return []byte(Render(s)), nil }
func (e Enum) MarshalJSON() ([]byte, error)   { return []byte(Render(e)), nil }

func (u Uint) String() string { return u.v.Dec() }
func (h B256) String() string { return hexutil.Encode(h[:]) }
