package types

import (
	"strconv"
	"strings"

	"github.com/wippyai/sway-abi/errors"
)

// Descriptor describes one Sway type. Descriptors are immutable after
// construction and safe to share between goroutines.
type Descriptor struct {
	Elem     *Descriptor
	Name     string
	Fields   []Field // struct fields and tuple elements
	Variants []Field // enum variants
	Length   int     // array element count, str[N] byte count
	Width    uint16  // uint bit width, enum tag bit width
	Kind     Kind
}

// Field is a named struct field, enum variant or tuple element.
type Field struct {
	Type *Descriptor
	Name string
}

// F is shorthand for a Field literal.
func F(name string, t *Descriptor) Field {
	return Field{Name: name, Type: t}
}

var (
	boolDesc = &Descriptor{Kind: KindBool, Width: 8}
	u8Desc   = &Descriptor{Kind: KindUint, Width: 8}
	u16Desc  = &Descriptor{Kind: KindUint, Width: 16}
	u32Desc  = &Descriptor{Kind: KindUint, Width: 32}
	u64Desc  = &Descriptor{Kind: KindUint, Width: 64}
	u256Desc = &Descriptor{Kind: KindUint, Width: 256}
	b256Desc = &Descriptor{Kind: KindB256, Width: 256}
)

func Bool() *Descriptor { return boolDesc }
func U8() *Descriptor   { return u8Desc }
func U16() *Descriptor  { return u16Desc }
func U32() *Descriptor  { return u32Desc }
func U64() *Descriptor  { return u64Desc }
func U256() *Descriptor { return u256Desc }
func B256() *Descriptor { return b256Desc }

// Uint returns the unsigned integer descriptor for the given bit width.
func Uint(width int) (*Descriptor, error) {
	switch width {
	case 8:
		return u8Desc, nil
	case 16:
		return u16Desc, nil
	case 32:
		return u32Desc, nil
	case 64:
		return u64Desc, nil
	case 256:
		return u256Desc, nil
	default:
		return nil, errors.Unsupported(errors.PhaseCompile, "unsigned integer width "+strconv.Itoa(width))
	}
}

// Primitive resolves a primitive type name such as "u32" or "b256".
func Primitive(name string) (*Descriptor, error) {
	switch name {
	case "bool":
		return boolDesc, nil
	case "u8":
		return u8Desc, nil
	case "u16":
		return u16Desc, nil
	case "u32":
		return u32Desc, nil
	case "u64":
		return u64Desc, nil
	case "u256":
		return u256Desc, nil
	case "b256":
		return b256Desc, nil
	default:
		return nil, errors.Unsupported(errors.PhaseCompile, "primitive type "+strconv.Quote(name))
	}
}

// Str returns a fixed-length string descriptor, str[n].
func Str(n int) *Descriptor {
	if n < 0 {
		n = 0
	}
	return &Descriptor{Kind: KindStr, Length: n}
}

func Array(elem *Descriptor, n int) *Descriptor {
	if n < 0 {
		n = 0
	}
	return &Descriptor{Kind: KindArray, Elem: elem, Length: n}
}

func Vector(elem *Descriptor) *Descriptor {
	return &Descriptor{Kind: KindVector, Elem: elem}
}

func Bytes() *Descriptor  { return &Descriptor{Kind: KindBytes} }
func String() *Descriptor { return &Descriptor{Kind: KindString} }

// Tuple returns an anonymous product of the given element types. Elements
// are named by position ("0", "1", ...).
func Tuple(elems ...*Descriptor) *Descriptor {
	fields := make([]Field, len(elems))
	for i, e := range elems {
		fields[i] = Field{Name: strconv.Itoa(i), Type: e}
	}
	return &Descriptor{Kind: KindTuple, Fields: fields}
}

// Unit returns the empty tuple ().
func Unit() *Descriptor {
	return &Descriptor{Kind: KindTuple}
}

// Struct builds a named struct. Field names must be unique.
func Struct(name string, fields ...Field) (*Descriptor, error) {
	if err := checkMembers(name, fields); err != nil {
		return nil, err
	}
	return &Descriptor{Kind: KindStruct, Name: name, Fields: append([]Field(nil), fields...)}, nil
}

// Enum builds a named enum with a 64-bit tag.
func Enum(name string, variants ...Field) (*Descriptor, error) {
	return EnumWithTag(name, 64, variants...)
}

// EnumWithTag builds a named enum whose tag is tagWidth bits wide. The tag
// always occupies one word on the wire; the width bounds the variant count.
func EnumWithTag(name string, tagWidth int, variants ...Field) (*Descriptor, error) {
	switch tagWidth {
	case 8, 16, 32, 64:
	default:
		return nil, errors.Unsupported(errors.PhaseCompile, "enum tag width "+strconv.Itoa(tagWidth))
	}
	if tagWidth < 64 && uint64(len(variants)) > uint64(1)<<tagWidth {
		return nil, errors.New(errors.PhaseCompile, errors.KindUnsupported).
			Path(name).
			Detail("%d variants do not fit a %d-bit tag", len(variants), tagWidth).
			Build()
	}
	if err := checkMembers(name, variants); err != nil {
		return nil, err
	}
	return &Descriptor{
		Kind:     KindEnum,
		Name:     name,
		Width:    uint16(tagWidth),
		Variants: append([]Field(nil), variants...),
	}, nil
}

func MustStruct(name string, fields ...Field) *Descriptor {
	d, err := Struct(name, fields...)
	if err != nil {
		panic(err)
	}
	return d
}

func MustEnum(name string, variants ...Field) *Descriptor {
	d, err := Enum(name, variants...)
	if err != nil {
		panic(err)
	}
	return d
}

// Recursive builds a self-referential struct or enum. build receives a
// placeholder for the type being defined and must return a struct or enum
// named name; the result is validated so that the self reference only
// appears behind a Vector or Bytes edge.
func Recursive(name string, build func(self *Descriptor) (*Descriptor, error)) (*Descriptor, error) {
	self := &Descriptor{Kind: KindStruct, Name: name}
	d, err := build(self)
	if err != nil {
		return nil, err
	}
	if d == nil || (d.Kind != KindStruct && d.Kind != KindEnum) {
		return nil, errors.InvalidInput(errors.PhaseCompile, "recursive type "+name+" must be a struct or enum")
	}
	*self = *d
	self.Name = name
	if err := Validate(self); err != nil {
		return nil, err
	}
	return self, nil
}

func checkMembers(owner string, members []Field) error {
	seen := make(map[string]struct{}, len(members))
	for _, m := range members {
		if m.Type == nil {
			return errors.InvalidInput(errors.PhaseCompile, "member "+strconv.Quote(m.Name)+" of "+owner+" has no type")
		}
		if _, dup := seen[m.Name]; dup {
			return errors.DuplicateMember(errors.PhaseCompile, owner, m.Name)
		}
		seen[m.Name] = struct{}{}
	}
	return nil
}

// IsUnit reports whether d is the empty tuple.
func (d *Descriptor) IsUnit() bool {
	return d.Kind == KindTuple && len(d.Fields) == 0
}

// Variant returns the index and type of the named enum variant.
func (d *Descriptor) Variant(name string) (int, *Descriptor, bool) {
	for i, v := range d.Variants {
		if v.Name == name {
			return i, v.Type, true
		}
	}
	return -1, nil, false
}

// Field returns the named struct field.
func (d *Descriptor) Field(name string) (*Descriptor, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f.Type, true
		}
	}
	return nil, false
}

// String renders the type as it appears in Sway source, e.g. "[u8; 3]" or
// "Vec<struct Point>". Named types are not expanded.
func (d *Descriptor) String() string {
	var b strings.Builder
	d.writeTo(&b)
	return b.String()
}

func (d *Descriptor) writeTo(b *strings.Builder) {
	if d == nil {
		b.WriteString("<nil>")
		return
	}
	switch d.Kind {
	case KindBool:
		b.WriteString("bool")
	case KindUint:
		b.WriteByte('u')
		b.WriteString(strconv.Itoa(int(d.Width)))
	case KindB256:
		b.WriteString("b256")
	case KindStr:
		b.WriteString("str[")
		b.WriteString(strconv.Itoa(d.Length))
		b.WriteByte(']')
	case KindArray:
		b.WriteByte('[')
		d.Elem.writeTo(b)
		b.WriteString("; ")
		b.WriteString(strconv.Itoa(d.Length))
		b.WriteByte(']')
	case KindVector:
		b.WriteString("Vec<")
		d.Elem.writeTo(b)
		b.WriteByte('>')
	case KindBytes:
		b.WriteString("Bytes")
	case KindString:
		b.WriteString("String")
	case KindStruct:
		b.WriteString("struct ")
		b.WriteString(d.Name)
	case KindEnum:
		b.WriteString("enum ")
		b.WriteString(d.Name)
	case KindTuple:
		b.WriteByte('(')
		for i, f := range d.Fields {
			if i > 0 {
				b.WriteString(", ")
			}
			f.Type.writeTo(b)
		}
		b.WriteByte(')')
	default:
		b.WriteString("unknown")
	}
}

// Signature renders the type in the flattened form hashed into function
// selectors. Named types expand to their members; a type already being
// expanded is cut short to keep recursive types finite.
func (d *Descriptor) Signature() string {
	var b strings.Builder
	d.writeSignature(&b, map[*Descriptor]bool{})
	return b.String()
}

func (d *Descriptor) writeSignature(b *strings.Builder, active map[*Descriptor]bool) {
	switch d.Kind {
	case KindArray:
		b.WriteString("a[")
		d.Elem.writeSignature(b, active)
		b.WriteByte(';')
		b.WriteString(strconv.Itoa(d.Length))
		b.WriteByte(']')
	case KindVector:
		b.WriteString("s<")
		d.Elem.writeSignature(b, active)
		b.WriteString(">(s<")
		d.Elem.writeSignature(b, active)
		b.WriteString(">(rawptr,u64),u64)")
	case KindBytes:
		b.WriteString("s(s(rawptr,u64),u64)")
	case KindString:
		b.WriteString("s(s(s(rawptr,u64),u64))")
	case KindStruct, KindEnum:
		prefix := "s"
		members := d.Fields
		if d.Kind == KindEnum {
			prefix = "e"
			members = d.Variants
		}
		b.WriteString(prefix)
		if active[d] {
			return
		}
		active[d] = true
		b.WriteByte('(')
		for i, m := range members {
			if i > 0 {
				b.WriteByte(',')
			}
			m.Type.writeSignature(b, active)
		}
		b.WriteByte(')')
		delete(active, d)
	case KindTuple:
		b.WriteByte('(')
		for i, f := range d.Fields {
			if i > 0 {
				b.WriteByte(',')
			}
			f.Type.writeSignature(b, active)
		}
		b.WriteByte(')')
	default:
		d.writeTo(b)
	}
}
