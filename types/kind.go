package types

type Kind uint8

const (
	KindBool Kind = iota
	KindUint
	KindB256
	KindStr
	KindArray
	KindVector
	KindStruct
	KindEnum
	KindTuple
	KindBytes
	KindString
)

var kindNames = [...]string{
	KindBool:   "bool",
	KindUint:   "uint",
	KindB256:   "b256",
	KindStr:    "str",
	KindArray:  "array",
	KindVector: "vector",
	KindStruct: "struct",
	KindEnum:   "enum",
	KindTuple:  "tuple",
	KindBytes:  "bytes",
	KindString: "string",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

func (k Kind) IsPrimitive() bool {
	return k <= KindB256
}

// IsDynamic reports whether values of this kind live on the heap behind a
// (ptr, len, cap) triple.
func (k Kind) IsDynamic() bool {
	switch k {
	case KindVector, KindBytes, KindString:
		return true
	default:
		return false
	}
}
