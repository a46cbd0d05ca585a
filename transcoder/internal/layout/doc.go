// Package layout computes inline sizes and member offsets for word-ABI types.
//
// # Layout Rules
//
// Every value occupies a whole number of 8-byte words:
//   - bool, u8, u16, u32, u64: one word, left zero-padded
//   - u256, b256: four words
//   - str[N]: N bytes padded up to a word
//   - Arrays, structs and tuples: members laid out inline, in order
//   - Enums: one tag word followed by the widest variant payload
//   - Vec, Bytes, String: a (ptr, len, cap) triple, data elsewhere
//
// # Usage
//
//	calc := layout.NewCalculator()
//	info, err := calc.Calculate(desc)
//	// info.Size, info.Offsets available
//
// This package is internal to the transcoder.
package layout
