// Package transcoder provides word-ABI encoding and decoding of typed values.
//
// This package converts value trees to and from the fixed calling convention
// of the Fuel VM: 8-byte big-endian words, inline fixed-size data and a heap
// region for dynamically sized content.
//
// # Layout
//
//	Type            Inline size
//	──────────────────────────────────
//	bool            8
//	u8/u16/u32/u64  8 (left zero-padded)
//	u256/b256       32
//	str[N]          N padded to 8
//	[T; N]          N × size(T)
//	struct/tuple    Σ size(field)
//	enum            8 (tag) + max size(variant)
//	Vec/Bytes/String 24 (ptr, len, cap)
//
// # Heap
//
// Dynamic containers write a (ptr, len, cap) triple inline and append their
// data to the heap. Nested containers reserve their data depth-first, right
// after the parent's data is reserved, so heap offsets grow monotonically and
// regions never overlap. Pointers are absolute: Base plus the offset of the
// data within the payload (inline ‖ heap).
//
//	┌──────────────────────┬──────────────────────────────────┐
//	│ inline (static size) │ heap (reserved depth-first)       │
//	└──────────────────────┴──────────────────────────────────┘
//
// # Key Types
//
//	Encoder - Writes values into a Payload
//	Decoder - Reads values back from payload bytes
//	Payload - Inline and heap regions plus the slot table
//
// # Thread Safety
//
// Encoder and Decoder hold only a layout cache and are safe for concurrent use.
//
// # Error Handling
//
// Errors use the structured types from the errors package:
//
//	[encode] overflow at order.qty: expected u8 - value 300 overflows u8
//	[decode] invalid_discriminant at state: tag 7 has no matching variant (3 variants)
package transcoder
