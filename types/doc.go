// Package types defines the type descriptors that drive word-ABI encoding and decoding.
//
// A Descriptor is an immutable tree describing one Sway type: primitives,
// fixed arrays, vectors, structs, enums, tuples, fixed strings, byte blobs and
// heap strings. Descriptors are built either with the constructors in this
// package or by loading a JSON program ABI with ParseProgram.
//
// # Key Types
//
//   - Descriptor: One node of a type tree, discriminated by Kind
//   - Field: A named struct field or enum variant
//   - Program: Named types, functions and the log-id registry of one program
//   - Function: A callable with its inputs, output and selector
//
// Self-referential types are legal only through a Vector or Bytes edge.
// Validate rejects any other cycle with a recursive_type error; the constructors
// reject duplicate member names and unsupported widths.
//
// # Usage
//
//	point := types.MustStruct("Point",
//		types.F("x", types.U64()),
//		types.F("y", types.U64()),
//	)
//	fmt.Println(point.Tree())
package types
