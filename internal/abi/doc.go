// Package abi provides internal utilities for word-ABI encoding and decoding.
//
// This package contains type coercion helpers, overflow-checked arithmetic,
// word padding and the safety limits shared by the value, transcoder and
// types packages.
//
// # Contents
//
//   - coerce.go: Coercion of Go and JSON numbers into 256-bit unsigned integers
//   - helpers.go: Word arithmetic, limits and shared utilities
//
// This package is internal to the module.
package abi
