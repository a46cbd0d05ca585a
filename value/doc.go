// Package value defines the typed value trees the codec encodes and decodes.
//
// Value is a closed sum type that mirrors types.Descriptor: every descriptor
// kind has exactly one value type. Values are plain data with no lifecycle
// beyond the call that produced them.
//
// FromAny converts natural Go and JSON-decoded data into a Value guided by a
// descriptor, and Render produces the stable JSON text used in revert
// messages and CLI output.
package value
