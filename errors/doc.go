// Package errors provides structured error types for the sway-abi codec.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the field path, the expected and actual type names, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
//		Path("args", "0", "dates", "[1]", "day").
//		Expected("u8").
//		Actual("value.String").
//		Detail("cannot encode string as integer").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.TypeMismatch(errors.PhaseEncode, path, "u64", "value.Bool")
//	err := errors.InsufficientData(errors.PhaseDecode, path, 16, 8, 20)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
