// Package swayabi provides a Go implementation of the Sway/Fuel word ABI.
//
// The library encodes typed values into call data, decodes return values and
// logs from transaction receipts, and explains why a transaction reverted.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	swayabi/             Root package with the Transport interface
//	├── types/           Type descriptors and the JSON program ABI loader
//	├── value/           Typed values, JSON rendering and Go conversion
//	├── transcoder/      Word ABI encoding and decoding
//	├── receipt/         Transaction receipts and their JSON codec
//	├── logs/            Log receipt decoding and grouping by contract
//	├── revert/          Revert and panic classification
//	├── invoke/          Contract call pipeline over a Transport
//	├── config/          Configuration loading (viper)
//	├── errors/          Structured error types for debugging
//	└── cmd/swayabi/     Command line tool
//
// # Quick Start
//
// Load a program ABI and encode a call:
//
//	prog, err := types.ParseProgram(abiJSON)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fn, _ := prog.Function("transfer")
//	args, err := value.FromAny(fn.Params(), []any{100, recipient})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	callData, _, err := transcoder.NewEncoder().EncodeCall(fn, args.(value.Tuple))
//
// Decode logs and classify a failure:
//
//	reg := logs.NewRegistry(map[receipt.ContractID]*types.Program{id: prog})
//	res := logs.Decode(receipts, reg)
//	if f, failed := revert.Interpret(receipts, reg); failed {
//	    fmt.Println(f.Message)
//	}
//
// # Word ABI
//
// Every value is a sequence of 8-byte big-endian words. Scalars occupy one
// word, u256 and b256 occupy 32 bytes, and str[N] is padded to a word
// boundary. Vec, Bytes and String are an inline (ptr, len, cap) triple whose
// data lives in a heap region after the inline bytes. Enums are a tag word
// followed by the widest variant's payload.
//
// # Thread Safety
//
// Encoder, Decoder, Registry, Program and Interpreter are safe for concurrent
// use. invoke.Caller is safe for concurrent use when its Transport and
// TxBuilder are.
package swayabi
