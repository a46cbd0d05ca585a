// Package logs decodes the log receipts of a transaction into typed values.
//
// A [Registry] maps contract ids to their program ABI. [Decode] walks the
// receipt list in order, resolves each log id against the emitting
// contract's program and decodes the payload:
//
//   - LOG receipts carry a single word in RA, decoded from its 8-byte
//     big-endian form.
//   - LOG_DATA receipts carry the encoded bytes, whose pointers are relative
//     to the receipt's Ptr.
//
// The log id is RB in both cases. Unknown ids and malformed payloads are
// recorded as failures and skipped; decoding continues with the next receipt.
package logs
