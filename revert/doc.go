// Package revert turns the receipts of a failed transaction into a
// human-readable [Failure].
//
// The terminating receipt is the first PANIC receipt, or failing that the
// first REVERT receipt. A REVERT value is matched against the sentinel words
// the Sway standard library reverts with:
//
//	0xffff_ffff_ffff_0000  require
//	0xffff_ffff_ffff_0001  transfer to address without an OutputVariable
//	0xffff_ffff_ffff_0002  send message without an OutputMessage
//	0xffff_ffff_ffff_0003  assert_eq
//	0xffff_ffff_ffff_0004  assert
//	0xffff_ffff_ffff_0005  assert_ne
//
// Operands come from the logs decoded before the terminator: require reports
// the last log, assert_eq and assert_ne compare the last log with the one
// before it. Classification by sentinel is best-effort, since a contract can
// revert with any of these words directly.
package revert
