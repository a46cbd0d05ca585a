// Package invoke runs a contract call end to end: convert Go arguments,
// encode call data, build and submit the transaction, then decode the
// return value and logs or explain the revert.
//
// Transaction construction and signing are delegated to a [TxBuilder];
// delivery to a node is delegated to a swayabi.Transport.
package invoke
