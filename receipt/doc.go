// Package receipt models the execution receipts a Fuel node returns for a
// submitted transaction.
//
// Receipts form a closed set of concrete structs. Each implements [Receipt];
// those emitted from a contract context also implement [Contextual]. The JSON
// codec uses a "type" discriminator and hex-encoded identifiers:
//
//	{"type":"LOG_DATA","id":"0x...","ra":0,"rb":1515152261580153489,"ptr":10240,"len":8,"data":"0x..."}
//
// Word fields accept JSON numbers, decimal strings and 0x-prefixed hex.
package receipt
