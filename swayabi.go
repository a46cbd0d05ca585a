package swayabi

import (
	"context"

	"github.com/wippyai/sway-abi/receipt"
)

// Transport submits a signed transaction and returns its receipts.
// Implementations talk to a node; funding, fees and signing happen before Submit.
type Transport interface {
	Submit(ctx context.Context, signedTx []byte) ([]receipt.Receipt, error)
}

// TransportFunc adapts a function to Transport.
type TransportFunc func(ctx context.Context, signedTx []byte) ([]receipt.Receipt, error)

func (f TransportFunc) Submit(ctx context.Context, signedTx []byte) ([]receipt.Receipt, error) {
	return f(ctx, signedTx)
}
