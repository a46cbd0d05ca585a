package transcoder

import "github.com/wippyai/sway-abi/internal/abi"

// Safety limits to prevent memory exhaustion.
const (
	MaxHeapSize     = abi.MaxHeapSize     // Maximum heap region (1 GB)
	MaxVectorLength = abi.MaxVectorLength // Maximum elements in one container (16M)
	MaxDepth        = 512                 // Maximum nested containers on decode
)

// Options configures an Encoder or Decoder.
type Options struct {
	// Base is added to every heap offset to form an absolute pointer.
	Base            uint64
	MaxHeapSize     uint64
	MaxVectorLength uint64
	MaxDepth        int
}

// Option mutates Options.
type Option func(*Options)

func WithBase(base uint64) Option {
	return func(o *Options) { o.Base = base }
}

func WithMaxHeapSize(n uint64) Option {
	return func(o *Options) {
		if n > 0 {
			o.MaxHeapSize = n
		}
	}
}

func WithMaxVectorLength(n uint64) Option {
	return func(o *Options) {
		if n > 0 {
			o.MaxVectorLength = n
		}
	}
}

func WithMaxDepth(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.MaxDepth = n
		}
	}
}

func buildOptions(opts []Option) Options {
	o := Options{
		MaxHeapSize:     MaxHeapSize,
		MaxVectorLength: MaxVectorLength,
		MaxDepth:        MaxDepth,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
