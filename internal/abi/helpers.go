package abi

import (
	"math"
	"reflect"
)

// WordSize is the width of a VM word in bytes.
const WordSize = 8

const (
	MaxHeapSize     = 1 << 30 // 1 GB max heap region
	MaxVectorLength = 1 << 24 // 16M max elements in one dynamic container
)

func SafeMulU64(a, b uint64) (uint64, bool) {
	if b != 0 && a > math.MaxUint64/b {
		return 0, false
	}
	return a * b, true
}

func SafeAddU64(a, b uint64) (uint64, bool) {
	if a > math.MaxUint64-b {
		return 0, false
	}
	return a + b, true
}

// TypeName returns "nil" for nil values, avoiding reflect.TypeOf(nil) panic.
func TypeName(value any) string {
	if value == nil {
		return "nil"
	}
	return reflect.TypeOf(value).String()
}

// PadWord rounds n up to the next multiple of WordSize.
func PadWord(n uint64) uint64 {
	return (n + WordSize - 1) &^ (WordSize - 1)
}

// FitsWidth reports whether a value with the given bit length fits in width bits.
func FitsWidth(bitLen int, width uint16) bool {
	return bitLen <= int(width)
}
