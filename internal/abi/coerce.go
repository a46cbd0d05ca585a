package abi

import (
	"encoding/json"
	"math"
	"math/big"
	"strings"

	"github.com/holiman/uint256"
)

// CoerceToUint256 handles JSON decoded numbers (float64, json.Number), numeric
// strings (decimal or 0x-prefixed hex), big integers and all Go integer types.
// Negative, fractional and out-of-range inputs are rejected.
func CoerceToUint256(value any) (*uint256.Int, bool) {
	switch v := value.(type) {
	case uint8:
		return uint256.NewInt(uint64(v)), true
	case uint16:
		return uint256.NewInt(uint64(v)), true
	case uint32:
		return uint256.NewInt(uint64(v)), true
	case uint64:
		return uint256.NewInt(v), true
	case uint:
		return uint256.NewInt(uint64(v)), true
	case int8:
		if v >= 0 {
			return uint256.NewInt(uint64(v)), true
		}
	case int16:
		if v >= 0 {
			return uint256.NewInt(uint64(v)), true
		}
	case int32:
		if v >= 0 {
			return uint256.NewInt(uint64(v)), true
		}
	case int64:
		if v >= 0 {
			return uint256.NewInt(uint64(v)), true
		}
	case int:
		if v >= 0 {
			return uint256.NewInt(uint64(v)), true
		}
	case float64:
		// Above 2^53 a float64 cannot carry an exact integer; such values must
		// arrive as strings or json.Number.
		if v >= 0 && v <= 1<<53 && v == math.Trunc(v) {
			return uint256.NewInt(uint64(v)), true
		}
	case float32:
		if v >= 0 && v <= 1<<24 && float64(v) == math.Trunc(float64(v)) {
			return uint256.NewInt(uint64(v)), true
		}
	case json.Number:
		return parseUint256(string(v))
	case string:
		return parseUint256(v)
	case *big.Int:
		if v == nil || v.Sign() < 0 {
			return nil, false
		}
		u, overflow := uint256.FromBig(v)
		return u, !overflow
	case *uint256.Int:
		if v == nil {
			return nil, false
		}
		return new(uint256.Int).Set(v), true
	case uint256.Int:
		return new(uint256.Int).Set(&v), true
	}
	return nil, false
}

func parseUint256(s string) (*uint256.Int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false
	}
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		u, err := uint256.FromHex("0x" + strings.TrimLeft(s[2:], "0"))
		if err != nil {
			if strings.Trim(s[2:], "0") == "" && len(s) > 2 {
				return new(uint256.Int), true
			}
			return nil, false
		}
		return u, true
	}
	u, err := uint256.FromDecimal(s)
	if err != nil {
		return nil, false
	}
	return u, true
}
