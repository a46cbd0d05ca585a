package layout

import (
	"sync"

	"github.com/wippyai/sway-abi/errors"
	"github.com/wippyai/sway-abi/internal/abi"
	"github.com/wippyai/sway-abi/types"
)

const (
	WordSize    = abi.WordSize
	TripleSize  = 3 * WordSize
	TagSize     = WordSize
	Uint256Size = 4 * WordSize
)

// Info is the inline layout of one descriptor.
type Info struct {
	Offsets []uint64 // field offsets for structs and tuples
	Size    uint64
}

// Calculator caches layouts per descriptor. It is safe for concurrent use.
type Calculator struct {
	cache sync.Map // *types.Descriptor -> Info
}

func NewCalculator() *Calculator {
	return &Calculator{}
}

// Size returns the inline size of t in bytes.
func (c *Calculator) Size(t *types.Descriptor) (uint64, error) {
	info, err := c.Calculate(t)
	return info.Size, err
}

// Calculate returns the inline layout of t. The descriptor must be free of
// inline cycles; see types.Validate.
func (c *Calculator) Calculate(t *types.Descriptor) (Info, error) {
	if t == nil {
		return Info{}, errors.InvalidInput(errors.PhaseCompile, "nil type descriptor")
	}
	if cached, ok := c.cache.Load(t); ok {
		return cached.(Info), nil
	}

	info, err := c.calculate(t)
	if err != nil {
		return Info{}, err
	}
	c.cache.Store(t, info)
	return info, nil
}

func (c *Calculator) calculate(t *types.Descriptor) (Info, error) {
	switch t.Kind {
	case types.KindBool:
		return Info{Size: WordSize}, nil
	case types.KindUint:
		if t.Width == 256 {
			return Info{Size: Uint256Size}, nil
		}
		return Info{Size: WordSize}, nil
	case types.KindB256:
		return Info{Size: Uint256Size}, nil
	case types.KindStr:
		return Info{Size: abi.PadWord(uint64(t.Length))}, nil
	case types.KindVector, types.KindBytes, types.KindString:
		return Info{Size: TripleSize}, nil
	case types.KindArray:
		return c.calculateArray(t)
	case types.KindStruct, types.KindTuple:
		return c.calculateFields(t)
	case types.KindEnum:
		return c.calculateEnum(t)
	default:
		return Info{}, errors.Unsupported(errors.PhaseCompile, "type kind "+t.Kind.String())
	}
}

func (c *Calculator) calculateArray(t *types.Descriptor) (Info, error) {
	elem, err := c.Calculate(t.Elem)
	if err != nil {
		return Info{}, err
	}
	size, ok := abi.SafeMulU64(elem.Size, uint64(t.Length))
	if !ok {
		return Info{}, errors.New(errors.PhaseCompile, errors.KindOverflow).
			Detail("array size overflow: %d * %d", elem.Size, t.Length).
			Build()
	}
	return Info{Size: size}, nil
}

func (c *Calculator) calculateFields(t *types.Descriptor) (Info, error) {
	if len(t.Fields) == 0 {
		return Info{Size: 0}, nil
	}

	offsets := make([]uint64, len(t.Fields))
	offset := uint64(0)

	for i, f := range t.Fields {
		fieldLayout, err := c.Calculate(f.Type)
		if err != nil {
			return Info{}, err
		}
		offsets[i] = offset
		next, ok := abi.SafeAddU64(offset, fieldLayout.Size)
		if !ok {
			return Info{}, errors.New(errors.PhaseCompile, errors.KindOverflow).
				Path(t.Name, f.Name).
				Detail("struct size overflow at field %d", i).
				Build()
		}
		offset = next
	}

	return Info{Size: offset, Offsets: offsets}, nil
}

func (c *Calculator) calculateEnum(t *types.Descriptor) (Info, error) {
	maxSize := uint64(0)

	for _, v := range t.Variants {
		caseLayout, err := c.Calculate(v.Type)
		if err != nil {
			return Info{}, err
		}
		if caseLayout.Size > maxSize {
			maxSize = caseLayout.Size
		}
	}

	return Info{Size: TagSize + maxSize}, nil
}
