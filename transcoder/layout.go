package transcoder

import (
	"github.com/wippyai/sway-abi/transcoder/internal/layout"
	"github.com/wippyai/sway-abi/types"
)

type LayoutInfo = layout.Info

// LayoutCalculator exposes inline sizes and offsets of descriptors.
type LayoutCalculator struct {
	calc *layout.Calculator
}

func NewLayoutCalculator() *LayoutCalculator {
	return &LayoutCalculator{
		calc: layout.NewCalculator(),
	}
}

func (lc *LayoutCalculator) Calculate(t *types.Descriptor) (LayoutInfo, error) {
	return lc.calc.Calculate(t)
}

// InlineSize returns the number of inline bytes a value of type t occupies.
func (lc *LayoutCalculator) InlineSize(t *types.Descriptor) (uint64, error) {
	return lc.calc.Size(t)
}
