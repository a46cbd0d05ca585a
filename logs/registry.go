package logs

import (
	"github.com/wippyai/sway-abi/receipt"
	"github.com/wippyai/sway-abi/transcoder"
	"github.com/wippyai/sway-abi/types"
)

// Registry is an immutable contract id to program mapping.
// It is safe for concurrent use.
type Registry struct {
	programs map[receipt.ContractID]*types.Program
	decoder  *transcoder.Decoder
}

// NewRegistry copies programs into a new registry. Script logs are emitted
// with the zero contract id, so a script program is registered under it.
func NewRegistry(programs map[receipt.ContractID]*types.Program, opts ...transcoder.Option) *Registry {
	m := make(map[receipt.ContractID]*types.Program, len(programs))
	for id, p := range programs {
		if p != nil {
			m[id] = p
		}
	}
	return &Registry{programs: m, decoder: transcoder.NewDecoder(opts...)}
}

// Lookup returns the program registered for id.
func (r *Registry) Lookup(id receipt.ContractID) (*types.Program, bool) {
	if r == nil {
		return nil, false
	}
	p, ok := r.programs[id]
	return p, ok
}

// Len returns the number of registered programs.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.programs)
}

// Decoder returns the decoder used for log payloads.
func (r *Registry) Decoder() *transcoder.Decoder {
	return r.decoder
}
