package transcoder

import "sync"

const (
	// Pool limits to prevent memory bloat
	poolMaxCap    = 64 << 10 // max scratch buffer bytes
	poolInitCap   = 256
	poolSlotsInit = 8
)

// encodeState is the scratch space of one Encode call.
type encodeState struct {
	buf   []byte
	slots []Slot
}

var statePool = sync.Pool{
	New: func() any {
		return &encodeState{
			buf:   make([]byte, 0, poolInitCap),
			slots: make([]Slot, 0, poolSlotsInit),
		}
	},
}

func getState() *encodeState {
	return statePool.Get().(*encodeState)
}

func putState(s *encodeState) {
	if s == nil || cap(s.buf) > poolMaxCap {
		return // reject oversized
	}
	s.buf = s.buf[:0]
	s.slots = s.slots[:0]
	statePool.Put(s)
}
