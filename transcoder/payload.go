package transcoder

// Slot links one inline (ptr, len, cap) triple to the heap data it points at.
type Slot struct {
	Path   string // field path of the container, e.g. "orders[1].items"
	Offset uint64 // offset of the triple within the payload
	Heap   uint64 // offset of the data within the payload
	Size   uint64 // bytes reserved for the data, word padded
	Len    uint64 // element count, or byte count for Bytes and String
}

// Payload is the encoded form of one value. Inline holds the fixed-size
// region, Heap the dynamically sized data appended after it.
type Payload struct {
	Inline []byte
	Heap   []byte
	Slots  []Slot
	Base   uint64
}

// Bytes returns inline ‖ heap, the contiguous form that pointers refer to.
func (p *Payload) Bytes() []byte {
	out := make([]byte, 0, len(p.Inline)+len(p.Heap))
	out = append(out, p.Inline...)
	return append(out, p.Heap...)
}

// Len returns the total encoded size in bytes.
func (p *Payload) Len() int {
	return len(p.Inline) + len(p.Heap)
}

// Pointer returns the absolute pointer value stored for slot i.
func (p *Payload) Pointer(i int) uint64 {
	return p.Base + p.Slots[i].Heap
}
