package application

import "fmt"

// TermBuffer is a contiguous byte region supplied by the conductor for one
// (session, term_id). The receiver is the only writer once it is bound
// to a session; the conductor reclaims it only after the session closes.
type TermBuffer struct {
	termID uint64
	data   []byte
}

// NewTermBuffer wraps a conductor-provisioned region. It does not copy
// data; the caller hands over ownership for the buffer's lifetime.
func NewTermBuffer(termID uint64, data []byte) *TermBuffer {
	return &TermBuffer{termID: termID, data: data}
}

func (t *TermBuffer) TermID() uint64 { return t.termID }

func (t *TermBuffer) Len() int { return len(t.data) }

// WriteAt copies p into the buffer starting at offset. It refuses writes
// that would run past the buffer's extent rather than silently
// truncating, since a truncated reassembly would corrupt the stream.
func (t *TermBuffer) WriteAt(offset uint32, p []byte) (int, error) {
	end := int(offset) + len(p)
	if offset > uint32(len(t.data)) || end > len(t.data) {
		return 0, fmt.Errorf("term buffer %d: write [%d,%d) out of bounds (len %d): %w",
			t.termID, offset, end, len(t.data), ErrBufferOverflow)
	}
	return copy(t.data[offset:end], p), nil
}

// Bytes returns the full backing region. Intended for tests and for the
// consumer that reads reassembled messages back out of the term buffer.
func (t *TermBuffer) Bytes() []byte { return t.data }
