// Package loss implements the default LossHandler: a per-session gap
// scanner that tracks which byte ranges of the current term have been
// observed and asks its NakEmitter to request retransmission of the
// first gap once it has persisted past a configured delay.
package loss

import (
	"sort"
	"time"

	"mediadriver/application"
)

// DefaultDelay is how long a gap must persist before the first NAK for
// it is emitted, giving slightly-reordered frames a chance to arrive
// before a retransmit is requested.
const DefaultDelay = 20 * time.Millisecond

type byteRange struct{ start, end uint32 }

// DefaultHandler is not safe for concurrent use; it is polled and fed by
// the single receiver thread that owns the session it watches.
type DefaultHandler struct {
	emitter application.NakEmitter
	delay   time.Duration
	now     func() time.Time

	termID            uint64
	received          []byteRange
	highestContiguous uint32

	gap        byteRange
	gapPresent bool
	gapSince   time.Time
}

// NewDefaultHandler builds a loss handler that reports gaps to emitter.
func NewDefaultHandler(emitter application.NakEmitter) *DefaultHandler {
	return &DefaultHandler{
		emitter: emitter,
		delay:   DefaultDelay,
		now:     time.Now,
	}
}

// HighestContiguousOffset reports the highest offset such that every byte
// before it has been observed for the current term; used to fill
// outgoing Status Messages.
func (h *DefaultHandler) HighestContiguousOffset() uint32 { return h.highestContiguous }

func (h *DefaultHandler) OnDataReceived(termID uint64, offset, length uint32) {
	if termID != h.termID {
		h.termID = termID
		h.received = h.received[:0]
		h.highestContiguous = 0
		h.gapPresent = false
	}
	if length == 0 {
		return
	}
	h.insert(byteRange{start: offset, end: offset + length})
	h.recomputeHighestContiguous()
}

func (h *DefaultHandler) insert(r byteRange) {
	i := sort.Search(len(h.received), func(i int) bool { return h.received[i].start >= r.start })
	h.received = append(h.received, byteRange{})
	copy(h.received[i+1:], h.received[i:])
	h.received[i] = r
	h.merge()
}

// merge collapses overlapping or touching ranges so recomputeHighestContiguous
// and Poll only ever see the minimal set of gaps.
func (h *DefaultHandler) merge() {
	if len(h.received) == 0 {
		return
	}
	merged := h.received[:1]
	for _, r := range h.received[1:] {
		last := &merged[len(merged)-1]
		if r.start <= last.end {
			if r.end > last.end {
				last.end = r.end
			}
			continue
		}
		merged = append(merged, r)
	}
	h.received = merged
}

func (h *DefaultHandler) recomputeHighestContiguous() {
	if len(h.received) == 0 || h.received[0].start > 0 {
		return
	}
	h.highestContiguous = h.received[0].end
}

// Poll scans for the first gap beyond the highest contiguous offset and,
// once it has persisted for DefaultDelay, asks the emitter to request
// retransmission. Re-emission on subsequent polls is intentional: it is
// idempotent from the source's perspective.
func (h *DefaultHandler) Poll() {
	gap, ok := h.firstGap()
	if !ok {
		h.gapPresent = false
		return
	}

	now := h.now()
	if !h.gapPresent || h.gap != gap {
		h.gap = gap
		h.gapPresent = true
		h.gapSince = now
		return
	}

	if now.Sub(h.gapSince) < h.delay {
		return
	}

	_ = h.emitter.SendNak(h.termID, gap.start, gap.end-gap.start)
}

// firstGap reports the first gap beyond the highest contiguous offset: the
// missing prefix before the earliest received range, if one exists, or
// otherwise the interval between the first two received ranges.
func (h *DefaultHandler) firstGap() (byteRange, bool) {
	if len(h.received) > 0 && h.received[0].start > h.highestContiguous {
		return byteRange{start: h.highestContiguous, end: h.received[0].start}, true
	}
	if len(h.received) < 2 {
		return byteRange{}, false
	}
	gap := byteRange{start: h.received[0].end, end: h.received[1].start}
	if gap.start >= gap.end {
		return byteRange{}, false
	}
	return gap, true
}
