package application

// NakEmitter is the capability a LossHandler is given to report a gap. It
// is deliberately narrow: a loss handler never sees the session, the
// transport, or the registry — only the ability to ask for a range to be
// resent.
type NakEmitter interface {
	SendNak(termID uint64, termOffset uint32, length uint32) error
}

// LossHandler observes one session's term buffer and, once it identifies
// a gap beyond the highest contiguous offset, calls its NakEmitter.
// Re-emission of the same NAK is permitted and must be idempotent from
// the source's perspective.
type LossHandler interface {
	// OnDataReceived notifies the handler that bytes [offset, offset+length)
	// of the current term have just been written.
	OnDataReceived(termID uint64, offset uint32, length uint32)

	// Poll is invoked periodically (cadence owned by the caller) to scan
	// for gaps and, subject to policy, emit NAKs.
	Poll()
}
