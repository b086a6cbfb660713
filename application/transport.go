package application

import "net/netip"

// FrameHandler is notified by a Transport whenever an inbound datagram
// has been demultiplexed down to a known frame type. buf is the full
// datagram, common header included; length is
// the number of bytes actually read off the wire (may exceed the
// frame's own FrameLength() if the datagram carries wire padding).
type FrameHandler interface {
	OnDataFrame(buf []byte, length int, src netip.AddrPort) error
	OnStatusMessageFrame(buf []byte, length int, src netip.AddrPort) error
	OnNakFrame(buf []byte, length int, src netip.AddrPort) error
}

// Transport owns one bound UDP endpoint. Construction binds the FrameHandler
// that inbound datagrams are delivered to; it is exclusively owned by
// whichever component constructs it.
type Transport interface {
	// SendTo writes buf to remote and reports how many bytes were
	// actually transmitted, which may be fewer than requested. Callers
	// decide whether a short send is fatal for their use.
	SendTo(buf []byte, remote netip.AddrPort) (int, error)

	// Close is idempotent.
	Close() error
}
