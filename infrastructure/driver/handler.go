// Package driver is the core glue: it receives datagrams handed up from
// the transport, demultiplexes them through the subscription registry,
// reassembles payload into term buffers, and emits Status Message and
// NAK frames back to the source. It also relays control-plane channel
// subscription changes through to the registry.
package driver

import (
	"fmt"
	"net/netip"

	"mediadriver/application"
	"mediadriver/domain/frame"
	"mediadriver/infrastructure/registry"
	"mediadriver/infrastructure/settings"
)

// DefaultReceiverWindow is the receiver-window value advertised in the
// initial Status Message sent once a session's term buffer is bound. It
// is a fixed placeholder; a pluggable windowing strategy is not provided
// here.
const DefaultReceiverWindow uint32 = settings.DefaultReceiverWindow

// DataFrameHandler implements application.FrameHandler for the data
// endpoint. One instance is owned by, and runs exclusively on, the
// receiver thread.
type DataFrameHandler struct {
	registry  *registry.Registry
	transport application.Transport
	conductor application.ConductorProxy
	logger    application.Logger
}

// New builds a DataFrameHandler. logger may be nil, in which case
// diagnostics are dropped rather than logged.
func New(reg *registry.Registry, transport application.Transport, conductor application.ConductorProxy, logger application.Logger) *DataFrameHandler {
	return &DataFrameHandler{
		registry:  reg,
		transport: transport,
		conductor: conductor,
		logger:    logger,
	}
}

func (h *DataFrameHandler) logf(format string, v ...any) {
	if h.logger != nil {
		h.logger.Printf(format, v...)
	}
}

// AddChannels relays a conductor subscription request to the registry.
func (h *DataFrameHandler) AddChannels(channelIDs []uint64) {
	h.registry.AddChannels(channelIDs)
}

// RemoveChannels relays a conductor unsubscription request to the registry.
func (h *DataFrameHandler) RemoveChannels(channelIDs []uint64) error {
	return h.registry.RemoveChannels(channelIDs)
}

func (h *DataFrameHandler) ChannelCount() int { return h.registry.ChannelCount() }

// OnDataFrame demultiplexes one inbound Data frame. An unknown channel is
// dropped silently (by design: the socket may be shared by interests
// this receiver does not have). A first-seen session is provisioned and
// a term buffer requested from the conductor, without writing any
// payload — the buffer is not yet present. An already-known session has
// its payload, if any, reassembled.
func (h *DataFrameHandler) OnDataFrame(buf []byte, length int, src netip.AddrPort) error {
	if length < 0 || length > len(buf) {
		return fmt.Errorf("driver: invalid read length %d for buffer of %d bytes", length, len(buf))
	}
	header, err := frame.WrapDataHeader(buf[:length])
	if err != nil {
		h.logf("driver: dropping data frame from %s: %v", src, err)
		return nil
	}

	sub, ok := h.registry.Subscription(header.ChannelID())
	if !ok {
		return nil
	}

	sess, ok := sub.Session(header.SessionID())
	if !ok {
		sess = h.registry.ProvisionSession(sub, header.SessionID(), src)
		dest := sub.Destination().WithRemote(src)
		if err := h.conductor.CreateTermBuffer(dest, header.SessionID(), header.ChannelID(), header.TermID()); err != nil {
			h.logf("driver: create_term_buffer dropped for session %d/%d: %v", header.ChannelID(), header.SessionID(), err)
		}
		return nil
	}

	if !header.HasPayload() {
		return nil
	}
	if int(header.FrameLength()) > length {
		h.logf("driver: dropping data frame from %s: frame length %d exceeds datagram length %d", src, header.FrameLength(), length)
		return nil
	}
	if err := sess.RebuildBuffer(header); err != nil {
		h.logf("driver: rebuild_buffer failed for session %d/%d: %v", header.ChannelID(), header.SessionID(), err)
	}
	return nil
}

// OnStatusMessageFrame and OnNakFrame arrive only if a source mistakenly
// addresses a control frame to the data endpoint; this design carries
// data only on that endpoint, so both are silently ignored.
func (h *DataFrameHandler) OnStatusMessageFrame(buf []byte, length int, src netip.AddrPort) error {
	return nil
}

func (h *DataFrameHandler) OnNakFrame(buf []byte, length int, src netip.AddrPort) error {
	return nil
}

// OnSubscriptionReady handles a NEW_RECEIVE_BUFFER_NOTIFICATION: the
// conductor has provisioned a term buffer for a session this receiver
// already knows about in the Provisioned state. Absence of either the
// subscription or the session is a fatal logic error — the conductor
// cannot report readiness for state the receiver never asked it to
// provision.
func (h *DataFrameHandler) OnSubscriptionReady(event application.SubscriptionReadyEvent, lossHandler application.LossHandler) error {
	_, sess, err := h.registry.BindSession(event.ChannelID, event.SessionID)
	if err != nil {
		return err
	}
	sess.Bind(event.TermID, event.Buffer, lossHandler)
	return h.SendStatusMessage(sess, 0, DefaultReceiverWindow)
}

// SendStatusMessage fills and transmits an SM frame advertising
// highestContiguous and window for sess's current term.
func (h *DataFrameHandler) SendStatusMessage(sess *registry.Session, highestContiguous, window uint32) error {
	buf := make([]byte, frame.StatusMessageHeaderLength)
	sm, err := frame.WrapStatusMessageHeader(buf)
	if err != nil {
		return err
	}
	sm.SetVersion(frame.CurrentVersion)
	sm.SetFlags(frame.FlagNone)
	sm.SetType(frame.TypeSM)
	if err := sm.SetFrameLength(uint32(frame.StatusMessageHeaderLength)); err != nil {
		return err
	}
	sm.SetSessionID(sess.SessionID())
	sm.SetChannelID(sess.ChannelID())
	sm.SetTermID(sess.TermID())
	sm.SetHighestContiguousTermOffset(highestContiguous)
	sm.SetReceiverWindow(window)

	n, err := h.transport.SendTo(buf, sess.SourceAddr())
	if err != nil {
		return fmt.Errorf("driver: send status message to %s: %w", sess.SourceAddr(), err)
	}
	if n < len(buf) {
		return fmt.Errorf("driver: status message to %s: %w", sess.SourceAddr(), application.ErrShortSend)
	}
	return nil
}

// SendNak fills and transmits a NAK requesting retransmission of
// [termOffset, termOffset+length) of termID, for the session identified
// by (channelID, sessionID). A short send is fatal: the caller cannot
// assume the peer observed a partial NAK as a valid request.
func (h *DataFrameHandler) SendNak(channelID, sessionID, termID uint64, termOffset, length uint32) error {
	_, sess, err := h.registry.BindSession(channelID, sessionID)
	if err != nil {
		return err
	}

	buf := make([]byte, frame.NakHeaderLength)
	nak, err := frame.WrapNakHeader(buf)
	if err != nil {
		return err
	}
	nak.SetVersion(frame.CurrentVersion)
	nak.SetFlags(frame.FlagNone)
	nak.SetType(frame.TypeNak)
	if err := nak.SetFrameLength(uint32(frame.NakHeaderLength)); err != nil {
		return err
	}
	nak.SetSessionID(sessionID)
	nak.SetChannelID(channelID)
	nak.SetTermID(termID)
	nak.SetTermOffset(termOffset)
	nak.SetLength(length)

	n, err := h.transport.SendTo(buf, sess.SourceAddr())
	if err != nil {
		return fmt.Errorf("driver: send nak to %s: %w", sess.SourceAddr(), err)
	}
	if n < len(buf) {
		return fmt.Errorf("driver: nak to %s: %w", sess.SourceAddr(), application.ErrShortSend)
	}
	return nil
}
