package registry

import (
	"fmt"
	"net/netip"

	"mediadriver/application"
	"mediadriver/domain/frame"
)

// sessionState tracks a SubscribedSession through its lifecycle: it is
// Provisioned the instant the first data frame for it arrives, Active
// once the conductor hands back a term buffer, and Closed once the
// owning Subscription tears it down.
type sessionState int

const (
	sessionProvisioned sessionState = iota
	sessionActive
	sessionClosed
)

// Session is one (channel, sessionId) producer: its source address, the
// current term buffer once bound, and the loss handler that watches it.
// Only the receiver thread ever touches a Session.
type Session struct {
	sessionID   uint64
	channelID   uint64
	sourceAddr  netip.AddrPort
	state       sessionState
	termID      uint64
	termBuffer  *application.TermBuffer
	lossHandler application.LossHandler
}

// newProvisionedSession records a just-seen session before its term
// buffer has arrived; no payload can be written yet.
func newProvisionedSession(sessionID, channelID uint64, src netip.AddrPort) *Session {
	return &Session{
		sessionID:  sessionID,
		channelID:  channelID,
		sourceAddr: src,
		state:      sessionProvisioned,
	}
}

func (s *Session) SessionID() uint64           { return s.sessionID }
func (s *Session) ChannelID() uint64           { return s.channelID }
func (s *Session) SourceAddr() netip.AddrPort  { return s.sourceAddr }
func (s *Session) IsActive() bool              { return s.state == sessionActive }
func (s *Session) TermID() uint64              { return s.termID }
func (s *Session) TermBuffer() *application.TermBuffer { return s.termBuffer }

// PollLossHandler asks this session's loss handler, if any is bound yet,
// to scan for gaps and emit NAKs subject to its own policy.
func (s *Session) PollLossHandler() {
	if s.lossHandler != nil {
		s.lossHandler.Poll()
	}
}

// Bind transitions a Provisioned session to Active, attaching the term
// buffer and loss handler the conductor has provisioned.
func (s *Session) Bind(termID uint64, buf *application.TermBuffer, lossHandler application.LossHandler) {
	s.termID = termID
	s.termBuffer = buf
	s.lossHandler = lossHandler
	s.state = sessionActive
}

func (s *Session) close() {
	s.state = sessionClosed
}

// RebuildBuffer reassembles one Data frame's payload into the term
// buffer at header.TermOffset(). It is only callable while Active; it is
// idempotent, since TermBuffer.WriteAt simply recopies the same bytes
// when a duplicate frame arrives.
func (s *Session) RebuildBuffer(header frame.DataHeader) error {
	if s.state != sessionActive {
		return fmt.Errorf("session %d/%d: %w", s.channelID, s.sessionID, ErrSessionNotActive)
	}

	payload := header.Payload()
	if _, err := s.termBuffer.WriteAt(header.TermOffset(), payload); err != nil {
		return err
	}

	if s.lossHandler != nil {
		s.lossHandler.OnDataReceived(header.TermID(), header.TermOffset(), uint32(len(payload)))
	}
	return nil
}
