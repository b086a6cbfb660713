package registry

import "mediadriver/application"

// Subscription is the per-(destination, channelId) registry entry: a
// reference count reflecting how many logical AddChannels calls are
// still outstanding, and the sessions currently multiplexed under it.
// Only the receiver thread mutates a Subscription.
type Subscription struct {
	destination application.Destination
	channelID   uint64
	refCount    int
	sessions    map[uint64]*Session
}

func newSubscription(dest application.Destination, channelID uint64) *Subscription {
	return &Subscription{
		destination: dest,
		channelID:   channelID,
		refCount:    1,
		sessions:    make(map[uint64]*Session),
	}
}

func (s *Subscription) ChannelID() uint64 { return s.channelID }
func (s *Subscription) RefCount() int     { return s.refCount }

// Destination reports the receiver's own bound destination, independent
// of any one session's source address.
func (s *Subscription) Destination() application.Destination { return s.destination }

func (s *Subscription) incRef() { s.refCount++ }

// decRef returns the resulting reference count.
func (s *Subscription) decRef() int {
	s.refCount--
	return s.refCount
}

func (s *Subscription) session(sessionID uint64) (*Session, bool) {
	sess, ok := s.sessions[sessionID]
	return sess, ok
}

// Session looks up a session already multiplexed under this subscription.
// Absence is not an error: the caller (on_data_frame) provisions a new
// Session on first sight rather than treating a miss as a fault.
func (s *Subscription) Session(sessionID uint64) (*Session, bool) {
	return s.session(sessionID)
}

func (s *Subscription) addSession(sess *Session) {
	s.sessions[sess.SessionID()] = sess
}

// close releases every session this subscription still holds. Invoked
// exactly once, when the reference count reaches zero.
func (s *Subscription) close() {
	for id, sess := range s.sessions {
		sess.close()
		delete(s.sessions, id)
	}
}

// SessionCount reports the number of sessions currently tracked; used by
// tests to assert on registry state without reaching into internals.
func (s *Subscription) SessionCount() int { return len(s.sessions) }

// pollSessions asks every session under this subscription to poll its
// loss handler.
func (s *Subscription) pollSessions() {
	for _, sess := range s.sessions {
		sess.PollLossHandler()
	}
}
