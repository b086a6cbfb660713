package application

// SubscriptionReadyEvent is the payload of a NEW_RECEIVE_BUFFER_NOTIFICATION:
// the conductor has provisioned a term buffer for a session the receiver
// already knows about in the Provisioned state.
type SubscriptionReadyEvent struct {
	ChannelID uint64
	SessionID uint64
	TermID    uint64
	Buffer    *TermBuffer
}

// ConductorProxy is the receiver's fire-and-forget window onto the
// conductor thread: commands written here are observed in FIFO order by
// the conductor's ring buffer consumer, but never acknowledged
// synchronously.
type ConductorProxy interface {
	// CreateTermBuffer asks the conductor to provision a term buffer for
	// (destination, session, channel, term). The receiver does not block
	// waiting for a reply; the buffer arrives later via
	// ReceiverProxy.NewReceiveBuffer.
	CreateTermBuffer(dest Destination, sessionID, channelID, termID uint64) error
}

// ReceiverProxy is the conductor's window onto the receiver thread:
// ADD_SUBSCRIBER and REMOVE_SUBSCRIBER are small enough to travel over
// the ring buffer directly; NEW_RECEIVE_BUFFER_NOTIFICATION carries a
// non-POD buffer handle and is queued separately, with the ring buffer
// carrying only the wake-up.
type ReceiverProxy interface {
	AddChannels(channelIDs []uint64) error
	RemoveChannels(channelIDs []uint64) error

	// NewReceiveBuffer enqueues a SubscriptionReadyEvent together with the
	// loss handler the receiver should bind to it. It returns false when
	// the bounded queue is full; the caller must back off and retry.
	NewReceiveBuffer(event SubscriptionReadyEvent, lossHandler LossHandler) bool
}
