package driver

// SessionNakEmitter adapts a DataFrameHandler into the narrow
// application.NakEmitter capability a loss handler needs: it is bound to
// one (channel, session) pair rather than the handler as a whole, so a
// loss handler never sees the registry, the transport, or any session it
// does not own.
type SessionNakEmitter struct {
	handler   *DataFrameHandler
	channelID uint64
	sessionID uint64
}

// NewSessionNakEmitter builds the capability handed to a loss handler
// constructed for (channelID, sessionID), typically just before
// DataFrameHandler.OnSubscriptionReady binds that session's term buffer.
func NewSessionNakEmitter(handler *DataFrameHandler, channelID, sessionID uint64) SessionNakEmitter {
	return SessionNakEmitter{handler: handler, channelID: channelID, sessionID: sessionID}
}

func (e SessionNakEmitter) SendNak(termID uint64, termOffset, length uint32) error {
	return e.handler.SendNak(e.channelID, e.sessionID, termID, termOffset, length)
}
