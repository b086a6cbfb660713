package proxy

import (
	"mediadriver/application"
	"mediadriver/infrastructure/settings"
)

// ConductorProxy is the receiver's window onto the conductor thread: a
// fire-and-forget request to provision a term buffer for a newly observed
// session. It never blocks; when the ring buffer is full the request is
// not queued and CreateTermBuffer returns application.ErrQueueFull.
type ConductorProxy struct {
	ring *RingBuffer
}

// NewConductorProxy allocates a ConductorProxy backed by a ring buffer of
// the given capacity.
func NewConductorProxy(capacity int) *ConductorProxy {
	return &ConductorProxy{ring: NewRingBuffer(capacity)}
}

// NewDefaultConductorProxy allocates a ConductorProxy sized for typical
// deployments, using settings.DefaultRingBufferCapacity.
func NewDefaultConductorProxy() *ConductorProxy {
	return NewConductorProxy(settings.DefaultRingBufferCapacity)
}

func (p *ConductorProxy) CreateTermBuffer(dest application.Destination, sessionID, channelID, termID uint64) error {
	cmd := Command{
		Type:        CmdCreateTermBuffer,
		Destination: dest.Remote().String(),
		SessionID:   sessionID,
		ChannelID:   channelID,
		TermID:      termID,
	}
	if !p.ring.TryEnqueue(cmd) {
		return application.ErrQueueFull
	}
	return nil
}

// DequeueCommand is the conductor-side half of this proxy.
func (p *ConductorProxy) DequeueCommand() (Command, bool) {
	return p.ring.TryDequeue()
}
