package proxy

import (
	"mediadriver/application"
	"mediadriver/infrastructure/settings"
)

// ReceiverProxy is the conductor's window onto the receiver thread. It
// writes ADD_SUBSCRIBER and REMOVE_SUBSCRIBER commands (small enough to
// travel as-is) directly into the ring buffer; NEW_RECEIVE_BUFFER_NOTIFICATION
// pushes its event onto the bounded EventQueue first and only writes the
// wake-up tag to the ring buffer once that succeeds.
type ReceiverProxy struct {
	destination string
	ring        *RingBuffer
	events      *EventQueue
}

// NewReceiverProxy builds a ReceiverProxy addressing the given destination
// string (used only to stamp outgoing commands; it carries no behavior).
func NewReceiverProxy(destination string, ringCapacity, eventCapacity int) *ReceiverProxy {
	return &ReceiverProxy{
		destination: destination,
		ring:        NewRingBuffer(ringCapacity),
		events:      NewEventQueue(eventCapacity),
	}
}

// NewDefaultReceiverProxy builds a ReceiverProxy sized for typical
// deployments, using settings.DefaultRingBufferCapacity and
// settings.DefaultEventQueueCapacity.
func NewDefaultReceiverProxy(destination string) *ReceiverProxy {
	return NewReceiverProxy(destination, settings.DefaultRingBufferCapacity, settings.DefaultEventQueueCapacity)
}

func (p *ReceiverProxy) AddChannels(channelIDs []uint64) error {
	if !p.ring.TryEnqueue(Command{Type: CmdAddSubscriber, Destination: p.destination, ChannelIDs: channelIDs}) {
		return application.ErrQueueFull
	}
	return nil
}

func (p *ReceiverProxy) RemoveChannels(channelIDs []uint64) error {
	if !p.ring.TryEnqueue(Command{Type: CmdRemoveSubscriber, Destination: p.destination, ChannelIDs: channelIDs}) {
		return application.ErrQueueFull
	}
	return nil
}

// NewReceiveBuffer enqueues event and its loss handler, returning false
// without blocking if either the event queue or the ring buffer's wake-up
// slot is full. The caller must back off and retry.
func (p *ReceiverProxy) NewReceiveBuffer(event application.SubscriptionReadyEvent, lossHandler application.LossHandler) bool {
	if !p.events.TryEnqueue(event, lossHandler) {
		return false
	}
	if !p.ring.TryEnqueue(Command{Type: CmdNewReceiveBufferNotification}) {
		p.events.RollbackLast()
		return false
	}
	return true
}

// DequeueCommand is the receiver-side half of this proxy: pop the next
// command in FIFO order. ok is false when nothing is pending.
func (p *ReceiverProxy) DequeueCommand() (Command, bool) {
	return p.ring.TryDequeue()
}

// DequeueReadyEvent pops the event a NEW_RECEIVE_BUFFER_NOTIFICATION wake-up
// refers to.
func (p *ReceiverProxy) DequeueReadyEvent() (application.SubscriptionReadyEvent, application.LossHandler, bool) {
	return p.events.TryDequeue()
}
