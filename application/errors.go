package application

import "errors"

var (
	// ErrSubscriptionNotRegistered is returned by RemoveChannels for a
	// channelId with no live Subscription. Non-fatal at the process level.
	ErrSubscriptionNotRegistered = errors.New("subscription not registered")

	// ErrShortSend is returned when a NAK or SM could not be transmitted
	// in full. Fatal to the send operation that produced it.
	ErrShortSend = errors.New("short send")

	// ErrQueueFull is returned by ConductorProxy.CreateTermBuffer and by
	// ReceiverProxy.AddChannels/RemoveChannels when the ring buffer has no
	// room for the command. ReceiverProxy.NewReceiveBuffer reports a full
	// queue by returning false instead.
	ErrQueueFull = errors.New("receive buffer event queue full")

	// ErrBufferOverflow is returned when an operation would read or write
	// past the extent of a backing buffer.
	ErrBufferOverflow = errors.New("buffer overflow")
)
