// Package settings collects the receive path's compile-time tunables:
// socket buffer sizes, datagram and queue capacities, and the default
// receiver-window value. None of these are read from a config file or
// flag at this layer; callers wire in their own values where a
// deployment needs to differ.
package settings

const (
	// MaxDatagramSize is the largest UDP payload the transport will read
	// in one ReadMsgUDPAddrPort call.
	MaxDatagramSize = 65536

	// OOBBufferSize is the out-of-band control-message buffer size
	// passed to ReadMsgUDPAddrPort; the receive path does not currently
	// interpret any ancillary data, so this only needs to be large
	// enough that the kernel never truncates it.
	OOBBufferSize = 1024

	// ReadBufferSize and WriteBufferSize size the kernel socket buffers
	// via SetReadBuffer/SetWriteBuffer; a low-latency media path favors
	// headroom against bursts over memory thrift.
	ReadBufferSize  = 4 << 20
	WriteBufferSize = 4 << 20

	// DefaultRingBufferCapacity and DefaultEventQueueCapacity size the
	// cross-thread command channels between the receiver and conductor.
	DefaultRingBufferCapacity = 1024
	DefaultEventQueueCapacity = 256

	// DefaultTermBufferLength is the size of a freshly provisioned term
	// buffer when the conductor does not specify otherwise.
	DefaultTermBufferLength = 16 << 20

	// DefaultReceiverWindow mirrors driver.DefaultReceiverWindow; kept
	// here too since conductor-side code that provisions sessions needs
	// the same constant without importing the driver package.
	DefaultReceiverWindow = 1000
)
