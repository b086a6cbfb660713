// Package transport implements application.Transport over a bound UDP
// socket: it owns one endpoint, reads inbound datagrams on a background
// goroutine, demultiplexes them by common-header type, and delivers each
// to the configured FrameHandler.
package transport

import (
	"fmt"
	"net"
	"net/netip"
	"sync"

	"golang.org/x/net/ipv4"
	"golang.org/x/sys/unix"

	"mediadriver/application"
	"mediadriver/application/listeners"
	"mediadriver/domain/frame"
	"mediadriver/domain/network"
	"mediadriver/infrastructure/settings"
)

// UDPTransport owns one bound UDP endpoint for the lifetime of the
// process that constructed it.
type UDPTransport struct {
	conn    listeners.UdpConn
	handler application.FrameHandler
	logger  application.Logger

	closeOnce sync.Once
	closed    chan struct{}
}

// NewUDPTransport binds dest's local address, joining its multicast
// group when requested, tunes the kernel socket buffers, and starts the
// inbound read loop delivering datagrams to handler. The returned
// Transport owns conn for its lifetime; Close tears both down.
func NewUDPTransport(dest application.Destination, handler application.FrameHandler, logger application.Logger) (*UDPTransport, error) {
	conn, err := net.ListenUDP("udp", net.UDPAddrFromAddrPort(dest.Local()))
	if err != nil {
		return nil, fmt.Errorf("transport: listen %s: %w", dest.Local(), err)
	}

	if err := tuneSocket(conn, dest); err != nil {
		_ = conn.Close()
		return nil, err
	}

	t := &UDPTransport{
		conn:    conn,
		handler: handler,
		logger:  logger,
		closed:  make(chan struct{}),
	}
	go t.readLoop()
	return t, nil
}

func tuneSocket(conn *net.UDPConn, dest application.Destination) error {
	if err := conn.SetReadBuffer(settings.ReadBufferSize); err != nil {
		return fmt.Errorf("transport: set read buffer: %w", err)
	}
	if err := conn.SetWriteBuffer(settings.WriteBufferSize); err != nil {
		return fmt.Errorf("transport: set write buffer: %w", err)
	}

	if dest.Multicast() {
		pc := ipv4.NewPacketConn(conn)
		group := net.UDPAddrFromAddrPort(dest.Local())
		if err := pc.JoinGroup(nil, group); err != nil {
			return fmt.Errorf("transport: join multicast group %s: %w", dest.Local(), err)
		}
	}

	rawConn, err := conn.SyscallConn()
	if err != nil {
		return fmt.Errorf("transport: syscall conn: %w", err)
	}
	var ctrlErr error
	err = rawConn.Control(func(fd uintptr) {
		ctrlErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
	})
	if err != nil {
		return fmt.Errorf("transport: control socket: %w", err)
	}
	if ctrlErr != nil {
		return fmt.Errorf("transport: set SO_REUSEADDR: %w", ctrlErr)
	}
	return nil
}

func (t *UDPTransport) readLoop() {
	buf := make([]byte, settings.MaxDatagramSize)
	oob := make([]byte, settings.OOBBufferSize)
	for {
		n, _, _, src, err := t.conn.ReadMsgUDPAddrPort(buf, oob)
		if err != nil {
			select {
			case <-t.closed:
				return
			default:
			}
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				// a read deadline, if the caller set one on the underlying
				// conn, is routine and worth a quieter classification than
				// an unexpected socket error.
				t.logf("transport: %v", network.NewErrTimeout(err))
				continue
			}
			t.logf("transport: read error: %v", err)
			continue
		}
		t.dispatch(buf[:n], n, src)
	}
}

func (t *UDPTransport) dispatch(buf []byte, n int, src netip.AddrPort) {
	header, err := frame.WrapHeader(buf)
	if err != nil {
		t.logf("transport: dropping short datagram (%d bytes) from %s: %v", n, src, err)
		return
	}

	var dispatchErr error
	switch header.Type() {
	case frame.TypeData:
		dispatchErr = t.handler.OnDataFrame(buf, n, src)
	case frame.TypeSM:
		dispatchErr = t.handler.OnStatusMessageFrame(buf, n, src)
	case frame.TypeNak:
		dispatchErr = t.handler.OnNakFrame(buf, n, src)
	default:
		t.logf("transport: dropping frame of unknown type %d from %s", header.Type(), src)
		return
	}
	if dispatchErr != nil {
		t.logf("transport: frame handler error from %s: %v", src, dispatchErr)
	}
}

func (t *UDPTransport) logf(format string, v ...any) {
	if t.logger != nil {
		t.logger.Printf(format, v...)
	}
}

// SendTo writes buf to remote, reporting the number of bytes actually
// transmitted.
func (t *UDPTransport) SendTo(buf []byte, remote netip.AddrPort) (int, error) {
	return t.conn.WriteToUDPAddrPort(buf, remote)
}

// Close is idempotent: it stops the read loop and closes the socket.
func (t *UDPTransport) Close() error {
	var err error
	t.closeOnce.Do(func() {
		close(t.closed)
		err = t.conn.Close()
	})
	return err
}
