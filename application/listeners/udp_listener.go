// Package listeners declares the narrow socket contract the receive path
// depends on, so the UDP transport can be exercised against a fake in
// tests without opening a real socket.
package listeners

import "net/netip"

// UdpConn is the subset of *net.UDPConn the receive path needs: reading
// one datagram with its source address, and writing one datagram to an
// arbitrary destination.
type UdpConn interface {
	Close() error
	ReadMsgUDPAddrPort(b, oob []byte) (n, oobn, flags int, addr netip.AddrPort, err error)
	SetReadBuffer(size int) error
	SetWriteBuffer(size int) error
	WriteToUDPAddrPort(data []byte, addr netip.AddrPort) (int, error)
}
