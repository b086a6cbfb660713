package application

import "net/netip"

// Destination is the immutable identity of one bound UDP endpoint: the
// remote address datagrams arrive from (or are replied to), the local
// address the endpoint is bound to, and whether the endpoint joined a
// multicast group.
type Destination struct {
	remote    netip.AddrPort
	local     netip.AddrPort
	multicast bool
}

// NewDestination constructs a Destination. remote may be the zero value
// for a destination that has not yet observed any traffic.
func NewDestination(remote, local netip.AddrPort, multicast bool) Destination {
	return Destination{remote: remote, local: local, multicast: multicast}
}

func (d Destination) Remote() netip.AddrPort { return d.remote }
func (d Destination) Local() netip.AddrPort  { return d.local }
func (d Destination) Multicast() bool        { return d.multicast }

// WithRemote returns a copy of d bound to a newly observed remote
// address; Destination itself stays immutable.
func (d Destination) WithRemote(remote netip.AddrPort) Destination {
	d.remote = remote
	return d
}
