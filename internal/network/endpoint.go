// internal/network/endpoint.go
//
// Peer endpoint and topology value types.
//
// Context
// -------
// A topology is the named group of peers this process connects to.  Both
// types are plain values.  Once the loader returns them nothing in the
// process writes to them again, so readers never need a lock.
package network

import (
	"net/netip"
	"slices"
)

// Endpoint is one remote node: an IPv4 address and a TCP port.
type Endpoint struct {
	Addr netip.Addr
	Port uint16
}

// NewEndpoint builds an Endpoint from a parsed address and port.
func NewEndpoint(addr netip.Addr, port uint16) Endpoint {
	return Endpoint{Addr: addr, Port: port}
}

// AddrPort returns the endpoint as a netip.AddrPort for dialers.
func (e Endpoint) AddrPort() netip.AddrPort {
	return netip.AddrPortFrom(e.Addr, e.Port)
}

// String renders "a.b.c.d:port".
func (e Endpoint) String() string {
	return e.AddrPort().String()
}

// Topology is the network name plus its peers in file order.  Duplicate
// peers are kept.
type Topology struct {
	Name  string
	Peers []Endpoint
}

// Clone returns a deep copy so callers cannot reach the original slice.
func (t Topology) Clone() Topology {
	return Topology{Name: t.Name, Peers: slices.Clone(t.Peers)}
}
