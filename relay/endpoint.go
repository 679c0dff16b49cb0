package relay

import (
	"net/netip"

	"github.com/e1732a364fed/relaylist/netLayer"
	"github.com/e1732a364fed/relaylist/wireguard"
)

type TunnelType uint8

const (
	TunnelTypeOpenVpn TunnelType = iota + 1
	TunnelTypeWireguard
)

func (t TunnelType) String() string {
	switch t {
	case TunnelTypeOpenVpn:
		return "openvpn"
	case TunnelTypeWireguard:
		return "wireguard"
	}
	return "unknown"
}

// TunnelEndpoint is what a tunnel descriptor converts into; switch on the concrete type
// (OpenVpnEndpoint, WireguardEndpoint) to get the protocol specific parameters.
type TunnelEndpoint interface {
	TunnelType() TunnelType
	String() string
}

type OpenVpnEndpoint struct {
	netLayer.Endpoint
}

func (OpenVpnEndpoint) TunnelType() TunnelType {
	return TunnelTypeOpenVpn
}

func (e OpenVpnEndpoint) String() string {
	return "openvpn " + e.Endpoint.String()
}

// WireguardEndpoint 总是 udp.
type WireguardEndpoint struct {
	Peer        netip.AddrPort
	Ipv4Gateway netip.Addr
	Ipv6Gateway netip.Addr
	PublicKey   wireguard.PublicKey
}

func (WireguardEndpoint) TunnelType() TunnelType {
	return TunnelTypeWireguard
}

func (e WireguardEndpoint) Endpoint() netLayer.Endpoint {
	return netLayer.Endpoint{Address: e.Peer, Protocol: netLayer.UDP}
}

func (e WireguardEndpoint) String() string {
	return "wireguard " + e.Endpoint().String() + " public_key " + e.PublicKey.String()
}
