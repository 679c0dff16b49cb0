package netLayer

import (
	"net/netip"
)

// Endpoint 完整地表示了一个 可拨号的传输层目标: ip, port 与 传输层协议.
// 与域名无关, relay 的地址在 relay list 中总是ip
type Endpoint struct {
	Address  netip.AddrPort
	Protocol TransportProtocol
}

func NewEndpoint(host netip.Addr, port uint16, protocol TransportProtocol) Endpoint {
	return Endpoint{
		Address:  netip.AddrPortFrom(host, port),
		Protocol: protocol,
	}
}

// Network returns the name used by net.Dial, "tcp" or "udp".
func (e Endpoint) Network() string {
	return e.Protocol.Network()
}

func (e Endpoint) Port() uint16 {
	return e.Address.Port()
}

func (e Endpoint) Host() netip.Addr {
	return e.Address.Addr()
}

// 如 1.2.3.4:443/TCP, [::1]:53/UDP
func (e Endpoint) String() string {
	return e.Address.String() + "/" + e.Protocol.String()
}
