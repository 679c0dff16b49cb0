package relay

import (
	"fmt"
	"net/netip"

	"github.com/e1732a364fed/relaylist/netLayer"
)

// OpenVpnEndpointData is comparable and can be used as a map key.
type OpenVpnEndpointData struct {
	Port     uint16                     `json:"port"`
	Protocol netLayer.TransportProtocol `json:"protocol"`
}

// TunnelEndpoint never fails; host is usually Relay.Ipv4AddrIn.
func (o OpenVpnEndpointData) TunnelEndpoint(host netip.Addr) OpenVpnEndpoint {
	return OpenVpnEndpoint{netLayer.NewEndpoint(host, o.Port, o.Protocol)}
}

// 如 UDP port 1194
func (o OpenVpnEndpointData) String() string {
	return fmt.Sprintf("%s port %d", o.Protocol, o.Port)
}

func (o *OpenVpnEndpointData) UnmarshalJSON(b []byte) (err error) {
	obj, err := decodeObject(b)
	if err != nil {
		return
	}

	var v OpenVpnEndpointData
	if v.Port, err = field[uint16](obj, "port"); err != nil {
		return
	}
	if v.Protocol, err = field[netLayer.TransportProtocol](obj, "protocol"); err != nil {
		return
	}
	*o = v
	return
}
