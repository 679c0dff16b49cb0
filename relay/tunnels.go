package relay

import (
	"encoding/json"

	"golang.org/x/exp/slices"
)

// RelayTunnels 的两个数组在解码时都可以缺失, 缺失即为空; 但不能是 null.
type RelayTunnels struct {
	OpenVpn   []OpenVpnEndpointData   `json:"openvpn"`
	Wireguard []WireguardEndpointData `json:"wireguard"`
}

func (t RelayTunnels) IsEmpty() bool {
	return len(t.OpenVpn) == 0 && len(t.Wireguard) == 0
}

// Clear 只影响 t 本身, 之前取出的 descriptor 不受影响.
func (t *RelayTunnels) Clear() {
	t.OpenVpn = nil
	t.Wireguard = nil
}

func (t RelayTunnels) Clone() RelayTunnels {
	c := RelayTunnels{OpenVpn: slices.Clone(t.OpenVpn)}
	if len(t.Wireguard) > 0 {
		c.Wireguard = make([]WireguardEndpointData, len(t.Wireguard))
		for i, w := range t.Wireguard {
			c.Wireguard[i] = w.Clone()
		}
	}
	return c
}

func (t RelayTunnels) MarshalJSON() ([]byte, error) {
	type plain RelayTunnels
	t.OpenVpn = nonNil(t.OpenVpn)
	t.Wireguard = nonNil(t.Wireguard)
	return json.Marshal(plain(t))
}

func (t *RelayTunnels) UnmarshalJSON(b []byte) (err error) {
	o, err := decodeObject(b)
	if err != nil {
		return
	}

	var v RelayTunnels
	if v.OpenVpn, err = optionalListField[OpenVpnEndpointData](o, "openvpn"); err != nil {
		return
	}
	if v.Wireguard, err = optionalListField[WireguardEndpointData](o, "wireguard"); err != nil {
		return
	}
	*t = v
	return
}

// RelayBridges 同 RelayTunnels, 缺失即为空.
type RelayBridges struct {
	Shadowsocks []ShadowsocksEndpointData `json:"shadowsocks"`
}

func (b RelayBridges) IsEmpty() bool {
	return len(b.Shadowsocks) == 0
}

func (b *RelayBridges) Clear() {
	b.Shadowsocks = nil
}

func (b RelayBridges) Clone() RelayBridges {
	return RelayBridges{Shadowsocks: slices.Clone(b.Shadowsocks)}
}

func (b RelayBridges) MarshalJSON() ([]byte, error) {
	type plain RelayBridges
	b.Shadowsocks = nonNil(b.Shadowsocks)
	return json.Marshal(plain(b))
}

func (b *RelayBridges) UnmarshalJSON(data []byte) (err error) {
	o, err := decodeObject(data)
	if err != nil {
		return
	}

	var v RelayBridges
	if v.Shadowsocks, err = optionalListField[ShadowsocksEndpointData](o, "shadowsocks"); err != nil {
		return
	}
	*b = v
	return
}
