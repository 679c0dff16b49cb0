package relay

import (
	"encoding/json"
	"net/netip"

	"github.com/e1732a364fed/relaylist/utils"
)

type Relay struct {
	Hostname   string
	Ipv4AddrIn netip.Addr

	// 是否计入所在国家的 relay 集合, 由外部的 selector 解释
	IncludeInCountry bool

	// 选择权重, 由外部的 selector 解释
	Weight uint64

	Tunnels RelayTunnels
	Bridges RelayBridges

	// 运行时由 geo 组件附加, 从不编码; 解码后总是 nil
	Location *Location
}

// 线上格式. Location 不在其中
type relayWire struct {
	Hostname         string        `json:"hostname"`
	Ipv4AddrIn       netip.Addr    `json:"ipv4_addr_in"`
	IncludeInCountry bool          `json:"include_in_country"`
	Weight           uint64        `json:"weight"`
	Tunnels          *RelayTunnels `json:"tunnels,omitempty"`
	Bridges          *RelayBridges `json:"bridges,omitempty"`
}

func (r Relay) String() string {
	return r.Hostname + " (" + r.Ipv4AddrIn.String() + ")"
}

func (r Relay) Clone() Relay {
	r.Tunnels = r.Tunnels.Clone()
	r.Bridges = r.Bridges.Clone()
	if r.Location != nil {
		l := *r.Location
		r.Location = &l
	}
	return r
}

// 是否至少有一个该类型的 tunnel
func (r Relay) HasTunnel(t TunnelType) bool {
	switch t {
	case TunnelTypeOpenVpn:
		return len(r.Tunnels.OpenVpn) > 0
	case TunnelTypeWireguard:
		return len(r.Tunnels.Wireguard) > 0
	}
	return false
}

// OpenVpnEndpoints converts every OpenVPN descriptor against the relay's own address.
func (r Relay) OpenVpnEndpoints() []OpenVpnEndpoint {
	eps := make([]OpenVpnEndpoint, len(r.Tunnels.OpenVpn))
	for i, o := range r.Tunnels.OpenVpn {
		eps[i] = o.TunnelEndpoint(r.Ipv4AddrIn)
	}
	return eps
}

func (r Relay) MarshalJSON() ([]byte, error) {
	if !r.Ipv4AddrIn.Is4() {
		return nil, utils.ErrInErr{ErrDesc: "relay " + r.Hostname + " ipv4_addr_in", ErrDetail: ErrInvalidAddress, Data: r.Ipv4AddrIn.String()}
	}

	w := relayWire{
		Hostname:         r.Hostname,
		Ipv4AddrIn:       r.Ipv4AddrIn,
		IncludeInCountry: r.IncludeInCountry,
		Weight:           r.Weight,
	}

	//空的 tunnels / bridges 不输出
	if !r.Tunnels.IsEmpty() {
		w.Tunnels = &r.Tunnels
	}
	if !r.Bridges.IsEmpty() {
		w.Bridges = &r.Bridges
	}
	return json.Marshal(w)
}

func (r *Relay) UnmarshalJSON(b []byte) (err error) {
	o, err := decodeObject(b)
	if err != nil {
		return
	}

	var v Relay
	if v.Hostname, err = field[string](o, "hostname"); err != nil {
		return
	}

	// 下面的错误都带上 hostname
	defer func() {
		if err != nil {
			err = inField("relay "+v.Hostname, err)
		}
	}()

	var addr string
	if addr, err = field[string](o, "ipv4_addr_in"); err != nil {
		return
	}
	if v.Ipv4AddrIn, err = parseIPv4(addr, "ipv4_addr_in"); err != nil {
		return
	}
	if v.IncludeInCountry, err = field[bool](o, "include_in_country"); err != nil {
		return
	}
	if v.Weight, err = field[uint64](o, "weight"); err != nil {
		return
	}

	//缺失时得到空的 RelayTunnels / RelayBridges, null 则是错误
	if v.Tunnels, err = optionalField[RelayTunnels](o, "tunnels"); err != nil {
		return
	}
	if v.Bridges, err = optionalField[RelayBridges](o, "bridges"); err != nil {
		return
	}

	v.Location = nil
	*r = v
	return
}
