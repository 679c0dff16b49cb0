package relay

import (
	"encoding/json"
	"fmt"
	"net/netip"
	"strings"

	"github.com/e1732a364fed/relaylist/utils"
	"github.com/e1732a364fed/relaylist/wireguard"
	"golang.org/x/exp/slices"
)

// PortRange 是闭区间 [Low, High], 线上格式为 [low, high]
type PortRange struct {
	Low, High uint16
}

func (r PortRange) Contains(port uint16) bool {
	return r.Low <= port && port <= r.High
}

// Len 是区间内端口的个数
func (r PortRange) Len() int {
	if r.High < r.Low {
		return 0
	}
	return int(r.High) - int(r.Low) + 1
}

func (r PortRange) String() string {
	return fmt.Sprintf("[%d - %d]", r.Low, r.High)
}

func (r PortRange) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]uint16{r.Low, r.High})
}

// low > high 的区间在解码时直接拒绝.
// 用指针接收, 否则 null 元素会被 encoding/json 当成 0
func (r *PortRange) UnmarshalJSON(b []byte) error {
	var pair []*uint16
	if err := json.Unmarshal(b, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return utils.ErrInErr{ErrDesc: "port range must have exactly two ports", ErrDetail: ErrInvalidPortRange, Data: len(pair)}
	}
	if pair[0] == nil || pair[1] == nil {
		return utils.ErrInErr{ErrDesc: "port range can't contain null", ErrDetail: ErrInvalidPortRange, Data: string(b)}
	}
	low, high := *pair[0], *pair[1]
	if low > high {
		return utils.ErrInErr{ErrDesc: "port range low > high", ErrDetail: ErrInvalidPortRange, Data: fmt.Sprint([2]uint16{low, high})}
	}
	r.Low, r.High = low, high
	return nil
}

// WireguardEndpointData describes one WireGuard gateway of a relay.
//
// Not comparable because of PortRanges, use Equal.
type WireguardEndpointData struct {
	// ports the relay listens on, inclusive ranges
	PortRanges []PortRange `json:"port_ranges"`

	// gateways to be used inside the tunnel
	Ipv4Gateway netip.Addr `json:"ipv4_gateway"`
	Ipv6Gateway netip.Addr `json:"ipv6_gateway"`

	PublicKey wireguard.PublicKey `json:"public_key"`
}

func (w WireguardEndpointData) Equal(o WireguardEndpointData) bool {
	return w.Ipv4Gateway == o.Ipv4Gateway &&
		w.Ipv6Gateway == o.Ipv6Gateway &&
		w.PublicKey == o.PublicKey &&
		slices.Equal(w.PortRanges, o.PortRanges)
}

func (w WireguardEndpointData) Clone() WireguardEndpointData {
	w.PortRanges = slices.Clone(w.PortRanges)
	return w
}

func (w WireguardEndpointData) ContainsPort(port uint16) bool {
	return slices.IndexFunc(w.PortRanges, func(r PortRange) bool { return r.Contains(port) }) >= 0
}

// TunnelEndpoint 需要调用者先从 PortRanges 中选好端口; 端口不在任何区间内则返回 ErrPortOutOfRange.
func (w WireguardEndpointData) TunnelEndpoint(host netip.Addr, port uint16) (WireguardEndpoint, error) {
	if !w.ContainsPort(port) {
		return WireguardEndpoint{}, utils.ErrInErr{ErrDesc: "wireguard endpoint", ErrDetail: ErrPortOutOfRange, Data: port}
	}
	return WireguardEndpoint{
		Peer:        netip.AddrPortFrom(host, port),
		Ipv4Gateway: w.Ipv4Gateway,
		Ipv6Gateway: w.Ipv6Gateway,
		PublicKey:   w.PublicKey,
	}, nil
}

// 如 gateways 10.64.0.1 - fc00:bbbb:bbbb:bb01::1 port_ranges { [53 - 53],[4000 - 33433] } public_key xxx=
func (w WireguardEndpointData) String() string {
	ranges := make([]string, len(w.PortRanges))
	for i, r := range w.PortRanges {
		ranges[i] = r.String()
	}
	return fmt.Sprintf("gateways %s - %s port_ranges { %s } public_key %s",
		w.Ipv4Gateway, w.Ipv6Gateway, strings.Join(ranges, ","), w.PublicKey)
}

func (w WireguardEndpointData) MarshalJSON() ([]byte, error) {
	if !w.Ipv4Gateway.Is4() || !w.Ipv6Gateway.Is6() {
		return nil, utils.ErrInErr{ErrDesc: "wireguard gateways", ErrDetail: ErrInvalidAddress, Data: w.Ipv4Gateway.String() + " - " + w.Ipv6Gateway.String()}
	}
	type plain WireguardEndpointData
	w.PortRanges = nonNil(w.PortRanges)
	return json.Marshal(plain(w))
}

func (w *WireguardEndpointData) UnmarshalJSON(b []byte) (err error) {
	o, err := decodeObject(b)
	if err != nil {
		return
	}

	var v WireguardEndpointData
	if v.PortRanges, err = listField[PortRange](o, "port_ranges"); err != nil {
		return
	}

	var s string
	if s, err = field[string](o, "ipv4_gateway"); err != nil {
		return
	}
	if v.Ipv4Gateway, err = parseIPv4(s, "ipv4_gateway"); err != nil {
		return
	}
	if s, err = field[string](o, "ipv6_gateway"); err != nil {
		return
	}
	if v.Ipv6Gateway, err = parseIPv6(s, "ipv6_gateway"); err != nil {
		return
	}

	if v.PublicKey, err = field[wireguard.PublicKey](o, "public_key"); err != nil {
		return
	}
	*w = v
	return
}
