package netLayer

import (
	"errors"
	"strings"

	"github.com/e1732a364fed/relaylist/utils"
)

var ErrInvalidTransportProtocol = errors.New("invalid transport protocol")

// TransportProtocol 传输层协议. relay list 中只会出现 tcp 和 udp
type TransportProtocol uint16

const (
	TCP TransportProtocol = 1 << iota
	UDP
)

// ParseTransportProtocol 不区分大小写.
func ParseTransportProtocol(s string) (TransportProtocol, error) {
	switch strings.ToLower(s) {
	case "tcp":
		return TCP, nil
	case "udp":
		return UDP, nil
	}
	return 0, utils.ErrInErr{ErrDesc: "parse transport protocol", ErrDetail: ErrInvalidTransportProtocol, Data: s}
}

// String is the display form, "TCP" or "UDP".
func (p TransportProtocol) String() string {
	switch p {
	case TCP:
		return "TCP"
	case UDP:
		return "UDP"
	}
	return "unknown"
}

// Network 返回 net.Dial 所用的 network 名称
func (p TransportProtocol) Network() string {
	switch p {
	case TCP:
		return "tcp"
	case UDP:
		return "udp"
	}
	return ""
}

func (p TransportProtocol) IsValid() bool {
	return p == TCP || p == UDP
}

// 线上格式固定为小写 "tcp"/"udp"
func (p TransportProtocol) MarshalText() ([]byte, error) {
	if !p.IsValid() {
		return nil, utils.ErrInErr{ErrDesc: "marshal transport protocol", ErrDetail: ErrInvalidTransportProtocol, Data: uint16(p)}
	}
	return []byte(p.Network()), nil
}

// 线上格式严格小写, 与 ParseTransportProtocol 不同
func (p *TransportProtocol) UnmarshalText(b []byte) error {
	switch string(b) {
	case "tcp":
		*p = TCP
	case "udp":
		*p = UDP
	default:
		return utils.ErrInErr{ErrDesc: "unmarshal transport protocol", ErrDetail: ErrInvalidTransportProtocol, Data: string(b)}
	}
	return nil
}
