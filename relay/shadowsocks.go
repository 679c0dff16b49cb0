package relay

import (
	"fmt"
	"net/netip"

	"github.com/e1732a364fed/relaylist/netLayer"
	"github.com/e1732a364fed/relaylist/proxy/shadowsocks"
)

// ShadowsocksEndpointData describes one shadowsocks bridge on a relay. Comparable.
type ShadowsocksEndpointData struct {
	Port     uint16                     `json:"port"`
	Cipher   string                     `json:"cipher"`
	Password string                     `json:"password"`
	Protocol netLayer.TransportProtocol `json:"protocol"`
}

// ProxySettings 生成连接 bridge 所需的参数, peer 一般是 bridge relay 的 Ipv4AddrIn. 不会失败.
func (s ShadowsocksEndpointData) ProxySettings(peer netip.Addr) shadowsocks.Settings {
	return shadowsocks.Settings{
		Peer:     netip.AddrPortFrom(peer, s.Port),
		Password: s.Password,
		Cipher:   s.Cipher,
	}
}

// 密码不出现在诊断信息里
func (s ShadowsocksEndpointData) String() string {
	return fmt.Sprintf("shadowsocks %s port %d cipher %s", s.Protocol, s.Port, s.Cipher)
}

func (s *ShadowsocksEndpointData) UnmarshalJSON(b []byte) (err error) {
	o, err := decodeObject(b)
	if err != nil {
		return
	}

	var v ShadowsocksEndpointData
	if v.Port, err = field[uint16](o, "port"); err != nil {
		return
	}
	if v.Cipher, err = field[string](o, "cipher"); err != nil {
		return
	}
	if v.Password, err = field[string](o, "password"); err != nil {
		return
	}
	if v.Protocol, err = field[netLayer.TransportProtocol](o, "protocol"); err != nil {
		return
	}
	*s = v
	return
}
