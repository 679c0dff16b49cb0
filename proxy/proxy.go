// Package proxy defines the proxy settings a relay bridge descriptor turns into.
//
// 每一种桥接协议都在自己的子包里实现 Settings, 目前只有 shadowsocks.
package proxy

import (
	"net/netip"
)

// Settings 是一个带标签的联合类型, 用 Name 区分具体协议.
// 连接层拿到 Settings 后自行 type switch.
type Settings interface {
	Name() string

	// PeerAddr is the bridge server the connection layer dials.
	PeerAddr() netip.AddrPort

	String() string
}
