/*
Package relay models the relay list a VPN client receives from its server: a catalog of countries,
cities and relays, where every relay carries zero or more OpenVPN / WireGuard tunnel descriptors and
Shadowsocks bridge descriptors.

# Catalog

RelayList -> Country -> City -> Relay 是一棵严格的树, 没有共享或循环引用。
一个 RelayList 被解码出来后 就当作不可变快照使用; 列表更新时整体替换 (见 Store), 而不是原地修改.

线上格式 (json):

	{ "countries": [ { "name", "code", "cities": [ { "name", "code", "latitude", "longitude",
	  "relays": [ { "hostname", "ipv4_addr_in", "include_in_country", "weight",
	  "tunnels"?: { "openvpn": [..], "wireguard": [..] }, "bridges"?: { "shadowsocks": [..] } } ] } ] } ] }

tunnels 与 bridges 为空时 编码时直接省略, 解码时缺失则为空. Relay.Location 只在运行时附加, 永远不会被编码.

解码是全有或全无的: 任何字段出错都返回 *DecodeError, 不会返回半个列表.

# Descriptors

每种协议的 descriptor 只保存拨号所需的字段, relay 自己的地址由调用者传入:

	OpenVpnEndpointData.TunnelEndpoint(host)      -> OpenVpnEndpoint
	ShadowsocksEndpointData.ProxySettings(peer)   -> shadowsocks.Settings
	WireguardEndpointData 由调用者自行挑选端口, 见 TunnelEndpoint(host, port)

这些转换都是纯函数, 不做握手.
*/
package relay
