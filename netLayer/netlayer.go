/*
Package netLayer contains definitions in network layer AND transport layer.

本包有 传输层协议, Endpoint, geoip 查询 和 cidr 匹配 等相关功能。

relay list 里出现的地址都是 ip, 所以本包只处理 netip.Addr, 不做域名解析.
*/
package netLayer
