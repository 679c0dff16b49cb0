package relay_test

import (
	"net/netip"
	"testing"

	"github.com/e1732a364fed/relaylist/relay"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

const (
	testKey1 = "veGD6/aEY6sMfN3Ls7YWPmNgu3AheO7nQqsFT47YSws="
	testKey2 = "/iivwlyqWqxQ0BVWmJRhcXIFdJeo0WbHQ/hZwuXaN3g="
)

// 两个国家, 三个 relay: 一个 openvpn+wireguard, 一个只有 bridge, 一个只有 wireguard 且缺少 openvpn 字段
const testRelayListStr = `{
  "countries": [
    {
      "name": "Sweden",
      "code": "se",
      "cities": [
        {
          "name": "Gothenburg",
          "code": "got",
          "latitude": 57.70887,
          "longitude": 11.97456,
          "relays": [
            {
              "hostname": "se-got-001",
              "ipv4_addr_in": "185.213.154.66",
              "include_in_country": true,
              "weight": 100,
              "tunnels": {
                "openvpn": [
                  { "port": 1194, "protocol": "udp" },
                  { "port": 443, "protocol": "tcp" }
                ],
                "wireguard": [
                  {
                    "port_ranges": [[53, 53], [4000, 33433]],
                    "ipv4_gateway": "10.64.0.1",
                    "ipv6_gateway": "fc00:bbbb:bbbb:bb01::1",
                    "public_key": "` + testKey1 + `"
                  }
                ]
              }
            },
            {
              "hostname": "se-got-br-001",
              "ipv4_addr_in": "185.213.154.80",
              "include_in_country": false,
              "weight": 1,
              "bridges": {
                "shadowsocks": [
                  { "port": 443, "cipher": "aes-256-gcm", "password": "mullvad", "protocol": "tcp" }
                ]
              }
            }
          ]
        }
      ]
    },
    {
      "name": "Germany",
      "code": "de",
      "cities": [
        {
          "name": "Frankfurt",
          "code": "fra",
          "latitude": 50.110924,
          "longitude": 8.682127,
          "relays": [
            {
              "hostname": "de-fra-wg-001",
              "ipv4_addr_in": "185.209.196.70",
              "include_in_country": true,
              "weight": 50,
              "owned": true,
              "tunnels": {
                "wireguard": [
                  {
                    "port_ranges": [[51820, 51820]],
                    "ipv4_gateway": "10.64.0.1",
                    "ipv6_gateway": "fc00:bbbb:bbbb:bb01::1",
                    "public_key": "` + testKey2 + `"
                  }
                ]
              }
            }
          ]
        }
      ]
    }
  ]
}`

var cmpOpts = []cmp.Option{
	cmp.Comparer(func(a, b netip.Addr) bool { return a == b }),
	cmpopts.EquateEmpty(),
}

func mustParse(t *testing.T, s string) relay.RelayList {
	t.Helper()
	l, err := relay.Parse([]byte(s))
	if err != nil {
		t.Fatal("parse failed", err)
	}
	return l
}
