package config_test

import (
	"errors"
	"net/netip"
	"os"
	"path/filepath"
	"testing"

	"github.com/e1732a364fed/relaylist/config"
	"github.com/e1732a364fed/relaylist/netLayer"
	"github.com/e1732a364fed/relaylist/relay"
	"github.com/e1732a364fed/relaylist/utils"
)

const testTomlConfStr = `# this is a relaylist config

[app]
loglevel = 0
logfile = ""
geoip = "GeoLite2-Country.mmdb"

[source]
file = "relays.json"

[filter]
countries = ["se", "DE"]
tunnel = "wireguard"
include_in_country_only = true
exclude_cidr = ["185.213.154.0/24"]
`

func TestTomlConfig(t *testing.T) {
	conf, err := config.LoadTomlConfStr(testTomlConfStr)
	if err != nil {
		t.Fatal(err)
	}

	if conf.App == nil || conf.App.LogLevel == nil || *conf.App.LogLevel != 0 || conf.App.Geoip != "GeoLite2-Country.mmdb" {
		t.Fatal(conf.App)
	}
	if conf.App.LogFile == nil || *conf.App.LogFile != "" {
		t.Fatal("explicit empty logfile must be kept")
	}
	if conf.Source.File != "relays.json" {
		t.Fatal(conf.Source)
	}
	tt, err := conf.Filter.TunnelType()
	if err != nil || tt != relay.TunnelTypeWireguard {
		t.Fatal(tt, err)
	}
}

func TestTomlConfigFile(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "client.toml")
	if err := os.WriteFile(fn, []byte(testTomlConfStr), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := config.LoadTomlConfFile(fn); err != nil {
		t.Fatal(err)
	}
	if _, err := config.LoadTomlConfFile(fn + ".missing"); err == nil {
		t.Fatal("missing file accepted")
	}
}

func TestInvalidConfig(t *testing.T) {
	for _, bad := range []string{
		"[filter]\ncountries = [\"xx\"]\n",
		"[filter]\ntunnel = \"ipsec\"\n",
		"[filter]\ntunnel = \"openvpn\"\nbridges_only = true\n",
		"[filter]\nexclude_cidr = [\"10.0.0.0/40\"]\n",
		"[filter\n",
	} {
		if _, err := config.LoadTomlConfStr(bad); err == nil {
			t.Fatal("accepted", bad)
		} else {
			t.Log(err)
		}
	}

	_, err := config.LoadTomlConfStr("[filter]\ntunnel = \"ipsec\"\n")
	if !errors.Is(err, utils.ErrInvalidData) {
		t.Fatal(err)
	}
}

func testList() relay.RelayList {
	mk := func(host, addr string, inCountry bool, tunnels relay.RelayTunnels, bridges relay.RelayBridges) relay.Relay {
		return relay.Relay{
			Hostname:         host,
			Ipv4AddrIn:       netip.MustParseAddr(addr),
			IncludeInCountry: inCountry,
			Weight:           1,
			Tunnels:          tunnels,
			Bridges:          bridges,
		}
	}
	ovpn := relay.RelayTunnels{OpenVpn: []relay.OpenVpnEndpointData{{Port: 1194, Protocol: netLayer.UDP}}}
	wg := relay.RelayTunnels{Wireguard: []relay.WireguardEndpointData{{PortRanges: []relay.PortRange{{Low: 1, High: 2}}}}}
	ss := relay.RelayBridges{Shadowsocks: []relay.ShadowsocksEndpointData{{Port: 443, Cipher: "aes-256-gcm", Password: "p", Protocol: netLayer.TCP}}}

	return relay.RelayList{Countries: []relay.Country{
		{Name: "Sweden", Code: "se", Cities: []relay.City{
			{Name: "Gothenburg", Code: "got", Relays: []relay.Relay{
				mk("se-got-001", "185.213.154.66", true, wg, relay.RelayBridges{}),
				mk("se-got-002", "185.213.155.1", true, wg, relay.RelayBridges{}),
				mk("se-got-br-001", "185.213.155.2", false, relay.RelayTunnels{}, ss),
			}},
			{Name: "Stockholm", Code: "sto", Relays: []relay.Relay{
				mk("se-sto-001", "185.65.135.1", false, ovpn, relay.RelayBridges{}),
			}},
		}},
		{Name: "Norway", Code: "no", Cities: []relay.City{
			{Name: "Oslo", Code: "osl", Relays: []relay.Relay{
				mk("no-osl-001", "91.90.44.1", true, wg, relay.RelayBridges{}),
			}},
		}},
	}}
}

func hostnames(l relay.RelayList) (names []string) {
	for _, ref := range l.Relays() {
		names = append(names, ref.Relay.Hostname)
	}
	return
}

func TestPredicate(t *testing.T) {
	conf, err := config.LoadTomlConfStr(testTomlConfStr)
	if err != nil {
		t.Fatal(err)
	}
	keep, err := conf.Filter.Predicate()
	if err != nil {
		t.Fatal(err)
	}

	names := hostnames(testList().Filter(keep))
	//se-got-001 在 exclude_cidr 内, se-sto-001 不计入国家, no 不在 countries 内
	if len(names) != 1 || names[0] != "se-got-002" {
		t.Fatal(names)
	}

	var nilFilter *config.FilterConf
	all, err := nilFilter.Predicate()
	if err != nil || testList().Filter(all).Len() != 5 {
		t.Fatal("nil filter must keep everything")
	}

	bridges := &config.FilterConf{BridgesOnly: true}
	keep, _ = bridges.Predicate()
	if names := hostnames(testList().Filter(keep)); len(names) != 1 || names[0] != "se-got-br-001" {
		t.Fatal(names)
	}

	cities := &config.FilterConf{Cities: []string{"STO"}, Tunnel: "openvpn"}
	keep, _ = cities.Predicate()
	if names := hostnames(testList().Filter(keep)); len(names) != 1 || names[0] != "se-sto-001" {
		t.Fatal(names)
	}
}
