package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/e1732a364fed/relaylist/config"
	"github.com/e1732a364fed/relaylist/relay"
	"github.com/e1732a364fed/relaylist/utils"
)

const testRelayListStr = `{"countries":[{"name":"Sweden","code":"se","cities":[
 {"name":"Gothenburg","code":"got","latitude":57.70887,"longitude":11.97456,"relays":[
  {"hostname":"se-got-001","ipv4_addr_in":"185.213.154.66","include_in_country":true,"weight":100,
   "tunnels":{"openvpn":[{"port":1194,"protocol":"udp"}],
    "wireguard":[{"port_ranges":[[53,53]],"ipv4_gateway":"10.64.0.1","ipv6_gateway":"fc00:bbbb:bbbb:bb01::1","public_key":"veGD6/aEY6sMfN3Ls7YWPmNgu3AheO7nQqsFT47YSws="}]}},
  {"hostname":"se-got-br-001","ipv4_addr_in":"185.213.154.80","include_in_country":false,"weight":1,
   "bridges":{"shadowsocks":[{"port":443,"cipher":"aes-256-gcm","password":"mullvad","protocol":"tcp"}]}}
 ]}]}]}`

func setupRelayFile(t *testing.T, content string) {
	fn := filepath.Join(t.TempDir(), "relays.json")
	if err := os.WriteFile(fn, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	oldFn, oldConf := relayFileName, standardConf
	relayFileName = fn
	standardConf = config.Standard{}
	t.Cleanup(func() {
		relayFileName, standardConf = oldFn, oldConf
	})
}

func run(t *testing.T, args ...string) string {
	var buf bytes.Buffer
	if err := runCommand(&buf, args); err != nil {
		t.Fatal(args, err)
	}
	return buf.String()
}

func TestCheckAndRoundTrip(t *testing.T) {
	setupRelayFile(t, testRelayListStr)

	out := run(t, "check")
	t.Log(out)
	if !strings.Contains(out, "relays: 2\n") || !strings.Contains(out, "shadowsocks: 1\n") {
		t.Fatal(out)
	}
	if strings.Contains(out, "warning") {
		t.Fatal("unexpected warning", out)
	}

	out = run(t, "roundtrip")
	if !strings.HasPrefix(out, "roundtrip ok, 2 relays") {
		t.Fatal(out)
	}
}

func TestListAndShow(t *testing.T) {
	setupRelayFile(t, testRelayListStr)

	out := run(t, "list")
	t.Log(out)
	if !strings.Contains(out, "Sweden (se)") || !strings.Contains(out, "se-got-001 (185.213.154.66)\topenvpn,wireguard") {
		t.Fatal(out)
	}
	if relayStore.Load().Len() != 2 {
		t.Fatal("store not replaced")
	}

	out = run(t, "show", "se-got-br-001")
	t.Log(out)
	if !strings.Contains(out, "location: Gothenburg, Sweden") ||
		!strings.Contains(out, "-> shadowsocks://aes-256-gcm@185.213.154.80:443") {
		t.Fatal(out)
	}
	if strings.Contains(out, "mullvad") {
		t.Fatal("password printed")
	}

	out = run(t, "show", "se-got-001")
	if !strings.Contains(out, "-> openvpn 185.213.154.66:1194/UDP") || !strings.Contains(out, "-> wireguard 185.213.154.66:53/UDP") {
		t.Fatal(out)
	}

	var buf bytes.Buffer
	if err := runCommand(&buf, []string{"show", "nope"}); !errors.Is(err, utils.ErrInvalidData) {
		t.Fatal(err)
	}
}

func TestFilteredList(t *testing.T) {
	setupRelayFile(t, testRelayListStr)
	conf, err := config.LoadTomlConfStr("[filter]\nbridges_only = true\n")
	if err != nil {
		t.Fatal(err)
	}
	standardConf = *conf

	out := run(t, "list")
	if strings.Contains(out, "se-got-001") || !strings.Contains(out, "se-got-br-001") {
		t.Fatal(out)
	}
}

func TestEmpty(t *testing.T) {
	l, err := relay.Parse([]byte(run(t, "empty")))
	if err != nil || l.Countries == nil || l.Len() != 0 {
		t.Fatal(l, err)
	}

	fn := filepath.Join(t.TempDir(), "empty.json")
	run(t, "empty", fn)
	back, err := relay.LoadFile(fn)
	if err != nil || back.Len() != 0 {
		t.Fatal(err)
	}
}

func TestBadInput(t *testing.T) {
	setupRelayFile(t, `{"countries":[{"name":"Sweden","code":"se"}]}`)

	var buf bytes.Buffer
	if err := runCommand(&buf, []string{"check"}); !errors.Is(err, relay.ErrDecode) {
		t.Fatal(err)
	}
	if err := runCommand(&buf, []string{"roundtrip"}); !errors.Is(err, relay.ErrMissingField) {
		t.Fatal(err)
	}
	if err := runCommand(&buf, []string{"nope"}); !errors.Is(err, utils.ErrWrongParameter) {
		t.Fatal(err)
	}
	if err := runCommand(&buf, []string{"show"}); err == nil {
		t.Fatal("show without hostname")
	}
}

func TestParsePeer(t *testing.T) {
	if a, err := parsePeer("198.51.100.5"); err != nil || a.String() != "198.51.100.5" {
		t.Fatal(a, err)
	}
	for _, bad := range []string{"", "::1", "example.com", "1.2.3"} {
		if _, err := parsePeer(bad); err == nil {
			t.Fatal("accepted", bad)
		}
	}
}
