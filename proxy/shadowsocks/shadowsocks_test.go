package shadowsocks_test

import (
	"errors"
	"net/netip"
	"testing"

	"github.com/e1732a364fed/relaylist/proxy"
	"github.com/e1732a364fed/relaylist/proxy/shadowsocks"
)

func TestSettings(t *testing.T) {
	var s proxy.Settings = shadowsocks.Settings{
		Peer:     netip.MustParseAddrPort("198.51.100.5:8388"),
		Password: "secret",
		Cipher:   "aes-256-gcm",
	}

	if s.Name() != shadowsocks.Name {
		t.Fatal(s.Name())
	}
	if s.PeerAddr().String() != "198.51.100.5:8388" {
		t.Fatal(s.PeerAddr())
	}
	if s.String() != "shadowsocks://aes-256-gcm@198.51.100.5:8388" {
		t.Fatal(s.String())
	}
}

func TestPickCipher(t *testing.T) {
	for _, name := range []string{"aes-256-gcm", "chacha20-ietf-poly1305", "aes-256-cfb", "chacha20"} {
		c, err := shadowsocks.Settings{Cipher: name, Password: "secret"}.PickCipher()
		if err != nil || c == nil {
			t.Fatal(name, err)
		}
		if !shadowsocks.SupportedCipher(name) {
			t.Fatal("should be supported", name)
		}
	}

	_, err := shadowsocks.Settings{Cipher: "rot13", Password: "secret"}.PickCipher()
	if !errors.Is(err, shadowsocks.ErrUnsupportedCipher) {
		t.Fatal("rot13 accepted", err)
	}
	if shadowsocks.SupportedCipher("rot13") || shadowsocks.SupportedCipher("") {
		t.Fatal("rot13 supported?")
	}

	if _, err := (shadowsocks.Settings{Cipher: "aes-256-gcm"}).PickCipher(); err == nil {
		t.Fatal("empty password accepted")
	}
}
