package wireguard_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/e1732a364fed/relaylist/wireguard"
)

const testKey = "veGD6/aEY6sMfN3Ls7YWPmNgu3AheO7nQqsFT47YSws="

func TestParsePublicKey(t *testing.T) {
	k, err := wireguard.ParsePublicKey(testKey)
	if err != nil {
		t.Fatal(err)
	}
	if k.String() != testKey || k.IsZero() {
		t.Fatal(k.String())
	}

	for _, bad := range []string{"", "abc", "veGD6/aEY6sMfN3Ls7YWPmNgu3AheO7nQqsFT47YSw=", "!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!="} {
		if _, err := wireguard.ParsePublicKey(bad); !errors.Is(err, wireguard.ErrInvalidKey) {
			t.Fatal("accepted", bad, err)
		}
	}

	if _, err := wireguard.PublicKeyFromBytes(make([]byte, 31)); !errors.Is(err, wireguard.ErrInvalidKey) {
		t.Fatal("short key accepted")
	}
}

func TestPublicKeyJSON(t *testing.T) {
	var s struct {
		K wireguard.PublicKey `json:"public_key"`
	}
	if err := json.Unmarshal([]byte(`{"public_key":"`+testKey+`"}`), &s); err != nil {
		t.Fatal(err)
	}
	bs, err := json.Marshal(s)
	if err != nil || string(bs) != `{"public_key":"`+testKey+`"}` {
		t.Fatal(string(bs), err)
	}
	if err := json.Unmarshal([]byte(`{"public_key":"nope"}`), &s); !errors.Is(err, wireguard.ErrInvalidKey) {
		t.Fatal(err)
	}
}

func TestPrivateKey(t *testing.T) {
	priv, err := wireguard.GeneratePrivateKey()
	if err != nil {
		t.Fatal(err)
	}
	pub := priv.PublicKey()
	if pub.IsZero() {
		t.Fatal("zero public key")
	}
	again, err := wireguard.ParsePublicKey(pub.String())
	if err != nil || again != pub {
		t.Fatal(err)
	}
	t.Log(priv)
}
