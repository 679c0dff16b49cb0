// Package wireguard holds the WireGuard key types that appear in the relay list.
package wireguard

import (
	"errors"

	"github.com/e1732a364fed/relaylist/utils"
	"golang.zx2c4.com/wireguard/wgctrl/wgtypes"
)

const KeyLen = wgtypes.KeyLen

var ErrInvalidKey = errors.New("invalid wireguard key")

// PublicKey is a peer's curve25519 public key. 文本形式为标准 base64, 44 字节
type PublicKey [KeyLen]byte

func ParsePublicKey(s string) (PublicKey, error) {
	k, err := wgtypes.ParseKey(s)
	if err != nil {
		return PublicKey{}, utils.ErrInErr{ErrDesc: "parse wireguard public key", ErrDetail: ErrInvalidKey, Data: err.Error()}
	}
	return PublicKey(k), nil
}

func PublicKeyFromBytes(bs []byte) (PublicKey, error) {
	k, err := wgtypes.NewKey(bs)
	if err != nil {
		return PublicKey{}, utils.ErrInErr{ErrDesc: "wireguard public key from bytes", ErrDetail: ErrInvalidKey, Data: len(bs)}
	}
	return PublicKey(k), nil
}

func (k PublicKey) String() string {
	return wgtypes.Key(k).String()
}

func (k PublicKey) IsZero() bool {
	return k == PublicKey{}
}

func (k PublicKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *PublicKey) UnmarshalText(b []byte) error {
	pk, err := ParsePublicKey(string(b))
	if err != nil {
		return err
	}
	*k = pk
	return nil
}

// PrivateKey 只在客户端使用, relay list 里不会出现
type PrivateKey [KeyLen]byte

func GeneratePrivateKey() (PrivateKey, error) {
	k, err := wgtypes.GeneratePrivateKey()
	if err != nil {
		return PrivateKey{}, err
	}
	return PrivateKey(k), nil
}

func (k PrivateKey) PublicKey() PublicKey {
	return PublicKey(wgtypes.Key(k).PublicKey())
}

// String 不输出私钥本身
func (k PrivateKey) String() string {
	return "(private key of " + k.PublicKey().String() + ")"
}
