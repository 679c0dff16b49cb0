/*
Package shadowsocks implements the shadowsocks bridge proxy settings.

Reference

https://github.com/shadowsocks/shadowsocks-org/wiki/Protocol

https://github.com/shadowsocks/shadowsocks-org/wiki/AEAD-Ciphers

relay list 里的 cipher 既可能是 AEAD (如 aes-256-gcm), 也可能是老的流加密 (如 aes-256-cfb, chacha20)。
流加密由 shadowsocks-go 提供, AEAD 由 go-shadowsocks2 提供; 先试前者, 再试后者.

本包只生成参数, 不做握手.
*/
package shadowsocks

import (
	"errors"
	"net"
	"net/netip"
	"strings"

	"github.com/e1732a364fed/relaylist/utils"
	"github.com/shadowsocks/go-shadowsocks2/core"
	ss "github.com/shadowsocks/shadowsocks-go/shadowsocks"
	"go.uber.org/zap"
)

const Name = "shadowsocks"

var ErrUnsupportedCipher = errors.New("unsupported shadowsocks cipher")

// Settings implements proxy.Settings.
type Settings struct {
	Peer     netip.AddrPort
	Password string
	Cipher   string
}

func (s Settings) Name() string {
	return Name
}

func (s Settings) PeerAddr() netip.AddrPort {
	return s.Peer
}

// 不打印密码
func (s Settings) String() string {
	return Name + "://" + s.Cipher + "@" + s.Peer.String()
}

// PickCipher 根据 Cipher 和 Password 生成 core.Cipher, 供连接层包装 net.Conn.
func (s Settings) PickCipher() (core.Cipher, error) {
	if s.Cipher == "" || s.Password == "" {
		return nil, utils.ErrInErr{ErrDesc: "shadowsocks cipher and password must not be empty", ErrDetail: utils.ErrWrongParameter}
	}

	if cp, err := ss.NewCipher(s.Cipher, s.Password); err == nil && cp != nil {
		return &streamCipher{cipher: cp}, nil
	}

	cipher, err := core.PickCipher(strings.ToUpper(s.Cipher), nil, s.Password)
	if err != nil {
		if ce := utils.CanLogDebug("shadowsocks PickCipher failed"); ce != nil {
			ce.Write(zap.String("cipher", s.Cipher), zap.Error(err))
		}
		return nil, utils.ErrInErr{ErrDesc: "shadowsocks PickCipher", ErrDetail: ErrUnsupportedCipher, Data: s.Cipher}
	}
	return cipher, nil
}

// SupportedCipher 判断某个 cipher 名称 是否能被 PickCipher 处理
func SupportedCipher(name string) bool {
	if name == "" {
		return false
	}
	if ss.CheckCipherMethod(name) == nil {
		return true
	}
	_, err := core.PickCipher(strings.ToUpper(name), nil, "x")
	return err == nil
}

// implements core.Cipher
type streamCipher struct {
	cipher *ss.Cipher
}

func (c *streamCipher) StreamConn(conn net.Conn) net.Conn {
	return ss.NewConn(conn, c.cipher.Copy())
}

func (c *streamCipher) PacketConn(conn net.PacketConn) net.PacketConn {
	return ss.NewSecurePacketConn(conn, c.cipher.Copy())
}
