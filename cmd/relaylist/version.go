/*
Package main 读取 relay list 文件, 按配置过滤后打印, 并可选择性运行 交互模式.

命令行参数请使用 --help / -h 查看详情, 子命令请使用 help 查看.

如果一个命令行参数无法在标准配置中进行配置，那么它就属于高级/开发者选项.
*/
package main

import (
	"fmt"
	"io"
	"runtime"

	"github.com/e1732a364fed/relaylist/proxy/shadowsocks"
)

const (
	desc      = "A relay list viewer for openvpn, wireguard and shadowsocks relays\n"
	delimiter = "===============================\n"
)

var Version string = "[version_undefined]" //版本号可由 -ldflags "-X 'main.Version=v1.x.x'" 指定

func versionStr() string {
	return fmt.Sprintf("relaylist %s, %s %s %s\n", Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

func printVersion(w io.StringWriter) {
	w.WriteString(delimiter)
	w.WriteString(versionStr())
	w.WriteString(delimiter)

	w.WriteString(desc)
	for _, c := range []string{"aes-256-gcm", "chacha20-ietf-poly1305", "aes-256-cfb"} {
		if shadowsocks.SupportedCipher(c) {
			w.WriteString("supports shadowsocks cipher " + c + "\n")
		}
	}
	w.WriteString(delimiter)
}
