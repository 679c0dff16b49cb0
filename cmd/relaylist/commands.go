package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/e1732a364fed/relaylist/proxy/shadowsocks"
	"github.com/e1732a364fed/relaylist/relay"
	"github.com/e1732a364fed/relaylist/utils"
)

//本文件下所有命令的输出统一使用 fmt 写到给定的 io.Writer, 而不是 log

var (
	interactive_mode bool
	cmdPrintVer      bool
)

func init() {
	flag.BoolVar(&interactive_mode, "i", false, "enable interactive commandline mode")
	flag.BoolVar(&cmdPrintVer, "v", false, "print the version string then exit")
}

type command struct {
	name  string
	usage string
	desc  string
	f     func(w io.Writer, args []string) error
}

var commands []command

func init() {
	commands = []command{
		{name: "list", desc: "print the filtered relay tree", f: cmdList},
		{name: "show", usage: "<hostname>", desc: "print one relay with its descriptors and converted endpoints", f: cmdShow},
		{name: "check", desc: "decode the relay list file and print statistics", f: cmdCheck},
		{name: "empty", usage: "[file]", desc: "write the empty relay list to file, or to stdout", f: cmdEmpty},
		{name: "roundtrip", desc: "decode, encode and decode the relay list file again, report whether both decodes agree", f: cmdRoundTrip},
		{name: "help", desc: "print commands", f: cmdHelp},
	}
}

func runCommand(w io.Writer, args []string) error {
	for _, c := range commands {
		if c.name == args[0] {
			return c.f(w, args[1:])
		}
	}
	cmdHelp(w, nil)
	return utils.ErrInErr{ErrDesc: "unknown command", ErrDetail: utils.ErrWrongParameter, Data: args[0]}
}

func cmdHelp(w io.Writer, _ []string) error {
	fmt.Fprintf(w, "usage: relaylist [flags] <command> [args]\n\ncommands:\n")
	for _, c := range commands {
		fmt.Fprintf(w, "  %-10s %-12s %s\n", c.name, c.usage, c.desc)
	}
	return nil
}

func cmdList(w io.Writer, _ []string) error {
	if err := reloadRelayList(); err != nil {
		return err
	}
	printTree(w, relayStore.Load())
	return nil
}

func cmdShow(w io.Writer, args []string) error {
	if len(args) != 1 {
		return utils.ErrInErr{ErrDesc: "show needs exactly one hostname", ErrDetail: utils.ErrWrongParameter}
	}
	if err := reloadRelayList(); err != nil {
		return err
	}
	ref, ok := relayStore.Load().FindRelay(args[0])
	if !ok {
		return utils.ErrInErr{ErrDesc: "relay not found", ErrDetail: utils.ErrInvalidData, Data: args[0]}
	}
	printRelay(w, ref, ref.Relay.Ipv4AddrIn.String())
	return nil
}

// check 不经过 [filter], 直接看文件本身
func cmdCheck(w io.Writer, _ []string) error {
	l, err := relay.LoadFile(findFile(relayFileName))
	if err != nil {
		return err
	}
	st := l.Stats()
	fmt.Fprintf(w, "countries: %d\ncities: %d\nrelays: %d\nopenvpn: %d\nwireguard: %d\nshadowsocks: %d\n",
		st.Countries, st.Cities, st.Relays, st.OpenVpn, st.Wireguard, st.Shadowsocks)

	for _, ref := range l.Relays() {
		if ref.Relay.Tunnels.IsEmpty() && ref.Relay.Bridges.IsEmpty() {
			fmt.Fprintf(w, "warning: %s has neither tunnels nor bridges\n", ref.Relay.Hostname)
		}
		for _, b := range ref.Relay.Bridges.Shadowsocks {
			if !shadowsocks.SupportedCipher(b.Cipher) {
				fmt.Fprintf(w, "warning: %s uses unsupported cipher %q\n", ref.Relay.Hostname, b.Cipher)
			}
		}
	}
	return nil
}

func cmdEmpty(w io.Writer, args []string) error {
	e := relay.Empty()
	if len(args) > 0 {
		return e.SaveFile(args[0])
	}
	return e.Encode(w)
}

func cmdRoundTrip(w io.Writer, _ []string) error {
	fn := findFile(relayFileName)
	raw, err := os.ReadFile(fn)
	if err != nil {
		return utils.ErrInErr{ErrDesc: "can't read relay list file", ErrDetail: err, Data: fn}
	}

	first, err := relay.Parse(raw)
	if err != nil {
		return err
	}
	encoded, err := first.Marshal()
	if err != nil {
		return err
	}
	second, err := relay.Parse(encoded)
	if err != nil {
		return utils.ErrInErr{ErrDesc: "re-decode of encoded relay list failed", ErrDetail: err}
	}
	again, err := second.Marshal()
	if err != nil {
		return err
	}

	if !bytes.Equal(encoded, again) {
		return utils.ErrInErr{ErrDesc: "roundtrip mismatch", ErrDetail: utils.ErrInvalidData, Data: fn}
	}
	fmt.Fprintf(w, "roundtrip ok, %d relays, %d bytes -> %d bytes\n", first.Len(), len(raw), len(encoded))
	return nil
}

func printTree(w io.Writer, l *relay.RelayList) {
	for _, c := range l.Countries {
		fmt.Fprintf(w, "%s (%s)\n", c.Name, c.Code)
		for _, city := range c.Cities {
			fmt.Fprintf(w, "\t%s (%s)\n", city.Name, city.Code)
			for _, r := range city.Relays {
				fmt.Fprintf(w, "\t\t%s\t%s\n", r, relayKinds(r))
			}
		}
	}
}

func relayKinds(r relay.Relay) string {
	var kinds []string
	if r.HasTunnel(relay.TunnelTypeOpenVpn) {
		kinds = append(kinds, relay.TunnelTypeOpenVpn.String())
	}
	if r.HasTunnel(relay.TunnelTypeWireguard) {
		kinds = append(kinds, relay.TunnelTypeWireguard.String())
	}
	if !r.Bridges.IsEmpty() {
		kinds = append(kinds, shadowsocks.Name)
	}
	return strings.Join(kinds, ",")
}

// printRelay 打印 relay 的所有描述符, 以及用 peer 转换得到的 endpoint / 代理参数.
// peer 必须是 ipv4 地址字符串, 一般就是 relay 自己的 ipv4_addr_in.
func printRelay(w io.Writer, ref relay.RelayRef, peer string) {
	r := ref.Relay
	fmt.Fprintf(w, "%s\n", r)
	if r.Location != nil {
		fmt.Fprintf(w, "location: %s\n", r.Location)
	} else {
		fmt.Fprintf(w, "location: %s, %s\n", ref.City.Name, ref.Country.Name)
	}
	fmt.Fprintf(w, "include_in_country: %v, weight: %d\n", r.IncludeInCountry, r.Weight)

	host, err := parsePeer(peer)
	if err != nil {
		fmt.Fprintf(w, "bad peer %q: %s\n", peer, err)
		return
	}

	for _, o := range r.Tunnels.OpenVpn {
		fmt.Fprintf(w, "  %s\n    -> %s\n", o, o.TunnelEndpoint(host))
	}
	for _, wg := range r.Tunnels.Wireguard {
		fmt.Fprintf(w, "  wireguard %s\n", wg)
		if len(wg.PortRanges) == 0 {
			continue
		}
		//任选一个端口, 这里取第一个区间的起点
		if ep, err := wg.TunnelEndpoint(host, wg.PortRanges[0].Low); err == nil {
			fmt.Fprintf(w, "    -> %s\n", ep)
		}
	}
	for _, s := range r.Bridges.Shadowsocks {
		fmt.Fprintf(w, "  %s\n    -> %s\n", s, s.ProxySettings(host))
	}
}
