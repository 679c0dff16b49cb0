package main

import (
	"fmt"
	"net/netip"
	"os"

	"github.com/asaskevich/govalidator"
	"github.com/manifoldco/promptui"
	"golang.org/x/exp/slices"

	"github.com/e1732a364fed/relaylist/relay"
	"github.com/e1732a364fed/relaylist/utils"
)

type CliCmd struct {
	Name string
	F    func()
}

func (cc CliCmd) String() string {
	return cc.Name
}

var cliCmdList = []CliCmd{
	{"浏览 relay (国家 → 城市 → relay)", interactively_browse},
	{"按 hostname 查找 relay", interactively_find},
	{"打印统计信息", func() {
		st := relayStore.Load().Stats()
		fmt.Printf("%d countries, %d cities, %d relays; openvpn %d, wireguard %d, shadowsocks %d\n",
			st.Countries, st.Cities, st.Relays, st.OpenVpn, st.Wireguard, st.Shadowsocks)
	}},
	{"重新加载 relay list 文件", func() {
		if err := reloadRelayList(); err != nil {
			fmt.Printf("加载失败, %s\n", err)
			return
		}
		fmt.Printf("加载成功, 版本 %d\n", relayStore.Version())
	}},
	{"调节日志等级", interactively_adjust_loglevel},
}

// 交互式命令行用户界面
//
// 阻塞，可按ctrl+C退出或回退到上一级
func runCli() {
	defer func() {
		fmt.Printf("Interactive Mode exited. \n")
		if ce := utils.CanLogInfo("Interactive Mode exited"); ce != nil {
			ce.Write()
		}
	}()

	for {
		Select := promptui.Select{
			Label: "请选择想执行的功能",
			Items: cliCmdList,
		}

		i, result, err := Select.Run()
		if err != nil {
			fmt.Printf("Prompt failed %v\n", err)
			return
		}

		fmt.Printf("你选择了 %s\n", result)

		if f := cliCmdList[i].F; f != nil {
			f()
		}
	}
}

func interactively_browse() {
	l := relayStore.Load()
	if len(l.Countries) == 0 {
		fmt.Printf("relay list 为空\n")
		return
	}

	countries := make([]*relay.Country, len(l.Countries))
	for i := range l.Countries {
		countries[i] = &l.Countries[i]
	}
	slices.SortFunc(countries, func(a, b *relay.Country) bool { return a.Name < b.Name })

	i, err := selectItem("请选择国家", countries, func(c *relay.Country) string {
		return fmt.Sprintf("%s (%s), %d cities", c.Name, c.Code, len(c.Cities))
	})
	if err != nil {
		return
	}
	country := countries[i]

	cities := make([]*relay.City, len(country.Cities))
	for i := range country.Cities {
		cities[i] = &country.Cities[i]
	}
	slices.SortFunc(cities, func(a, b *relay.City) bool { return a.Name < b.Name })

	i, err = selectItem("请选择城市", cities, func(c *relay.City) string {
		return fmt.Sprintf("%s (%s), %d relays", c.Name, c.Code, len(c.Relays))
	})
	if err != nil {
		return
	}
	city := cities[i]

	if len(city.Relays) == 0 {
		fmt.Printf("该城市没有 relay\n")
		return
	}
	i, err = selectItem("请选择 relay", city.Relays, func(r relay.Relay) string {
		return r.String() + "  " + relayKinds(r)
	})
	if err != nil {
		return
	}

	showInteractively(relay.RelayRef{Country: country, City: city, Relay: &city.Relays[i]})
}

func interactively_find() {
	Prompt := promptui.Prompt{
		Label: "请输入 hostname",
		Validate: func(s string) error {
			if s == "" {
				return utils.ErrInvalidData
			}
			return nil
		},
	}
	result, err := Prompt.Run()
	if err != nil {
		fmt.Printf("Prompt failed %v\n", err)
		return
	}

	ref, ok := relayStore.Load().FindRelay(result)
	if !ok {
		fmt.Printf("没有找到 %s\n", result)
		return
	}
	showInteractively(ref)
}

// 先用 relay 自己的地址打印一次, 然后可以换一个 ipv4 地址 再转换一次
func showInteractively(ref relay.RelayRef) {
	printRelay(os.Stdout, ref, ref.Relay.Ipv4AddrIn.String())

	Prompt := promptui.Prompt{
		Label: "用其它 ipv4 地址转换 (直接回车跳过)",
		Validate: func(s string) error {
			if s == "" {
				return nil
			}
			return utils.WrapFuncForPromptUI(govalidator.IsIPv4)(s)
		},
	}
	result, err := Prompt.Run()
	if err != nil || result == "" {
		return
	}
	printRelay(os.Stdout, ref, result)
}

func interactively_adjust_loglevel() {
	levels := []string{"debug", "info", "warning", "error", "fatal"}

	Select := promptui.Select{
		Label:     "请选择日志等级",
		Items:     levels,
		CursorPos: utils.LogLevel,
	}
	i, result, err := Select.Run()
	if err != nil {
		fmt.Printf("Prompt failed %v\n", err)
		return
	}

	utils.LogLevel = i
	utils.InitLog()
	fmt.Printf("日志等级已调整为 %s (%d)\n", result, i)
}

func selectItem[T any](label string, items []T, show func(T) string) (int, error) {
	names := make([]string, len(items))
	for i, it := range items {
		names[i] = show(it)
	}
	Select := promptui.Select{
		Label: label,
		Items: names,
		Size:  15,
	}
	i, _, err := Select.Run()
	if err != nil {
		fmt.Printf("Prompt failed %v\n", err)
	}
	return i, err
}

func parsePeer(s string) (netip.Addr, error) {
	a, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Addr{}, err
	}
	if !a.Is4() {
		return netip.Addr{}, utils.ErrInErr{ErrDesc: "peer must be an ipv4 address", ErrDetail: utils.ErrInvalidData, Data: s}
	}
	return a, nil
}
