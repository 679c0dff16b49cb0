/*
Package config 读取 relaylist 命令行工具的 toml 配置.

使用toml：https://toml.io/cn/v1.0.0

	[app]
	loglevel = 1
	logfile = "relaylist_log"
	geoip = "GeoLite2-Country.mmdb"

	[source]
	file = "relays.json"

	[filter]
	countries = ["se", "de"]
	tunnel = "wireguard"
	exclude_cidr = ["185.213.154.0/24"]
*/
package config

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/e1732a364fed/relaylist/netLayer"
	"github.com/e1732a364fed/relaylist/relay"
	"github.com/e1732a364fed/relaylist/utils"
)

type AppConf struct {
	LogLevel *int    `toml:"loglevel"`
	LogFile  *string `toml:"logfile"`
	Geoip    string  `toml:"geoip"` //maxmind mmdb 文件; 为空则不做 geoip 检查
}

type SourceConf struct {
	File string `toml:"file"`
}

type FilterConf struct {
	Countries []string `toml:"countries"` //iso 3166 alpha-2, 如 se
	Cities    []string `toml:"cities"`

	Tunnel string `toml:"tunnel"` //"", "any", "openvpn", "wireguard"

	BridgesOnly          bool `toml:"bridges_only"`
	IncludeInCountryOnly bool `toml:"include_in_country_only"`

	ExcludeCIDR []string `toml:"exclude_cidr"` //这些网段内的 relay 不显示
}

type Standard struct {
	App    *AppConf    `toml:"app"`
	Source *SourceConf `toml:"source"`
	Filter *FilterConf `toml:"filter"`
}

func LoadTomlConfStr(str string) (c *Standard, err error) {
	c = &Standard{}
	if _, err = toml.Decode(str, c); err != nil {
		return nil, utils.ErrInErr{ErrDesc: "decode toml config failed", ErrDetail: err}
	}
	if err = c.Validate(); err != nil {
		return nil, err
	}
	return
}

func LoadTomlConfFile(fileNamePath string) (*Standard, error) {
	bs, err := os.ReadFile(fileNamePath)
	if err != nil {
		return nil, utils.ErrInErr{ErrDesc: "can't open config file", ErrDetail: err, Data: fileNamePath}
	}
	return LoadTomlConfStr(string(bs))
}

func (c *Standard) Validate() error {
	if c.Filter == nil {
		return nil
	}
	f := c.Filter

	for _, cc := range f.Countries {
		if !relay.CountryCode(cc).Valid() {
			return utils.ErrInErr{ErrDesc: "filter: unknown country code", ErrDetail: utils.ErrInvalidData, Data: cc}
		}
	}

	tt, err := f.TunnelType()
	if err != nil {
		return err
	}
	if f.BridgesOnly && tt != 0 {
		return utils.ErrInErr{ErrDesc: "filter: bridges_only conflicts with tunnel", ErrDetail: utils.ErrInvalidData, Data: f.Tunnel}
	}

	_, err = netLayer.NewPrefixSet(f.ExcludeCIDR)
	return err
}

// TunnelType 为 0 表示不限
func (f *FilterConf) TunnelType() (relay.TunnelType, error) {
	switch strings.ToLower(f.Tunnel) {
	case "", "any":
		return 0, nil
	case "openvpn":
		return relay.TunnelTypeOpenVpn, nil
	case "wireguard":
		return relay.TunnelTypeWireguard, nil
	}
	return 0, utils.ErrInErr{ErrDesc: "filter: unknown tunnel type", ErrDetail: utils.ErrInvalidData, Data: f.Tunnel}
}

// Predicate 生成用于 relay.RelayList.Filter 的条件. f 为 nil 时全部保留.
func (f *FilterConf) Predicate() (func(relay.RelayRef) bool, error) {
	if f == nil {
		return func(relay.RelayRef) bool { return true }, nil
	}

	exclude, err := netLayer.NewPrefixSet(f.ExcludeCIDR)
	if err != nil {
		return nil, err
	}
	tt, err := f.TunnelType()
	if err != nil {
		return nil, err
	}

	var conds []func(relay.RelayRef) bool

	if len(f.Countries) > 0 {
		countries := lowerSet(f.Countries)
		conds = append(conds, func(ref relay.RelayRef) bool {
			return countries[strings.ToLower(string(ref.Country.Code))]
		})
	}
	if len(f.Cities) > 0 {
		cities := lowerSet(f.Cities)
		conds = append(conds, func(ref relay.RelayRef) bool {
			return cities[strings.ToLower(string(ref.City.Code))]
		})
	}
	if tt != 0 {
		conds = append(conds, relay.HasTunnel(tt))
	}
	if f.BridgesOnly {
		conds = append(conds, relay.HasBridge)
	}
	if f.IncludeInCountryOnly {
		conds = append(conds, relay.InCountry)
	}
	if exclude.Len() > 0 {
		conds = append(conds, func(ref relay.RelayRef) bool {
			return !exclude.Contains(ref.Relay.Ipv4AddrIn)
		})
	}

	return relay.All(conds...), nil
}

func lowerSet(ss []string) map[string]bool {
	m := make(map[string]bool, len(ss))
	for _, s := range ss {
		m[strings.ToLower(strings.TrimSpace(s))] = true
	}
	return m
}
