package relay

import (
	"strings"
)

// RelayRef 指向某个 RelayList 内部的 relay 及其所在的国家和城市. 只读.
type RelayRef struct {
	Country *Country
	City    *City
	Relay   *Relay
}

type Stats struct {
	Countries, Cities, Relays int

	OpenVpn, Wireguard, Shadowsocks int
}

// Country 按 code 查找, 不区分大小写
func (l RelayList) Country(code CountryCode) (*Country, bool) {
	for i := range l.Countries {
		if strings.EqualFold(string(l.Countries[i].Code), string(code)) {
			return &l.Countries[i], true
		}
	}
	return nil, false
}

func (c *Country) City(code CityCode) (*City, bool) {
	for i := range c.Cities {
		if strings.EqualFold(string(c.Cities[i].Code), string(code)) {
			return &c.Cities[i], true
		}
	}
	return nil, false
}

// FindRelay 按 hostname 精确查找第一个匹配的 relay
func (l RelayList) FindRelay(hostname string) (RelayRef, bool) {
	var found RelayRef
	ok := false
	l.walk(func(ref RelayRef) bool {
		if ref.Relay.Hostname == hostname {
			found, ok = ref, true
			return false
		}
		return true
	})
	return found, ok
}

// Relays 按 country/city/relay 的原始顺序展开
func (l RelayList) Relays() []RelayRef {
	var refs []RelayRef
	l.walk(func(ref RelayRef) bool {
		refs = append(refs, ref)
		return true
	})
	return refs
}

// Len 是 relay 的总数
func (l RelayList) Len() (n int) {
	for _, c := range l.Countries {
		for _, city := range c.Cities {
			n += len(city.Relays)
		}
	}
	return
}

func (l RelayList) Stats() (st Stats) {
	st.Countries = len(l.Countries)
	for _, c := range l.Countries {
		st.Cities += len(c.Cities)
	}
	l.walk(func(ref RelayRef) bool {
		st.Relays++
		st.OpenVpn += len(ref.Relay.Tunnels.OpenVpn)
		st.Wireguard += len(ref.Relay.Tunnels.Wireguard)
		st.Shadowsocks += len(ref.Relay.Bridges.Shadowsocks)
		return true
	})
	return
}

// f 返回 false 时停止遍历
func (l RelayList) walk(f func(RelayRef) bool) {
	for i := range l.Countries {
		country := &l.Countries[i]
		for j := range country.Cities {
			city := &country.Cities[j]
			for k := range city.Relays {
				if !f(RelayRef{Country: country, City: city, Relay: &city.Relays[k]}) {
					return
				}
			}
		}
	}
}
