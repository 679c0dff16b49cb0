package relay

// Filter 返回一个只含 keep 为 true 的 relay 的深拷贝; 没有 relay 的城市和国家被去掉.
// l 本身不变.
func (l RelayList) Filter(keep func(RelayRef) bool) RelayList {
	out := Empty()
	for i := range l.Countries {
		country := &l.Countries[i]

		nc := Country{Name: country.Name, Code: country.Code}
		for j := range country.Cities {
			city := &country.Cities[j]

			ncity := City{Name: city.Name, Code: city.Code, Latitude: city.Latitude, Longitude: city.Longitude}
			for k := range city.Relays {
				if keep(RelayRef{Country: country, City: city, Relay: &city.Relays[k]}) {
					ncity.Relays = append(ncity.Relays, city.Relays[k].Clone())
				}
			}
			if len(ncity.Relays) > 0 {
				nc.Cities = append(nc.Cities, ncity)
			}
		}
		if len(nc.Cities) > 0 {
			out.Countries = append(out.Countries, nc)
		}
	}
	return out
}

// transform 对深拷贝中的每个 relay 调用 f
func (l RelayList) transform(f func(*Relay)) RelayList {
	c := l.Clone()
	c.walk(func(ref RelayRef) bool {
		f(ref.Relay)
		return true
	})
	return c
}

// StripTunnels 得到只剩 bridge 信息的拷贝, 如用于只关心 bridge 的场合
func (l RelayList) StripTunnels() RelayList {
	return l.transform(func(r *Relay) { r.Tunnels.Clear() })
}

func (l RelayList) StripBridges() RelayList {
	return l.transform(func(r *Relay) { r.Bridges.Clear() })
}

// 常用的 Filter 条件

func HasTunnel(t TunnelType) func(RelayRef) bool {
	return func(ref RelayRef) bool { return ref.Relay.HasTunnel(t) }
}

func HasBridge(ref RelayRef) bool {
	return !ref.Relay.Bridges.IsEmpty()
}

func InCountry(ref RelayRef) bool {
	return ref.Relay.IncludeInCountry
}

// All 组合多个条件, 全部满足才保留
func All(conds ...func(RelayRef) bool) func(RelayRef) bool {
	return func(ref RelayRef) bool {
		for _, c := range conds {
			if !c(ref) {
				return false
			}
		}
		return true
	}
}
