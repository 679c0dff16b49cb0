package relay

import (
	"net/netip"
	"strings"

	"github.com/e1732a364fed/relaylist/utils"
	"go.uber.org/zap"
)

// LocationResolver supplies the runtime-only Relay.Location. nil 表示不知道.
type LocationResolver interface {
	ResolveLocation(ref RelayRef) *Location
}

// WithLocations 返回一个每个 relay 都附加了 Location 的深拷贝.
func (l RelayList) WithLocations(res LocationResolver) RelayList {
	c := l.Clone()
	c.walk(func(ref RelayRef) bool {
		ref.Relay.Location = res.ResolveLocation(ref)
		return true
	})
	return c
}

// HierarchyResolver 直接用 relay 所在的 country / city 生成 Location
type HierarchyResolver struct{}

func (HierarchyResolver) ResolveLocation(ref RelayRef) *Location {
	if ref.Country == nil || ref.City == nil {
		return nil
	}
	return &Location{
		Country:     ref.Country.Name,
		CountryCode: ref.Country.Code,
		City:        ref.City.Name,
		CityCode:    ref.City.Code,
		Latitude:    ref.City.Latitude,
		Longitude:   ref.City.Longitude,
	}
}

// CountryLookup 返回 ip 所在国家的 iso 代码, 查不到时返回 "".
// *netLayer.GeoipDB 实现了它.
type CountryLookup interface {
	CountryISO(ip netip.Addr) string
}

// GeoipResolver 用 maxmind 数据库检查 relay 的 ipv4_addr_in 实际所在的国家.
//
// 与 relay list 一致 或 查不到时, 结果同 HierarchyResolver;
// 不一致时只给出 geoip 的国家信息, 并打印警告.
type GeoipResolver struct {
	DB CountryLookup
}

func (g GeoipResolver) ResolveLocation(ref RelayRef) *Location {
	fallback := HierarchyResolver{}.ResolveLocation(ref)
	if ref.Relay == nil || g.DB == nil {
		return fallback
	}

	iso := g.DB.CountryISO(ref.Relay.Ipv4AddrIn)
	if iso == "" {
		return fallback
	}
	if ref.Country != nil && strings.EqualFold(iso, string(ref.Country.Code)) {
		return fallback
	}

	cc := CountryCode(iso).info()
	if !cc.IsValid() {
		return fallback
	}

	if ce := utils.CanLogWarn("relay geoip country differs from relay list"); ce != nil {
		listed := ""
		if ref.Country != nil {
			listed = string(ref.Country.Code)
		}
		ce.Write(zap.String("relay", ref.Relay.Hostname), zap.String("listed", listed), zap.String("geoip", iso))
	}

	return &Location{
		Country:     cc.String(),
		CountryCode: CountryCode(strings.ToLower(cc.Alpha2())),
	}
}
