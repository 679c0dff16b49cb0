package relay

import (
	"strings"

	"github.com/biter777/countries"
)

// CountryCode 是 relay list 中国家的唯一标识, 一般为小写的 iso 3166 alpha-2, 如 "se"
type CountryCode string

// CityCode 只在所属国家内唯一, 如 "got"
type CityCode string

// Valid reports whether c is a known ISO 3166 country code (alpha-2 or alpha-3, any case).
func (c CountryCode) Valid() bool {
	return c.info().IsValid()
}

// DisplayName 返回标准英文国名; 未知则返回 ""
func (c CountryCode) DisplayName() string {
	info := c.info()
	if !info.IsValid() {
		return ""
	}
	return info.String()
}

func (c CountryCode) info() countries.CountryCode {
	s := strings.TrimSpace(string(c))
	if len(s) != 2 && len(s) != 3 {
		return countries.Unknown
	}
	//ByName 会按名称模糊匹配, 如 "xx" 得到 countries.None, 所以还要核对代码本身
	cc := countries.ByName(s)
	if cc == countries.None || cc == countries.Unknown || !cc.IsValid() {
		return countries.Unknown
	}
	if !strings.EqualFold(cc.Alpha2(), s) && !strings.EqualFold(cc.Alpha3(), s) {
		return countries.Unknown
	}
	return cc
}

// Location 是运行时附加到 Relay 上的地理信息, 不属于线上格式.
type Location struct {
	Country     string
	CountryCode CountryCode
	City        string
	CityCode    CityCode
	Latitude    float64
	Longitude   float64
}

func (l Location) String() string {
	if l.City == "" {
		return l.Country
	}
	return l.City + ", " + l.Country
}
