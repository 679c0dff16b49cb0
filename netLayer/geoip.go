package netLayer

import (
	"net"
	"net/netip"
	"os"

	"github.com/e1732a364fed/relaylist/utils"
	"github.com/oschwald/maxminddb-golang"
	"go.uber.org/zap"
)

// 默认的 maxmind geoip 文件名
const DefaultGeoipFileName = "GeoLite2-Country.mmdb"

// GeoipDB 包装一个 maxmind 数据库, 只用于查询 国别代码.
//
// A nil *GeoipDB is valid and knows nothing.
type GeoipDB struct {
	reader *maxminddb.Reader
}

func GeoipDBFromBytes(bs []byte) (*GeoipDB, error) {
	db, err := maxminddb.FromBytes(bs)
	if err != nil {
		return nil, utils.ErrInErr{ErrDesc: "load maxmind geoip bytes failed", ErrDetail: err}
	}
	return &GeoipDB{reader: db}, nil
}

// OpenGeoipDB 将一个外部的 mmdb 文件整体读入内存
func OpenGeoipDB(fn string) (*GeoipDB, error) {
	if fn == "" {
		fn = DefaultGeoipFileName
	}
	bs, err := os.ReadFile(fn)
	if err != nil {
		return nil, utils.ErrInErr{ErrDesc: "read maxmind geoip file failed", ErrDetail: err, Data: fn}
	}
	db, err := GeoipDBFromBytes(bs)
	if err != nil {
		return nil, err
	}

	if ce := utils.CanLogDebug("geoip file loaded"); ce != nil {
		ce.Write(zap.String("file", fn), zap.Int("size", len(bs)))
	}
	return db, nil
}

// CountryISO 返回 iso 3166 字符串，大写，两字节; 查不到返回 ""
func (db *GeoipDB) CountryISO(ip netip.Addr) string {
	if db == nil || db.reader == nil || !ip.IsValid() {
		return ""
	}

	var record struct {
		Country struct {
			ISOCode string `maxminddb:"iso_code"`
		} `maxminddb:"country"`
	}

	err := db.reader.Lookup(net.IP(ip.Unmap().AsSlice()), &record)
	if err != nil {
		if ce := utils.CanLogErr("geoip lookup failed"); ce != nil {
			ce.Write(zap.String("ip", ip.String()), zap.Error(err))
		}
		return ""
	}
	return record.Country.ISOCode
}

func (db *GeoipDB) Close() error {
	if db == nil || db.reader == nil {
		return nil
	}
	return db.reader.Close()
}
