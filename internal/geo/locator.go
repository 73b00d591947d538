package geo

import (
	"net"
	"strings"

	"github.com/oschwald/geoip2-golang"
)

// Location 粗粒度地理位置
type Location struct {
	Country string
	Region  string
	City    string
}

// Locator IP 地理位置解析
type Locator interface {
	Lookup(ip string) (Location, bool)
}

// NopLocator 未配置数据库时的空实现
type NopLocator struct{}

// Lookup 始终未命中
func (NopLocator) Lookup(string) (Location, bool) {
	return Location{}, false
}

// GeoIPLocator 基于 MaxMind GeoIP2/GeoLite2 City 数据库
type GeoIPLocator struct {
	reader *geoip2.Reader
}

// Open 打开 mmdb 数据库文件
func Open(path string) (*GeoIPLocator, error) {
	reader, err := geoip2.Open(path)
	if err != nil {
		return nil, err
	}
	return &GeoIPLocator{reader: reader}, nil
}

// Lookup 解析 IP，私有地址或查询失败返回未命中
func (l *GeoIPLocator) Lookup(ip string) (Location, bool) {
	if l == nil || l.reader == nil {
		return Location{}, false
	}
	parsed := ParseIP(ip)
	if parsed == nil || parsed.IsLoopback() || parsed.IsPrivate() || parsed.IsUnspecified() {
		return Location{}, false
	}
	record, err := l.reader.City(parsed)
	if err != nil || record == nil {
		return Location{}, false
	}
	loc := Location{
		Country: record.Country.IsoCode,
		City:    record.City.Names["en"],
	}
	if len(record.Subdivisions) > 0 {
		loc.Region = record.Subdivisions[0].IsoCode
	}
	if loc.Country == "" && loc.Region == "" && loc.City == "" {
		return Location{}, false
	}
	return loc, true
}

// Close 关闭数据库
func (l *GeoIPLocator) Close() error {
	if l == nil || l.reader == nil {
		return nil
	}
	return l.reader.Close()
}

// ParseIP 解析 IP，兼容 IPv4 映射的 IPv6 前缀
func ParseIP(raw string) net.IP {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "::ffff:")
	return net.ParseIP(raw)
}
