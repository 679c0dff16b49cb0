package netLayer

import (
	"net"
	"net/netip"
	"strings"

	"github.com/e1732a364fed/relaylist/utils"
	"github.com/yl2chen/cidranger"
)

// PrefixSet 把一组 CIDR 放到一起, 用于判断某个ip 是否落在其中任意一个网段内.
type PrefixSet struct {
	ranger cidranger.Ranger
	n      int
}

// NewPrefixSet parses every entry as a CIDR. A bare ip is treated as a single host prefix.
func NewPrefixSet(cidrs []string) (*PrefixSet, error) {
	ps := &PrefixSet{ranger: cidranger.NewPCTrieRanger()}

	for _, s := range cidrs {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if !strings.Contains(s, "/") {
			if ip, err := netip.ParseAddr(s); err == nil {
				s = netip.PrefixFrom(ip, ip.BitLen()).String()
			}
		}
		_, ipnet, err := net.ParseCIDR(s)
		if err != nil {
			return nil, utils.ErrInErr{ErrDesc: "invalid cidr", ErrDetail: err, Data: s}
		}
		if err = ps.ranger.Insert(cidranger.NewBasicRangerEntry(*ipnet)); err != nil {
			return nil, utils.ErrInErr{ErrDesc: "insert cidr failed", ErrDetail: err, Data: s}
		}
		ps.n++
	}
	return ps, nil
}

func (ps *PrefixSet) Len() int {
	if ps == nil {
		return 0
	}
	return ps.n
}

// nil 或空的 PrefixSet 不包含任何地址
func (ps *PrefixSet) Contains(ip netip.Addr) bool {
	if ps == nil || ps.n == 0 || !ip.IsValid() {
		return false
	}
	ok, err := ps.ranger.Contains(net.IP(ip.Unmap().AsSlice()))
	if err != nil {
		return false
	}
	return ok
}
