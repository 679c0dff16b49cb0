package relay

import (
	"github.com/e1732a364fed/relaylist/utils"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// Store 保存当前的 relay list 快照. 一个写者, 多个读者;
// 每次 Load 得到的都是一个完整的快照, 列表更新时整体替换.
//
// 读者不得修改 Load 返回的列表.
type Store struct {
	current atomic.Value
	version atomic.Uint64
}

// NewStore starts with Empty().
func NewStore() *Store {
	s := &Store{}
	empty := Empty()
	s.current.Store(&empty)
	return s
}

func (s *Store) Load() *RelayList {
	l, _ := s.current.Load().(*RelayList)
	if l == nil {
		empty := Empty()
		return &empty
	}
	return l
}

// Replace 换上新的快照, 返回新的版本号. 之后调用者不应再修改 l.
func (s *Store) Replace(l RelayList) uint64 {
	s.current.Store(&l)
	v := s.version.Inc()

	if ce := utils.CanLogDebug("relay list replaced"); ce != nil {
		ce.Write(zap.Uint64("version", v), zap.Int("relays", l.Len()))
	}
	return v
}

// Version 为 0 表示还没有 Replace 过
func (s *Store) Version() uint64 {
	return s.version.Load()
}
