package relay

import (
	"bytes"
	"os"

	"github.com/creachadair/atomicfile"
	"github.com/e1732a364fed/relaylist/utils"
	"go.uber.org/zap"
)

func LoadFile(fn string) (RelayList, error) {
	f, err := os.Open(fn)
	if err != nil {
		return RelayList{}, utils.ErrInErr{ErrDesc: "can't open relay list file", ErrDetail: err, Data: fn}
	}
	defer f.Close()

	l, err := Decode(f)
	if err != nil {
		return RelayList{}, err
	}

	if ce := utils.CanLogInfo("relay list loaded"); ce != nil {
		ce.Write(zap.String("file", fn), zap.Int("relays", l.Len()))
	}
	return l, nil
}

// SaveFile 原子地写入, 不会留下写了一半的文件
func (l RelayList) SaveFile(fn string) error {
	var buf bytes.Buffer
	if err := l.Encode(&buf); err != nil {
		return err
	}
	if _, err := atomicfile.WriteAll(fn, &buf, 0644); err != nil {
		return utils.ErrInErr{ErrDesc: "write relay list file failed", ErrDetail: err, Data: fn}
	}

	if ce := utils.CanLogDebug("relay list saved"); ce != nil {
		ce.Write(zap.String("file", fn), zap.Int("relays", l.Len()))
	}
	return nil
}
