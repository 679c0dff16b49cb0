package relay

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/netip"

	"github.com/e1732a364fed/relaylist/utils"
)

// object 是一个 json 对象的各个字段, 键名区分大小写.
type object map[string]json.RawMessage

// decodeObject 按顺序读出 b 中对象的每个键, 重复的键返回 ErrDuplicateField.
// b 为 null 时返回 nil, 随后读取必填字段都会得到 ErrMissingField.
func decodeObject(b []byte) (object, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	t, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, nil
	}
	if d, ok := t.(json.Delim); !ok || d != '{' {
		return nil, utils.ErrInErr{ErrDesc: "not a json object", ErrDetail: utils.ErrInvalidData, Data: fmt.Sprint(t)}
	}

	o := object{}
	for dec.More() {
		if t, err = dec.Token(); err != nil {
			return nil, err
		}
		key, _ := t.(string)
		if _, has := o[key]; has {
			return nil, utils.ErrInErr{ErrDesc: key, ErrDetail: ErrDuplicateField}
		}
		var raw json.RawMessage
		if err = dec.Decode(&raw); err != nil {
			return nil, err
		}
		o[key] = raw
	}
	if _, err = dec.Token(); err != nil {
		return nil, err
	}
	return o, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// field 解码必填字段, 缺失或 null 都返回 ErrMissingField
func field[T any](o object, key string) (T, error) {
	var v T
	raw, ok := o[key]
	if !ok || isNull(raw) {
		return v, missingField(key)
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		var zero T
		return zero, inField(key, err)
	}
	return v, nil
}

// optionalField 用于带默认值的字段: 缺失得到零值, 但显式的 null 是错误.
func optionalField[T any](o object, key string) (T, error) {
	var v T
	raw, ok := o[key]
	if !ok {
		return v, nil
	}
	if isNull(raw) {
		return v, nullField(key)
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		var zero T
		return zero, inField(key, err)
	}
	return v, nil
}

// listField 逐个解码 必填数组 的元素, 出错时带上下标.
func listField[T any](o object, key string) ([]T, error) {
	raw, ok := o[key]
	if !ok || isNull(raw) {
		return nil, missingField(key)
	}
	return decodeElems[T](raw, key)
}

// optionalListField 同 optionalField, 缺失即为空数组.
func optionalListField[T any](o object, key string) ([]T, error) {
	raw, ok := o[key]
	if !ok {
		return nil, nil
	}
	if isNull(raw) {
		return nil, nullField(key)
	}
	return decodeElems[T](raw, key)
}

func decodeElems[T any](raw json.RawMessage, key string) ([]T, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, inField(key, err)
	}
	if len(elems) == 0 {
		return nil, nil
	}
	out := make([]T, len(elems))
	for i, r := range elems {
		if err := json.Unmarshal(r, &out[i]); err != nil {
			return nil, inElem(key, i, err)
		}
	}
	return out, nil
}

// 编码时空数组输出为 [], 而不是 null
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func parseIPv4(s, field string) (netip.Addr, error) {
	ip, err := netip.ParseAddr(s)
	if err != nil || !ip.Is4() {
		return netip.Addr{}, utils.ErrInErr{ErrDesc: field, ErrDetail: ErrInvalidAddress, Data: s}
	}
	return ip, nil
}

func parseIPv6(s, field string) (netip.Addr, error) {
	ip, err := netip.ParseAddr(s)
	if err != nil || !ip.Is6() || ip.Zone() != "" {
		return netip.Addr{}, utils.ErrInErr{ErrDesc: field, ErrDetail: ErrInvalidAddress, Data: s}
	}
	return ip, nil
}
