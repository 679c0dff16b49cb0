package relay

import (
	"errors"
	"fmt"

	"github.com/e1732a364fed/relaylist/utils"
)

var (
	// ErrDecode matches every error returned by Parse / Decode / LoadFile on a bad payload.
	ErrDecode = errors.New("decode relay list failed")

	ErrMissingField     = errors.New("missing field")
	ErrDuplicateField   = errors.New("duplicate field")
	ErrNullField        = errors.New("field can't be null")
	ErrInvalidAddress   = errors.New("invalid address")
	ErrInvalidPortRange = errors.New("invalid port range")
	ErrPortOutOfRange   = errors.New("port not in any port range")
)

// DecodeError 包装解码过程中遇到的第一个错误.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return ErrDecode.Error() + ": " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}

func missingField(field string) error {
	return utils.ErrInErr{ErrDesc: field, ErrDetail: ErrMissingField}
}

// 给内层错误加上位置, 如 relays[3]
func inField(field string, err error) error {
	return utils.ErrInErr{ErrDesc: field, ErrDetail: err}
}

func inElem(field string, i int, err error) error {
	return inField(fmt.Sprintf("%s[%d]", field, i), err)
}

// 可以缺失的字段, 但不能是 null
func nullField(field string) error {
	return utils.ErrInErr{ErrDesc: field, ErrDetail: ErrNullField}
}
