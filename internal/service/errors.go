package service

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation 输入校验失败
	ErrValidation = errors.New("validation failed")
	// ErrVoucherInvalid 优惠券字段不合法
	ErrVoucherInvalid = ErrValidation
	// ErrVoucherNotFound 优惠券不存在
	ErrVoucherNotFound = errors.New("voucher not found")
	// ErrVoucherCodeDuplicate 优惠码已存在
	ErrVoucherCodeDuplicate = errors.New("voucher code already exists")
	// ErrVoucherInactive 优惠券未启用
	ErrVoucherInactive = errors.New("voucher is not active")
	// ErrVoucherNotStarted 优惠券未到生效时间
	ErrVoucherNotStarted = errors.New("voucher is not valid yet")
	// ErrVoucherExpired 优惠券已过期
	ErrVoucherExpired = errors.New("voucher has expired")
	// ErrVoucherExhausted 优惠券使用次数已满
	ErrVoucherExhausted = errors.New("voucher usage limit reached")
	// ErrVoucherMinSpend 未达到最低消费
	ErrVoucherMinSpend = errors.New("minimum spend not met")
	// ErrServiceNotFound 服务项目不存在
	ErrServiceNotFound = errors.New("service not found")
	// ErrServiceNameDuplicate 服务项目名称已存在
	ErrServiceNameDuplicate = errors.New("service name already exists")
	// ErrStorage 存储层故障
	ErrStorage = errors.New("storage failure")
)

// ValidationError 字段校验错误，指向第一个不合法的字段
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap 归类为 ErrValidation
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// StorageError 存储层错误，保留原始驱动错误
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Is 使 errors.Is(err, ErrStorage) 成立
func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

func wrapStorage(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}
