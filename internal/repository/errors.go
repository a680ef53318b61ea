package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrDuplicateKey 唯一索引冲突
var ErrDuplicateKey = errors.New("duplicate key")

// translateWriteError 统一唯一约束错误，兼容未开启 TranslateError 的连接
func translateWriteError(err error) error {
	if err == nil {
		return nil
	}
	if IsDuplicateKeyError(err) {
		return ErrDuplicateKey
	}
	return err
}

// IsDuplicateKeyError 判断是否为唯一约束冲突
func IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrDuplicateKey) || errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}
