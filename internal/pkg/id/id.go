package id

import (
	"github.com/google/uuid"
)

// New 生成新的UUID（string格式）
func New() string {
	return uuid.New().String()
}

// IsValid 验证UUID格式是否有效
func IsValid(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// OrNew 合法时原样返回，否则生成新的UUID
// 用于接受客户端传入的 X-Request-ID
func OrNew(id string) string {
	if id != "" && IsValid(id) {
		return id
	}
	return New()
}
