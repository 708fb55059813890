package errors

import (
	"errors"
	"strings"
)

// ErrDuplicate 唯一约束冲突：记录已存在
// 成就解锁、联赛成员等写入依赖它实现幂等
var ErrDuplicate = errors.New("记录已存在")

// IsUniqueViolation 判断底层错误是否为 SQLite 唯一约束冲突
// go-sqlite3 的约束错误文本形如 "UNIQUE constraint failed: ..."
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
