package model

import "time"

// 用户角色
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User 用户表 — 对应 users
// 系统中第一个注册的用户自动成为 admin
type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"                 json:"id"`
	Username     string    `gorm:"type:text;uniqueIndex;not null"           json:"username"`
	Email        string    `gorm:"type:text;uniqueIndex;not null"           json:"email"`
	PasswordHash string    `gorm:"type:text;not null;column:password_hash"  json:"-"`
	Avatar       string    `gorm:"type:text;not null;default:'🎓'"          json:"avatar"`
	Role         string    `gorm:"type:text;not null;default:'user'"        json:"role"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"       json:"created_at"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// IsAdmin 是否管理员
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }
