package model

import "time"

// 通知类型
const (
	NotificationTypeAchievement = "achievement"
	NotificationTypeScore       = "score"
	NotificationTypeLeague      = "league"
	NotificationTypeGeneric     = "generic"
)

// Notification 通知表 — 对应 notifications
//
// 每个值得通知的领域事件都落一行；实时推送 at-most-once、可能丢失，
// 这张表才是客户端重连后对账的持久化依据。删除/清空无任何副作用。
type Notification struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"           json:"id"`
	UserID    uint      `gorm:"not null;index"                     json:"user_id"`
	Type      string    `gorm:"type:text;not null"                 json:"type"`
	Title     string    `gorm:"type:text;not null"                 json:"title"`
	Message   string    `gorm:"type:text;not null"                 json:"message"`
	Data      JSONMap   `gorm:"type:text"                          json:"data,omitempty"`
	IsRead    bool      `gorm:"not null;default:false"             json:"is_read"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName 指定表名
func (Notification) TableName() string { return "notifications" }
