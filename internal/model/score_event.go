package model

import "time"

// ScoreEvent 计分事件审计表 — 对应 score_events
// 只追加的日志行，正常运行永不修改或删除
type ScoreEvent struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"           json:"id"`
	ProfessorID uint      `gorm:"not null;index"                     json:"professor_id"`
	EventName   string    `gorm:"type:text;not null"                 json:"event_name"`
	Points      int       `gorm:"not null"                           json:"points"`
	AdminID     uint      `gorm:"not null"                           json:"admin_id"`
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`

	// 关联
	Admin *User `gorm:"foreignKey:AdminID" json:"admin,omitempty"`
}

// TableName 指定表名
func (ScoreEvent) TableName() string { return "score_events" }
