package model

import "time"

// Professor 教授表 — 对应 professors
//
// score 是整个系统唯一可变的计分状态，只被计分事件修改；
// 所有队伍总分、排行榜都由它实时推导，从不落盘缓存。
// 被任何队伍引用的教授不可删除。
type Professor struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"           json:"id"`
	Name      string    `gorm:"type:text;uniqueIndex;not null"     json:"name"`
	Subject   string    `gorm:"type:text;not null;default:''"      json:"subject"`
	Cost      int       `gorm:"not null;default:10"                json:"cost"`
	Score     int       `gorm:"not null;default:0"                 json:"score"`
	Avatar    string    `gorm:"type:text;not null;default:'👨‍🏫'"   json:"avatar"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName 指定表名
func (Professor) TableName() string { return "professors" }
