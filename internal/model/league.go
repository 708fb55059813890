package model

import "time"

// League 联赛表 — 对应 leagues
// code 为 8 位大写字母数字邀请码，创建时生成，全局唯一
type League struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"           json:"id"`
	Name        string    `gorm:"type:text;not null"                 json:"name"`
	Code        string    `gorm:"type:text;uniqueIndex;not null"     json:"code"`
	Description string    `gorm:"type:text;not null;default:''"      json:"description"`
	CreatorID   uint      `gorm:"not null"                           json:"creator_id"`
	MaxMembers  int       `gorm:"not null;default:50"                json:"max_members"`
	IsPublic    bool      `gorm:"not null;default:false"             json:"is_public"`
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`

	// 关联
	Creator *User `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
}

// TableName 指定表名
func (League) TableName() string { return "leagues" }

// LeagueMember 联赛成员表 — 对应 league_members
// (league_id, user_id) 唯一；创建者在建赛时自动加入且不可退出（只能解散）
type LeagueMember struct {
	ID       uint      `gorm:"primaryKey;autoIncrement"               json:"id"`
	LeagueID uint      `gorm:"not null;uniqueIndex:uniq_league_user"  json:"league_id"`
	UserID   uint      `gorm:"not null;uniqueIndex:uniq_league_user"  json:"user_id"`
	JoinedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"     json:"joined_at"`
}

// TableName 指定表名
func (LeagueMember) TableName() string { return "league_members" }
