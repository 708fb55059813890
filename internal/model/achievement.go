package model

import "time"

// ConditionType 成就解锁条件类型（封闭枚举）
// 评估器对每个变体各有一个比较函数，新增类型必须同步扩展评估器
type ConditionType string

const (
	CondTeamsCreated         ConditionType = "teams_created"         // 创建的队伍数 ≥ 阈值
	CondLeaguesJoined        ConditionType = "leagues_joined"        // 加入的联赛数 ≥ 阈值
	CondLeaguesCreated       ConditionType = "leagues_created"       // 创建的联赛数 ≥ 阈值
	CondTotalScore           ConditionType = "total_score"           // 全部队伍聚合总分 ≥ 阈值
	CondAchievementsUnlocked ConditionType = "achievements_unlocked" // 已解锁成就数 ≥ 阈值
	CondUserID               ConditionType = "user_id"               // 用户 id ≤ 阈值（奖励早期注册者）

	// 以下条件在目录里播种但评估器暂不支持，对应成就保持锁定
	CondPodiumFinish      ConditionType = "podium_finish"
	CondCaptainDailyScore ConditionType = "captain_daily_score"
	CondAllProfsScored    ConditionType = "all_profs_scored"
)

// Achievement 成就目录表 — 对应 achievements
// 启动迁移时播种，用户操作永不修改
type Achievement struct {
	ID             uint          `gorm:"primaryKey;autoIncrement"       json:"id"`
	Code           string        `gorm:"type:text;uniqueIndex;not null" json:"code"`
	Name           string        `gorm:"type:text;not null"             json:"name"`
	Description    string        `gorm:"type:text;not null"             json:"description"`
	Icon           string        `gorm:"type:text;not null"             json:"icon"`
	Points         int           `gorm:"not null;default:0"             json:"points"`
	ConditionType  ConditionType `gorm:"type:text;not null"             json:"condition_type"`
	ConditionValue int           `gorm:"not null"                       json:"condition_value"`
}

// TableName 指定表名
func (Achievement) TableName() string { return "achievements" }

// UserAchievement 已解锁成就表 — 对应 user_achievements
// (user_id, achievement_id) 唯一约束保证并发评估下至多解锁一次；解锁单调，永不撤销
type UserAchievement struct {
	ID            uint      `gorm:"primaryKey;autoIncrement"                 json:"id"`
	UserID        uint      `gorm:"not null;uniqueIndex:uniq_user_achv"      json:"user_id"`
	AchievementID uint      `gorm:"not null;uniqueIndex:uniq_user_achv"      json:"achievement_id"`
	UnlockedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"       json:"unlocked_at"`

	// 关联
	Achievement *Achievement `gorm:"foreignKey:AchievementID" json:"achievement,omitempty"`
}

// TableName 指定表名
func (UserAchievement) TableName() string { return "user_achievements" }
