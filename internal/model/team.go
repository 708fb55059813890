package model

import "time"

// Team 队伍表 — 对应 teams
//
// 创建时校验：恰好 TeamSize 名互不相同且存在的教授、一名队长、
// 总花费不超过预算、同一联赛内每人一支。这些约束只在创建时检查，
// 之后教授 cost 调整不会追溯校验既有队伍（队伍视作历史快照）。
type Team struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"           json:"id"`
	Name      string    `gorm:"type:text;not null"                 json:"name"`
	UserID    uint      `gorm:"not null"                           json:"user_id"`
	LeagueID  *uint     `json:"league_id,omitempty"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`

	// 关联
	Owner      *User           `gorm:"foreignKey:UserID"   json:"owner,omitempty"`
	League     *League         `gorm:"foreignKey:LeagueID" json:"league,omitempty"`
	Professors []TeamProfessor `gorm:"foreignKey:TeamID"   json:"professors,omitempty"`
}

// TableName 指定表名
func (Team) TableName() string { return "teams" }

// TeamProfessor 队伍阵容表 — 对应 team_professors
// 每队恰好一名 is_captain=true 的成员，其得分以 2 倍计入队伍总分
type TeamProfessor struct {
	ID          uint `gorm:"primaryKey;autoIncrement"             json:"id"`
	TeamID      uint `gorm:"not null;uniqueIndex:uniq_team_prof"  json:"team_id"`
	ProfessorID uint `gorm:"not null;uniqueIndex:uniq_team_prof"  json:"professor_id"`
	IsCaptain   bool `gorm:"not null;default:false"               json:"is_captain"`

	// 关联
	Professor *Professor `gorm:"foreignKey:ProfessorID" json:"professor,omitempty"`
}

// TableName 指定表名
func (TeamProfessor) TableName() string { return "team_professors" }
