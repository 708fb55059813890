package dto

import "time"

// ── 认证模块响应 ──

// TokenResponse Token 对响应
type TokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int          `json:"expires_in"` // Access Token 有效期（秒）
	User         UserResponse `json:"user"`
}

// UserResponse 用户信息响应（脱敏）
type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// ProfileResponse 个人主页响应（用户信息 + 统计）
type ProfileResponse struct {
	UserResponse
	TeamCount        int64 `json:"team_count"`
	LeagueCount      int64 `json:"league_count"`
	TotalScore       int   `json:"total_score"`
	AchievementCount int64 `json:"achievement_count"`
}

// ── 教授模块响应 ──

// ProfessorResponse 教授信息响应
type ProfessorResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Subject   string    `json:"subject"`
	Cost      int       `json:"cost"`
	Score     int       `json:"score"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
}

// ScoreEventResponse 计分历史条目
type ScoreEventResponse struct {
	ID        uint      `json:"id"`
	EventName string    `json:"event_name"`
	Points    int       `json:"points"`
	AdminName string    `json:"admin_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ScoringEventResponse 计分事件目录条目
type ScoringEventResponse struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Points int    `json:"points"`
	Emoji  string `json:"emoji"`
}

// ── 队伍模块响应 ──

// TeamProfessorResponse 阵容成员响应
type TeamProfessorResponse struct {
	ProfessorResponse
	IsCaptain bool `json:"is_captain"`
}

// TeamResponse 队伍详情响应
type TeamResponse struct {
	ID         uint                    `json:"id"`
	Name       string                  `json:"name"`
	UserID     uint                    `json:"user_id"`
	OwnerName  string                  `json:"owner_name,omitempty"`
	LeagueID   *uint                   `json:"league_id"`
	LeagueName string                  `json:"league_name,omitempty"`
	TotalCost  int                     `json:"total_cost"`
	TotalScore int                     `json:"total_score"`
	Professors []TeamProfessorResponse `json:"professors"`
	CreatedAt  time.Time               `json:"created_at"`
}

// ── 联赛模块响应 ──

// LeagueResponse 联赛摘要响应
type LeagueResponse struct {
	ID          uint       `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Code        string     `json:"code,omitempty"` // 仅成员可见
	CreatorID   uint       `json:"creator_id"`
	CreatorName string     `json:"creator_name,omitempty"`
	IsPublic    bool       `json:"is_public"`
	MaxMembers  int        `json:"max_members"`
	MemberCount int64      `json:"member_count"`
	IsMember    bool       `json:"is_member"`
	JoinedAt    *time.Time `json:"joined_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// LeagueDetailResponse 联赛详情响应（含排行榜）
type LeagueDetailResponse struct {
	LeagueResponse
	Leaderboard []LeaderboardEntryResponse `json:"leaderboard"`
}

// LeaderboardEntryResponse 排行榜条目
type LeaderboardEntryResponse struct {
	Rank       int    `json:"rank"`
	TeamID     uint   `json:"team_id"`
	TeamName   string `json:"team_name"`
	UserID     uint   `json:"user_id"`
	Username   string `json:"username"`
	Avatar     string `json:"avatar"`
	LeagueName string `json:"league_name,omitempty"`
	TotalScore int    `json:"total_score"`
}

// ── 成就模块响应 ──

// AchievementResponse 成就条目（带解锁状态）
type AchievementResponse struct {
	ID          uint       `json:"id"`
	Code        string     `json:"code"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Icon        string     `json:"icon"`
	Points      int        `json:"points"`
	Unlocked    bool       `json:"unlocked"`
	UnlockedAt  *time.Time `json:"unlocked_at,omitempty"`
}

// MyAchievementsResponse 个人成就响应
type MyAchievementsResponse struct {
	Achievements []AchievementResponse `json:"achievements"`
	TotalPoints  int                   `json:"total_points"`
	Unlocked     int                   `json:"unlocked"`
	Total        int                   `json:"total"`
}

// ── 通知模块响应 ──

// NotificationResponse 通知条目
type NotificationResponse struct {
	ID        uint                   `json:"id"`
	Type      string                 `json:"type"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Data      map[string]interface{} `json:"data,omitempty"`
	IsRead    bool                   `json:"is_read"`
	CreatedAt time.Time              `json:"created_at"`
}

// NotificationListResponse 通知列表响应（带未读数）
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	UnreadCount   int64                  `json:"unread_count"`
}

// ── 管理模块响应 ──

// UserListResponse 用户列表响应（分页）
type UserListResponse struct {
	Users    []UserResponse `json:"users"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}
