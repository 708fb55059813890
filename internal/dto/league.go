package dto

// ── 联赛模块 DTO ──

// CreateLeagueRequest 创建联赛请求
type CreateLeagueRequest struct {
	Name        string `json:"name"        binding:"required,min=2,max=30"`
	Description string `json:"description" binding:"max=200"`
	IsPublic    bool   `json:"is_public"`
	MaxMembers  int    `json:"max_members" binding:"omitempty,min=2,max=50"`
}

// JoinLeagueRequest 按邀请码加入联赛请求
type JoinLeagueRequest struct {
	Code string `json:"code" binding:"required,len=8"`
}
