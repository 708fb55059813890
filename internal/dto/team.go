package dto

// ── 队伍模块 DTO ──

// CreateTeamRequest 组队请求
type CreateTeamRequest struct {
	Name         string `json:"name"          binding:"required,min=2,max=30"`
	ProfessorIDs []uint `json:"professor_ids" binding:"required"`
	CaptainID    uint   `json:"captain_id"    binding:"required"`
	LeagueID     *uint  `json:"league_id"`
}
