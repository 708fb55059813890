package dto

// ── 教授模块 DTO ──

// CreateProfessorRequest 新增教授请求（管理员）
type CreateProfessorRequest struct {
	Name    string `json:"name"    binding:"required,min=2,max=50"`
	Subject string `json:"subject" binding:"max=50"`
	Cost    int    `json:"cost"    binding:"required,min=1,max=50"`
	Avatar  string `json:"avatar"  binding:"max=16"`
}

// UpdateProfessorRequest 修改教授请求（管理员）
// 指针字段缺省表示不修改
type UpdateProfessorRequest struct {
	Name    *string `json:"name"    binding:"omitempty,min=2,max=50"`
	Subject *string `json:"subject" binding:"omitempty,max=50"`
	Cost    *int    `json:"cost"    binding:"omitempty,min=1,max=50"`
	Avatar  *string `json:"avatar"  binding:"omitempty,max=16"`
}

// ApplyScoreEventRequest 管理员计分请求
// professor_id 以路径参数为准，body 中可省略
type ApplyScoreEventRequest struct {
	ProfessorID uint   `json:"professor_id"`
	EventCode   string `json:"event_code" binding:"required"`
}
