package dto

// ── 管理模块 DTO ──

// UpdateUserRoleRequest 修改用户角色请求（管理员）
type UpdateUserRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=user admin"`
}

// ListUsersRequest 用户列表分页参数
type ListUsersRequest struct {
	Page     int `form:"page,default=1"      binding:"omitempty,min=1"`
	PageSize int `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
}
