package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"fantaprof/backend/internal/dto"
	"fantaprof/backend/internal/service"
	"fantaprof/backend/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// AdminHandler 管理模块 HTTP 处理器：计分控制台、教授管理、用户管理、导出
type AdminHandler struct {
	userSvc    service.UserService
	profSvc    service.ProfessorService
	scoringSvc service.ScoringService
	exportSvc  service.ExportService
}

// NewAdminHandler 创建 AdminHandler
func NewAdminHandler(
	userSvc service.UserService,
	profSvc service.ProfessorService,
	scoringSvc service.ScoringService,
	exportSvc service.ExportService,
) *AdminHandler {
	return &AdminHandler{
		userSvc:    userSvc,
		profSvc:    profSvc,
		scoringSvc: scoringSvc,
		exportSvc:  exportSvc,
	}
}

// Events 计分事件目录
// GET /api/admin/events
func (h *AdminHandler) Events(c *gin.Context) {
	bonus, malus := h.scoringSvc.Events(c.Request.Context())
	response.OK(c, gin.H{
		"bonus": bonus,
		"malus": malus,
	})
}

// ApplyScoreEvent 对教授应用一次计分事件
// POST /api/admin/professors/:id/score
func (h *AdminHandler) ApplyScoreEvent(c *gin.Context) {
	adminID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	profID, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.ApplyScoreEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}
	if req.ProfessorID != 0 && req.ProfessorID != profID {
		response.BadRequest(c, 10001, "professor_id 与路径不一致")
		return
	}

	result, err := h.scoringSvc.ApplyEvent(c.Request.Context(), adminID, profID, req.EventCode)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownEvent):
			response.BadRequest(c, 12002, "未知的计分事件")
		case errors.Is(err, service.ErrProfessorNotFound):
			response.NotFound(c, 12001, "教授不存在")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}

// CreateProfessor 新增教授
// POST /api/admin/professors
func (h *AdminHandler) CreateProfessor(c *gin.Context) {
	var req dto.CreateProfessorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.profSvc.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrProfessorExists) {
			response.Conflict(c, 12003, "同名教授已存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.Created(c, result)
}

// UpdateProfessor 修改教授
// PUT /api/admin/professors/:id
func (h *AdminHandler) UpdateProfessor(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateProfessorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.profSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProfessorNotFound):
			response.NotFound(c, 12001, "教授不存在")
		case errors.Is(err, service.ErrProfessorExists):
			response.Conflict(c, 12003, "同名教授已存在")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}

// DeleteProfessor 删除教授（被队伍选用时拒绝）
// DELETE /api/admin/professors/:id
func (h *AdminHandler) DeleteProfessor(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.profSvc.Delete(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, service.ErrProfessorNotFound):
			response.NotFound(c, 12001, "教授不存在")
		case errors.Is(err, service.ErrProfessorInTeams):
			response.Conflict(c, 12004, "教授已被队伍选用，无法删除")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, nil)
}

// ListUsers 用户列表（分页）
// GET /api/admin/users?page=1&page_size=20
func (h *AdminHandler) ListUsers(c *gin.Context) {
	var req dto.ListUsersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.userSvc.List(c.Request.Context(), req.Page, req.PageSize)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// UpdateUserRole 修改用户角色
// PUT /api/admin/users/:id/role
func (h *AdminHandler) UpdateUserRole(c *gin.Context) {
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	targetID, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateUserRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.userSvc.UpdateRole(c.Request.Context(), operatorID, targetID, req.Role); err != nil {
		switch {
		case errors.Is(err, service.ErrSelfDemotion):
			response.Forbidden(c, 16001, "不能修改自己的角色")
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, 11004, "用户不存在")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, nil)
}

// ExportLeaderboard 排行榜导出为 Excel
// GET /api/admin/leaderboard/export?league_id=xxx
func (h *AdminHandler) ExportLeaderboard(c *gin.Context) {
	var leagueID *uint
	if raw := c.Query("league_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || id == 0 {
			response.BadRequest(c, 10001, "无效的 league_id")
			return
		}
		v := uint(id)
		leagueID = &v
	}

	buf, filename, err := h.exportSvc.ExportLeaderboard(c.Request.Context(), leagueID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLeagueNotFound):
			response.NotFound(c, 14004, "联赛不存在")
		case errors.Is(err, service.ErrExportEmpty):
			response.NotFound(c, 17001, "排行榜为空，无可导出数据")
		default:
			response.InternalError(c)
		}
		return
	}

	// 设置下载响应头
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Header("Content-Type", xlsxContentType)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
